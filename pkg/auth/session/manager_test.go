package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type fakeBackend struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: make(map[string]string)}
}

func (f *fakeBackend) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value.(string)
	return nil
}

func (f *fakeBackend) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (f *fakeBackend) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeBackend) AccessSessionKey(accessID string) string {
	return "sess:" + accessID
}

func newTestManager() (*Manager, *fakeBackend) {
	backend := newFakeBackend()
	return &Manager{backend: backend, ttl: time.Hour}, backend
}

func TestGenerateStoresToken(t *testing.T) {
	manager, backend := newTestManager()

	token, err := manager.Generate(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if backend.data["sess:access-1"] != token {
		t.Fatalf("stored token mismatch: %q", backend.data["sess:access-1"])
	}

	if _, err := manager.Generate(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank access id")
	}
}

func TestRotateReplacesSession(t *testing.T) {
	manager, backend := newTestManager()
	ctx := context.Background()

	token, err := manager.Generate(ctx, "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := manager.Rotate(ctx, "access-1", "forged"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
	if _, _, err := manager.Rotate(ctx, "never-issued", token); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected invalid token for unknown session, got %v", err)
	}

	newAccessID, newToken, err := manager.Rotate(ctx, "access-1", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if _, alive := backend.data["sess:access-1"]; alive {
		t.Fatal("old session must be removed after rotation")
	}
	if backend.data["sess:"+newAccessID] != newToken {
		t.Fatal("new session not stored under the new access id")
	}

	// The consumed token must not rotate a second time.
	if _, _, err := manager.Rotate(ctx, "access-1", token); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected replay to fail, got %v", err)
	}
}

func TestRevokeEndsSession(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	if _, err := manager.Generate(ctx, "access-2"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	alive, err := manager.HasSession(ctx, "access-2")
	if err != nil || !alive {
		t.Fatalf("expected live session, alive=%v err=%v", alive, err)
	}

	if err := manager.Revoke(ctx, "access-2"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	alive, err = manager.HasSession(ctx, "access-2")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if alive {
		t.Fatal("session must be gone after revoke")
	}
}
