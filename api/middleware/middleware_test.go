package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/agence-judiciaire/aje-backend/pkg/auth"
	"github.com/agence-judiciaire/aje-backend/pkg/config"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	"github.com/google/uuid"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "aje-backend",
	ExpirationMinutes: 15,
}

type stubSessionChecker struct {
	live map[string]bool
	err  error
}

func (s *stubSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.live[accessID], nil
}

type stubWindowLimiter struct {
	allow bool
	err   error
	calls []string
}

func (s *stubWindowLimiter) FixedWindowAllow(_ context.Context, scope string, _ int64, _ time.Duration) (bool, int64, error) {
	s.calls = append(s.calls, scope)
	if s.err != nil {
		return false, 0, s.err
	}
	return s.allow, 1, nil
}

func mintTestToken(t *testing.T, userID uuid.UUID, role enums.Role, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTConfig, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	userID := uuid.New()
	jti := uuid.NewString()
	sessions := &stubSessionChecker{live: map[string]bool{jti: true}}

	var gotUser, gotRole, gotAccess string
	var gotActor *uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		gotAccess = AccessIDFromContext(r.Context())
		gotActor = ActorUUIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, userID, enums.RoleAdmin, jti))
	rec := httptest.NewRecorder()

	Auth(testJWTConfig, sessions, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUser != userID.String() {
		t.Fatalf("expected user id %s, got %q", userID, gotUser)
	}
	if gotRole != string(enums.RoleAdmin) {
		t.Fatalf("expected admin role, got %q", gotRole)
	}
	if gotAccess != jti {
		t.Fatalf("expected access id %s, got %q", jti, gotAccess)
	}
	if gotActor == nil || *gotActor != userID {
		t.Fatalf("expected actor uuid %s, got %v", userID, gotActor)
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	jti := uuid.NewString()
	sessions := &stubSessionChecker{live: map[string]bool{jti: true}}

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
			Auth(testJWTConfig, sessions, nil)(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if called {
				t.Fatal("next handler must not run")
			}
		})
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	jti := uuid.NewString()
	sessions := &stubSessionChecker{live: map[string]bool{}}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, uuid.New(), enums.RoleRedacteur, jti))
	rec := httptest.NewRecorder()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})
	Auth(testJWTConfig, sessions, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", rec.Code)
	}

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error.Message != "session expired" {
		t.Fatalf("expected session expired message, got %q", body.Error.Message)
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireRole(enums.RoleAdmin, nil)(next)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/x", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.RoleRedacteur)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for redacteur, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/admin/users/x", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.RoleAdmin)))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", rec.Code)
	}
}

func TestIPRateLimitBlocks(t *testing.T) {
	limiter := &stubWindowLimiter{allow: false}
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run when limited")
	})

	req := httptest.NewRequest(http.MethodPost, "/forms/contact", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()

	IPRateLimit("intake", limiter, 10, time.Minute, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if len(limiter.calls) != 1 || limiter.calls[0] != "rl:intake:ip:203.0.113.7" {
		t.Fatalf("unexpected limiter scopes %v", limiter.calls)
	}
}

func TestIPRateLimitFailsOpen(t *testing.T) {
	limiter := &stubWindowLimiter{err: fmt.Errorf("redis down")}
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodPost, "/forms/contact", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()

	IPRateLimit("intake", limiter, 10, time.Minute, nil)(next).ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to run when redis is unavailable")
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	if ip := ClientIP(req); ip != "198.51.100.4" {
		t.Fatalf("expected forwarded ip, got %q", ip)
	}

	req.Header.Del("X-Forwarded-For")
	if ip := ClientIP(req); ip != "10.0.0.1" {
		t.Fatalf("expected remote addr host, got %q", ip)
	}
}

func TestRequestIDSetsHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RequestID(nil)(next).ServeHTTP(rec, req)

	generated := rec.Header().Get("X-Request-Id")
	if generated == "" {
		t.Fatal("expected generated request id header")
	}
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected uuid request id, got %q", generated)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-supplied")
	rec = httptest.NewRecorder()
	RequestID(nil)(next).ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "client-supplied" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Recoverer(nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error.Code != "INTERNAL_ERROR" {
		t.Fatalf("expected internal code, got %q", body.Error.Code)
	}
}
