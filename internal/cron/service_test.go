package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

type fakeLock struct {
	held     bool
	acquires int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	f.acquires++
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error { f.held = false; return nil }

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func newTestService(t *testing.T, registry *Registry, lock Lock) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test"}),
		Registry: registry,
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	return svc
}

func TestRunCycleRunsEveryJobEvenOnFailure(t *testing.T) {
	ok := &testJob{name: "ok"}
	bad := &testJob{name: "bad", err: errors.New("boom")}
	alsoBad := &testJob{name: "also-bad", err: errors.New("kaput")}
	svc := newTestService(t, NewRegistry(ok, bad, alsoBad), &fakeLock{})

	err := svc.runCycle(context.Background())
	if err == nil {
		t.Fatal("expected the combined job errors")
	}
	for _, job := range []*testJob{ok, bad, alsoBad} {
		if job.runs != 1 {
			t.Fatalf("job %s ran %d times", job.name, job.runs)
		}
	}
	if !strings.Contains(err.Error(), "boom") || !strings.Contains(err.Error(), "kaput") {
		t.Fatalf("expected both failures in the combined error, got %v", err)
	}
}

func TestRunCycleSkipsWhenLockHeld(t *testing.T) {
	job := &testJob{name: "job"}
	lock := &fakeLock{held: true}
	svc := newTestService(t, NewRegistry(job), lock)

	if err := svc.runCycle(context.Background()); err != nil {
		t.Fatalf("run cycle: %v", err)
	}
	if job.runs != 0 {
		t.Fatalf("job should not run without the lock, ran %d times", job.runs)
	}
	if lock.acquires != 1 {
		t.Fatalf("expected one acquire attempt, got %d", lock.acquires)
	}
}

func TestRegistryIgnoresNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &testJob{name: "only"})
	registry.Register(nil)
	if jobs := registry.Jobs(); len(jobs) != 1 || jobs[0].Name() != "only" {
		t.Fatalf("unexpected registry contents %v", jobs)
	}
}

type fakeExpirer struct {
	n   int64
	err error
	at  time.Time
}

func (f *fakeExpirer) ExpireOffres(_ context.Context, now time.Time) (int64, error) {
	f.at = now
	return f.n, f.err
}

func TestExpiredOffresJob(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	expirer := &fakeExpirer{n: 3}
	job, err := NewExpiredOffresJob(ExpiredOffresJobParams{Logger: logg, Emplois: expirer})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if job.Name() != "expired-offres" {
		t.Fatalf("unexpected name %s", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if expirer.at.IsZero() {
		t.Fatal("expirer should receive the sweep time")
	}

	expirer.err = errors.New("db down")
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected the sweep error to propagate")
	}
}

type fakePurger struct {
	cutoff time.Time
	n      int64
	err    error
}

func (f *fakePurger) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

func TestIntakeRetentionJobUsesConfiguredWindow(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	purger := &fakePurger{n: 12}
	job, err := NewIntakeRetentionJob(IntakeRetentionJobParams{
		Logger:    logg,
		Forms:     purger,
		Retention: 48 * time.Hour,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	before := time.Now().UTC().Add(-48 * time.Hour)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	after := time.Now().UTC().Add(-48 * time.Hour)
	if purger.cutoff.Before(before) || purger.cutoff.After(after) {
		t.Fatalf("cutoff %s outside the expected window", purger.cutoff)
	}
}
