package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingReconciler struct {
	calls atomic.Int32
	err   error
}

func (r *countingReconciler) Reconcile(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("missing deadline")
	}
	r.calls.Add(1)
	return r.err
}

type fakeSweeper struct {
	at []time.Time
}

func (s *fakeSweeper) SweepExpired(now time.Time) int {
	s.at = append(s.at, now)
	return 2
}

func TestSettingsSyncJob_Execute(t *testing.T) {
	r := &countingReconciler{err: errors.New("remote down")}
	job := NewSettingsSyncJob(r, 0)
	if job.interval != 5*time.Minute {
		t.Fatalf("expected default interval, got %v", job.interval)
	}
	job.Execute()
	if r.calls.Load() != 1 {
		t.Fatalf("expected one reconcile, got %d", r.calls.Load())
	}
}

func TestSessionSweepJob_Execute(t *testing.T) {
	s := &fakeSweeper{}
	job := NewSessionSweepJob(s, 0)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }
	job.Execute()
	if len(s.at) != 1 || !s.at[0].Equal(fixed) {
		t.Fatalf("expected sweep at %v, got %v", fixed, s.at)
	}
}

func TestManager_RunsJobs(t *testing.T) {
	r := &countingReconciler{}
	m, err := NewManager(NewSettingsSyncJob(r, 20*time.Millisecond))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	m.Start()
	defer m.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for r.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected the job to run repeatedly, got %d runs", r.calls.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
