package scheduler

import (
	"context"
	"errors"
	"testing"
)

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return r.err
}

func TestStartDisabled(t *testing.T) {
	r := &countingRefresher{}
	s := New(0, r)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
	if r.calls != 0 {
		t.Fatalf("expected no refresh, got %d", r.calls)
	}
}

func TestRunCallsRefresher(t *testing.T) {
	r := &countingRefresher{err: errors.New("offline")}
	s := New(0, r)

	s.run()
	s.run()
	if r.calls != 2 {
		t.Fatalf("expected 2 refreshes, got %d", r.calls)
	}
}
