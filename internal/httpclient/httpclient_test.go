package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoWithoutRetriesMakesSingleAttempt(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := Config{Client: srv.Client()}
	_, err := Do(context.Background(), cfg, NewBreaker("test"), func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, srv.URL, nil)
	})

	if !errors.Is(err, ErrServerError) {
		t.Fatalf("expected ErrServerError, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected 1 attempt, got %d", n)
	}
}

func TestDoRetriesWithBackoff(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	cfg := Config{
		Client: srv.Client(),
		Backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
		},
	}
	resp, err := Do(context.Background(), cfg, NewBreaker("test"), func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, srv.URL, nil)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Fatalf("expected 3 attempts, got %d", n)
	}
}

func TestDoRejectsInvalidConfig(t *testing.T) {
	_, err := Do(context.Background(), Config{}, NewBreaker("test"), nil)
	if !errors.Is(err, ErrNoHTTPClient) {
		t.Fatalf("expected ErrNoHTTPClient, got %v", err)
	}

	cfg := Config{Client: http.DefaultClient, Backoff: BackoffConfig{MaxRetries: 2}}
	_, err = Do(context.Background(), cfg, NewBreaker("test"), nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
