package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"go.uber.org/zap"
)

func fastClient(timeout time.Duration) *Client {
	c := New(timeout, zap.NewNop())
	c.backoffBase = time.Millisecond
	return c
}

func TestDoReturnsServerResponseWithoutRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := fastClient(time.Second)
	resp, err := c.Do(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("calls = %d, a server response must never be retried", got)
	}
}

func TestDoRetriesConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens anymore

	c := fastClient(time.Second)
	start := time.Now()
	_, err := c.Do(context.Background(), &Request{Method: http.MethodGet, URL: url})
	if !errors.Is(err, xerrors.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("retries took too long, backoff override not applied")
	}
}

func TestDoTimeoutPerAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := fastClient(50 * time.Millisecond)
	_, err := c.Do(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})
	if !errors.Is(err, xerrors.ErrUpstreamTimeout) {
		t.Fatalf("err = %v, want ErrUpstreamTimeout", err)
	}
	if got := atomic.LoadInt32(&calls); got != DefaultAttempts {
		t.Fatalf("calls = %d, want %d attempts", got, DefaultAttempts)
	}
}

func TestDoStopsWhenCallerContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := fastClient(time.Second)
	if _, err := c.Do(ctx, &Request{Method: http.MethodGet, URL: url}); err == nil {
		t.Fatal("expected error with cancelled context")
	}
}

func TestDoSendsHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Custom") != "yes" {
			t.Errorf("missing header, got %q", r.Header.Get("X-Custom"))
		}
		buf := make([]byte, 16)
		n, _ := r.Body.Read(buf)
		if string(buf[:n]) != "payload" {
			t.Errorf("body = %q", buf[:n])
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	h := http.Header{}
	h.Set("X-Custom", "yes")

	c := fastClient(time.Second)
	resp, err := c.Do(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    srv.URL,
		Header: h,
		Body:   []byte("payload"),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
}
