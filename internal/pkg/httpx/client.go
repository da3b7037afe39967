package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"go.uber.org/zap"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultAttempts = 3
	DefaultBackoff  = 1 * time.Second
)

// Client wraps http.Client with a per-attempt timeout and bounded retries.
// Only transient network/timeout failures are retried; a response from the
// server, whatever its status, ends the loop. Backoff doubles per attempt.
type Client struct {
	hc          *http.Client
	timeout     time.Duration
	maxAttempts int
	backoffBase time.Duration
	logger      *zap.Logger
}

func New(timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		hc:          &http.Client{},
		timeout:     timeout,
		maxAttempts: DefaultAttempts,
		backoffBase: DefaultBackoff,
		logger:      logger,
	}
}

// Request describes one outbound call. Body is held as bytes so each retry
// attempt can replay it.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Do performs the request with retry. The returned response body is owned by
// the caller.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.attempt(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// The caller's context going away is not retryable.
		if ctx.Err() != nil {
			break
		}
		if !isTransient(err) {
			break
		}
		if attempt == c.maxAttempts {
			break
		}

		delay := c.backoffBase << (attempt - 1)
		if c.logger != nil {
			c.logger.Warn("outbound request failed, retrying",
				zap.String("url", req.URL),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err),
			)
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ClassifyNetworkError(ctx.Err())
		}
	}

	return nil, ClassifyNetworkError(lastErr)
}

func (c *Client) attempt(ctx context.Context, req *Request) (*http.Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

	var body *bytes.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, req.URL, body)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		cancel()
		return nil, err
	}

	// Tie the timeout's cancel to the body so the caller can read it.
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// isTransient reports whether the error is worth retrying: timeouts and
// network-level failures. Anything the server actually answered is not seen
// here, so provider rejections are never retried.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}

// ClassifyNetworkError maps a transport failure onto the upstream error
// taxonomy so handlers can pick 502/503/504.
func ClassifyNetworkError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", xerrors.ErrUpstreamTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", xerrors.ErrUpstreamTimeout, err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w: %v", xerrors.ErrUpstreamUnavailable, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", xerrors.ErrUpstreamNetwork, err)
	}
	return err
}
