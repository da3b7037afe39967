// Proxy for the main application's cache invalidation endpoint. The panel
// mutates data the main app serves from cache, so after a mutation an admin
// can force that cache dropped for a given user. The call crosses a service
// boundary and gets the full retry/backoff treatment.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/httpx"

	"go.uber.org/zap"
)

const userAgent = "Panel-Control/1.0"

// ClearRequest targets either one user (by id or email) or the whole cache.
// Validation happens at the handler; the upstream disambiguates otherwise.
type ClearRequest struct {
	UserID    string `json:"userId,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
	ClearAll  bool   `json:"clearAll,omitempty"`
}

// ClearResult is the upstream's view of the operation, passed through to the
// panel so the admin sees what the main app actually reported.
type ClearResult struct {
	StatusCode  int
	RequestID   string
	ElapsedTime string
	Body        map[string]interface{}
}

type Service struct {
	client     *httpx.Client
	mainAppURL string
	adminToken string
	logger     *zap.Logger
}

// NewService builds the proxy. The client should carry the long upstream
// timeout; cache invalidation on the main app can take a while under load.
func NewService(client *httpx.Client, mainAppURL, adminToken string, logger *zap.Logger) *Service {
	return &Service{
		client:     client,
		mainAppURL: strings.TrimRight(mainAppURL, "/"),
		adminToken: adminToken,
		logger:     logger,
	}
}

// ClearUser asks the main app to drop cached data for one user, or all of it
// when ClearAll is set. Network failures come back as the upstream sentinel
// errors for the handler to map onto gateway status codes.
func (s *Service) ClearUser(ctx context.Context, req *ClearRequest) (*ClearResult, error) {
	if s.mainAppURL == "" {
		return nil, xerrors.Wrap(xerrors.ErrNotConfigured, "MAIN_APP_URL is not set")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("User-Agent", userAgent)
	if s.adminToken != "" {
		header.Set("X-Admin-Token", s.adminToken)
	}

	start := time.Now()
	resp, err := s.client.Do(ctx, &httpx.Request{
		Method: http.MethodPost,
		URL:    s.mainAppURL + "/api/cache/clear",
		Header: header,
		Body:   payload,
	})
	if err != nil {
		s.logger.Error("cache clear proxy failed",
			zap.String("user_id", req.UserID),
			zap.String("user_email", req.UserEmail),
			zap.Bool("clear_all", req.ClearAll),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, httpx.ClassifyNetworkError(err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	result := &ClearResult{
		StatusCode:  resp.StatusCode,
		RequestID:   resp.Header.Get("X-Request-ID"),
		ElapsedTime: resp.Header.Get("X-Response-Time"),
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result.Body); err != nil {
			result.Body = map[string]interface{}{"raw": string(raw)}
		}
	}

	s.logger.Info("cache clear proxied",
		zap.String("user_id", req.UserID),
		zap.String("user_email", req.UserEmail),
		zap.Bool("clear_all", req.ClearAll),
		zap.Int("upstream_status", resp.StatusCode),
		zap.String("upstream_request_id", result.RequestID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// Target reports the configured upstream for diagnostics output.
func (s *Service) Target() string {
	if s.mainAppURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/cache/clear", s.mainAppURL)
}
