// Outbound transactional email through the Resend HTTP API. The provider is
// an external collaborator; this service owns request shaping, the bounded
// retry policy (via httpx), and translation of provider rejections.
package email

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/httpx"

	"go.uber.org/zap"
)

const testDomainFrom = "onboarding@resend.dev"

// Message mirrors the provider's send payload.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Cc      []string `json:"cc,omitempty"`
	Bcc     []string `json:"bcc,omitempty"`
	Tags    []Tag    `json:"tags,omitempty"`
}

type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type SendResult struct {
	ID string `json:"id"`
}

// ConfigStatus is the body of GET /email/config. An invalid key is reported,
// not treated as a server error.
type ConfigStatus struct {
	Configured         bool          `json:"configured"`
	FromEmail          string        `json:"fromEmail,omitempty"`
	FromName           string        `json:"fromName,omitempty"`
	FullFrom           string        `json:"fullFrom,omitempty"`
	APIKeyValid        bool          `json:"apiKeyValid"`
	Domains            []interface{} `json:"domains,omitempty"`
	IsTestDomain       bool          `json:"isTestDomain"`
	IsProductionDomain bool          `json:"isProductionDomain"`
	Error              string        `json:"error,omitempty"`
}

type Service struct {
	client    *httpx.Client
	baseURL   string
	apiKey    string
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

func NewService(client *httpx.Client, baseURL, apiKey, fromEmail, fromName string, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		baseURL:   baseURL,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
	}
}

// Configured reports whether an API key is present.
func (s *Service) Configured() bool {
	return s.apiKey != ""
}

// DefaultFrom builds the "Name <email>" sender from configuration.
func (s *Service) DefaultFrom() string {
	if s.fromName != "" {
		return fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}
	return s.fromEmail
}

// Send delivers one message to the full recipient list in a single provider
// call. The provider rejecting the payload is not retried; only transport
// failures are (inside httpx).
func (s *Service) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("%w: RESEND_API_KEY no está configurada", xerrors.ErrNotConfigured)
	}
	if msg.From == "" {
		msg.From = s.DefaultFrom()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode email payload: %w", err)
	}

	resp, err := s.client.Do(ctx, &httpx.Request{
		Method: http.MethodPost,
		URL:    s.baseURL + "/emails",
		Header: s.headers(),
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("email provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("email provider rejected request: %s", providerError(raw, resp.StatusCode))
	}

	var result SendResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	s.logger.Info("email sent",
		zap.Int("recipients", len(msg.To)),
		zap.String("provider_id", result.ID),
	)
	return &result, nil
}

// Config checks the provider configuration by listing verified domains.
func (s *Service) Config(ctx context.Context) *ConfigStatus {
	status := &ConfigStatus{
		Configured:         s.Configured(),
		FromEmail:          s.fromEmail,
		FromName:           s.fromName,
		FullFrom:           s.DefaultFrom(),
		IsTestDomain:       s.fromEmail == testDomainFrom,
		IsProductionDomain: isProductionDomain(s.fromEmail),
	}
	if !status.Configured {
		status.Error = "RESEND_API_KEY no está configurada"
		return status
	}

	resp, err := s.client.Do(ctx, &httpx.Request{
		Method: http.MethodGet,
		URL:    s.baseURL + "/domains",
		Header: s.headers(),
	})
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status.Error = providerError(raw, resp.StatusCode)
		return status
	}

	var domains struct {
		Data []interface{} `json:"data"`
	}
	if err := json.Unmarshal(raw, &domains); err == nil {
		status.Domains = domains.Data
	}
	status.APIKeyValid = true
	return status
}

func (s *Service) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+s.apiKey)
	h.Set("Content-Type", "application/json")
	return h
}

func providerError(raw []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("status %d", status)
}

func isProductionDomain(from string) bool {
	const domain = "@directiva.mx"
	return len(from) > len(domain) && from[len(from)-len(domain):] == domain
}
