package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/httpx"

	"go.uber.org/zap"
)

func newTestService(baseURL, apiKey string) *Service {
	client := httpx.New(time.Second, zap.NewNop())
	return NewService(client, baseURL, apiKey, "noreply@directiva.mx", "Hablemos Emprendimiento", zap.NewNop())
}

func TestSendSuccess(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer key-1" {
			t.Errorf("auth header = %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	s := newTestService(srv.URL, "key-1")
	result, err := s.Send(context.Background(), &Message{
		To:      []string{"dest@example.com"},
		Subject: "Hola",
		HTML:    "<p>Hola</p>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if result.ID != "email-123" {
		t.Fatalf("id = %q", result.ID)
	}
	if got["from"] != "Hablemos Emprendimiento <noreply@directiva.mx>" {
		t.Fatalf("from = %v, default sender not applied", got["from"])
	}
}

func TestSendProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid to address"}`))
	}))
	defer srv.Close()

	s := newTestService(srv.URL, "key-1")
	_, err := s.Send(context.Background(), &Message{To: []string{"x"}, Subject: "Hola", Text: "hi"})
	if err == nil || !strings.Contains(err.Error(), "invalid to address") {
		t.Fatalf("err = %v, want provider message surfaced", err)
	}
}

func TestSendUnconfigured(t *testing.T) {
	s := newTestService("http://unused", "")
	_, err := s.Send(context.Background(), &Message{To: []string{"a@b.co"}, Subject: "x", Text: "y"})
	if !errors.Is(err, xerrors.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestConfigValidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/domains" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"name":"directiva.mx","status":"verified"}]}`))
	}))
	defer srv.Close()

	s := newTestService(srv.URL, "key-1")
	status := s.Config(context.Background())
	if !status.Configured || !status.APIKeyValid {
		t.Fatalf("status = %+v", status)
	}
	if len(status.Domains) != 1 {
		t.Fatalf("domains = %v", status.Domains)
	}
	if !status.IsProductionDomain || status.IsTestDomain {
		t.Fatalf("domain flags = %+v", status)
	}
	if status.FullFrom != "Hablemos Emprendimiento <noreply@directiva.mx>" {
		t.Fatalf("fullFrom = %q", status.FullFrom)
	}
}

func TestConfigInvalidKeyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"API key is invalid"}`))
	}))
	defer srv.Close()

	s := newTestService(srv.URL, "bad-key")
	status := s.Config(context.Background())
	if !status.Configured || status.APIKeyValid {
		t.Fatalf("status = %+v", status)
	}
	if status.Error != "API key is invalid" {
		t.Fatalf("error = %q", status.Error)
	}
}

func TestConfigMissingKey(t *testing.T) {
	s := newTestService("http://unused", "")
	status := s.Config(context.Background())
	if status.Configured || status.APIKeyValid || status.Error == "" {
		t.Fatalf("status = %+v", status)
	}
}
