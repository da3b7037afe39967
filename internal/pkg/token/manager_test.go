package token

import (
	"errors"
	"testing"
	"time"

	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager("test-secret", "directiva-admin", ttl)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t, 24*time.Hour)

	signed, expiresAt, err := m.Issue("admin-1", "dana", "dana@directiva.mx")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	wantExpiry := time.Now().Add(24 * time.Hour)
	if diff := expiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("expiry = %v, want about %v", expiresAt, wantExpiry)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.AdminID != "admin-1" || claims.Username != "dana" || claims.Email != "dana@directiva.mx" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Type != TypeAdmin || !claims.IsAdmin() {
		t.Fatalf("type = %q, want %q", claims.Type, TypeAdmin)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestVerifyExpired(t *testing.T) {
	m := newTestManager(t, -time.Minute)

	signed, _, err := m.Issue("admin-1", "dana", "dana@directiva.mx")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = m.Verify(signed)
	if !errors.Is(err, xerrors.ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other, err := NewManager("other-secret", "directiva-admin", time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	signed, _, err := other.Issue("admin-1", "dana", "dana@directiva.mx")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = m.Verify(signed)
	if !errors.Is(err, xerrors.ErrTokenMalformed) {
		t.Fatalf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := newTestManager(t, time.Hour)

	_, err := m.Verify("not.a.token")
	if !errors.Is(err, xerrors.ErrTokenMalformed) {
		t.Fatalf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestNewManagerEmptySecret(t *testing.T) {
	if _, err := NewManager("", "directiva-admin", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
