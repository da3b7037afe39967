package config

import "testing"

func TestValidateDevelopmentAllowsDefaults(t *testing.T) {
	cfg := Load()
	cfg.Env = "development"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateProductionRejectsDevSecret(t *testing.T) {
	cfg := Load()
	cfg.Env = "production"
	cfg.JWTSecret = defaultJWTSecret
	cfg.MainAppURL = "https://hablemos.directiva.mx"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for dev JWT secret in production")
	}
}

func TestValidateProductionRejectsLocalProxyTarget(t *testing.T) {
	cfg := Load()
	cfg.Env = "production"
	cfg.JWTSecret = "real-secret"
	cfg.MainAppURL = "http://localhost:3000"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for localhost proxy target in production")
	}
}

func TestValidateProductionRejectsBadURL(t *testing.T) {
	cfg := Load()
	cfg.Env = "production"
	cfg.JWTSecret = "real-secret"
	cfg.MainAppURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed proxy URL")
	}
}

func TestValidateProductionAccepts(t *testing.T) {
	cfg := Load()
	cfg.Env = "production"
	cfg.JWTSecret = "real-secret"
	cfg.MainAppURL = "https://hablemos.directiva.mx"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
