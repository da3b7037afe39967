// Admin authentication. Credential checking lives in the database (the store
// exposes a verify function that does the hash comparison); this service owns
// token issuance, re-verification against the live principal, and the
// first-run bootstrap admin.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/directiva-mx/admin-api/internal/domain/admin"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Store is the admin persistence surface the service needs.
type Store interface {
	VerifyCredentials(ctx context.Context, username, password string) (*admin.AdminUser, error)
	RecordLastLogin(ctx context.Context, adminID string) error
	FindActiveByID(ctx context.Context, id string) (*admin.AdminUser, error)
	EnsureAdmin(ctx context.Context, username, email, passwordHash string) (bool, error)
}

type Service struct {
	store  Store
	tokens *token.Manager
	logger *zap.Logger
}

func NewService(store Store, tokens *token.Manager, logger *zap.Logger) *Service {
	return &Service{store: store, tokens: tokens, logger: logger}
}

// Login verifies a username/password pair through the store and issues a
// credential. Wrong username and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, req admin.LoginRequest) (*admin.LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "username and password are required")
	}

	account, err := s.store.VerifyCredentials(ctx, username, req.Password)
	if err != nil {
		if errors.Is(err, xerrors.ErrAuthNotConfigured) {
			s.logger.Error("credential verification function missing in store", zap.Error(err))
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, xerrors.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Issue(account.ID, account.Username, account.Email)
	if err != nil {
		return nil, err
	}

	// Last-login bookkeeping must not block a successful login.
	if err := s.store.RecordLastLogin(ctx, account.ID); err != nil {
		s.logger.Warn("failed to record last login",
			zap.String("admin_id", account.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("admin logged in",
		zap.String("admin_id", account.ID),
		zap.String("username", account.Username),
	)

	return &admin.LoginResult{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      *account,
	}, nil
}

// Verify validates a credential and re-fetches the principal. A token that
// parses fine but belongs to a deactivated or deleted admin is rejected.
func (s *Service) Verify(ctx context.Context, tokenString string) (*admin.AdminUser, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if !claims.IsAdmin() {
		return nil, xerrors.ErrWrongTokenType
	}

	account, err := s.store.FindActiveByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrPrincipalInactive
		}
		return nil, err
	}
	return account, nil
}

// EnsureAdminExists seeds the bootstrap admin when no row with the given
// username exists. Called once at startup; a no-op on every run after the
// first.
func (s *Service) EnsureAdminExists(ctx context.Context, username, email, password string) error {
	if username == "" || password == "" {
		s.logger.Debug("admin bootstrap skipped, no credentials configured")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created, err := s.store.EnsureAdmin(ctx, username, email, string(hash))
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("bootstrap admin created", zap.String("username", username))
	}
	return nil
}
