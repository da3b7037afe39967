package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/directiva-mx/admin-api/internal/domain/admin"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUndefinedFunction is the SQLSTATE raised when verify_admin_credentials is
// missing from the schema.
const pgUndefinedFunction = "42883"

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// VerifyCredentials delegates to the store-side verification function. Its
// internals (hashing, salt) are opaque here; the contract is username+password
// in, zero or one active admin row out.
func (r *AdminRepository) VerifyCredentials(ctx context.Context, username, password string) (*admin.AdminUser, error) {
	query := `
		SELECT id, username, email, first_name, last_name, is_active
		FROM verify_admin_credentials($1, $2)
	`

	var a admin.AdminUser
	err := r.db.QueryRow(ctx, query, username, password).Scan(
		&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrInvalidCredentials
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedFunction {
			return nil, xerrors.ErrAuthNotConfigured
		}
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	return &a, nil
}

// RecordLastLogin stamps the admin's last-login timestamp via the store-side
// procedure. Callers treat failure as non-fatal.
func (r *AdminRepository) RecordLastLogin(ctx context.Context, adminID string) error {
	_, err := r.db.Exec(ctx, `SELECT update_admin_last_login($1)`, adminID)
	if err != nil {
		return fmt.Errorf("failed to record last login: %w", err)
	}
	return nil
}

// FindActiveByID re-fetches the principal; inactive admins are not returned.
func (r *AdminRepository) FindActiveByID(ctx context.Context, id string) (*admin.AdminUser, error) {
	query := `
		SELECT id, username, email, first_name, last_name, is_active
		FROM admin_users
		WHERE id = $1 AND is_active = true
	`

	var a admin.AdminUser
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	return &a, nil
}

// EnsureAdmin inserts an admin row if the username is free. Used by the
// development bootstrap only; the password arrives already bcrypt-hashed.
func (r *AdminRepository) EnsureAdmin(ctx context.Context, username, email, passwordHash string) (bool, error) {
	query := `
		INSERT INTO admin_users (username, email, password_hash, is_active)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (username) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, username, email, passwordHash)
	if err != nil {
		return false, fmt.Errorf("failed to ensure admin exists: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
