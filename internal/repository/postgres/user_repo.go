package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/directiva-mx/admin-api/internal/domain/user"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, email, first_name, last_name, account_type, is_active,
	email_verified, business_name, created_at, updated_at, last_active, deleted_at
`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.AccountType, &u.IsActive,
		&u.EmailVerified, &u.BusinessName, &u.CreatedAt, &u.UpdatedAt, &u.LastActive, &u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) collect(ctx context.Context, query string, args ...interface{}) ([]*user.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// List returns non-deleted users, optionally filtered by tier, newest first.
func (r *UserRepository) List(ctx context.Context, filters *user.ListFilters) ([]*user.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE deleted_at IS NULL
	`, userColumns)
	args := []interface{}{}

	if filters != nil && filters.AccountType != nil {
		query += ` AND account_type = $1`
		args = append(args, *filters.AccountType)
	}
	query += ` ORDER BY created_at DESC`

	return r.collect(ctx, query, args...)
}

// ListActive returns the active, non-deleted user pool used for audience
// resolution, optionally narrowed to one tier.
func (r *UserRepository) ListActive(ctx context.Context, accountType *user.AccountType) ([]*user.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE is_active = true AND deleted_at IS NULL
	`, userColumns)
	args := []interface{}{}

	if accountType != nil {
		query += ` AND account_type = $1`
		args = append(args, *accountType)
	}
	query += ` ORDER BY created_at DESC`

	return r.collect(ctx, query, args...)
}

// FindActiveByIDs returns the subset of ids that match active, non-deleted
// rows. Ids without a match are simply absent from the result.
func (r *UserRepository) FindActiveByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE id = ANY($1) AND is_active = true AND deleted_at IS NULL
	`, userColumns)

	return r.collect(ctx, query, ids)
}

// ListRecentlyActive returns users ordered by their last activity.
func (r *UserRepository) ListRecentlyActive(ctx context.Context, limit int) ([]*user.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE is_active = true AND deleted_at IS NULL AND last_active IS NOT NULL
		ORDER BY last_active DESC
		LIMIT $1
	`, userColumns)

	return r.collect(ctx, query, limit)
}

// UpdateAccountType switches a user between free and pro.
func (r *UserRepository) UpdateAccountType(ctx context.Context, id string, accountType user.AccountType) (*user.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET account_type = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING %s
	`, userColumns)

	u, err := scanUser(r.db.QueryRow(ctx, query, accountType, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update account type: %w", err)
	}
	return u, nil
}

// SoftDelete marks a user deleted without dropping the row.
func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), is_active = false, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
