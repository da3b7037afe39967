package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/directiva-mx/admin-api/internal/domain/miniapp"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MiniAppRepository struct {
	db *pgxpool.Pool
}

func NewMiniAppRepository(db *pgxpool.Pool) *MiniAppRepository {
	return &MiniAppRepository{db: db}
}

const miniAppColumns = `
	id, name, description, author_id, author_name, url, status, created_at, updated_at
`

// List returns submitted mini-apps, optionally filtered by review status.
func (r *MiniAppRepository) List(ctx context.Context, status *miniapp.Status) ([]miniapp.MiniApp, error) {
	query := fmt.Sprintf(`SELECT %s FROM mini_apps`, miniAppColumns)
	args := []interface{}{}

	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mini-apps: %w", err)
	}
	defer rows.Close()

	apps := []miniapp.MiniApp{}
	for rows.Next() {
		var a miniapp.MiniApp
		err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.AuthorID, &a.AuthorName,
			&a.URL, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mini-app: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// UpdateStatus sets the review status and returns the status read back from
// the row. Row-level security can silently no-op the update, so callers must
// compare the returned status against what they asked for.
func (r *MiniAppRepository) UpdateStatus(ctx context.Context, id string, status miniapp.Status) (miniapp.Status, error) {
	query := `
		UPDATE mini_apps
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return "", fmt.Errorf("failed to update mini-app status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", xerrors.ErrNotFound
	}

	var current miniapp.Status
	err = r.db.QueryRow(ctx, `SELECT status FROM mini_apps WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", xerrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read back mini-app status: %w", err)
	}
	return current, nil
}

// Delete removes a mini-app submission.
func (r *MiniAppRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM mini_apps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mini-app: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
