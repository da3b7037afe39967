package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/directiva-mx/admin-api/internal/domain/institution"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InstitutionRepository struct {
	db *pgxpool.Pool
}

func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

const institutionColumns = `
	id, name, contact_name, contact_email, status, max_users, approved_at, created_at, updated_at
`

// List returns all partnership requests, newest first.
func (r *InstitutionRepository) List(ctx context.Context) ([]institution.Institution, error) {
	query := fmt.Sprintf(`SELECT %s FROM instituciones ORDER BY created_at DESC`, institutionColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query institutions: %w", err)
	}
	defer rows.Close()

	institutions := []institution.Institution{}
	for rows.Next() {
		var inst institution.Institution
		err := rows.Scan(
			&inst.ID, &inst.Name, &inst.ContactName, &inst.ContactEmail,
			&inst.Status, &inst.MaxUsers, &inst.ApprovedAt, &inst.CreatedAt, &inst.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan institution: %w", err)
		}
		institutions = append(institutions, inst)
	}
	return institutions, rows.Err()
}

// Update applies status and the optional approval fields.
func (r *InstitutionRepository) Update(ctx context.Context, id string, req *institution.UpdateRequest) (*institution.Institution, error) {
	query := fmt.Sprintf(`
		UPDATE instituciones
		SET status = $1,
		    approved_at = COALESCE($2, approved_at),
		    max_users = COALESCE($3, max_users),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING %s
	`, institutionColumns)

	var inst institution.Institution
	err := r.db.QueryRow(ctx, query, req.Status, req.ApprovedAt, req.MaxUsers, id).Scan(
		&inst.ID, &inst.Name, &inst.ContactName, &inst.ContactEmail,
		&inst.Status, &inst.MaxUsers, &inst.ApprovedAt, &inst.CreatedAt, &inst.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update institution: %w", err)
	}
	return &inst, nil
}

// Delete removes a partnership request.
func (r *InstitutionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM instituciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete institution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
