package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/directiva-mx/admin-api/internal/domain/mentor"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MentorRepository struct {
	db *pgxpool.Pool
}

func NewMentorRepository(db *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{db: db}
}

const mentorColumns = `id, name, email, expertise, verified, availability, created_at`

func (r *MentorRepository) collect(ctx context.Context, query string, args ...interface{}) ([]*mentor.Mentor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentors: %w", err)
	}
	defer rows.Close()

	mentors := []*mentor.Mentor{}
	for rows.Next() {
		var m mentor.Mentor
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Expertise, &m.Verified, &m.Availability, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mentor: %w", err)
		}
		mentors = append(mentors, &m)
	}
	return mentors, rows.Err()
}

// List returns all mentors, newest first.
func (r *MentorRepository) List(ctx context.Context) ([]*mentor.Mentor, error) {
	query := fmt.Sprintf(`SELECT %s FROM mentores ORDER BY created_at DESC`, mentorColumns)
	return r.collect(ctx, query)
}

// FindByIDs returns the subset of ids that match mentor rows.
func (r *MentorRepository) FindByIDs(ctx context.Context, ids []string) ([]*mentor.Mentor, error) {
	if len(ids) == 0 {
		return []*mentor.Mentor{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM mentores WHERE id = ANY($1)`, mentorColumns)
	return r.collect(ctx, query, ids)
}

// Delete removes a mentor row.
func (r *MentorRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM mentores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mentor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ListMeetingRequests returns all mentorship meeting requests, newest first.
func (r *MentorRepository) ListMeetingRequests(ctx context.Context) ([]mentor.MeetingRequest, error) {
	query := `
		SELECT id, mentor_id, user_id, user_name, user_email, topic, status, requested_at, updated_at
		FROM mentor_meeting_requests
		ORDER BY requested_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting requests: %w", err)
	}
	defer rows.Close()

	requests := []mentor.MeetingRequest{}
	for rows.Next() {
		var req mentor.MeetingRequest
		err := rows.Scan(
			&req.ID, &req.MentorID, &req.UserID, &req.UserName, &req.UserEmail,
			&req.Topic, &req.Status, &req.RequestedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateMeetingRequestStatus moves a request through the review workflow.
func (r *MentorRepository) UpdateMeetingRequestStatus(ctx context.Context, id string, status mentor.RequestStatus) (*mentor.MeetingRequest, error) {
	query := `
		UPDATE mentor_meeting_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, mentor_id, user_id, user_name, user_email, topic, status, requested_at, updated_at
	`

	var req mentor.MeetingRequest
	err := r.db.QueryRow(ctx, query, status, id).Scan(
		&req.ID, &req.MentorID, &req.UserID, &req.UserName, &req.UserEmail,
		&req.Topic, &req.Status, &req.RequestedAt, &req.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update meeting request: %w", err)
	}
	return &req, nil
}
