package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/directiva-mx/admin-api/internal/domain/notification"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository persists the two divergent notification shapes. The
// user and mentor tables intentionally stay separate; no unified row type.
type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func marshalPayload(payload map[string]interface{}) ([]byte, error) {
	if payload == nil {
		return []byte(`{}`), nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return data, nil
}

// InsertUserNotifications bulk-inserts one row per user in a single batch
// round trip. Any failed insert fails the whole call; a persistence problem
// here is not a partial-recipient problem.
func (r *NotificationRepository) InsertUserNotifications(ctx context.Context, rows []notification.UserNotification) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO notifications (user_id, title, message, type, priority, action_url, expires_at, metadata, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	batch := &pgx.Batch{}
	for _, n := range rows {
		metadata, err := marshalPayload(n.Metadata)
		if err != nil {
			return err
		}
		batch.Queue(query, n.UserID, n.Title, n.Message, n.Type, n.Priority, n.ActionURL, n.ExpiresAt, metadata, n.Read)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert user notifications: %w", err)
		}
	}
	return nil
}

// InsertMentorNotifications bulk-inserts into the mentor table with its own
// column names (mentor_id, data, is_read).
func (r *NotificationRepository) InsertMentorNotifications(ctx context.Context, rows []notification.MentorNotification) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO mentor_notifications (mentor_id, title, message, type, data, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, n := range rows {
		data, err := marshalPayload(n.Data)
		if err != nil {
			return err
		}
		batch.Queue(query, n.MentorID, n.Title, n.Message, n.Type, data, n.IsRead)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert mentor notifications: %w", err)
		}
	}
	return nil
}
