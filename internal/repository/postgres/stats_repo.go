package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/directiva-mx/admin-api/internal/domain/stats"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Dashboard computes all counts in one batched round trip.
func (r *StatsRepository) Dashboard(ctx context.Context) (*stats.Dashboard, error) {
	batch := &pgx.Batch{}
	batch.Queue(`SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`)
	batch.Queue(`SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND account_type = 'free'`)
	batch.Queue(`SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND account_type = 'pro'`)
	batch.Queue(`SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND email_verified = true`)
	batch.Queue(`SELECT COUNT(*) FROM mentores`)
	batch.Queue(`SELECT COUNT(*) FROM mentor_meeting_requests WHERE status = 'Pendiente'`)
	batch.Queue(`SELECT COUNT(*) FROM mini_apps WHERE status = 'pending'`)
	batch.Queue(`SELECT COUNT(*) FROM instituciones WHERE status = 'pending'`)
	batch.Queue(`SELECT COUNT(*) FROM instituciones WHERE status = 'approved'`)

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	d := stats.Dashboard{GeneratedAt: time.Now()}
	targets := []*int{
		&d.TotalUsers, &d.FreeUsers, &d.ProUsers, &d.VerifiedUsers,
		&d.TotalMentors, &d.PendingMeetingRequests, &d.PendingMiniApps,
		&d.PendingInstitutions, &d.ApprovedInstitutions,
	}
	for _, target := range targets {
		if err := results.QueryRow().Scan(target); err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	return &d, nil
}
