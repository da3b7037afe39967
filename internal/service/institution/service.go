package institution

import (
	"context"
	"time"

	"github.com/directiva-mx/admin-api/internal/domain/institution"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"go.uber.org/zap"
)

type Store interface {
	List(ctx context.Context) ([]institution.Institution, error)
	Update(ctx context.Context, id string, req *institution.UpdateRequest) (*institution.Institution, error)
	Delete(ctx context.Context, id string) error
}

type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	store  Store
	stats  StatsInvalidator
	logger *zap.Logger
}

func NewService(store Store, stats StatsInvalidator, logger *zap.Logger) *Service {
	return &Service{store: store, stats: stats, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]institution.Institution, error) {
	return s.store.List(ctx)
}

// Update moves a partnership request through review. Approving stamps
// approved_at server-side when the caller did not supply one.
func (s *Service) Update(ctx context.Context, id string, req *institution.UpdateRequest) (*institution.Institution, error) {
	if !req.Status.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown institution status "+string(req.Status))
	}
	if req.Status == institution.StatusApproved && req.ApprovedAt == nil {
		now := time.Now()
		req.ApprovedAt = &now
	}

	updated, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.stats.Invalidate(ctx)
	s.logger.Info("institution updated",
		zap.String("institution_id", id),
		zap.String("status", string(req.Status)),
	)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.stats.Invalidate(ctx)
	s.logger.Info("institution deleted", zap.String("institution_id", id))
	return nil
}
