package miniapp

import (
	"context"

	"github.com/directiva-mx/admin-api/internal/domain/miniapp"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"go.uber.org/zap"
)

type Store interface {
	List(ctx context.Context, status *miniapp.Status) ([]miniapp.MiniApp, error)
	UpdateStatus(ctx context.Context, id string, status miniapp.Status) (miniapp.Status, error)
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

func (s *Service) List(ctx context.Context, status *miniapp.Status) ([]miniapp.MiniApp, error) {
	if status != nil && !status.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown mini app status "+string(*status))
	}
	return s.store.List(ctx, status)
}

// UpdateStatus changes a mini app's review status and verifies the write
// landed. Row-level security can swallow the update silently, so the store
// reads the row back and we compare here.
func (s *Service) UpdateStatus(ctx context.Context, id string, req miniapp.UpdateStatusRequest) error {
	if !req.Status.Valid() {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "unknown mini app status "+string(req.Status))
	}

	persisted, err := s.store.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return err
	}
	if persisted != req.Status {
		s.logger.Error("mini app status update did not persist",
			zap.String("mini_app_id", id),
			zap.String("requested", string(req.Status)),
			zap.String("persisted", string(persisted)),
		)
		return xerrors.Wrap(xerrors.ErrInternal, "status update did not persist")
	}

	s.stats.Invalidate(ctx)
	s.logger.Info("mini app status updated",
		zap.String("mini_app_id", id),
		zap.String("status", string(req.Status)),
	)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.stats.Invalidate(ctx)
	s.logger.Info("mini app deleted", zap.String("mini_app_id", id))
	return nil
}
