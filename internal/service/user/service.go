package user

import (
	"context"

	"github.com/directiva-mx/admin-api/internal/domain/user"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"go.uber.org/zap"
)

// Store is the user persistence surface the admin operations need.
type Store interface {
	List(ctx context.Context, filters *user.ListFilters) ([]*user.User, error)
	ListRecentlyActive(ctx context.Context, limit int) ([]*user.User, error)
	UpdateAccountType(ctx context.Context, id string, accountType user.AccountType) (*user.User, error)
	SoftDelete(ctx context.Context, id string) error
}

// StatsInvalidator drops the cached dashboard after a mutation.
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

func (s *Service) List(ctx context.Context, filters *user.ListFilters) ([]*user.User, error) {
	if filters != nil && filters.AccountType != nil && !filters.AccountType.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown account type "+string(*filters.AccountType))
	}
	return s.store.List(ctx, filters)
}

func (s *Service) ListRecentlyActive(ctx context.Context, limit int) ([]*user.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListRecentlyActive(ctx, limit)
}

// UpdateAccountType moves a user between tiers and invalidates the cached
// dashboard counts.
func (s *Service) UpdateAccountType(ctx context.Context, id string, req user.UpdateAccountTypeRequest) (*user.User, error) {
	if !req.AccountType.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "account type must be free or pro")
	}

	updated, err := s.store.UpdateAccountType(ctx, id, req.AccountType)
	if err != nil {
		return nil, err
	}

	s.stats.Invalidate(ctx)
	s.logger.Info("user account type updated",
		zap.String("user_id", id),
		zap.String("account_type", string(req.AccountType)),
	)
	return updated, nil
}

// Delete soft-deletes a user. The row stays for audit; the user disappears
// from every listing and audience.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.stats.Invalidate(ctx)
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}
