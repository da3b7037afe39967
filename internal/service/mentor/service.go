package mentor

import (
	"context"

	"github.com/directiva-mx/admin-api/internal/domain/mentor"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"

	"go.uber.org/zap"
)

type Store interface {
	List(ctx context.Context) ([]*mentor.Mentor, error)
	Delete(ctx context.Context, id string) error
	ListMeetingRequests(ctx context.Context) ([]mentor.MeetingRequest, error)
	UpdateMeetingRequestStatus(ctx context.Context, id string, status mentor.RequestStatus) (*mentor.MeetingRequest, error)
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

func (s *Service) List(ctx context.Context) ([]*mentor.Mentor, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.stats.Invalidate(ctx)
	s.logger.Info("mentor deleted", zap.String("mentor_id", id))
	return nil
}

func (s *Service) ListMeetingRequests(ctx context.Context) ([]mentor.MeetingRequest, error) {
	return s.store.ListMeetingRequests(ctx)
}

// UpdateMeetingRequestStatus moves a request through the review workflow. The
// status vocabulary is Spanish on the wire, matching what the platform stores.
func (s *Service) UpdateMeetingRequestStatus(ctx context.Context, id string, req mentor.UpdateRequestStatusRequest) (*mentor.MeetingRequest, error) {
	if !req.Status.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown request status "+string(req.Status))
	}

	updated, err := s.store.UpdateMeetingRequestStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	s.stats.Invalidate(ctx)
	s.logger.Info("meeting request status updated",
		zap.String("request_id", id),
		zap.String("status", string(req.Status)),
	)
	return updated, nil
}
