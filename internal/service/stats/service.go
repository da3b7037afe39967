// Dashboard aggregates with a short-lived cache. The counts are recomputed
// from nine COUNT queries; the cache keeps repeated dashboard loads from
// hammering the database while staying fresh enough after mutations, which
// also invalidate it explicitly.
package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/directiva-mx/admin-api/internal/domain/stats"

	"go.uber.org/zap"
)

const (
	cacheKey = "admin:dashboard:stats"
	cacheTTL = 60 * time.Second
)

// Store computes the aggregate counts.
type Store interface {
	Dashboard(ctx context.Context) (*stats.Dashboard, error)
}

// Cache is the minimal key/value surface needed for the dashboard snapshot.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type Service struct {
	store  Store
	cache  Cache
	logger *zap.Logger
}

// NewService builds the stats service. cache may be nil; everything then hits
// the database directly.
func NewService(store Store, cache Cache, logger *zap.Logger) *Service {
	return &Service{store: store, cache: cache, logger: logger}
}

// Dashboard returns the aggregate counts, served from cache when a snapshot
// younger than the TTL exists. Cache failures are logged and ignored; the
// database is the source of truth.
func (s *Service) Dashboard(ctx context.Context) (*stats.Dashboard, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && len(raw) > 0 {
			var cached stats.Dashboard
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	d, err := s.store.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	d.GeneratedAt = time.Now()

	if s.cache != nil {
		if raw, err := json.Marshal(d); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, cacheTTL); err != nil {
				s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
			}
		}
	}
	return d, nil
}

// Invalidate drops the cached snapshot. Called after any mutation that moves
// a dashboard counter.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey); err != nil {
		s.logger.Warn("failed to invalidate dashboard stats cache", zap.Error(err))
	}
}
