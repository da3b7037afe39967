package stats

import (
	"context"
	"testing"
	"time"

	"github.com/directiva-mx/admin-api/internal/domain/stats"

	"go.uber.org/zap"
)

type countingStore struct {
	calls int
	d     stats.Dashboard
}

func (s *countingStore) Dashboard(context.Context) (*stats.Dashboard, error) {
	s.calls++
	d := s.d
	return &d, nil
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	return c.data[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memCache) Del(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func TestDashboardCaches(t *testing.T) {
	store := &countingStore{d: stats.Dashboard{TotalUsers: 7, ProUsers: 2}}
	s := NewService(store, newMemCache(), zap.NewNop())
	ctx := context.Background()

	first, err := s.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if first.TotalUsers != 7 || first.GeneratedAt.IsZero() {
		t.Fatalf("first = %+v", first)
	}

	second, err := s.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("store calls = %d, second read must hit the cache", store.calls)
	}
	if second.TotalUsers != 7 {
		t.Fatalf("second = %+v", second)
	}
}

func TestInvalidateForcesRecompute(t *testing.T) {
	store := &countingStore{d: stats.Dashboard{TotalUsers: 7}}
	s := NewService(store, newMemCache(), zap.NewNop())
	ctx := context.Background()

	if _, err := s.Dashboard(ctx); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	s.Invalidate(ctx)
	store.d.TotalUsers = 8

	d, err := s.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if store.calls != 2 || d.TotalUsers != 8 {
		t.Fatalf("calls = %d, total = %d", store.calls, d.TotalUsers)
	}
}

func TestDashboardWithoutCache(t *testing.T) {
	store := &countingStore{d: stats.Dashboard{TotalUsers: 1}}
	s := NewService(store, nil, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Dashboard(ctx); err != nil {
			t.Fatalf("Dashboard: %v", err)
		}
	}
	if store.calls != 3 {
		t.Fatalf("calls = %d, nil cache must pass through", store.calls)
	}
	s.Invalidate(ctx) // no-op, must not panic
}
