package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/whisperboard/backend/internal/domain"
)

// windowCache holds one ranking candidate window per viewer class. Only
// two classes exist (admin sees hidden items, everyone else does not), so
// the cache is a pair of slots rather than a general map. Per-viewer state
// such as isLiked is never cached; it is annotated on each request.
type windowCache struct {
	mu      sync.Mutex
	entries map[bool]windowEntry
}

type windowEntry struct {
	items     []domain.Confession
	fetchedAt time.Time
}

func newWindowCache() *windowCache {
	return &windowCache{entries: make(map[bool]windowEntry, 2)}
}

func (c *windowCache) get(includeHidden bool, now time.Time, ttl time.Duration) ([]domain.Confession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[includeHidden]
	if !ok || now.Sub(e.fetchedAt) >= ttl {
		return nil, false
	}
	return e.items, true
}

func (c *windowCache) set(includeHidden bool, items []domain.Confession, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[includeHidden] = windowEntry{items: items, fetchedAt: now}
}

func (c *windowCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// trendingWindow returns the candidate window for the viewer class, served
// from cache when fresh. Concurrent cache misses for the same class are
// collapsed into a single query via singleflight.
func (s *Service) trendingWindow(ctx context.Context, includeHidden bool) ([]domain.Confession, error) {
	if items, ok := s.cache.get(includeHidden, s.now(), s.cfg.TrendingWindowTTL); ok {
		return items, nil
	}

	key := "public"
	if includeHidden {
		key = "admin"
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// A concurrent caller may have refilled the slot while we waited.
		if items, ok := s.cache.get(includeHidden, s.now(), s.cfg.TrendingWindowTTL); ok {
			return items, nil
		}

		items, err := s.confessions.RecentWindow(ctx, domain.ConfessionFilter{
			IncludeHidden: includeHidden,
			Limit:         s.cfg.TrendingWindowSize,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch trending window: %w", err)
		}

		s.cache.set(includeHidden, items, s.now())
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Confession), nil
}
