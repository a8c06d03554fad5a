// Package feed serves the read side: the confession listing in newest or
// trending order, and the single-confession detail view.
//
// Trending is deliberately approximate: the candidate set is a bounded
// window of the most recent confessions, ranked in memory by engagement.
// An old post that suddenly gathers likes will not surface once it falls
// out of the window. The window is cached per viewer class with a short
// TTL; moderation invalidates it so removals take effect immediately.
package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/whisperboard/backend/internal/config"
	"github.com/whisperboard/backend/internal/domain"
)

type confessionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Confession, error)
	List(ctx context.Context, f domain.ConfessionFilter) ([]domain.Confession, error)
	RecentWindow(ctx context.Context, f domain.ConfessionFilter) ([]domain.Confession, error)
}

type likeRepo interface {
	LikedSet(ctx context.Context, userID uuid.UUID, confessionIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type commentRepo interface {
	GetByConfessionID(ctx context.Context, confessionID uuid.UUID, limit int) ([]domain.Comment, error)
}

// Service provides confession listing and detail reads.
type Service struct {
	confessions confessionRepo
	likes       likeRepo
	comments    commentRepo
	cfg         config.FeedConfig
	cache       *windowCache
	group       singleflight.Group
	log         *slog.Logger

	// now is swapped in tests to control cache expiry.
	now func() time.Time
}

// NewService creates a new feed service.
func NewService(
	log *slog.Logger,
	confessions confessionRepo,
	likes likeRepo,
	comments commentRepo,
	cfg config.FeedConfig,
) *Service {
	return &Service{
		confessions: confessions,
		likes:       likes,
		comments:    comments,
		cfg:         cfg,
		cache:       newWindowCache(),
		log:         log.With("service", "feed"),
		now:         time.Now,
	}
}

// Invalidate drops the cached trending windows for every viewer class.
// Moderation calls it after each lifecycle transition so the next listing
// reflects the change instead of waiting out the TTL.
func (s *Service) Invalidate() {
	s.cache.invalidate()
}
