package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/whisperboard/backend/internal/domain"
)

// SetHidden moves a confession between ACTIVE and HIDDEN. A missing or
// removed confession reports ErrNotFound; REMOVED is terminal and cannot
// be hidden or restored.
func (s *Service) SetHidden(ctx context.Context, viewer domain.Viewer, id uuid.UUID, hidden bool) (*domain.Confession, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}

	c, err := s.confessions.SetHidden(ctx, id, hidden)
	if err != nil {
		return nil, fmt.Errorf("set hidden: %w", err)
	}

	s.feed.Invalidate()

	s.log.InfoContext(ctx, "confession visibility changed",
		slog.String("confession_id", id.String()),
		slog.Bool("hidden", hidden),
	)

	return c, nil
}

// Remove transitions a confession to REMOVED. Idempotent: removing an
// already-removed confession succeeds; only a missing row is ErrNotFound.
func (s *Service) Remove(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}

	if err := s.confessions.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove confession: %w", err)
	}

	s.feed.Invalidate()

	s.log.InfoContext(ctx, "confession removed",
		slog.String("confession_id", id.String()),
	)

	return nil
}
