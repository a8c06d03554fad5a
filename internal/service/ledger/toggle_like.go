package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/whisperboard/backend/internal/domain"
	"github.com/whisperboard/backend/internal/service/visibility"
)

// ToggleLike flips the viewer's like on a confession and returns the new
// state: true when the call established a like, false when it removed one.
//
// The whole toggle runs in one transaction. The delete-first order makes
// the operation self-correcting under concurrency: if two togglers race
// and the insert finds a row that appeared after our delete saw nothing,
// we treat the like as present and take the delete branch instead of
// failing. Either way at most one live row exists per (confession, user).
func (s *Service) ToggleLike(ctx context.Context, viewer domain.Viewer, confessionID uuid.UUID) (bool, error) {
	userID, ok := viewer.UserID()
	if !ok {
		return false, domain.ErrUnauthorized
	}

	var liked bool
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := s.confessions.GetByID(ctx, confessionID)
		if err != nil {
			return fmt.Errorf("get confession: %w", err)
		}
		if !visibility.Visible(c.State, viewer) {
			return fmt.Errorf("confession %s: %w", confessionID, domain.ErrNotFound)
		}

		deleted, err := s.likes.DeleteIfPresent(ctx, confessionID, userID)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		if deleted {
			liked = false
			return nil
		}

		created, err := s.likes.CreateIfAbsent(ctx, confessionID, userID)
		if err != nil {
			return fmt.Errorf("create like: %w", err)
		}
		if created {
			liked = true
			return nil
		}

		// Lost a race: a like appeared between our delete and insert.
		// The user meant to toggle, so remove it.
		if _, err := s.likes.DeleteIfPresent(ctx, confessionID, userID); err != nil {
			return fmt.Errorf("delete like after race: %w", err)
		}
		liked = false
		return nil
	})
	if err != nil {
		return false, err
	}

	s.log.InfoContext(ctx, "like toggled",
		slog.String("confession_id", confessionID.String()),
		slog.Bool("liked", liked),
	)

	return liked, nil
}
