package feed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/whisperboard/backend/internal/domain"
	"github.com/whisperboard/backend/internal/service/visibility"
)

// Detail is the single-confession view: the projection plus the oldest
// comments up to the configured cap.
type Detail struct {
	visibility.Projection
	Comments []domain.Comment
}

// Get returns the detail view of one confession. Confessions the viewer
// may not see report ErrNotFound, indistinguishable from a missing row.
func (s *Service) Get(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (*Detail, error) {
	c, err := s.confessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get confession: %w", err)
	}

	p, visible := visibility.Resolve(c, viewer)
	if !visible {
		return nil, fmt.Errorf("confession %s: %w", id, domain.ErrNotFound)
	}

	comments, err := s.comments.GetByConfessionID(ctx, id, s.cfg.DetailCommentLimit)
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}

	if userID, ok := viewer.UserID(); ok {
		liked, err := s.likes.LikedSet(ctx, userID, []uuid.UUID{id})
		if err != nil {
			return nil, fmt.Errorf("annotate liked: %w", err)
		}
		p.IsLiked = liked[id]
	}

	return &Detail{Projection: p, Comments: comments}, nil
}
