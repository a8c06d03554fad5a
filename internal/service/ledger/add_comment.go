package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/whisperboard/backend/internal/domain"
	"github.com/whisperboard/backend/internal/service/visibility"
)

// AddComment appends an anonymous comment to a visible confession.
func (s *Service) AddComment(ctx context.Context, viewer domain.Viewer, confessionID uuid.UUID, body string) (*domain.Comment, error) {
	authorID, ok := viewer.UserID()
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := validateText("body", body, s.limits.MinCommentLen, s.limits.MaxCommentLen); err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)

	c, err := s.confessions.GetByID(ctx, confessionID)
	if err != nil {
		return nil, fmt.Errorf("get confession: %w", err)
	}
	if !visibility.Visible(c.State, viewer) {
		return nil, fmt.Errorf("confession %s: %w", confessionID, domain.ErrNotFound)
	}

	comment, err := s.comments.Create(ctx, confessionID, authorID, body)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment added",
		slog.String("confession_id", confessionID.String()),
		slog.String("comment_id", comment.ID.String()),
	)

	return comment, nil
}
