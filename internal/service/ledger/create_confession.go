package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/whisperboard/backend/internal/domain"
)

// CreateConfession creates a new active confession for the viewer.
func (s *Service) CreateConfession(ctx context.Context, viewer domain.Viewer, input CreateConfessionInput) (*domain.Confession, error) {
	authorID, ok := viewer.UserID()
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.validate(s.limits.MaxConfessionLen); err != nil {
		return nil, err
	}

	body := strings.TrimSpace(input.Body)
	image := trimOrNil(input.Image)

	c, err := s.confessions.Create(ctx, authorID, body, image)
	if err != nil {
		return nil, fmt.Errorf("create confession: %w", err)
	}

	s.log.InfoContext(ctx, "confession created",
		slog.String("confession_id", c.ID.String()),
		slog.Bool("has_image", image != nil),
	)

	return c, nil
}
