package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/whisperboard/backend/internal/domain"
	"github.com/whisperboard/backend/internal/service/visibility"
)

// AddReport records that the viewer reported a confession. Reporting twice
// is not an error: the second call returns already=true and leaves the
// single existing row untouched. Reports are advisory and never change
// lifecycle state on their own.
func (s *Service) AddReport(ctx context.Context, viewer domain.Viewer, confessionID uuid.UUID, reason string) (already bool, err error) {
	reporterID, ok := viewer.UserID()
	if !ok {
		return false, domain.ErrUnauthorized
	}

	if err := validateText("reason", reason, 1, s.limits.MaxReasonLen); err != nil {
		return false, err
	}
	reason = strings.TrimSpace(reason)

	c, err := s.confessions.GetByID(ctx, confessionID)
	if err != nil {
		return false, fmt.Errorf("get confession: %w", err)
	}
	if !visibility.Visible(c.State, viewer) {
		return false, fmt.Errorf("confession %s: %w", confessionID, domain.ErrNotFound)
	}

	exists, err := s.reports.Exists(ctx, confessionID, reporterID)
	if err != nil {
		return false, fmt.Errorf("check report: %w", err)
	}
	if exists {
		return true, nil
	}

	_, err = s.reports.Create(ctx, confessionID, reporterID, reason)
	if err != nil {
		// A concurrent duplicate can slip past the existence check; the
		// unique key resolves it to the same already-reported outcome.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return true, nil
		}
		return false, fmt.Errorf("create report: %w", err)
	}

	s.log.InfoContext(ctx, "confession reported",
		slog.String("confession_id", confessionID.String()),
	)

	return false, nil
}
