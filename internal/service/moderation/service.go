// Package moderation holds the admin-only lifecycle operations: hiding,
// unhiding, and removing confessions, plus the report queue and platform
// stats. Every operation checks the viewer's role itself; the transport
// layer's admin guard is a convenience, not the enforcement point.
package moderation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/whisperboard/backend/internal/domain"
)

type confessionRepo interface {
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*domain.Confession, error)
	Remove(ctx context.Context, id uuid.UUID) error
	CountLive(ctx context.Context) (int, error)
}

type reportRepo interface {
	ListWithConfession(ctx context.Context, limit int) ([]domain.ReportWithConfession, error)
	Count(ctx context.Context) (int, error)
}

type likeRepo interface {
	Count(ctx context.Context) (int, error)
}

type commentRepo interface {
	Count(ctx context.Context) (int, error)
}

// feedInvalidator drops cached listing state after a lifecycle transition.
type feedInvalidator interface {
	Invalidate()
}

// DefaultReportLimit caps the admin report queue.
const DefaultReportLimit = 100

// Service provides moderation operations.
type Service struct {
	confessions confessionRepo
	reports     reportRepo
	likes       likeRepo
	comments    commentRepo
	feed        feedInvalidator
	log         *slog.Logger
}

// NewService creates a new moderation service.
func NewService(
	log *slog.Logger,
	confessions confessionRepo,
	reports reportRepo,
	likes likeRepo,
	comments commentRepo,
	feed feedInvalidator,
) *Service {
	return &Service{
		confessions: confessions,
		reports:     reports,
		likes:       likes,
		comments:    comments,
		feed:        feed,
		log:         log.With("service", "moderation"),
	}
}

// requireAdmin gates every operation in this package. Guests get
// ErrUnauthorized, authenticated non-admins get ErrForbidden.
func requireAdmin(viewer domain.Viewer) error {
	if viewer.IsGuest() {
		return domain.ErrUnauthorized
	}
	if !viewer.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
