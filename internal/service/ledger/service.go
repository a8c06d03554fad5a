// Package ledger owns the write side of the platform: creating confessions
// and recording likes, comments, and reports. Likes and reports are ledgers
// in the strict sense: rows keyed by (confession, user), with uniqueness
// enforced by the database rather than checked in application code.
package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/whisperboard/backend/internal/config"
	"github.com/whisperboard/backend/internal/domain"
)

type confessionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Confession, error)
	Create(ctx context.Context, authorID uuid.UUID, body string, image *string) (*domain.Confession, error)
}

type likeRepo interface {
	CreateIfAbsent(ctx context.Context, confessionID, userID uuid.UUID) (bool, error)
	DeleteIfPresent(ctx context.Context, confessionID, userID uuid.UUID) (bool, error)
}

type commentRepo interface {
	Create(ctx context.Context, confessionID, authorID uuid.UUID, body string) (*domain.Comment, error)
}

type reportRepo interface {
	Exists(ctx context.Context, confessionID, reporterID uuid.UUID) (bool, error)
	Create(ctx context.Context, confessionID, reporterID uuid.UUID, reason string) (*domain.Report, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides confession and interaction write operations.
type Service struct {
	confessions confessionRepo
	likes       likeRepo
	comments    commentRepo
	reports     reportRepo
	tx          txManager
	limits      config.ContentConfig
	log         *slog.Logger
}

// NewService creates a new ledger service.
func NewService(
	log *slog.Logger,
	confessions confessionRepo,
	likes likeRepo,
	comments commentRepo,
	reports reportRepo,
	tx txManager,
	limits config.ContentConfig,
) *Service {
	return &Service{
		confessions: confessions,
		likes:       likes,
		comments:    comments,
		reports:     reports,
		tx:          tx,
		limits:      limits,
		log:         log.With("service", "ledger"),
	}
}
