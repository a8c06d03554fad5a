package moderation

import (
	"context"
	"fmt"

	"github.com/whisperboard/backend/internal/domain"
)

// ListReports returns the newest reports with a preview of the reported
// confession. limit <= 0 falls back to DefaultReportLimit.
func (s *Service) ListReports(ctx context.Context, viewer domain.Viewer, limit int) ([]domain.ReportWithConfession, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultReportLimit
	}

	reports, err := s.reports.ListWithConfession(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	return reports, nil
}

// Stats returns the aggregate platform counts for the admin dashboard.
// Confessions counts live rows only; the ledgers count everything,
// including rows attached to removed confessions.
func (s *Service) Stats(ctx context.Context, viewer domain.Viewer) (*domain.PlatformStats, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}

	confessions, err := s.confessions.CountLive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count confessions: %w", err)
	}
	likes, err := s.likes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	comments, err := s.comments.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	reports, err := s.reports.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	return &domain.PlatformStats{
		Confessions: confessions,
		Likes:       likes,
		Comments:    comments,
		Reports:     reports,
	}, nil
}
