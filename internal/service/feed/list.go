package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/whisperboard/backend/internal/domain"
	"github.com/whisperboard/backend/internal/service/visibility"
)

// Page is one page of listing results, already projected for the viewer.
type Page struct {
	Confessions []visibility.Projection
	Page        int
	PageSize    int
}

// List returns one page of confessions for the viewer. Guests are allowed;
// they simply never see isLiked set.
func (s *Service) List(ctx context.Context, viewer domain.Viewer, input ListInput) (*Page, error) {
	if err := input.validate(s.cfg.MaxPageSize); err != nil {
		return nil, err
	}
	input = input.normalized(s.cfg.DefaultPageSize)

	var (
		items []domain.Confession
		err   error
	)
	switch input.Sort {
	case domain.SortTrending:
		items, err = s.listTrending(ctx, viewer, input)
	default:
		items, err = s.listNewest(ctx, viewer, input)
	}
	if err != nil {
		return nil, err
	}

	projections, err := s.project(ctx, viewer, items)
	if err != nil {
		return nil, err
	}

	return &Page{
		Confessions: projections,
		Page:        input.Page,
		PageSize:    input.PageSize,
	}, nil
}

func (s *Service) listNewest(ctx context.Context, viewer domain.Viewer, input ListInput) ([]domain.Confession, error) {
	items, err := s.confessions.List(ctx, domain.ConfessionFilter{
		IncludeHidden: viewer.IsAdmin(),
		Search:        input.Search,
		Limit:         input.PageSize,
		Offset:        (input.Page - 1) * input.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list newest: %w", err)
	}
	return items, nil
}

func (s *Service) listTrending(ctx context.Context, viewer domain.Viewer, input ListInput) ([]domain.Confession, error) {
	var (
		window []domain.Confession
		err    error
	)
	if input.Search != "" {
		// Searches are too varied to cache; query the window directly.
		window, err = s.confessions.RecentWindow(ctx, domain.ConfessionFilter{
			IncludeHidden: viewer.IsAdmin(),
			Search:        input.Search,
			Limit:         s.cfg.TrendingWindowSize,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch trending window: %w", err)
		}
	} else {
		window, err = s.trendingWindow(ctx, viewer.IsAdmin())
		if err != nil {
			return nil, err
		}
	}

	ranked := rankByEngagement(window)

	start := (input.Page - 1) * input.PageSize
	if start >= len(ranked) {
		return nil, nil
	}
	end := start + input.PageSize
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[start:end], nil
}

// rankByEngagement orders a copy of the window by score descending, newer
// first on ties, id as the final deterministic tie-break.
func rankByEngagement(window []domain.Confession) []domain.Confession {
	ranked := make([]domain.Confession, len(window))
	copy(ranked, window)

	sort.Slice(ranked, func(i, j int) bool {
		si, sj := ranked[i].EngagementScore(), ranked[j].EngagementScore()
		if si != sj {
			return si > sj
		}
		if !ranked[i].CreatedAt.Equal(ranked[j].CreatedAt) {
			return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
		}
		return ranked[i].ID.String() > ranked[j].ID.String()
	})

	return ranked
}

// project resolves visibility per item and annotates isLiked for
// authenticated viewers in one batched query.
func (s *Service) project(ctx context.Context, viewer domain.Viewer, items []domain.Confession) ([]visibility.Projection, error) {
	projections := make([]visibility.Projection, 0, len(items))
	ids := make([]uuid.UUID, 0, len(items))

	for i := range items {
		p, visible := visibility.Resolve(&items[i], viewer)
		if !visible {
			continue
		}
		projections = append(projections, p)
		ids = append(ids, p.ID)
	}

	userID, ok := viewer.UserID()
	if !ok || len(ids) == 0 {
		return projections, nil
	}

	liked, err := s.likes.LikedSet(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("annotate liked: %w", err)
	}
	for i := range projections {
		projections[i].IsLiked = liked[projections[i].ID]
	}

	return projections, nil
}
