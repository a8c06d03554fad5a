package feed

import (
	"fmt"
	"strings"

	"github.com/whisperboard/backend/internal/domain"
)

// ListInput holds the parameters for listing confessions.
type ListInput struct {
	Page     int
	PageSize int
	Sort     domain.SortMode
	Search   string
}

// validate checks fields and collects all errors. Zero Page/PageSize/Sort
// mean "use the default"; out-of-range values are rejected, not clamped.
func (i ListInput) validate(maxPageSize int) error {
	var errs []domain.FieldError

	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be >= 1"})
	}
	if i.PageSize < 0 {
		errs = append(errs, domain.FieldError{Field: "pageSize", Message: "must be >= 1"})
	}
	if i.PageSize > maxPageSize {
		errs = append(errs, domain.FieldError{Field: "pageSize", Message: fmt.Sprintf("max %d", maxPageSize)})
	}

	if i.Sort != "" && !i.Sort.IsValid() {
		errs = append(errs, domain.FieldError{Field: "sort", Message: "must be newest or trending"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i ListInput) normalized(defaultPageSize int) ListInput {
	out := i
	if out.Page == 0 {
		out.Page = 1
	}
	if out.PageSize == 0 {
		out.PageSize = defaultPageSize
	}
	if out.Sort == "" {
		out.Sort = domain.SortNewest
	}
	out.Search = strings.TrimSpace(out.Search)
	return out
}
