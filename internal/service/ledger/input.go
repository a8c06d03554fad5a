package ledger

import (
	"fmt"
	"strings"

	"github.com/whisperboard/backend/internal/domain"
)

// CreateConfessionInput holds the parameters for creating a confession.
// Body and Image are both optional, but at least one must be present.
type CreateConfessionInput struct {
	Body  string
	Image *string
}

func (i CreateConfessionInput) validate(maxBodyLen int) error {
	var errs []domain.FieldError

	body := strings.TrimSpace(i.Body)
	image := trimOrNil(i.Image)

	if body == "" && image == nil {
		errs = append(errs, domain.FieldError{Field: "body", Message: "text or image required"})
	}
	if len(body) > maxBodyLen {
		errs = append(errs, domain.FieldError{Field: "body", Message: fmt.Sprintf("max %d characters", maxBodyLen)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateText enforces post-trim length bounds on a required text field.
func validateText(field, value string, minLen, maxLen int) error {
	trimmed := strings.TrimSpace(value)

	var errs []domain.FieldError
	if len(trimmed) < minLen {
		msg := "required"
		if minLen > 1 {
			msg = fmt.Sprintf("min %d characters", minLen)
		}
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}
	if len(trimmed) > maxLen {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("max %d characters", maxLen)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
