// Package visibility decides who may see a confession and what they see.
// It is pure: no storage, no clock, no context. Every read and every
// mutation in the services above routes through Resolve so there is exactly
// one place where lifecycle state meets viewer role.
package visibility

import (
	"time"

	"github.com/google/uuid"

	"github.com/whisperboard/backend/internal/domain"
)

// Projection is the viewer-safe shape of a confession. AuthorID and
// IsHidden are populated for admins only; for everyone else they stay nil
// so serializers can omit them entirely.
type Projection struct {
	ID           uuid.UUID
	Body         string
	Image        *string
	CreatedAt    time.Time
	LikeCount    int
	CommentCount int

	// IsLiked is annotated per request by the caller; visibility itself
	// never knows about likes.
	IsLiked bool

	AuthorID *uuid.UUID
	IsHidden *bool
}

// Resolve returns the projection of c for the viewer, and whether the
// viewer may see it at all.
//
// REMOVED is invisible to everyone, admins included. HIDDEN is visible to
// admins only. ACTIVE is visible to all, guests included.
func Resolve(c *domain.Confession, viewer domain.Viewer) (Projection, bool) {
	if !Visible(c.State, viewer) {
		return Projection{}, false
	}

	p := Projection{
		ID:           c.ID,
		Body:         c.Body,
		Image:        c.Image,
		CreatedAt:    c.CreatedAt,
		LikeCount:    c.LikeCount,
		CommentCount: c.CommentCount,
	}

	if viewer.IsAdmin() {
		authorID := c.AuthorID
		hidden := c.State == domain.StateHidden
		p.AuthorID = &authorID
		p.IsHidden = &hidden
	}

	return p, true
}

// Visible reports whether a confession in the given state may be seen by
// the viewer.
func Visible(state domain.LifecycleState, viewer domain.Viewer) bool {
	switch state {
	case domain.StateActive:
		return true
	case domain.StateHidden:
		return viewer.IsAdmin()
	default:
		return false
	}
}
