package domain

import (
	"time"

	"github.com/google/uuid"
)

// Confession is a single anonymous post. Text and image are both optional,
// but at least one must be present.
//
// LikeCount and CommentCount are derived from the ledger at read time;
// they are never stored as columns, so they cannot drift from the ledger.
type Confession struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	Image     *string
	State     LifecycleState
	CreatedAt time.Time

	LikeCount    int
	CommentCount int
}

// EngagementScore is the trending metric: likes plus comments.
func (c *Confession) EngagementScore() int {
	return c.LikeCount + c.CommentCount
}

// IsRemoved reports whether the confession is in the terminal state.
func (c *Confession) IsRemoved() bool {
	return c.State == StateRemoved
}

// Comment is an append-only reply to a confession. The author is recorded
// for accountability but never included in any response payload.
type Comment struct {
	ID           uuid.UUID
	ConfessionID uuid.UUID
	AuthorID     uuid.UUID
	Body         string
	CreatedAt    time.Time
}

// Report is an advisory flag raised by a user against a confession.
// At most one per (confession, reporter); reports never change lifecycle
// state on their own.
type Report struct {
	ID           uuid.UUID
	ConfessionID uuid.UUID
	ReporterID   uuid.UUID
	Reason       string
	CreatedAt    time.Time
}

// ConfessionPreview is the trimmed confession attached to a report in the
// admin report queue.
type ConfessionPreview struct {
	ID        uuid.UUID
	Body      string
	Image     *string
	CreatedAt time.Time
	IsRemoved bool
}

// ReportWithConfession pairs a report with a preview of its target.
type ReportWithConfession struct {
	Report
	Confession ConfessionPreview
}

// ConfessionFilter selects rows for listing queries. Removed confessions
// are always excluded; hidden ones only when IncludeHidden is set.
type ConfessionFilter struct {
	IncludeHidden bool
	Search        string
	Limit         int
	Offset        int
}

// PlatformStats are the aggregate counts shown on the admin dashboard.
type PlatformStats struct {
	Confessions int
	Likes       int
	Comments    int
	Reports     int
}
