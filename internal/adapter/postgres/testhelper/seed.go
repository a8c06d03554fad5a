package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whisperboard/backend/internal/domain"
)

// SeedConfession creates a confession in the given lifecycle state and
// returns the filled domain struct. CreatedAt is set explicitly so tests
// can control ordering.
func SeedConfession(t *testing.T, pool *pgxpool.Pool, state domain.LifecycleState, createdAt time.Time) domain.Confession {
	t.Helper()
	ctx := context.Background()

	c := domain.Confession{
		ID:        uuid.New(),
		AuthorID:  uuid.New(),
		Body:      "seed confession " + uuid.New().String()[:8],
		State:     state,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO confessions (id, author_id, body, lifecycle_state, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.AuthorID, c.Body, string(c.State), c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedConfession insert: %v", err)
	}

	return c
}

// SeedLike inserts a like row for (confessionID, userID).
func SeedLike(t *testing.T, pool *pgxpool.Pool, confessionID, userID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO likes (confession_id, user_id) VALUES ($1, $2)`,
		confessionID, userID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLike insert: %v", err)
	}
}

// SeedComment appends a comment and returns it.
func SeedComment(t *testing.T, pool *pgxpool.Pool, confessionID, authorID uuid.UUID, body string) domain.Comment {
	t.Helper()

	c := domain.Comment{
		ID:           uuid.New(),
		ConfessionID: confessionID,
		AuthorID:     authorID,
		Body:         body,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO comments (id, confession_id, author_id, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.ConfessionID, c.AuthorID, c.Body, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment insert: %v", err)
	}

	return c
}

// SeedReport inserts a report row and returns it.
func SeedReport(t *testing.T, pool *pgxpool.Pool, confessionID, reporterID uuid.UUID, reason string) domain.Report {
	t.Helper()

	r := domain.Report{
		ID:           uuid.New(),
		ConfessionID: confessionID,
		ReporterID:   reporterID,
		Reason:       reason,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO reports (id, confession_id, reporter_id, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.ConfessionID, r.ReporterID, r.Reason, r.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReport insert: %v", err)
	}

	return r
}
