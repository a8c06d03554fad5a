// Package comment implements the comment ledger repository using PostgreSQL.
// Comments are append-only; there is no update or delete path.
package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/whisperboard/backend/internal/adapter/postgres"
	"github.com/whisperboard/backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO comments (confession_id, author_id, body)
VALUES ($1, $2, $3)
RETURNING id, confession_id, author_id, body, created_at`

const getByConfessionSQL = `
SELECT id, confession_id, author_id, body, created_at
FROM comments
WHERE confession_id = $1
ORDER BY created_at, id
LIMIT $2`

const countSQL = `
SELECT count(*) FROM comments`

// Create appends a comment and returns it. A single atomic insert: there is
// no half-created state for a caller to observe after cancellation.
func (r *Repo) Create(ctx context.Context, confessionID, authorID uuid.UUID, body string) (*domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Comment
	err := querier.QueryRow(ctx, createSQL, confessionID, authorID, body).
		Scan(&c.ID, &c.ConfessionID, &c.AuthorID, &c.Body, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err, "comment", confessionID)
	}

	return &c, nil
}

// GetByConfessionID returns up to limit comments for a confession in
// creation order (id breaks equal-timestamp ties deterministically).
func (r *Repo) GetByConfessionID(ctx context.Context, confessionID uuid.UUID, limit int) ([]domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByConfessionSQL, confessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("get comments by confession_id: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ConfessionID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get comments by confession_id: %w", err)
	}

	return result, nil
}

// Count returns the total number of comment rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
