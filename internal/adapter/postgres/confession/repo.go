// Package confession implements the Confession repository using PostgreSQL.
// Fixed-shape queries use raw SQL; the dynamic listing query is built with
// squirrel. Like and comment counts are always computed from the ledger
// tables with scalar subqueries, never read from stored counters.
package confession

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/whisperboard/backend/internal/adapter/postgres"
	"github.com/whisperboard/backend/internal/domain"
)

// Repo provides confession persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new confession repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	likeCountExpr    = "(SELECT count(*) FROM likes l WHERE l.confession_id = c.id)"
	commentCountExpr = "(SELECT count(*) FROM comments cm WHERE cm.confession_id = c.id)"
)

var selectColumns = []string{
	"c.id", "c.author_id", "c.body", "c.image", "c.lifecycle_state", "c.created_at",
	likeCountExpr + " AS like_count",
	commentCountExpr + " AS comment_count",
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// Raw SQL for fixed-shape queries
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO confessions (author_id, body, image)
VALUES ($1, $2, $3)
RETURNING id, author_id, body, image, lifecycle_state, created_at`

const setHiddenSQL = `
UPDATE confessions
SET lifecycle_state = $2
WHERE id = $1 AND lifecycle_state <> 'REMOVED'
RETURNING id, author_id, body, image, lifecycle_state, created_at`

const removeSQL = `
UPDATE confessions
SET lifecycle_state = 'REMOVED'
WHERE id = $1`

const countLiveSQL = `
SELECT count(*) FROM confessions WHERE lifecycle_state <> 'REMOVED'`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a confession with live ledger counts, regardless of
// lifecycle state. Visibility is the caller's concern.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Confession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select(selectColumns...).
		From("confessions c").
		Where(sq.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	row := querier.QueryRow(ctx, query, args...)
	c, err := scanConfession(row)
	if err != nil {
		return nil, mapError(err, "confession", id)
	}

	return c, nil
}

// List returns confessions in newest order (created_at DESC, id DESC as the
// deterministic tie-break) with live ledger counts.
func (r *Repo) List(ctx context.Context, f domain.ConfessionFilter) ([]domain.Confession, error) {
	q := r.listBuilder(f).
		OrderBy("c.created_at DESC", "c.id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	return r.queryMany(ctx, q)
}

// RecentWindow returns the most recent Limit confessions with live counts.
// It is the candidate set for trending ranking; scoring and ordering happen
// in the service.
func (r *Repo) RecentWindow(ctx context.Context, f domain.ConfessionFilter) ([]domain.Confession, error) {
	q := r.listBuilder(f).
		OrderBy("c.created_at DESC", "c.id DESC").
		Limit(uint64(f.Limit))

	return r.queryMany(ctx, q)
}

func (r *Repo) listBuilder(f domain.ConfessionFilter) sq.SelectBuilder {
	q := builder.
		Select(selectColumns...).
		From("confessions c").
		Where(sq.NotEq{"c.lifecycle_state": string(domain.StateRemoved)})

	if !f.IncludeHidden {
		q = q.Where(sq.NotEq{"c.lifecycle_state": string(domain.StateHidden)})
	}
	if f.Search != "" {
		q = q.Where(sq.ILike{"c.body": "%" + f.Search + "%"})
	}

	return q
}

func (r *Repo) queryMany(ctx context.Context, q sq.SelectBuilder) ([]domain.Confession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list confessions: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Confession, 0)
	for rows.Next() {
		c, err := scanConfession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan confession: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list confessions: %w", err)
	}

	return result, nil
}

// CountLive returns the number of confessions not in the REMOVED state.
func (r *Repo) CountLive(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countLiveSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count live confessions: %w", err)
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new ACTIVE confession and returns it.
func (r *Repo) Create(ctx context.Context, authorID uuid.UUID, body string, image *string) (*domain.Confession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL, authorID, body, image)
	c, err := scanConfessionBase(row)
	if err != nil {
		return nil, mapError(err, "confession", authorID)
	}

	return c, nil
}

// SetHidden flips the ACTIVE/HIDDEN state. The WHERE guard makes REMOVED
// terminal: hiding or unhiding a removed confession reports ErrNotFound,
// exactly like a missing row.
func (r *Repo) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*domain.Confession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	state := domain.StateActive
	if hidden {
		state = domain.StateHidden
	}

	row := querier.QueryRow(ctx, setHiddenSQL, id, string(state))
	c, err := scanConfessionBase(row)
	if err != nil {
		return nil, mapError(err, "confession", id)
	}

	return c, nil
}

// Remove transitions the confession to REMOVED. Idempotent: removing an
// already-removed confession succeeds. ErrNotFound only when the row does
// not exist.
func (r *Repo) Remove(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, removeSQL, id)
	if err != nil {
		return mapError(err, "confession", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("confession %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanConfession(row pgx.Row) (*domain.Confession, error) {
	var c domain.Confession
	var state string
	err := row.Scan(&c.ID, &c.AuthorID, &c.Body, &c.Image, &state, &c.CreatedAt, &c.LikeCount, &c.CommentCount)
	if err != nil {
		return nil, err
	}
	c.State = domain.LifecycleState(state)
	return &c, nil
}

// scanConfessionBase scans a row without ledger counts (insert/update RETURNING).
func scanConfessionBase(row pgx.Row) (*domain.Confession, error) {
	var c domain.Confession
	var state string
	err := row.Scan(&c.ID, &c.AuthorID, &c.Body, &c.Image, &state, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.State = domain.LifecycleState(state)
	return &c, nil
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
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
