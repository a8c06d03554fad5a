// Package like implements the like ledger repository using PostgreSQL.
// The (confession_id, user_id) primary key is the uniqueness guarantee;
// both writes are conditional so the service can drive the toggle off
// rows-affected counts instead of racing on reads.
package like

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

// Repo provides like persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new like repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createIfAbsentSQL = `
INSERT INTO likes (confession_id, user_id)
VALUES ($1, $2)
ON CONFLICT (confession_id, user_id) DO NOTHING`

const deleteIfPresentSQL = `
DELETE FROM likes WHERE confession_id = $1 AND user_id = $2`

const likedSetSQL = `
SELECT confession_id FROM likes
WHERE user_id = $1 AND confession_id = ANY($2::uuid[])`

const countSQL = `
SELECT count(*) FROM likes`

// CreateIfAbsent inserts a like row unless one already exists for the pair.
// Returns true when a row was created, false when the pair was already liked.
func (r *Repo) CreateIfAbsent(ctx context.Context, confessionID, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, createIfAbsentSQL, confessionID, userID)
	if err != nil {
		return false, mapError(err, "like", confessionID)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteIfPresent removes the like row for the pair if it exists.
// Returns true when a row was deleted.
func (r *Repo) DeleteIfPresent(ctx context.Context, confessionID, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteIfPresentSQL, confessionID, userID)
	if err != nil {
		return false, mapError(err, "like", confessionID)
	}

	return tag.RowsAffected() > 0, nil
}

// LikedSet returns the subset of confessionIDs the user has liked.
// Used to annotate a page of listing results for one viewer.
func (r *Repo) LikedSet(ctx context.Context, userID uuid.UUID, confessionIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(confessionIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, likedSetSQL, userID, confessionIDs)
	if err != nil {
		return nil, fmt.Errorf("liked set: %w", err)
	}
	defer rows.Close()

	liked := make(map[uuid.UUID]bool, len(confessionIDs))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan liked set: %w", err)
		}
		liked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("liked set: %w", err)
	}

	return liked, nil
}

// Count returns the total number of like rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
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
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
