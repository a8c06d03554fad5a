// Package report implements the report ledger repository using PostgreSQL.
// The (confession_id, reporter_id) unique constraint backs the one-report-
// per-user rule; duplicates surface as domain.ErrAlreadyExists.
package report

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

// Repo provides report persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new report repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO reports (confession_id, reporter_id, reason)
VALUES ($1, $2, $3)
RETURNING id, confession_id, reporter_id, reason, created_at`

const existsSQL = `
SELECT EXISTS(SELECT 1 FROM reports WHERE confession_id = $1 AND reporter_id = $2)`

const listWithConfessionSQL = `
SELECT r.id, r.confession_id, r.reporter_id, r.reason, r.created_at,
       c.id, c.body, c.image, c.created_at, c.lifecycle_state = 'REMOVED'
FROM reports r
JOIN confessions c ON c.id = r.confession_id
ORDER BY r.created_at DESC
LIMIT $1`

const countSQL = `
SELECT count(*) FROM reports`

// Create inserts a report. A duplicate (confession, reporter) pair returns
// domain.ErrAlreadyExists via the unique constraint.
func (r *Repo) Create(ctx context.Context, confessionID, reporterID uuid.UUID, reason string) (*domain.Report, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var rep domain.Report
	err := querier.QueryRow(ctx, createSQL, confessionID, reporterID, reason).
		Scan(&rep.ID, &rep.ConfessionID, &rep.ReporterID, &rep.Reason, &rep.CreatedAt)
	if err != nil {
		return nil, mapError(err, "report", confessionID)
	}

	return &rep, nil
}

// Exists reports whether the user has already reported the confession.
func (r *Repo) Exists(ctx context.Context, confessionID, reporterID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsSQL, confessionID, reporterID).Scan(&exists); err != nil {
		return false, fmt.Errorf("report exists: %w", err)
	}
	return exists, nil
}

// ListWithConfession returns the newest reports joined with a preview of
// the reported confession, for the admin report queue.
func (r *Repo) ListWithConfession(ctx context.Context, limit int) ([]domain.ReportWithConfession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listWithConfessionSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	result := make([]domain.ReportWithConfession, 0)
	for rows.Next() {
		var rc domain.ReportWithConfession
		err := rows.Scan(
			&rc.ID, &rc.ConfessionID, &rc.ReporterID, &rc.Reason, &rc.CreatedAt,
			&rc.Confession.ID, &rc.Confession.Body, &rc.Confession.Image,
			&rc.Confession.CreatedAt, &rc.Confession.IsRemoved,
		)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		result = append(result, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	return result, nil
}

// Count returns the total number of report rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
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
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
