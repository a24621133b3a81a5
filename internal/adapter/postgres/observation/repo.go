// Package observation implements the append-only Observation log using
// PostgreSQL. Rows are never updated or deleted.
package observation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/saifdine/mutaallim-backend/internal/adapter/postgres"
	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// Repo provides observation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new observation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

var observationColumnList = []string{
	"id", "session_id", "user_id", "word_id", "grammar_feature", "grammar_value",
	"performance_level", "context_type", "student_attempt", "correct_form",
	"error_type", "created_at",
}

const observationColumns = `id, session_id, user_id, word_id, grammar_feature, grammar_value,
performance_level, context_type, student_attempt, correct_form, error_type, created_at`

const insertSQL = `
INSERT INTO observations (id, session_id, user_id, word_id, grammar_feature, grammar_value,
                          performance_level, context_type, student_attempt, correct_form,
                          error_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const listBySessionSQL = `
SELECT ` + observationColumns + `
FROM observations
WHERE session_id = $1
ORDER BY created_at ASC, id ASC`

const listRecentByUserSQL = `
SELECT ` + observationColumns + `
FROM observations
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// InsertBatch appends the given observations in one pgx batch. Run it inside
// a transaction (TxManager) to make a multi-row append all-or-nothing.
func (r *Repo) InsertBatch(ctx context.Context, observations []domain.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	batch := &pgx.Batch{}
	for i := range observations {
		o := &observations[i]
		createdAt := o.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		batch.Queue(insertSQL,
			o.ID,
			o.SessionID,
			o.UserID,
			o.WordID,
			o.GrammarFeature,
			o.GrammarValue,
			string(o.PerformanceLevel),
			string(o.ContextType),
			o.StudentAttempt,
			o.CorrectForm,
			o.ErrorType,
			createdAt,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := range observations {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(fmt.Errorf("insert observation %d: %w", i, err), "observation", observations[i].ID)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListBySession returns every observation for a lesson, oldest first
// (deterministic input order for analysis).
func (r *Repo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Observation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listBySessionSQL, sessionID)
	if err != nil {
		return nil, postgres.MapError(err, "observation", sessionID)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// ListRecentByUser returns the user's newest observations, capped at limit.
// Feeds the rolling accuracy window behind the learning context.
func (r *Repo) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Observation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRecentByUserSQL, userID, limit)
	if err != nil {
		return nil, postgres.MapError(err, "observation", userID)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// Query returns observations matching the filter, newest first.
func (r *Repo) Query(ctx context.Context, f domain.ObservationFilter) ([]domain.Observation, error) {
	sql, args, err := buildSelect(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build observation query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "observation", uuid.Nil)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanObservations(rows pgx.Rows) ([]domain.Observation, error) {
	observations := []domain.Observation{}
	for rows.Next() {
		var (
			o       domain.Observation
			level   string
			context string
		)

		if err := rows.Scan(
			&o.ID,
			&o.SessionID,
			&o.UserID,
			&o.WordID,
			&o.GrammarFeature,
			&o.GrammarValue,
			&level,
			&context,
			&o.StudentAttempt,
			&o.CorrectForm,
			&o.ErrorType,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}

		o.PerformanceLevel = domain.PerformanceLevel(level)
		o.ContextType = domain.ContextType(context)
		observations = append(observations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return observations, nil
}
