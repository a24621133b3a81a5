// Package fact implements the LearnerFact repository using PostgreSQL.
// Arabic example snippets are stored as a JSONB array; domain types carry
// no json tags, so serialization lives here.
package fact

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/saifdine/mutaallim-backend/internal/adapter/postgres"
	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// Repo provides learner fact persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new fact repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const factColumns = `id, user_id, category, grammar_feature, fact_text, arabic_examples,
observation_count, active, last_observed_at, last_lesson_id, created_at`

const createSQL = `
INSERT INTO learner_facts (id, user_id, category, grammar_feature, fact_text, arabic_examples,
                           observation_count, active, last_observed_at, last_lesson_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, 1, TRUE, $7, $8, $9)
RETURNING ` + factColumns

const listActiveSQL = `
SELECT ` + factColumns + `
FROM learner_facts
WHERE user_id = $1 AND active
ORDER BY observation_count DESC, grammar_feature ASC`

const listByUserSQL = `
SELECT ` + factColumns + `
FROM learner_facts
WHERE user_id = $1
ORDER BY active DESC, observation_count DESC, grammar_feature ASC`

// reinforceSQL bumps the evidence counter at most once per lesson: the
// last_lesson_id guard makes repeated reconciliation runs idempotent even
// across processes.
const reinforceSQL = `
UPDATE learner_facts
SET observation_count = observation_count + 1,
    last_observed_at  = $3,
    last_lesson_id    = $2
WHERE id = $1
  AND active
  AND last_lesson_id IS DISTINCT FROM $2`

const deactivateSQL = `
UPDATE learner_facts
SET active = FALSE
WHERE id = $1 AND active`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a new active fact with observation_count = 1.
func (r *Repo) Create(ctx context.Context, f *domain.LearnerFact) (*domain.LearnerFact, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	examples, err := marshalExamples(f.ArabicExamples)
	if err != nil {
		return nil, fmt.Errorf("learner_fact %s: %w", f.ID, err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	observedAt := f.LastObservedAt.UTC().Truncate(time.Microsecond)

	created, err := scanFact(querier.QueryRow(ctx, createSQL,
		f.ID,
		f.UserID,
		string(f.Category),
		f.GrammarFeature,
		f.FactText,
		examples,
		observedAt,
		f.LastLessonID,
		now,
	))
	if err != nil {
		return nil, postgres.MapError(err, "learner_fact", f.ID)
	}
	return created, nil
}

// ListActive returns the user's active facts, strongest evidence first.
func (r *Repo) ListActive(ctx context.Context, userID uuid.UUID) ([]domain.LearnerFact, error) {
	return r.list(ctx, listActiveSQL, userID)
}

// ListByUser returns all facts including deactivated history.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.LearnerFact, error) {
	return r.list(ctx, listByUserSQL, userID)
}

func (r *Repo) list(ctx context.Context, query string, userID uuid.UUID) ([]domain.LearnerFact, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, userID)
	if err != nil {
		return nil, postgres.MapError(err, "learner_fact", userID)
	}
	defer rows.Close()

	facts := []domain.LearnerFact{}
	for rows.Next() {
		f, err := scanFactFromRows(rows)
		if err != nil {
			return nil, err
		}
		facts = append(facts, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return facts, nil
}

// Reinforce increments the fact's observation count and refreshes
// last_observed_at, unless this lesson already reinforced it.
// Returns true when the update applied.
func (r *Repo) Reinforce(ctx context.Context, factID, lessonID uuid.UUID, observedAt time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, reinforceSQL, factID, lessonID, observedAt.UTC().Truncate(time.Microsecond))
	if err != nil {
		return false, postgres.MapError(err, "learner_fact", factID)
	}
	return ct.RowsAffected() > 0, nil
}

// Deactivate retires a fact without deleting it. Returns true when the fact
// was active and is now retired.
func (r *Repo) Deactivate(ctx context.Context, factID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deactivateSQL, factID)
	if err != nil {
		return false, postgres.MapError(err, "learner_fact", factID)
	}
	return ct.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Row scanning and JSONB helpers
// ---------------------------------------------------------------------------

func scanFact(row pgx.Row) (*domain.LearnerFact, error) {
	return scanFactFrom(row.Scan)
}

func scanFactFromRows(rows pgx.Rows) (*domain.LearnerFact, error) {
	return scanFactFrom(rows.Scan)
}

func scanFactFrom(scan func(dest ...any) error) (*domain.LearnerFact, error) {
	var (
		f            domain.LearnerFact
		category     string
		examplesJSON []byte
	)

	if err := scan(
		&f.ID,
		&f.UserID,
		&category,
		&f.GrammarFeature,
		&f.FactText,
		&examplesJSON,
		&f.ObservationCount,
		&f.Active,
		&f.LastObservedAt,
		&f.LastLessonID,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}

	examples, err := unmarshalExamples(examplesJSON)
	if err != nil {
		return nil, fmt.Errorf("learner_fact %s: %w", f.ID, err)
	}

	f.Category = domain.FactCategory(category)
	f.ArabicExamples = examples
	return &f, nil
}

// marshalExamples converts the examples slice to JSON bytes for JSONB
// storage. A nil slice is stored as an empty array, not NULL.
func marshalExamples(examples []string) ([]byte, error) {
	if examples == nil {
		examples = []string{}
	}
	data, err := json.Marshal(examples)
	if err != nil {
		return nil, fmt.Errorf("marshal arabic examples: %w", err)
	}
	return data, nil
}

func unmarshalExamples(data []byte) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var examples []string
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("unmarshal arabic examples: %w", err)
	}
	return examples, nil
}
