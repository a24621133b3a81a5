// Package lesson implements the Lesson repository using PostgreSQL.
//
// The ACTIVE → ENDED transition is a conditional UPDATE guarded by the
// current status, so ending is idempotent under concurrent requests.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/saifdine/mutaallim-backend/internal/adapter/postgres"
	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// Repo provides lesson persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lesson repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const lessonColumns = `id, user_id, surah_id, learning_mode, status, started_at, ended_at,
messages_count, tokens_used, created_at`

const createSQL = `
INSERT INTO lessons (id, user_id, surah_id, learning_mode, status, started_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + lessonColumns

const getByIDSQL = `
SELECT ` + lessonColumns + `
FROM lessons
WHERE id = $1`

const getActiveSQL = `
SELECT ` + lessonColumns + `
FROM lessons
WHERE user_id = $1 AND ended_at IS NULL
ORDER BY started_at DESC
LIMIT 1`

const getLastEndedSQL = `
SELECT ` + lessonColumns + `
FROM lessons
WHERE user_id = $1 AND status = 'ENDED'
ORDER BY ended_at DESC
LIMIT 1`

const incrementSQL = `
UPDATE lessons
SET messages_count = messages_count + $2,
    tokens_used    = tokens_used + $3
WHERE id = $1 AND status = 'ACTIVE'
RETURNING ` + lessonColumns

const endSQL = `
UPDATE lessons
SET status = 'ENDED', ended_at = $2
WHERE id = $1 AND status = 'ACTIVE'
RETURNING ` + lessonColumns

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a new lesson in the ACTIVE state with zero counters.
func (r *Repo) Create(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	startedAt := l.StartedAt.UTC().Truncate(time.Microsecond)

	created, err := scanLesson(querier.QueryRow(ctx, createSQL,
		l.ID,
		l.UserID,
		l.SurahID,
		string(l.LearningMode),
		string(l.Status),
		startedAt,
		now,
	))
	if err != nil {
		return nil, postgres.MapError(err, "lesson", l.ID)
	}
	return created, nil
}

// GetByID returns a lesson by primary key.
func (r *Repo) GetByID(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	l, err := scanLesson(querier.QueryRow(ctx, getByIDSQL, lessonID))
	if err != nil {
		return nil, postgres.MapError(err, "lesson", lessonID)
	}
	return l, nil
}

// GetActive returns the user's most recent lesson that has not ended.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	l, err := scanLesson(querier.QueryRow(ctx, getActiveSQL, userID))
	if err != nil {
		return nil, postgres.MapError(err, "lesson", uuid.Nil)
	}
	return l, nil
}

// GetLastEnded returns the user's most recently ended lesson.
// Returns domain.ErrNotFound if the user has never finished one.
func (r *Repo) GetLastEnded(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	l, err := scanLesson(querier.QueryRow(ctx, getLastEndedSQL, userID))
	if err != nil {
		return nil, postgres.MapError(err, "lesson", uuid.Nil)
	}
	return l, nil
}

// IncrementCounters adds turn deltas to the lesson's message/token mirror.
// Only ACTIVE lessons accept turns: an ended lesson yields a validation
// error, a missing one domain.ErrNotFound.
func (r *Repo) IncrementCounters(ctx context.Context, lessonID uuid.UUID, messageDelta, tokenDelta int) (*domain.Lesson, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	l, err := scanLesson(querier.QueryRow(ctx, incrementSQL, lessonID, messageDelta, tokenDelta))
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, postgres.MapError(err, "lesson", lessonID)
	}

	existing, getErr := r.GetByID(ctx, lessonID)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Ended() {
		return nil, domain.NewValidationError("lesson_id", "lesson already ended")
	}
	return nil, fmt.Errorf("lesson %s: %w", lessonID, domain.ErrConflict)
}

// End transitions an ACTIVE lesson to ENDED, stamping endedAt and freezing
// its counters. Ending an already-ended lesson is a no-op that returns the
// stored counters; the second result reports whether THIS call ended it.
func (r *Repo) End(ctx context.Context, lessonID uuid.UUID, endedAt time.Time) (*domain.Lesson, bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	l, err := scanLesson(querier.QueryRow(ctx, endSQL, lessonID, endedAt.UTC().Truncate(time.Microsecond)))
	if err == nil {
		return l, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, postgres.MapError(err, "lesson", lessonID)
	}

	// Lost the transition race or already ended: return the frozen row.
	existing, getErr := r.GetByID(ctx, lessonID)
	if getErr != nil {
		return nil, false, getErr
	}
	if !existing.Ended() {
		return nil, false, fmt.Errorf("lesson %s: %w", lessonID, domain.ErrConflict)
	}
	return existing, false, nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanLesson(row pgx.Row) (*domain.Lesson, error) {
	var (
		l      domain.Lesson
		mode   string
		status string
	)

	if err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.SurahID,
		&mode,
		&status,
		&l.StartedAt,
		&l.EndedAt,
		&l.MessagesCount,
		&l.TokensUsed,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}

	l.LearningMode = domain.LearningMode(mode)
	l.Status = domain.LessonStatus(status)
	return &l, nil
}
