package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row with a fake password hash.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "learner-" + suffix + "@example.com",
		Name:         "Learner " + suffix,
		PasswordHash: "$2a$10$" + suffix + "fakehashfakehashfakehash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedQuotaRecord creates a quota record for the user with the given budgets
// and window start. Usage counters start at zero.
func SeedQuotaRecord(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, messageQuota, tokenQuota int, resetAt time.Time) domain.QuotaRecord {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := domain.QuotaRecord{
		UserID:             userID,
		Tier:               domain.TierFree,
		WeeklyMessageQuota: messageQuota,
		WeeklyTokenQuota:   tokenQuota,
		ResetAt:            resetAt.UTC().Truncate(time.Microsecond),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO quota_records (user_id, tier, weekly_message_quota, weekly_messages_used,
		                            weekly_token_quota, weekly_tokens_used, reset_at, created_at, updated_at)
		 VALUES ($1, $2, $3, 0, $4, 0, $5, $6, $6)`,
		rec.UserID, string(rec.Tier), rec.WeeklyMessageQuota, rec.WeeklyTokenQuota, rec.ResetAt, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedQuotaRecord insert: %v", err)
	}

	return rec
}

// SeedLesson creates an ACTIVE lesson for the user started at the given time.
func SeedLesson(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, startedAt time.Time) domain.Lesson {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	lesson := domain.Lesson{
		ID:           uuid.New(),
		UserID:       userID,
		SurahID:      1,
		LearningMode: domain.LearningModeMix,
		Status:       domain.LessonStatusActive,
		StartedAt:    startedAt.UTC().Truncate(time.Microsecond),
		CreatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO lessons (id, user_id, surah_id, learning_mode, status, started_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		lesson.ID, lesson.UserID, lesson.SurahID, string(lesson.LearningMode),
		string(lesson.Status), lesson.StartedAt, lesson.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLesson insert: %v", err)
	}

	return lesson
}

// SeedObservation creates one observation row for the session with the given
// grammar feature and performance level. Context type is production.
func SeedObservation(t *testing.T, pool *pgxpool.Pool, sessionID uuid.UUID, userID *uuid.UUID, feature string, level domain.PerformanceLevel) domain.Observation {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	obs := domain.Observation{
		ID:               uuid.New(),
		SessionID:        sessionID,
		UserID:           userID,
		GrammarFeature:   feature,
		GrammarValue:     "value-" + uniqueSuffix(),
		PerformanceLevel: level,
		ContextType:      domain.ContextProduction,
		CreatedAt:        now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO observations (id, session_id, user_id, word_id, grammar_feature, grammar_value,
		                           performance_level, context_type, student_attempt, correct_form,
		                           error_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		obs.ID, obs.SessionID, obs.UserID, obs.WordID, obs.GrammarFeature, obs.GrammarValue,
		string(obs.PerformanceLevel), string(obs.ContextType), obs.StudentAttempt, obs.CorrectForm,
		obs.ErrorType, obs.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedObservation insert: %v", err)
	}

	return obs
}

// SeedFact creates an active learner fact for the user.
func SeedFact(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, category domain.FactCategory, feature string) domain.LearnerFact {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	fact := domain.LearnerFact{
		ID:               uuid.New(),
		UserID:           userID,
		Category:         category,
		GrammarFeature:   feature,
		FactText:         "Learner fact about " + feature,
		ArabicExamples:   []string{"مثال"},
		ObservationCount: 1,
		Active:           true,
		LastObservedAt:   now,
		CreatedAt:        now,
	}

	examples, err := json.Marshal(fact.ArabicExamples)
	if err != nil {
		t.Fatalf("testhelper: SeedFact marshal examples: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO learner_facts (id, user_id, category, grammar_feature, fact_text, arabic_examples,
		                            observation_count, active, last_observed_at, last_lesson_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		fact.ID, fact.UserID, string(fact.Category), fact.GrammarFeature, fact.FactText, examples,
		fact.ObservationCount, fact.Active, fact.LastObservedAt, fact.LastLessonID, fact.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFact insert: %v", err)
	}

	return fact
}
