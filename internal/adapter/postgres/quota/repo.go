// Package quota implements the QuotaRecord repository using PostgreSQL.
//
// All mutations are single conditional statements so that concurrent
// requests for the same user are serialized by the store, not by
// in-process locks: requests may be handled by independent processes.
package quota

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

// Repo provides quota record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new quota repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const quotaColumns = `user_id, tier, weekly_message_quota, weekly_messages_used,
weekly_token_quota, weekly_tokens_used, reset_at, created_at, updated_at`

const getSQL = `
SELECT ` + quotaColumns + `
FROM quota_records
WHERE user_id = $1`

const createSQL = `
INSERT INTO quota_records (user_id, tier, weekly_message_quota, weekly_messages_used,
                           weekly_token_quota, weekly_tokens_used, reset_at, created_at, updated_at)
VALUES ($1, $2, $3, 0, $4, 0, $5, $6, $6)
RETURNING ` + quotaColumns

// recordUsageSQL increments usage only while the pre-increment message count
// is still under quota. Token overshoot is allowed: a turn's token cost is
// known only after the model call completes.
const recordUsageSQL = `
UPDATE quota_records
SET weekly_messages_used = weekly_messages_used + $2,
    weekly_tokens_used   = weekly_tokens_used + $3,
    updated_at           = now()
WHERE user_id = $1
  AND ($2 <= 0 OR weekly_messages_used < weekly_message_quota)
RETURNING ` + quotaColumns

// resetCondition matches records at least one full week past their window
// start; the catch-up advances reset_at by every elapsed week in one go, so
// a record three weeks overdue jumps 21 days in a single statement.
const resetSet = `
SET weekly_messages_used = 0,
    weekly_tokens_used   = 0,
    reset_at = reset_at + make_interval(
        weeks => floor(extract(epoch FROM ($1::timestamptz - reset_at)) / 604800)::int),
    updated_at = now()
WHERE reset_at <= $1::timestamptz - interval '7 days'`

const resetDueSQL = `UPDATE quota_records ` + resetSet

const resetIfDueSQL = `UPDATE quota_records ` + resetSet + ` AND user_id = $2`

const existsSQL = `SELECT EXISTS (SELECT 1 FROM quota_records WHERE user_id = $1)`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Get returns the quota record for a user.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.QuotaRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec, err := scanRecord(querier.QueryRow(ctx, getSQL, userID))
	if err != nil {
		return nil, postgres.MapError(err, "quota_record", userID)
	}
	return rec, nil
}

// Create inserts a new quota record seeded with the given budgets.
// Returns domain.ErrAlreadyExists when a concurrent first request won the
// insert race; callers fall back to re-reading.
func (r *Repo) Create(ctx context.Context, rec *domain.QuotaRecord) (*domain.QuotaRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	resetAt := rec.ResetAt.UTC().Truncate(time.Microsecond)

	created, err := scanRecord(querier.QueryRow(ctx, createSQL,
		rec.UserID,
		string(rec.Tier),
		rec.WeeklyMessageQuota,
		rec.WeeklyTokenQuota,
		resetAt,
		now,
	))
	if err != nil {
		return nil, postgres.MapError(err, "quota_record", rec.UserID)
	}
	return created, nil
}

// RecordUsage atomically adds usage deltas. When messageDelta > 0 the
// increment applies only if the pre-increment message count is still under
// quota; zero affected rows on an existing record means a concurrent
// request exhausted the budget first, reported as domain.ErrConflict.
func (r *Repo) RecordUsage(ctx context.Context, userID uuid.UUID, messageDelta, tokenDelta int) (*domain.QuotaRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec, err := scanRecord(querier.QueryRow(ctx, recordUsageSQL, userID, messageDelta, tokenDelta))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, postgres.MapError(err, "quota_record", userID)
	}

	// No row updated: either the record is missing or the condition failed.
	var exists bool
	if err := querier.QueryRow(ctx, existsSQL, userID).Scan(&exists); err != nil {
		return nil, postgres.MapError(err, "quota_record", userID)
	}
	if !exists {
		return nil, fmt.Errorf("quota_record %s: %w", userID, domain.ErrNotFound)
	}
	return nil, fmt.Errorf("quota_record %s: message quota exhausted concurrently: %w", userID, domain.ErrConflict)
}

// ResetDue advances every overdue record to the current week and zeroes its
// usage. Idempotent: records already inside their week are untouched, and a
// record several weeks overdue is caught up in this one call.
func (r *Repo) ResetDue(ctx context.Context, now time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, resetDueSQL, now.UTC())
	if err != nil {
		return 0, postgres.MapError(err, "quota_record", uuid.Nil)
	}
	return ct.RowsAffected(), nil
}

// ResetIfDue applies the weekly reset to a single user's record if overdue.
// Returns true when a reset was applied.
func (r *Repo) ResetIfDue(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, resetIfDueSQL, now.UTC(), userID)
	if err != nil {
		return false, postgres.MapError(err, "quota_record", userID)
	}
	return ct.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanRecord(row pgx.Row) (*domain.QuotaRecord, error) {
	var (
		rec  domain.QuotaRecord
		tier string
	)

	if err := row.Scan(
		&rec.UserID,
		&tier,
		&rec.WeeklyMessageQuota,
		&rec.WeeklyMessagesUsed,
		&rec.WeeklyTokenQuota,
		&rec.WeeklyTokensUsed,
		&rec.ResetAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rec.Tier = domain.Tier(tier)
	return &rec, nil
}
