package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuotaWeek is the length of one quota accounting window.
const QuotaWeek = 7 * 24 * time.Hour

// QuotaRecord tracks one user's weekly message/token budget.
// ResetAt marks the START of the current quota week; the record is due for
// a reset once a full week has elapsed since then.
//
// "used" may transiently exceed "quota": a turn's token cost is reported
// only after the model call completes, so remaining < 0 means "exhausted",
// not corruption.
type QuotaRecord struct {
	UserID             uuid.UUID
	Tier               Tier
	WeeklyMessageQuota int
	WeeklyMessagesUsed int
	WeeklyTokenQuota   int
	WeeklyTokensUsed   int
	ResetAt            time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// MessagesRemaining returns the derived message headroom, floored at zero.
func (r QuotaRecord) MessagesRemaining() int {
	return remaining(r.WeeklyMessageQuota, r.WeeklyMessagesUsed)
}

// TokensRemaining returns the derived token headroom, floored at zero.
func (r QuotaRecord) TokensRemaining() int {
	return remaining(r.WeeklyTokenQuota, r.WeeklyTokensUsed)
}

func remaining(quota, used int) int {
	if used >= quota {
		return 0
	}
	return quota - used
}

// Exhausted reports whether the record blocks further messages and which
// limit is responsible. Messages are checked before tokens.
func (r QuotaRecord) Exhausted() (bool, QuotaLimit) {
	if r.WeeklyMessagesUsed >= r.WeeklyMessageQuota {
		return true, QuotaLimitMessages
	}
	if r.WeeklyTokensUsed >= r.WeeklyTokenQuota {
		return true, QuotaLimitTokens
	}
	return false, ""
}

// DueForReset reports whether at least one full quota week has elapsed.
func (r QuotaRecord) DueForReset(now time.Time) bool {
	return !now.Before(r.ResetAt.Add(QuotaWeek))
}

// QuotaDecision is the outcome of a pre-send quota check.
type QuotaDecision struct {
	CanSend bool
	// Reason is set only when CanSend is false.
	Reason QuotaLimit
}

// QuotaInfo is a read-only quota snapshot with derived remaining values.
type QuotaInfo struct {
	UserID            uuid.UUID
	Tier              Tier
	MessageQuota      int
	MessagesUsed      int
	MessagesRemaining int
	TokenQuota        int
	TokensUsed        int
	TokensRemaining   int
	ResetAt           time.Time
}

// Snapshot derives a QuotaInfo from the record.
func (r QuotaRecord) Snapshot() QuotaInfo {
	return QuotaInfo{
		UserID:            r.UserID,
		Tier:              r.Tier,
		MessageQuota:      r.WeeklyMessageQuota,
		MessagesUsed:      r.WeeklyMessagesUsed,
		MessagesRemaining: r.MessagesRemaining(),
		TokenQuota:        r.WeeklyTokenQuota,
		TokensUsed:        r.WeeklyTokensUsed,
		TokensRemaining:   r.TokensRemaining(),
		ResetAt:           r.ResetAt,
	}
}
