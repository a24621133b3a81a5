package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// ConsumeMessage atomically charges one message plus its token cost against
// the user's weekly window. The store refuses the increment when the message
// budget is already spent; that refusal surfaces as a QuotaExceededError so
// callers can map it to a throttling response.
//
// The message budget is checked before the increment; tokens are charged
// as reported and may overshoot, since a turn's token cost is only known
// after the model call completes.
func (s *Service) ConsumeMessage(ctx context.Context, userID uuid.UUID, tokens int) (*domain.QuotaRecord, error) {
	if tokens < 0 {
		return nil, domain.NewValidationError("tokens", "must not be negative")
	}

	now := s.now().UTC()
	if _, err := s.quota.ResetIfDue(ctx, userID, now); err != nil {
		return nil, fmt.Errorf("lazy quota reset: %w", err)
	}

	rec, err := s.quota.RecordUsage(ctx, userID, 1, tokens)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.log.InfoContext(ctx, "message refused: weekly budget exhausted", "user_id", userID)
			return nil, domain.NewQuotaExceededError(domain.QuotaLimitMessages)
		}
		return nil, err
	}

	if exhausted, reason := rec.Exhausted(); exhausted && reason == domain.QuotaLimitTokens {
		s.log.InfoContext(ctx, "token budget exhausted after charge",
			"user_id", userID, "tokens_used", rec.WeeklyTokensUsed)
	}
	return rec, nil
}

// RecordTokens charges late-arriving token usage without consuming a
// message. Never refused: the cost is already incurred.
func (s *Service) RecordTokens(ctx context.Context, userID uuid.UUID, tokens int) (*domain.QuotaRecord, error) {
	if tokens < 0 {
		return nil, domain.NewValidationError("tokens", "must not be negative")
	}
	if tokens == 0 {
		return s.quota.Get(ctx, userID)
	}
	return s.quota.RecordUsage(ctx, userID, 0, tokens)
}
