package quota

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// GetOrCreateProfile returns the user's quota record, creating one seeded
// from the tier's configured budgets on first use. Safe under concurrent
// first requests: the loser of the insert race re-reads the winner's row.
func (s *Service) GetOrCreateProfile(ctx context.Context, userID uuid.UUID, tier domain.Tier) (*domain.QuotaRecord, error) {
	rec, err := s.quota.Get(ctx, userID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	budgets := s.cfg.ForTier(tier)
	fresh := &domain.QuotaRecord{
		UserID:             userID,
		Tier:               tier,
		WeeklyMessageQuota: budgets.WeeklyMessages,
		WeeklyTokenQuota:   budgets.WeeklyTokens,
		ResetAt:            s.now().UTC(),
	}

	created, err := s.quota.Create(ctx, fresh)
	if err == nil {
		s.log.InfoContext(ctx, "quota profile created",
			"user_id", userID, "tier", string(tier))
		return created, nil
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		return s.quota.Get(ctx, userID)
	}
	return nil, err
}
