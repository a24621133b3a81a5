package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// CanSendMessage decides whether the user may send one more message this
// week. The check is advisory: admission is re-verified by the conditional
// increment in RecordUsage, so a stale positive here cannot overspend.
func (s *Service) CanSendMessage(ctx context.Context, userID uuid.UUID) (domain.QuotaDecision, error) {
	rec, err := s.getFresh(ctx, userID)
	if err != nil {
		return domain.QuotaDecision{}, err
	}

	if exhausted, reason := rec.Exhausted(); exhausted {
		return domain.QuotaDecision{CanSend: false, Reason: reason}, nil
	}
	return domain.QuotaDecision{CanSend: true}, nil
}

// GetQuotaInfo returns a read-only snapshot of the user's current window.
func (s *Service) GetQuotaInfo(ctx context.Context, userID uuid.UUID) (domain.QuotaInfo, error) {
	rec, err := s.getFresh(ctx, userID)
	if err != nil {
		return domain.QuotaInfo{}, err
	}
	return rec.Snapshot(), nil
}

// getFresh applies a lazy weekly reset before reading, so reads between
// sweeper runs never report a stale exhausted window. A user without a
// record yet gets one provisioned on the free tier.
func (s *Service) getFresh(ctx context.Context, userID uuid.UUID) (*domain.QuotaRecord, error) {
	now := s.now().UTC()

	applied, err := s.quota.ResetIfDue(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("lazy quota reset: %w", err)
	}
	if applied {
		s.log.InfoContext(ctx, "quota window reset lazily", "user_id", userID)
	}

	rec, err := s.quota.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return s.GetOrCreateProfile(ctx, userID, domain.TierFree)
	}
	return rec, err
}
