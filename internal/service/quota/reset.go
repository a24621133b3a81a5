package quota

import (
	"context"
	"fmt"
)

// ResetDueQuotas advances every overdue quota window and zeroes its usage.
// Run from the sweeper command; idempotent, so overlapping runs are safe.
// Returns the number of records reset.
func (s *Service) ResetDueQuotas(ctx context.Context) (int64, error) {
	now := s.now().UTC()

	n, err := s.quota.ResetDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("reset due quotas: %w", err)
	}

	if n > 0 {
		s.log.InfoContext(ctx, "weekly quota sweep complete", "records_reset", n)
	}
	return n, nil
}
