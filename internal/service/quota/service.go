// Package quota enforces weekly per-user message and token budgets.
//
// The service never trusts in-process state for admission: every check and
// every increment goes through a single conditional statement in the store,
// so concurrent requests across processes cannot overspend a budget.
package quota

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/config"
	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type quotaRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.QuotaRecord, error)
	Create(ctx context.Context, rec *domain.QuotaRecord) (*domain.QuotaRecord, error)
	RecordUsage(ctx context.Context, userID uuid.UUID, messageDelta, tokenDelta int) (*domain.QuotaRecord, error)
	ResetDue(ctx context.Context, now time.Time) (int64, error)
	ResetIfDue(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error)
}

// Service provides quota admission and accounting operations.
type Service struct {
	quota quotaRepo
	cfg   config.QuotaConfig
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a new Quota service.
func NewService(
	log *slog.Logger,
	cfg config.QuotaConfig,
	quota quotaRepo,
) *Service {
	return &Service{
		quota: quota,
		cfg:   cfg,
		log:   log.With("service", "quota"),
		now:   time.Now,
	}
}
