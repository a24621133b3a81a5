// Package observation validates and appends grammar observations produced by
// the tutoring conversation, and serves filtered reads over the log.
package observation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// MaxBatchSize bounds one append call; the conversation layer batches one
// assistant turn at a time, which stays far below this.
const MaxBatchSize = 100

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type observationRepo interface {
	InsertBatch(ctx context.Context, observations []domain.Observation) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Observation, error)
	ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Observation, error)
	Query(ctx context.Context, f domain.ObservationFilter) ([]domain.Observation, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides observation append and query operations.
type Service struct {
	observations observationRepo
	tx           txManager
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new Observation service.
func NewService(
	log *slog.Logger,
	observations observationRepo,
	tx txManager,
) *Service {
	return &Service{
		observations: observations,
		tx:           tx,
		log:          log.With("service", "observation"),
		now:          time.Now,
	}
}
