package observation

import (
	"context"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// Query returns observations matching the filter, newest first.
func (s *Service) Query(ctx context.Context, f domain.ObservationFilter) ([]domain.Observation, error) {
	if f.Limit < 0 {
		return nil, domain.NewValidationError("limit", "must not be negative")
	}
	return s.observations.Query(ctx, f)
}

// ListBySession returns every observation of one lesson, oldest first.
func (s *Service) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Observation, error) {
	return s.observations.ListBySession(ctx, sessionID)
}

// ListRecentByUser returns the user's newest observations, capped at limit.
func (s *Service) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Observation, error) {
	if limit <= 0 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}
	return s.observations.ListRecentByUser(ctx, userID, limit)
}
