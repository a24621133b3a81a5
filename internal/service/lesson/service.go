// Package lesson manages the lesson session lifecycle: quota-gated start,
// per-turn accounting, and idempotent close with insight extraction.
package lesson

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type lessonRepo interface {
	Create(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error)
	GetByID(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error)
	IncrementCounters(ctx context.Context, lessonID uuid.UUID, messageDelta, tokenDelta int) (*domain.Lesson, error)
	End(ctx context.Context, lessonID uuid.UUID, endedAt time.Time) (*domain.Lesson, bool, error)
}

// quotaGate is the slice of the quota service the lifecycle depends on.
// The gate is authoritative: a lesson turn is admitted only after the gate
// charged it.
type quotaGate interface {
	CanSendMessage(ctx context.Context, userID uuid.UUID) (domain.QuotaDecision, error)
	ConsumeMessage(ctx context.Context, userID uuid.UUID, tokens int) (*domain.QuotaRecord, error)
	RecordTokens(ctx context.Context, userID uuid.UUID, tokens int) (*domain.QuotaRecord, error)
}

// insightSink receives ended lessons for fact extraction and reconciliation.
type insightSink interface {
	ProcessEndedLesson(ctx context.Context, l *domain.Lesson) (*domain.LessonAnalysis, error)
}

// Service provides lesson lifecycle operations.
type Service struct {
	lessons lessonRepo
	quota   quotaGate
	insight insightSink
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new Lesson service.
func NewService(
	log *slog.Logger,
	lessons lessonRepo,
	quota quotaGate,
	insight insightSink,
) *Service {
	return &Service{
		lessons: lessons,
		quota:   quota,
		insight: insight,
		log:     log.With("service", "lesson"),
		now:     time.Now,
	}
}

// GetActive returns the user's current active lesson, or domain.ErrNotFound.
func (s *Service) GetActive(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error) {
	return s.lessons.GetActive(ctx, userID)
}

// GetByID returns a lesson by ID, scoped to its owner.
func (s *Service) GetByID(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Lesson, error) {
	l, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return l, nil
}
