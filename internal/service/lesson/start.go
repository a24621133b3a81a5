package lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

const (
	minSurahID = 1
	maxSurahID = 114
)

// StartInput holds parameters for starting a lesson.
type StartInput struct {
	SurahID      int
	LearningMode domain.LearningMode
}

func (in StartInput) validate() error {
	var fields []domain.FieldError
	if in.SurahID < minSurahID || in.SurahID > maxSurahID {
		fields = append(fields, domain.FieldError{
			Field:   "surah_id",
			Message: fmt.Sprintf("must be between %d and %d", minSurahID, maxSurahID),
		})
	}
	if !in.LearningMode.IsValid() {
		fields = append(fields, domain.FieldError{
			Field:   "learning_mode",
			Message: "must be one of: grammar, translation, mix",
		})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// Start opens a new ACTIVE lesson for the user.
//
// Admission is quota-gated: an exhausted weekly budget refuses the start
// with a QuotaExceededError and nothing is persisted. A user has at most
// one active lesson; starting while one is open is a conflict.
func (s *Service) Start(ctx context.Context, userID uuid.UUID, in StartInput) (*domain.Lesson, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	decision, err := s.quota.CanSendMessage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}
	if !decision.CanSend {
		return nil, domain.NewQuotaExceededError(decision.Reason)
	}

	if _, err := s.lessons.GetActive(ctx, userID); err == nil {
		return nil, fmt.Errorf("user %s already has an active lesson: %w", userID, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	l := &domain.Lesson{
		ID:           uuid.New(),
		UserID:       userID,
		SurahID:      in.SurahID,
		LearningMode: in.LearningMode,
		Status:       domain.LessonStatusActive,
		StartedAt:    now,
	}

	created, err := s.lessons.Create(ctx, l)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "lesson started",
		"lesson_id", created.ID, "user_id", userID,
		"surah_id", in.SurahID, "mode", string(in.LearningMode))
	return created, nil
}
