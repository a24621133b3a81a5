package lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// TurnResult is the outcome of one recorded conversation turn.
type TurnResult struct {
	Lesson *domain.Lesson
	Quota  domain.QuotaInfo
}

// RecordTurn charges one conversation turn against the user's weekly quota
// and mirrors the counters onto the lesson.
//
// The quota record is the authoritative ledger and is charged first; the
// lesson counters are a best-effort mirror. If mirroring loses a race with
// a concurrent End, the turn still stands: the charge is kept and the
// stale lesson row is returned.
func (s *Service) RecordTurn(ctx context.Context, userID, lessonID uuid.UUID, tokens int) (*TurnResult, error) {
	if tokens < 0 {
		return nil, domain.NewValidationError("tokens", "must not be negative")
	}

	l, err := s.GetByID(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if l.Ended() {
		return nil, domain.NewValidationError("lesson_id", "lesson already ended")
	}

	rec, err := s.quota.ConsumeMessage(ctx, l.UserID, tokens)
	if err != nil {
		return nil, err
	}

	updated, err := s.incrementWithRetry(ctx, lessonID, 1, tokens)
	if err != nil {
		// Quota already charged; losing the mirror must not fail the turn.
		s.log.WarnContext(ctx, "lesson counters not mirrored",
			"lesson_id", lessonID, "error", err)
		updated = l
	}

	return &TurnResult{Lesson: updated, Quota: rec.Snapshot()}, nil
}

// ReportTokens charges late-arriving token usage against the user's weekly
// quota and mirrors it onto the lesson. A model call's true token cost is
// only known once its response lands, which can be after the turn was
// recorded or even after the lesson ended; the cost is already incurred,
// so the charge is never refused.
func (s *Service) ReportTokens(ctx context.Context, userID, lessonID uuid.UUID, tokens int) (*TurnResult, error) {
	if tokens < 0 {
		return nil, domain.NewValidationError("tokens", "must not be negative")
	}

	l, err := s.GetByID(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}

	rec, err := s.quota.RecordTokens(ctx, l.UserID, tokens)
	if err != nil {
		return nil, err
	}

	if tokens > 0 && !l.Ended() {
		updated, err := s.incrementWithRetry(ctx, lessonID, 0, tokens)
		if err != nil {
			s.log.WarnContext(ctx, "lesson counters not mirrored",
				"lesson_id", lessonID, "error", err)
		} else {
			l = updated
		}
	}

	return &TurnResult{Lesson: l, Quota: rec.Snapshot()}, nil
}

// incrementWithRetry retries the conditional counter update once: a single
// conflict means another statement touched the row between our read and
// write, which resolves immediately on re-execution.
func (s *Service) incrementWithRetry(ctx context.Context, lessonID uuid.UUID, messages, tokens int) (*domain.Lesson, error) {
	updated, err := s.lessons.IncrementCounters(ctx, lessonID, messages, tokens)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return nil, err
	}

	updated, err = s.lessons.IncrementCounters(ctx, lessonID, messages, tokens)
	if err != nil {
		return nil, fmt.Errorf("retry counter mirror: %w", err)
	}
	return updated, nil
}
