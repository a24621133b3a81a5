package lesson

import (
	"context"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// EndResult is the outcome of closing a lesson.
type EndResult struct {
	Lesson *domain.Lesson
	// Analysis is nil when this call did not perform the transition or when
	// the lesson produced no observations.
	Analysis *domain.LessonAnalysis
	// EndedNow reports whether this call performed the ACTIVE -> ENDED
	// transition. False means the lesson was already closed.
	EndedNow bool
}

// End closes a lesson and runs insight extraction over its observations.
//
// Idempotent: ending an already-ended lesson returns the frozen counters
// without re-running extraction, so facts are never double-counted. Failed
// extraction does not unwind the close; the lesson stays ended and the
// failure is logged.
func (s *Service) End(ctx context.Context, userID, lessonID uuid.UUID) (*EndResult, error) {
	l, err := s.GetByID(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}

	ended, endedNow, err := s.lessons.End(ctx, l.ID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	result := &EndResult{Lesson: ended, EndedNow: endedNow}
	if !endedNow {
		return result, nil
	}

	s.log.InfoContext(ctx, "lesson ended",
		"lesson_id", ended.ID, "user_id", ended.UserID,
		"messages", ended.MessagesCount, "tokens", ended.TokensUsed)

	analysis, err := s.insight.ProcessEndedLesson(ctx, ended)
	if err != nil {
		s.log.ErrorContext(ctx, "insight extraction failed",
			"lesson_id", ended.ID, "error", err)
		return result, nil
	}
	result.Analysis = analysis

	return result, nil
}
