// Package insight turns raw lesson observations into durable learner facts
// and compiles them into the context block that personalizes the next
// tutoring session.
//
// The pipeline runs when a lesson ends: extract per-feature accuracy groups,
// derive struggle/strength candidates, then reconcile them against the
// learner's active facts. Every step is idempotent, so re-processing an
// ended lesson never double-counts evidence.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/config"
	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type observationReader interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Observation, error)
	ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Observation, error)
}

type factRepo interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]domain.LearnerFact, error)
	Create(ctx context.Context, f *domain.LearnerFact) (*domain.LearnerFact, error)
	Reinforce(ctx context.Context, factID, lessonID uuid.UUID, observedAt time.Time) (bool, error)
	Deactivate(ctx context.Context, factID uuid.UUID) (bool, error)
}

type lessonReader interface {
	GetLastEnded(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error)
}

// Service provides fact extraction, reconciliation, and context compilation.
type Service struct {
	observations observationReader
	facts        factRepo
	lessons      lessonReader
	cfg          config.InsightConfig
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new Insight service.
func NewService(
	log *slog.Logger,
	cfg config.InsightConfig,
	observations observationReader,
	facts factRepo,
	lessons lessonReader,
) *Service {
	return &Service{
		observations: observations,
		facts:        facts,
		lessons:      lessons,
		cfg:          cfg,
		log:          log.With("service", "insight"),
		now:          time.Now,
	}
}

// ProcessEndedLesson runs the full pipeline for one ended lesson: analyze
// its observations and merge the resulting candidates into the learner's
// fact set. Returns nil when the lesson produced no observations.
func (s *Service) ProcessEndedLesson(ctx context.Context, l *domain.Lesson) (*domain.LessonAnalysis, error) {
	observations, err := s.observations.ListBySession(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("list session observations: %w", err)
	}

	analysis := s.Analyze(l, observations)
	if analysis == nil {
		s.log.InfoContext(ctx, "lesson produced no observations", "lesson_id", l.ID)
		return nil, nil
	}

	if analysis.UserID == nil {
		s.log.WarnContext(ctx, "analysis has no owner, skipping reconciliation", "lesson_id", l.ID)
		return analysis, nil
	}

	result, err := s.Merge(ctx, *analysis.UserID, l.ID, analysis.ExtractedFacts)
	if err != nil {
		return nil, fmt.Errorf("merge facts: %w", err)
	}

	s.log.InfoContext(ctx, "lesson insights reconciled",
		"lesson_id", l.ID, "user_id", *analysis.UserID,
		"candidates", len(analysis.ExtractedFacts),
		"created", result.Created, "reinforced", result.Reinforced,
		"deactivated", result.Deactivated)
	return analysis, nil
}

// GetLearningContext assembles everything needed to personalize the next
// session: active facts, rolling accuracy over the recent observation
// window, and the last finished lesson.
func (s *Service) GetLearningContext(ctx context.Context, userID uuid.UUID) (*domain.LearningContext, error) {
	facts, err := s.facts.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list active facts: %w", err)
	}

	recent, err := s.observations.ListRecentByUser(ctx, userID, s.cfg.RecentWindow)
	if err != nil {
		return nil, fmt.Errorf("list recent observations: %w", err)
	}

	lc := &domain.LearningContext{
		Facts:    facts,
		Patterns: computePatterns(recent),
	}

	last, err := s.lessons.GetLastEnded(ctx, userID)
	switch {
	case err == nil:
		lc.LastLesson = last
	case errors.Is(err, domain.ErrNotFound):
		// First session: no history to carry.
	default:
		return nil, fmt.Errorf("last ended lesson: %w", err)
	}

	return lc, nil
}

// computePatterns derives rolling accuracies (percentages) from the recent
// observation window.
func computePatterns(observations []domain.Observation) domain.PerformancePatterns {
	var grammarTotal, grammarOK, translationTotal, translationOK int
	for _, o := range observations {
		if o.ContextType.IsTranslation() {
			translationTotal++
			if o.Successful() {
				translationOK++
			}
			continue
		}
		grammarTotal++
		if o.Successful() {
			grammarOK++
		}
	}

	return domain.PerformancePatterns{
		GrammarAccuracy:     percentage(grammarOK, grammarTotal),
		TranslationAccuracy: percentage(translationOK, translationTotal),
	}
}

func percentage(ok, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(ok) / float64(total) * 100
}
