package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// Merge reconciles one lesson's fact candidates against the learner's
// active facts:
//
//   - a candidate matching an active fact (same category and feature)
//     reinforces it, at most once per lesson;
//   - an unmatched candidate becomes a new active fact;
//   - a strength candidate retires the active struggle on the same feature,
//     since fresh mastery supersedes the old difficulty.
//
// The reverse rule (a struggle retiring a strength) is gated behind
// StrengthDecayEnabled: one bad lesson should not erase demonstrated
// mastery.
//
// Idempotent: the per-lesson reinforcement guard and the conditional
// deactivation make a re-run of the same lesson a no-op.
func (s *Service) Merge(ctx context.Context, userID, lessonID uuid.UUID, candidates []domain.FactCandidate) (domain.MergeResult, error) {
	var result domain.MergeResult
	if len(candidates) == 0 {
		return result, nil
	}

	existing, err := s.facts.ListActive(ctx, userID)
	if err != nil {
		return result, fmt.Errorf("list active facts: %w", err)
	}

	byKey := make(map[domain.FactKey]*domain.LearnerFact, len(existing))
	for i := range existing {
		byKey[existing[i].Key()] = &existing[i]
	}

	now := s.now().UTC()
	for _, c := range candidates {
		if match, ok := byKey[c.Key()]; ok {
			applied, err := s.facts.Reinforce(ctx, match.ID, lessonID, now)
			if err != nil {
				return result, fmt.Errorf("reinforce fact %s: %w", match.ID, err)
			}
			if applied {
				result.Reinforced++
			}
		} else {
			created, err := s.createFromCandidate(ctx, userID, lessonID, c, now)
			if err != nil {
				return result, err
			}
			if created {
				result.Created++
			}
		}

		deactivated, err := s.retireSuperseded(ctx, c, byKey)
		if err != nil {
			return result, err
		}
		result.Deactivated += deactivated
	}

	return result, nil
}

func (s *Service) createFromCandidate(ctx context.Context, userID, lessonID uuid.UUID, c domain.FactCandidate, now time.Time) (bool, error) {
	f := &domain.LearnerFact{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       c.Category,
		GrammarFeature: c.GrammarFeature,
		FactText:       c.FactText,
		ArabicExamples: c.ArabicExamples,
		LastObservedAt: now,
		LastLessonID:   &lessonID,
	}

	if _, err := s.facts.Create(ctx, f); err != nil {
		// A concurrent merge of the same lesson won the insert; the guard
		// on its row already accounts for this evidence.
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.log.InfoContext(ctx, "fact created concurrently, skipping",
				"user_id", userID, "feature", c.GrammarFeature)
			return false, nil
		}
		return false, fmt.Errorf("create fact for %s: %w", c.GrammarFeature, err)
	}
	return true, nil
}

// retireSuperseded deactivates the opposite-category active fact on the
// candidate's feature, when the direction of supersession is allowed.
func (s *Service) retireSuperseded(ctx context.Context, c domain.FactCandidate, byKey map[domain.FactKey]*domain.LearnerFact) (int, error) {
	var opposite domain.FactCategory
	switch c.Category {
	case domain.FactCategoryStrength:
		opposite = domain.FactCategoryStruggle
	case domain.FactCategoryStruggle:
		if !s.cfg.StrengthDecayEnabled {
			return 0, nil
		}
		opposite = domain.FactCategoryStrength
	default:
		return 0, nil
	}

	stale, ok := byKey[domain.FactKey{Category: opposite, GrammarFeature: c.GrammarFeature}]
	if !ok {
		return 0, nil
	}

	applied, err := s.facts.Deactivate(ctx, stale.ID)
	if err != nil {
		return 0, fmt.Errorf("deactivate fact %s: %w", stale.ID, err)
	}
	if !applied {
		return 0, nil
	}

	s.log.InfoContext(ctx, "fact superseded",
		"fact_id", stale.ID, "feature", c.GrammarFeature,
		"retired", string(opposite), "by", string(c.Category))
	return 1, nil
}
