package insight

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// Analyze groups a lesson's observations by grammar feature, computes
// per-group accuracy, and derives struggle/strength candidates.
//
// Pure with respect to storage: it reads nothing and writes nothing, so it
// can be re-run on the same inputs and produce identical output. Returns
// nil for a lesson without observations.
func (s *Service) Analyze(l *domain.Lesson, observations []domain.Observation) *domain.LessonAnalysis {
	if len(observations) == 0 {
		return nil
	}

	analysis := &domain.LessonAnalysis{
		LessonID: l.ID,
		UserID:   resolveOwner(l, observations),
	}

	groups := groupByFeature(observations)

	var grammarOK, translationOK int
	for _, g := range groups {
		stat := domain.FeatureAccuracy{
			GrammarFeature: g.feature,
			Observations:   len(g.observations),
			Translation:    g.translation(),
		}
		for _, o := range g.observations {
			if o.Successful() {
				stat.Successes++
			}
		}
		stat.Accuracy = float64(stat.Successes) / float64(stat.Observations)
		analysis.FeatureStats = append(analysis.FeatureStats, stat)

		if stat.Translation {
			analysis.TranslationObservations += stat.Observations
			translationOK += stat.Successes
		} else {
			analysis.GrammarObservations += stat.Observations
			grammarOK += stat.Successes
		}

		if candidate := s.deriveCandidate(stat, g.observations); candidate != nil {
			analysis.ExtractedFacts = append(analysis.ExtractedFacts, *candidate)
		}
	}

	if analysis.GrammarObservations > 0 {
		analysis.GrammarAccuracy = float64(grammarOK) / float64(analysis.GrammarObservations)
	}
	if analysis.TranslationObservations > 0 {
		analysis.TranslationAccuracy = float64(translationOK) / float64(analysis.TranslationObservations)
	}
	analysis.PerformanceSummary = summarize(analysis)

	return analysis
}

// deriveCandidate applies the evidence floor and accuracy thresholds to one
// feature group. Groups in the middle band produce nothing: inconclusive
// evidence is not a fact.
func (s *Service) deriveCandidate(stat domain.FeatureAccuracy, observations []domain.Observation) *domain.FactCandidate {
	if stat.Observations < s.cfg.MinObservations {
		return nil
	}

	switch {
	case stat.Accuracy < s.cfg.StruggleThreshold:
		return &domain.FactCandidate{
			Category:       domain.FactCategoryStruggle,
			GrammarFeature: stat.GrammarFeature,
			FactText: fmt.Sprintf("Struggles with %s: %d of %d attempts unsuccessful",
				stat.GrammarFeature, stat.Observations-stat.Successes, stat.Observations),
			ArabicExamples: s.collectExamples(observations, false),
		}
	case stat.Accuracy >= s.cfg.StrengthThreshold:
		return &domain.FactCandidate{
			Category:       domain.FactCategoryStrength,
			GrammarFeature: stat.GrammarFeature,
			FactText: fmt.Sprintf("Consistently correct with %s: %d of %d attempts successful",
				stat.GrammarFeature, stat.Successes, stat.Observations),
			ArabicExamples: s.collectExamples(observations, true),
		}
	default:
		return nil
	}
}

// collectExamples picks up to MaxExamples Arabic snippets backing the fact.
// For struggles the correct form is preferred over the learner's broken
// attempt, so the prompt shows the model what to reinforce.
func (s *Service) collectExamples(observations []domain.Observation, successful bool) []string {
	var examples []string
	seen := make(map[string]bool)

	for _, o := range observations {
		if o.Successful() != successful {
			continue
		}
		var snippet string
		switch {
		case o.CorrectForm != nil && *o.CorrectForm != "":
			snippet = *o.CorrectForm
		case o.StudentAttempt != nil && *o.StudentAttempt != "":
			snippet = *o.StudentAttempt
		default:
			snippet = o.GrammarValue
		}
		if seen[snippet] {
			continue
		}
		seen[snippet] = true
		examples = append(examples, snippet)
		if len(examples) == s.cfg.MaxExamples {
			break
		}
	}

	return examples
}

func resolveOwner(l *domain.Lesson, observations []domain.Observation) *uuid.UUID {
	for _, o := range observations {
		if o.UserID != nil {
			return o.UserID
		}
	}
	if l.UserID != uuid.Nil {
		id := l.UserID
		return &id
	}
	return nil
}

type featureGroup struct {
	feature      string
	observations []domain.Observation
}

// translation reports whether the whole group measures translation rather
// than grammar production. Mixed groups count as grammar.
func (g featureGroup) translation() bool {
	for _, o := range g.observations {
		if !o.ContextType.IsTranslation() {
			return false
		}
	}
	return true
}

// groupByFeature partitions observations by grammar feature, returning
// groups in alphabetical order for deterministic output.
func groupByFeature(observations []domain.Observation) []featureGroup {
	byFeature := make(map[string][]domain.Observation)
	for _, o := range observations {
		byFeature[o.GrammarFeature] = append(byFeature[o.GrammarFeature], o)
	}

	features := make([]string, 0, len(byFeature))
	for f := range byFeature {
		features = append(features, f)
	}
	sort.Strings(features)

	groups := make([]featureGroup, 0, len(features))
	for _, f := range features {
		groups = append(groups, featureGroup{feature: f, observations: byFeature[f]})
	}
	return groups
}

func summarize(a *domain.LessonAnalysis) string {
	switch {
	case a.GrammarObservations > 0 && a.TranslationObservations > 0:
		return fmt.Sprintf("%d grammar observations at %.0f%% accuracy; %d translation observations at %.0f%% accuracy",
			a.GrammarObservations, a.GrammarAccuracy*100,
			a.TranslationObservations, a.TranslationAccuracy*100)
	case a.TranslationObservations > 0:
		return fmt.Sprintf("%d translation observations at %.0f%% accuracy",
			a.TranslationObservations, a.TranslationAccuracy*100)
	default:
		return fmt.Sprintf("%d grammar observations at %.0f%% accuracy",
			a.GrammarObservations, a.GrammarAccuracy*100)
	}
}
