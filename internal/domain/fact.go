package domain

import (
	"time"

	"github.com/google/uuid"
)

// LearnerFact is a durable, reconciled statement about a learner's strengths
// and struggles. Facts are never hard-deleted: when the evidence no longer
// supports a struggle it is deactivated and kept for history.
type LearnerFact struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Category         FactCategory
	GrammarFeature   string
	FactText         string
	ArabicExamples   []string
	ObservationCount int
	Active           bool
	LastObservedAt   time.Time
	// LastLessonID guards reconciliation: a fact is reinforced at most once
	// per lesson, making repeated merges idempotent.
	LastLessonID *uuid.UUID
	CreatedAt    time.Time
}

// FactKey is the reconciliation matching key.
type FactKey struct {
	Category       FactCategory
	GrammarFeature string
}

// Key returns the fact's reconciliation key.
func (f LearnerFact) Key() FactKey {
	return FactKey{Category: f.Category, GrammarFeature: f.GrammarFeature}
}

// FactCandidate is a not-yet-persisted fact derived from one lesson's
// observations.
type FactCandidate struct {
	Category       FactCategory
	GrammarFeature string
	FactText       string
	ArabicExamples []string
}

// Key returns the candidate's reconciliation key.
func (c FactCandidate) Key() FactKey {
	return FactKey{Category: c.Category, GrammarFeature: c.GrammarFeature}
}

// FeatureAccuracy is the per-group evidence computed for one lesson.
type FeatureAccuracy struct {
	GrammarFeature string
	Observations   int
	Successes      int
	Accuracy       float64
	Translation    bool
}

// LessonAnalysis is the transient result of analyzing one ended lesson.
// It is never persisted: candidates flow straight into the reconciler.
type LessonAnalysis struct {
	LessonID uuid.UUID
	// UserID is nil when neither the observations nor the caller could
	// resolve an owner; callers must check it before persisting facts.
	UserID                  *uuid.UUID
	PerformanceSummary      string
	ExtractedFacts          []FactCandidate
	FeatureStats            []FeatureAccuracy
	GrammarObservations     int
	TranslationObservations int
	GrammarAccuracy         float64
	TranslationAccuracy     float64
}

// MergeResult summarizes one reconciliation pass.
type MergeResult struct {
	Created     int
	Reinforced  int
	Deactivated int
}

// PerformancePatterns are rolling accuracies over the learner's most recent
// observation window, expressed as percentages (0–100).
type PerformancePatterns struct {
	GrammarAccuracy     float64
	TranslationAccuracy float64
}

// LearningContext is everything the prompt compiler needs to personalize the
// next session. Plain data: no store or network access behind it.
type LearningContext struct {
	Facts      []LearnerFact
	Patterns   PerformancePatterns
	LastLesson *Lesson
}
