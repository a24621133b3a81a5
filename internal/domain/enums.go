package domain

// Tier is the subscription level that determines weekly quotas.
type Tier string

const (
	TierFree Tier = "free"
	TierPlus Tier = "plus"
	TierPro  Tier = "pro"
)

func (t Tier) String() string { return string(t) }

func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierPlus, TierPro:
		return true
	}
	return false
}

// QuotaLimit names the weekly limit that was (or would be) breached.
type QuotaLimit string

const (
	QuotaLimitMessages QuotaLimit = "messages"
	QuotaLimitTokens   QuotaLimit = "tokens"
)

func (l QuotaLimit) String() string { return string(l) }

// LearningMode selects what a lesson focuses on.
type LearningMode string

const (
	LearningModeGrammar     LearningMode = "grammar"
	LearningModeTranslation LearningMode = "translation"
	LearningModeMix         LearningMode = "mix"
)

func (m LearningMode) String() string { return string(m) }

func (m LearningMode) IsValid() bool {
	switch m {
	case LearningModeGrammar, LearningModeTranslation, LearningModeMix:
		return true
	}
	return false
}

// LessonStatus represents the lifecycle state of a lesson.
// A lesson is created ACTIVE and transitions to ENDED exactly once.
type LessonStatus string

const (
	LessonStatusActive LessonStatus = "ACTIVE"
	LessonStatusEnded  LessonStatus = "ENDED"
)

func (s LessonStatus) String() string { return string(s) }

func (s LessonStatus) IsValid() bool {
	switch s {
	case LessonStatusActive, LessonStatusEnded:
		return true
	}
	return false
}

// PerformanceLevel grades a single learner utterance.
type PerformanceLevel string

const (
	PerformanceMastered   PerformanceLevel = "mastered"
	PerformanceEmerging   PerformanceLevel = "emerging"
	PerformanceStruggling PerformanceLevel = "struggling"
)

func (p PerformanceLevel) String() string { return string(p) }

func (p PerformanceLevel) IsValid() bool {
	switch p {
	case PerformanceMastered, PerformanceEmerging, PerformanceStruggling:
		return true
	}
	return false
}

// ContextType describes how an observation was produced.
type ContextType string

const (
	ContextProduction         ContextType = "production"
	ContextCorrectionAccepted ContextType = "correction_accepted"
	ContextCorrectionRejected ContextType = "correction_rejected"
	ContextIdentification     ContextType = "identification"
)

func (c ContextType) String() string { return string(c) }

func (c ContextType) IsValid() bool {
	switch c {
	case ContextProduction, ContextCorrectionAccepted,
		ContextCorrectionRejected, ContextIdentification:
		return true
	}
	return false
}

// IsTranslation reports whether the observation counts toward translation
// performance. Identification (recognizing meaning) measures translation;
// production and correction outcomes measure grammar production.
func (c ContextType) IsTranslation() bool {
	return c == ContextIdentification
}

// FactCategory classifies a learner fact.
type FactCategory string

const (
	FactCategoryStruggle FactCategory = "STRUGGLE"
	FactCategoryStrength FactCategory = "STRENGTH"
)

func (c FactCategory) String() string { return string(c) }

func (c FactCategory) IsValid() bool {
	switch c {
	case FactCategoryStruggle, FactCategoryStrength:
		return true
	}
	return false
}
