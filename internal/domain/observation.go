package domain

import (
	"time"

	"github.com/google/uuid"
)

// Observation is an immutable, append-only fact about one learner utterance,
// produced by the tagged-output parser of the tutoring model. Rows belong to
// the lesson (session) that produced them but outlive it.
type Observation struct {
	ID               uuid.UUID
	SessionID        uuid.UUID
	UserID           *uuid.UUID
	WordID           *uuid.UUID
	GrammarFeature   string
	GrammarValue     string
	PerformanceLevel PerformanceLevel
	ContextType      ContextType
	StudentAttempt   *string
	CorrectForm      *string
	ErrorType        *string
	CreatedAt        time.Time
}

// Successful reports whether the observation counts as a success when
// computing group accuracy: a mastered utterance or an accepted correction.
func (o Observation) Successful() bool {
	return o.PerformanceLevel == PerformanceMastered ||
		o.ContextType == ContextCorrectionAccepted
}
