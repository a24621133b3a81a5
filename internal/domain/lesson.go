package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lesson is one tutoring conversation. Created ACTIVE with zero counters;
// exactly one transition to ENDED is permitted and ending is idempotent.
type Lesson struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	SurahID       int
	LearningMode  LearningMode
	Status        LessonStatus
	StartedAt     time.Time
	EndedAt       *time.Time
	MessagesCount int
	TokensUsed    int
	CreatedAt     time.Time
}

// Ended reports whether the lesson has reached its terminal state.
func (l Lesson) Ended() bool {
	return l.Status == LessonStatusEnded
}
