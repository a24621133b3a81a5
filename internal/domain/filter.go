package domain

import "github.com/google/uuid"

// ObservationFilter contains filtering parameters for observation queries.
// Nil fields are ignored; set fields are ANDed.
type ObservationFilter struct {
	SessionID        *uuid.UUID
	UserID           *uuid.UUID
	GrammarFeature   *string
	PerformanceLevel *PerformanceLevel
	Limit            int
}
