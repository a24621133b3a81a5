package observation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// AppendInput is one observation to append, as reported by the conversation
// layer.
type AppendInput struct {
	WordID           *uuid.UUID
	GrammarFeature   string
	GrammarValue     string
	PerformanceLevel domain.PerformanceLevel
	ContextType      domain.ContextType
	StudentAttempt   *string
	CorrectForm      *string
	ErrorType        *string
}

// Append validates and persists a batch of observations for one lesson
// session. All-or-nothing: one invalid entry rejects the whole batch before
// any write, and the insert itself runs in a single transaction.
func (s *Service) Append(ctx context.Context, sessionID uuid.UUID, userID *uuid.UUID, inputs []AppendInput) ([]domain.Observation, error) {
	if len(inputs) == 0 {
		return []domain.Observation{}, nil
	}
	if len(inputs) > MaxBatchSize {
		return nil, domain.NewValidationError("observations",
			fmt.Sprintf("batch exceeds %d entries", MaxBatchSize))
	}
	if sessionID == uuid.Nil {
		return nil, domain.NewValidationError("session_id", "required")
	}

	var fields []domain.FieldError
	for i, in := range inputs {
		fields = append(fields, validateInput(i, in)...)
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationErrors(fields)
	}

	now := s.now().UTC()
	observations := make([]domain.Observation, 0, len(inputs))
	for _, in := range inputs {
		observations = append(observations, domain.Observation{
			ID:               uuid.New(),
			SessionID:        sessionID,
			UserID:           userID,
			WordID:           in.WordID,
			GrammarFeature:   strings.TrimSpace(in.GrammarFeature),
			GrammarValue:     strings.TrimSpace(in.GrammarValue),
			PerformanceLevel: in.PerformanceLevel,
			ContextType:      in.ContextType,
			StudentAttempt:   in.StudentAttempt,
			CorrectForm:      in.CorrectForm,
			ErrorType:        in.ErrorType,
			CreatedAt:        now,
		})
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.observations.InsertBatch(ctx, observations)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "observations appended",
		"session_id", sessionID, "count", len(observations))
	return observations, nil
}

func validateInput(i int, in AppendInput) []domain.FieldError {
	var fields []domain.FieldError

	field := func(name string) string {
		return fmt.Sprintf("observations[%d].%s", i, name)
	}

	if strings.TrimSpace(in.GrammarFeature) == "" {
		fields = append(fields, domain.FieldError{Field: field("grammar_feature"), Message: "required"})
	}
	if strings.TrimSpace(in.GrammarValue) == "" {
		fields = append(fields, domain.FieldError{Field: field("grammar_value"), Message: "required"})
	}
	if !in.PerformanceLevel.IsValid() {
		fields = append(fields, domain.FieldError{
			Field:   field("performance_level"),
			Message: "must be one of: mastered, emerging, struggling",
		})
	}
	if !in.ContextType.IsValid() {
		fields = append(fields, domain.FieldError{
			Field:   field("context_type"),
			Message: "must be one of: production, correction_accepted, correction_rejected, identification",
		})
	}

	return fields
}
