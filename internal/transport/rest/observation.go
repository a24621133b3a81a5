package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
	"github.com/saifdine/mutaallim-backend/internal/service/observation"
)

// observationService defines the minimal interface needed by ObservationHandler.
type observationService interface {
	Append(ctx context.Context, sessionID uuid.UUID, userID *uuid.UUID, inputs []observation.AppendInput) ([]domain.Observation, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Observation, error)
}

// ObservationHandler serves observation REST endpoints.
type ObservationHandler struct {
	svc observationService
	log *slog.Logger
}

// NewObservationHandler creates an ObservationHandler.
func NewObservationHandler(svc observationService, logger *slog.Logger) *ObservationHandler {
	return &ObservationHandler{svc: svc, log: logger.With("handler", "observation")}
}

type appendObservationsRequest struct {
	Observations []observationRequest `json:"observations"`
}

type observationRequest struct {
	WordID           *uuid.UUID `json:"wordId,omitempty"`
	GrammarFeature   string     `json:"grammarFeature"`
	GrammarValue     string     `json:"grammarValue"`
	PerformanceLevel string     `json:"performanceLevel"`
	ContextType      string     `json:"contextType"`
	StudentAttempt   *string    `json:"studentAttempt,omitempty"`
	CorrectForm      *string    `json:"correctForm,omitempty"`
	ErrorType        *string    `json:"errorType,omitempty"`
}

type observationResponse struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"sessionId"`
	GrammarFeature   string    `json:"grammarFeature"`
	GrammarValue     string    `json:"grammarValue"`
	PerformanceLevel string    `json:"performanceLevel"`
	ContextType      string    `json:"contextType"`
	StudentAttempt   *string   `json:"studentAttempt,omitempty"`
	CorrectForm      *string   `json:"correctForm,omitempty"`
	ErrorType        *string   `json:"errorType,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type observationListResponse struct {
	Observations []observationResponse `json:"observations"`
}

// Append handles POST /api/v1/lessons/{id}/observations.
func (h *ObservationHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req appendObservationsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inputs := make([]observation.AppendInput, 0, len(req.Observations))
	for _, o := range req.Observations {
		inputs = append(inputs, observation.AppendInput{
			WordID:           o.WordID,
			GrammarFeature:   o.GrammarFeature,
			GrammarValue:     o.GrammarValue,
			PerformanceLevel: domain.PerformanceLevel(o.PerformanceLevel),
			ContextType:      domain.ContextType(o.ContextType),
			StudentAttempt:   o.StudentAttempt,
			CorrectForm:      o.CorrectForm,
			ErrorType:        o.ErrorType,
		})
	}

	created, err := h.svc.Append(r.Context(), sessionID, &userID, inputs)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toObservationList(created))
}

// List handles GET /api/v1/lessons/{id}/observations.
func (h *ObservationHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := userFromCtx(w, r); !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	observations, err := h.svc.ListBySession(r.Context(), sessionID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toObservationList(observations))
}

func toObservationList(observations []domain.Observation) observationListResponse {
	resp := observationListResponse{Observations: make([]observationResponse, 0, len(observations))}
	for _, o := range observations {
		resp.Observations = append(resp.Observations, observationResponse{
			ID:               o.ID.String(),
			SessionID:        o.SessionID.String(),
			GrammarFeature:   o.GrammarFeature,
			GrammarValue:     o.GrammarValue,
			PerformanceLevel: o.PerformanceLevel.String(),
			ContextType:      o.ContextType.String(),
			StudentAttempt:   o.StudentAttempt,
			CorrectForm:      o.CorrectForm,
			ErrorType:        o.ErrorType,
			CreatedAt:        o.CreatedAt,
		})
	}
	return resp
}
