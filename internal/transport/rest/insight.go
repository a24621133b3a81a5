package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
	"github.com/saifdine/mutaallim-backend/internal/service/insight"
)

// insightService defines the minimal interface needed by InsightHandler.
type insightService interface {
	GetLearningContext(ctx context.Context, userID uuid.UUID) (*domain.LearningContext, error)
	BuildContextPrompt(lc domain.LearningContext) string
}

// InsightHandler serves the learner-context REST endpoints.
type InsightHandler struct {
	svc insightService
	log *slog.Logger
}

// NewInsightHandler creates an InsightHandler.
func NewInsightHandler(svc insightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{svc: svc, log: logger.With("handler", "insight")}
}

type factResponse struct {
	ID               string    `json:"id"`
	Category         string    `json:"category"`
	GrammarFeature   string    `json:"grammarFeature"`
	FactText         string    `json:"factText"`
	ArabicExamples   []string  `json:"arabicExamples,omitempty"`
	ObservationCount int       `json:"observationCount"`
	LastObservedAt   time.Time `json:"lastObservedAt"`
}

type learningContextResponse struct {
	Facts                 []factResponse  `json:"facts"`
	GrammarAccuracy       float64         `json:"grammarAccuracy"`
	TranslationAccuracy   float64         `json:"translationAccuracy"`
	LastLesson            *lessonResponse `json:"lastLesson,omitempty"`
	ContextPrompt         string          `json:"contextPrompt"`
	RecommendedDifficulty int             `json:"recommendedDifficulty"`
}

// GetLearningContext handles GET /api/v1/me/learning-context. It returns the
// active facts, rolling accuracies, and the ready-to-inject prompt block.
func (h *InsightHandler) GetLearningContext(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}

	lc, err := h.svc.GetLearningContext(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := learningContextResponse{
		Facts:                 make([]factResponse, 0, len(lc.Facts)),
		GrammarAccuracy:       lc.Patterns.GrammarAccuracy,
		TranslationAccuracy:   lc.Patterns.TranslationAccuracy,
		ContextPrompt:         h.svc.BuildContextPrompt(*lc),
		RecommendedDifficulty: insight.RecommendDifficulty(*lc),
	}
	for _, f := range lc.Facts {
		resp.Facts = append(resp.Facts, factResponse{
			ID:               f.ID.String(),
			Category:         f.Category.String(),
			GrammarFeature:   f.GrammarFeature,
			FactText:         f.FactText,
			ArabicExamples:   f.ArabicExamples,
			ObservationCount: f.ObservationCount,
			LastObservedAt:   f.LastObservedAt,
		})
	}
	if lc.LastLesson != nil {
		last := toLessonResponse(lc.LastLesson)
		resp.LastLesson = &last
	}

	writeJSON(w, http.StatusOK, resp)
}
