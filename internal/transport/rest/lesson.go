package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
	"github.com/saifdine/mutaallim-backend/internal/service/lesson"
)

// lessonService defines the minimal interface needed by LessonHandler.
type lessonService interface {
	Start(ctx context.Context, userID uuid.UUID, in lesson.StartInput) (*domain.Lesson, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error)
	GetByID(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Lesson, error)
	RecordTurn(ctx context.Context, userID, lessonID uuid.UUID, tokens int) (*lesson.TurnResult, error)
	ReportTokens(ctx context.Context, userID, lessonID uuid.UUID, tokens int) (*lesson.TurnResult, error)
	End(ctx context.Context, userID, lessonID uuid.UUID) (*lesson.EndResult, error)
}

// LessonHandler serves lesson REST endpoints.
type LessonHandler struct {
	svc lessonService
	log *slog.Logger
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(svc lessonService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{svc: svc, log: logger.With("handler", "lesson")}
}

type startLessonRequest struct {
	SurahID      int    `json:"surahId"`
	LearningMode string `json:"learningMode"`
}

type recordTurnRequest struct {
	Tokens int `json:"tokens"`
}

type lessonResponse struct {
	ID            string     `json:"id"`
	SurahID       int        `json:"surahId"`
	LearningMode  string     `json:"learningMode"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"startedAt"`
	EndedAt       *time.Time `json:"endedAt,omitempty"`
	MessagesCount int        `json:"messagesCount"`
	TokensUsed    int        `json:"tokensUsed"`
}

type turnResponse struct {
	Lesson lessonResponse `json:"lesson"`
	Quota  quotaResponse  `json:"quota"`
}

type endLessonResponse struct {
	Lesson   lessonResponse `json:"lesson"`
	EndedNow bool           `json:"endedNow"`
	// Summary is present only when this call closed the lesson and its
	// observations produced an analysis.
	Summary *analysisResponse `json:"summary,omitempty"`
}

type analysisResponse struct {
	PerformanceSummary  string  `json:"performanceSummary"`
	FactsExtracted      int     `json:"factsExtracted"`
	GrammarAccuracy     float64 `json:"grammarAccuracy"`
	TranslationAccuracy float64 `json:"translationAccuracy"`
}

// Start handles POST /api/v1/lessons.
func (h *LessonHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}

	var req startLessonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.svc.Start(r.Context(), userID, lesson.StartInput{
		SurahID:      req.SurahID,
		LearningMode: domain.LearningMode(req.LearningMode),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLessonResponse(l))
}

// GetActive handles GET /api/v1/lessons/active.
func (h *LessonHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}

	l, err := h.svc.GetActive(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLessonResponse(l))
}

// Get handles GET /api/v1/lessons/{id}.
func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}
	lessonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	l, err := h.svc.GetByID(r.Context(), userID, lessonID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLessonResponse(l))
}

// RecordTurn handles POST /api/v1/lessons/{id}/turns.
func (h *LessonHandler) RecordTurn(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}
	lessonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req recordTurnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.RecordTurn(r.Context(), userID, lessonID, req.Tokens)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, turnResponse{
		Lesson: toLessonResponse(result.Lesson),
		Quota:  toQuotaResponse(result.Quota),
	})
}

// ReportTokens handles POST /api/v1/lessons/{id}/tokens. The conversation
// layer reports a model call's actual token cost here once the response has
// landed; unlike a turn, this never consumes a message.
func (h *LessonHandler) ReportTokens(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}
	lessonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req recordTurnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ReportTokens(r.Context(), userID, lessonID, req.Tokens)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, turnResponse{
		Lesson: toLessonResponse(result.Lesson),
		Quota:  toQuotaResponse(result.Quota),
	})
}

// End handles POST /api/v1/lessons/{id}/end.
func (h *LessonHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}
	lessonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.svc.End(r.Context(), userID, lessonID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := endLessonResponse{
		Lesson:   toLessonResponse(result.Lesson),
		EndedNow: result.EndedNow,
	}
	if result.Analysis != nil {
		resp.Summary = &analysisResponse{
			PerformanceSummary:  result.Analysis.PerformanceSummary,
			FactsExtracted:      len(result.Analysis.ExtractedFacts),
			GrammarAccuracy:     result.Analysis.GrammarAccuracy,
			TranslationAccuracy: result.Analysis.TranslationAccuracy,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func toLessonResponse(l *domain.Lesson) lessonResponse {
	return lessonResponse{
		ID:            l.ID.String(),
		SurahID:       l.SurahID,
		LearningMode:  l.LearningMode.String(),
		Status:        l.Status.String(),
		StartedAt:     l.StartedAt,
		EndedAt:       l.EndedAt,
		MessagesCount: l.MessagesCount,
		TokensUsed:    l.TokensUsed,
	}
}
