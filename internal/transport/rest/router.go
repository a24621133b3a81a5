package rest

import (
	"net/http"

	"github.com/saifdine/mutaallim-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Lesson      *LessonHandler
	Observation *ObservationHandler
	Quota       *QuotaHandler
	Insight     *InsightHandler
}

// NewRouter mounts all REST routes. Health probes and auth endpoints are
// public; everything under /api/v1 besides auth requires a valid token.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)

	protected := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(fn)
	}

	mux.Handle("POST /api/v1/lessons", protected(h.Lesson.Start))
	mux.Handle("GET /api/v1/lessons/active", protected(h.Lesson.GetActive))
	mux.Handle("GET /api/v1/lessons/{id}", protected(h.Lesson.Get))
	mux.Handle("POST /api/v1/lessons/{id}/turns", protected(h.Lesson.RecordTurn))
	mux.Handle("POST /api/v1/lessons/{id}/tokens", protected(h.Lesson.ReportTokens))
	mux.Handle("POST /api/v1/lessons/{id}/end", protected(h.Lesson.End))

	mux.Handle("POST /api/v1/lessons/{id}/observations", protected(h.Observation.Append))
	mux.Handle("GET /api/v1/lessons/{id}/observations", protected(h.Observation.List))

	mux.Handle("GET /api/v1/me/quota", protected(h.Quota.Get))
	mux.Handle("GET /api/v1/me/quota/check", protected(h.Quota.Check))
	mux.Handle("GET /api/v1/me/learning-context", protected(h.Insight.GetLearningContext))

	return mux
}
