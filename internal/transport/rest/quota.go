package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// quotaService defines the minimal interface needed by QuotaHandler.
type quotaService interface {
	GetQuotaInfo(ctx context.Context, userID uuid.UUID) (domain.QuotaInfo, error)
	CanSendMessage(ctx context.Context, userID uuid.UUID) (domain.QuotaDecision, error)
}

// QuotaHandler serves quota REST endpoints.
type QuotaHandler struct {
	svc quotaService
	log *slog.Logger
}

// NewQuotaHandler creates a QuotaHandler.
func NewQuotaHandler(svc quotaService, logger *slog.Logger) *QuotaHandler {
	return &QuotaHandler{svc: svc, log: logger.With("handler", "quota")}
}

type quotaResponse struct {
	Tier              string    `json:"tier"`
	MessageQuota      int       `json:"messageQuota"`
	MessagesUsed      int       `json:"messagesUsed"`
	MessagesRemaining int       `json:"messagesRemaining"`
	TokenQuota        int       `json:"tokenQuota"`
	TokensUsed        int       `json:"tokensUsed"`
	TokensRemaining   int       `json:"tokensRemaining"`
	ResetAt           time.Time `json:"resetAt"`
}

type quotaCheckResponse struct {
	CanSend bool   `json:"canSend"`
	Reason  string `json:"reason,omitempty"`
}

// Get handles GET /api/v1/me/quota.
func (h *QuotaHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}

	info, err := h.svc.GetQuotaInfo(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toQuotaResponse(info))
}

// Check handles GET /api/v1/me/quota/check. A cheap pre-send probe: it never
// consumes budget.
func (h *QuotaHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(w, r)
	if !ok {
		return
	}

	decision, err := h.svc.CanSendMessage(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quotaCheckResponse{
		CanSend: decision.CanSend,
		Reason:  decision.Reason.String(),
	})
}

func toQuotaResponse(info domain.QuotaInfo) quotaResponse {
	return quotaResponse{
		Tier:              info.Tier.String(),
		MessageQuota:      info.MessageQuota,
		MessagesUsed:      info.MessagesUsed,
		MessagesRemaining: info.MessagesRemaining,
		TokenQuota:        info.TokenQuota,
		TokensUsed:        info.TokensUsed,
		TokensRemaining:   info.TokensRemaining,
		ResetAt:           info.ResetAt,
	}
}
