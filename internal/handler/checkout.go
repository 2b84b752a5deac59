package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mwhitlock/wanderguide/internal/auth"
	"github.com/mwhitlock/wanderguide/internal/pass"
	wgstripe "github.com/mwhitlock/wanderguide/internal/stripe"
)

type CheckoutHandler struct {
	stripeClient *wgstripe.Client
	logger       *slog.Logger
}

func NewCheckoutHandler(sc *wgstripe.Client, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{stripeClient: sc, logger: logger}
}

// CreateCheckoutSession handles POST /api/checkout. It returns the hosted
// Stripe checkout URL for the requested pass.
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		PassType string `json:"passType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, err := pass.Parse(req.PassType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pass type")
		return
	}

	url, err := h.stripeClient.CreateCheckoutSession(userID, kind)
	if err != nil {
		h.logger.Error("create checkout session", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
