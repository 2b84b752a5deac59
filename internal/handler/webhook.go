package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	stripe "github.com/stripe/stripe-go/v82"

	"github.com/mwhitlock/wanderguide/internal/pass"
	"github.com/mwhitlock/wanderguide/internal/quota"
	"github.com/mwhitlock/wanderguide/internal/store"
	wgstripe "github.com/mwhitlock/wanderguide/internal/stripe"
)

type WebhookHandler struct {
	stripeClient *wgstripe.Client
	purchases    *store.PurchaseStore
	entitlements *store.EntitlementStore
	logger       *slog.Logger
}

func NewWebhookHandler(sc *wgstripe.Client, ps *store.PurchaseStore, es *store.EntitlementStore, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		stripeClient: sc,
		purchases:    ps,
		entitlements: es,
		logger:       logger,
	}
}

// HandleStripeWebhook handles POST /webhooks/stripe. Store failures answer
// 500 so Stripe redelivers the event; only a processed (or unprocessable)
// event is acknowledged with 200.
func (h *WebhookHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 65536))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	event, err := h.stripeClient.ConstructWebhookEvent(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		if err := h.handleCheckoutCompleted(event); err != nil {
			h.logger.Error("handle checkout completed", "error", err)
			http.Error(w, "webhook processing failed", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

// handleCheckoutCompleted grants the purchased pass. The entitlement is
// updated before the audit row is written: if the insert fails, the 500
// answer makes Stripe redeliver, and re-granting a pass is harmless
// (purchase grants overwrite the expiry). A malformed event returns nil,
// since redelivery cannot fix its payload.
func (h *WebhookHandler) handleCheckoutCompleted(event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		h.logger.Error("unmarshal checkout session", "error", err)
		return nil
	}

	userID, err := strconv.ParseInt(sess.Metadata["user_id"], 10, 64)
	if err != nil || userID == 0 {
		h.logger.Error("checkout session missing user_id metadata", "session_id", sess.ID)
		return nil
	}

	kind, err := pass.Parse(sess.Metadata["type"])
	if err != nil {
		h.logger.Error("checkout session has unknown pass type", "session_id", sess.ID, "type", sess.Metadata["type"])
		return nil
	}

	now := time.Now().UTC()
	expiresAt := now.Add(kind.Duration())

	existing, err := h.purchases.GetBySessionID(sess.ID)
	if err != nil {
		return fmt.Errorf("look up purchase: %w", err)
	}
	if existing != nil {
		// Duplicate delivery. Skip only when the pass actually made it to
		// the entitlement; otherwise an earlier delivery recorded the
		// purchase but died before granting, and this one heals it.
		ent, err := h.entitlements.Get(userID)
		if err != nil {
			return fmt.Errorf("load entitlement: %w", err)
		}
		if ent != nil && quota.PassActive(*ent, now) {
			h.logger.Info("ignoring duplicate checkout webhook", "session_id", sess.ID)
			return nil
		}
		if err := h.entitlements.ApplyPass(userID, expiresAt); err != nil {
			return fmt.Errorf("apply pass on redelivery: %w", err)
		}
		h.logger.Info("pass granted on redelivery",
			"user_id", userID,
			"pass_type", string(kind),
			"session_id", sess.ID)
		return nil
	}

	if err := h.entitlements.ApplyPass(userID, expiresAt); err != nil {
		return fmt.Errorf("apply pass: %w", err)
	}

	if _, _, err := h.purchases.Record(userID, string(kind), kind.PricePence(), sess.ID); err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}

	h.logger.Info("pass granted",
		"user_id", userID,
		"pass_type", string(kind),
		"expires_at", expiresAt,
		"session_id", sess.ID)
	return nil
}
