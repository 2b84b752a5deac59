package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mwhitlock/wanderguide/internal/auth"
	"github.com/mwhitlock/wanderguide/internal/quota"
	"github.com/mwhitlock/wanderguide/internal/store"
)

type MeHandler struct {
	users        *store.UserStore
	entitlements *store.EntitlementStore
	logger       *slog.Logger
}

func NewMeHandler(us *store.UserStore, es *store.EntitlementStore, logger *slog.Logger) *MeHandler {
	return &MeHandler{users: us, entitlements: es, logger: logger}
}

type meResponse struct {
	Email         string     `json:"email"`
	QueriesToday  int        `json:"queriesToday"`
	Remaining     int        `json:"remaining"`
	TotalQueries  int64      `json:"totalQueries"`
	HasActivePass bool       `json:"hasActivePass"`
	PassExpiresAt *time.Time `json:"passExpiresAt,omitempty"`
	IsPremium     bool       `json:"isPremium"`
}

// Me handles GET /api/me: the signed-in user's profile and usage snapshot.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil || user == nil {
		h.logger.Error("get user", "error", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	ent, err := h.entitlements.GetOrCreate(userID)
	if err != nil {
		h.logger.Error("get entitlement", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Unable to load usage")
		return
	}

	now := time.Now()
	resp := meResponse{
		Email:        user.Email,
		TotalQueries: ent.TotalQueries,
		IsPremium:    ent.IsPremium,
	}

	// Report the counter as the client should see it: zero on a new day.
	if ent.LastQueryDate == quota.DateOf(now) {
		resp.QueriesToday = ent.QueriesToday
	}

	// quota.Unlimited for premium users and pass holders, matching the
	// guide response.
	resp.Remaining = quota.Remaining(*ent, now)

	if quota.PassActive(*ent, now) {
		resp.HasActivePass = true
		resp.PassExpiresAt = ent.PassExpiresAt
	}

	writeJSON(w, http.StatusOK, resp)
}
