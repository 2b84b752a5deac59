package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mwhitlock/wanderguide/internal/email"
	"github.com/mwhitlock/wanderguide/internal/middleware"
	"github.com/mwhitlock/wanderguide/internal/store"
)

type AuthHandler struct {
	users      *store.UserStore
	sessions   *store.SessionStore
	magicLinks *store.MagicLinkStore
	email      *email.Client
	logger     *slog.Logger
}

func NewAuthHandler(us *store.UserStore, ss *store.SessionStore, mls *store.MagicLinkStore, ec *email.Client, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:      us,
		sessions:   ss,
		magicLinks: mls,
		email:      ec,
		logger:     logger,
	}
}

// Login handles POST /api/auth/login. It always answers 200 with the same
// body so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	addr := strings.ToLower(strings.TrimSpace(req.Email))
	if addr == "" || !strings.Contains(addr, "@") {
		writeError(w, http.StatusBadRequest, "A valid email address is required")
		return
	}

	link, err := h.magicLinks.Create(addr)
	if err != nil {
		h.logger.Error("create magic link", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to process request")
		return
	}

	if h.email != nil && h.email.Configured() {
		if err := h.email.SendMagicLink(addr, link.Token); err != nil {
			h.logger.Error("send magic link", "error", err)
		}
	} else {
		h.logger.Info("magic link token generated", "email", addr, "token", link.Token)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Check your email for a sign-in link",
	})
}

// Verify handles GET /auth/verify. It is browser facing: success sets the
// session cookie and redirects to the app.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, "/?auth=invalid", http.StatusSeeOther)
		return
	}

	link, err := h.magicLinks.GetByToken(token)
	if err != nil || link == nil {
		http.Redirect(w, r, "/?auth=invalid", http.StatusSeeOther)
		return
	}

	if err := h.magicLinks.MarkUsed(link.ID); err != nil {
		h.logger.Error("mark magic link used", "error", err)
		http.Redirect(w, r, "/?auth=invalid", http.StatusSeeOther)
		return
	}

	user, err := h.users.GetByEmail(link.Email)
	if err != nil {
		h.logger.Error("get user", "error", err)
		http.Redirect(w, r, "/?auth=error", http.StatusSeeOther)
		return
	}
	if user == nil {
		user, err = h.users.Create(link.Email)
		if err != nil {
			h.logger.Error("create user", "error", err)
			http.Redirect(w, r, "/?auth=error", http.StatusSeeOther)
			return
		}
	}

	sess, err := h.sessions.Create(user.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		http.Redirect(w, r, "/?auth=error", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   90 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if sess, err := h.sessions.GetByToken(cookie.Value); err == nil && sess != nil {
			if err := h.sessions.Delete(sess.ID); err != nil {
				h.logger.Error("delete session", "error", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}
