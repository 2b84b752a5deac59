package middleware

import (
	"net/http"

	"github.com/mwhitlock/wanderguide/internal/auth"
	"github.com/mwhitlock/wanderguide/internal/store"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "wanderguide_session"

// RequireAuth validates the session cookie and puts the user ID in context.
// Unauthenticated requests get a JSON 401.
func RequireAuth(sessions *store.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			sess, err := sessions.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				unauthorized(w)
				return
			}

			ctx := auth.WithUserID(r.Context(), sess.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the user ID in context when a valid session cookie
// is present, and lets the request through anonymously otherwise.
func OptionalAuth(sessions *store.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				if sess, err := sessions.GetByToken(cookie.Value); err == nil && sess != nil {
					r = r.WithContext(auth.WithUserID(r.Context(), sess.UserID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Authentication required"}`))
}
