package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mwhitlock/wanderguide/internal/database"
	"github.com/mwhitlock/wanderguide/internal/middleware"
	"github.com/mwhitlock/wanderguide/internal/store"
)

func setupAuthHandler(t *testing.T) (*AuthHandler, *store.UserStore, *store.SessionStore, *store.MagicLinkStore, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	sessions := store.NewSessionStore(db)
	magicLinks := store.NewMagicLinkStore(db)
	h := NewAuthHandler(users, sessions, magicLinks, nil, slog.New(slog.DiscardHandler))
	return h, users, sessions, magicLinks, db
}

func TestLoginCreatesMagicLink(t *testing.T) {
	h, _, _, _, db := setupAuthHandler(t)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"Alice@Example.com "}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Check your email") {
		t.Errorf("body = %s", rec.Body.String())
	}

	// The email is normalized before the link is created.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM magic_links WHERE email = 'alice@example.com'`).Scan(&count); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if count != 1 {
		t.Errorf("magic links = %d, want 1", count)
	}
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	h, _, _, _, _ := setupAuthHandler(t)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestVerifyCreatesSessionAndCookie(t *testing.T) {
	h, users, _, magicLinks, _ := setupAuthHandler(t)

	link, err := magicLinks.Create("alice@example.com")
	if err != nil {
		t.Fatalf("create magic link: %v", err)
	}

	req := httptest.NewRequest("GET", "/auth/verify?token="+link.Token, nil)
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect = %q", loc)
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("session cookie not set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie should be http-only")
	}

	// The user account was created on first sign-in.
	user, err := users.GetByEmail("alice@example.com")
	if err != nil || user == nil {
		t.Fatalf("user not created: %v %v", user, err)
	}
}

func TestVerifyTokenSingleUse(t *testing.T) {
	h, _, _, magicLinks, _ := setupAuthHandler(t)

	link, err := magicLinks.Create("bob@example.com")
	if err != nil {
		t.Fatalf("create magic link: %v", err)
	}

	req := httptest.NewRequest("GET", "/auth/verify?token="+link.Token, nil)
	h.Verify(httptest.NewRecorder(), req)

	// Second use of the same token must fail.
	rec := httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest("GET", "/auth/verify?token="+link.Token, nil))
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "auth=invalid") {
		t.Errorf("redirect = %q, want invalid-link redirect", loc)
	}
}

func TestVerifyBadToken(t *testing.T) {
	h, _, _, _, _ := setupAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest("GET", "/auth/verify?token=bogus", nil))
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "auth=invalid") {
		t.Errorf("redirect = %q", loc)
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	h, users, sessions, _, _ := setupAuthHandler(t)

	user, err := users.Create("carol@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	sess, err := sessions.Create(user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sess.Token})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	got, err := sessions.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got != nil {
		t.Error("session should be deleted after logout")
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie should be cleared")
	}
}
