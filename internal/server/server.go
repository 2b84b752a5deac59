// Package server wires the stores, collaborator clients, and handlers into
// an http.Handler.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mwhitlock/wanderguide/internal/config"
	"github.com/mwhitlock/wanderguide/internal/email"
	"github.com/mwhitlock/wanderguide/internal/geocode"
	"github.com/mwhitlock/wanderguide/internal/guide"
	"github.com/mwhitlock/wanderguide/internal/handler"
	"github.com/mwhitlock/wanderguide/internal/imagesearch"
	"github.com/mwhitlock/wanderguide/internal/middleware"
	"github.com/mwhitlock/wanderguide/internal/openai"
	"github.com/mwhitlock/wanderguide/internal/store"
	wgstripe "github.com/mwhitlock/wanderguide/internal/stripe"
)

type Server struct {
	db         *sql.DB
	sessions   *store.SessionStore
	magicLinks *store.MagicLinkStore

	guideH      *handler.GuideHandler
	checkoutH   *handler.CheckoutHandler
	webhookH    *handler.WebhookHandler
	authH       *handler.AuthHandler
	charactersH *handler.CharactersHandler
	meH         *handler.MeHandler

	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	users := store.NewUserStore(db)
	sessions := store.NewSessionStore(db)
	magicLinks := store.NewMagicLinkStore(db)
	entitlements := store.NewEntitlementStore(db)
	purchases := store.NewPurchaseStore(db)

	openaiClient := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	images := imagesearch.NewClient(cfg.UnsplashAccessKey)
	geocoder := geocode.NewClient()
	emailClient := email.NewClient(cfg.PostmarkToken, cfg.FromEmail, cfg.BaseURL)

	var stripeClient *wgstripe.Client
	if cfg.StripeSecretKey != "" {
		stripeClient = wgstripe.NewClient(wgstripe.Config{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
			SuccessURL:    cfg.BaseURL + "/?purchase=success&session_id={CHECKOUT_SESSION_ID}",
			CancelURL:     cfg.BaseURL + "/?purchase=cancelled",
		})
	}

	guideSvc := guide.NewService(entitlements, openaiClient, images, geocoder, logger.With("component", "guide"))

	s := &Server{
		db:          db,
		sessions:    sessions,
		magicLinks:  magicLinks,
		guideH:      handler.NewGuideHandler(guideSvc, logger.With("component", "guide")),
		authH:       handler.NewAuthHandler(users, sessions, magicLinks, emailClient, logger.With("component", "auth")),
		charactersH: handler.NewCharactersHandler(),
		meH:         handler.NewMeHandler(users, entitlements, logger.With("component", "me")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}

	if stripeClient != nil {
		s.checkoutH = handler.NewCheckoutHandler(stripeClient, logger.With("component", "checkout"))
		s.webhookH = handler.NewWebhookHandler(stripeClient, purchases, entitlements, logger.With("component", "webhook"))
	}

	return s
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessions
}

// MagicLinkStore returns the magic link store for cleanup tasks.
func (s *Server) MagicLinkStore() *store.MagicLinkStore {
	return s.magicLinks
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthCheck)
	mux.HandleFunc("GET /api/characters", s.charactersH.List)

	// Auth routes (public, login rate-limited)
	mux.Handle("POST /api/auth/login", s.rateLimited(s.authH.Login, 5, time.Minute))
	mux.HandleFunc("GET /auth/verify", s.authH.Verify)

	// Stripe webhook (public, signature-verified)
	if s.webhookH != nil {
		mux.HandleFunc("POST /webhooks/stripe", s.webhookH.HandleStripeWebhook)
	}

	// The guide endpoint serves anonymous visitors too; a valid session
	// just attaches the user for quota tracking.
	optionalAuth := middleware.OptionalAuth(s.sessions)
	mux.Handle("POST /api/guide", optionalAuth(s.rateLimited(s.guideH.Respond, 20, time.Minute)))

	requireAuth := middleware.RequireAuth(s.sessions)
	mux.Handle("GET /api/me", requireAuth(http.HandlerFunc(s.meH.Me)))
	mux.Handle("POST /api/auth/logout", requireAuth(http.HandlerFunc(s.authH.Logout)))
	if s.checkoutH != nil {
		mux.Handle("POST /api/checkout", requireAuth(http.HandlerFunc(s.checkoutH.CreateCheckoutSession)))
	}

	var root http.Handler = mux
	root = middleware.RequestLogger(s.logger)(root)
	root = middleware.RequestID(root)
	return root
}

func (s *Server) rateLimited(h http.HandlerFunc, limit int, window time.Duration) http.Handler {
	return middleware.RateLimit(s.rateLimiter, middleware.RealIP, limit, window)(h)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
