// Package guide orchestrates a tour guide exchange: quota gating, prompt
// assembly, model generation, directive extraction, and image resolution.
package guide

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mwhitlock/wanderguide/internal/character"
	"github.com/mwhitlock/wanderguide/internal/directive"
	"github.com/mwhitlock/wanderguide/internal/openai"
	"github.com/mwhitlock/wanderguide/internal/quota"
	"github.com/mwhitlock/wanderguide/internal/store"
)

// ErrUnknownCharacter is returned when the requested character ID does not
// exist.
var ErrUnknownCharacter = errors.New("unknown character")

// QuotaExceededError is returned when a free-tier user has used all of
// today's queries.
type QuotaExceededError struct {
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily limit of %d queries reached", e.Limit)
}

// Generator produces a guide response from a prompt.
type Generator interface {
	Generate(ctx context.Context, req openai.Request) (string, error)
}

// ImageSearcher resolves image search terms to photo URLs.
type ImageSearcher interface {
	Resolve(ctx context.Context, terms []string, perPage int) ([]string, error)
}

// Geocoder turns coordinates into a display address.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// Location is the client's reported position. Address is optional and is
// reverse geocoded when absent.
type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// Request is one guide exchange. UserID of 0 means anonymous; anonymous
// requests are not quota gated.
type Request struct {
	UserID       int64
	Message      string
	CharacterID  string
	Location     *Location
	ImageDataURL string
}

// Response is the assembled guide answer. Remaining is quota.Unlimited for
// anonymous users, premium users, and active pass holders.
type Response struct {
	Text      string
	Maps      []directive.Map
	Images    []string
	Character *character.Character
	Remaining int
}

type Service struct {
	entitlements *store.EntitlementStore
	generator    Generator
	images       ImageSearcher
	geocoder     Geocoder
	logger       *slog.Logger
	now          func() time.Time
}

func NewService(entitlements *store.EntitlementStore, generator Generator, images ImageSearcher, geocoder Geocoder, logger *slog.Logger) *Service {
	return &Service{
		entitlements: entitlements,
		generator:    generator,
		images:       images,
		geocoder:     geocoder,
		logger:       logger,
		now:          time.Now,
	}
}

// usageAttempts bounds the optimistic update loop when two requests for the
// same user race on the usage counter.
const usageAttempts = 3

// Respond runs one full guide exchange. The usage counter is consumed before
// generation, so a failed model call does not refund the query.
func (s *Service) Respond(ctx context.Context, req Request) (*Response, error) {
	persona := character.Default()
	if req.CharacterID != "" {
		persona = character.Get(req.CharacterID)
		if persona == nil {
			return nil, ErrUnknownCharacter
		}
	}

	remaining := quota.Unlimited
	if req.UserID != 0 {
		var err error
		remaining, err = s.consumeQuota(req.UserID)
		if err != nil {
			return nil, err
		}
	}

	message := req.Message
	if message == "" && req.ImageDataURL != "" {
		message = "What can you tell me about this?"
	}

	text, err := s.generator.Generate(ctx, openai.Request{
		System:       s.systemPrompt(ctx, persona, req.Location, req.ImageDataURL != ""),
		Message:      message,
		ImageDataURL: req.ImageDataURL,
	})
	if err != nil {
		return nil, fmt.Errorf("generate response: %w", err)
	}

	ext := directive.Extract(text)

	var images []string
	if len(ext.Images) > 0 && s.images != nil {
		terms := make([]string, 0, len(ext.Images))
		for _, img := range ext.Images {
			terms = append(terms, img.SearchTerm)
		}
		urls, err := s.images.Resolve(ctx, terms, 2)
		if err != nil {
			// Image lookups are best effort; the fallback URLs still render.
			s.logger.Warn("image search failed", "error", err)
		}
		images = urls
	}

	return &Response{
		Text:      ext.DisplayText,
		Maps:      ext.Maps,
		Images:    images,
		Character: persona,
		Remaining: remaining,
	}, nil
}

// consumeQuota evaluates and persists usage for the user, retrying on
// concurrent-update conflicts. Returns the remaining free queries, or
// quota.Unlimited.
func (s *Service) consumeQuota(userID int64) (int, error) {
	now := s.now()
	for i := 0; i < usageAttempts; i++ {
		ent, err := s.entitlements.GetOrCreate(userID)
		if err != nil {
			return 0, fmt.Errorf("load entitlement: %w", err)
		}

		res := quota.Evaluate(*ent, now)
		if !res.Allowed {
			return 0, &QuotaExceededError{Limit: quota.FreeDailyLimit}
		}

		ok, err := s.entitlements.UpdateUsage(userID, res.Updated, ent.QueriesToday, ent.LastQueryDate)
		if err != nil {
			return 0, fmt.Errorf("persist usage: %w", err)
		}
		if ok {
			return quota.Remaining(res.Updated, now), nil
		}
		// Another request updated the counter first; re-read and retry.
	}
	return 0, fmt.Errorf("could not persist usage for user %d after %d attempts", userID, usageAttempts)
}

func (s *Service) systemPrompt(ctx context.Context, persona *character.Character, loc *Location, hasImage bool) string {
	locationLine := "- No location provided"
	if loc != nil {
		address := loc.Address
		if address == "" && s.geocoder != nil {
			if resolved, err := s.geocoder.Reverse(ctx, loc.Latitude, loc.Longitude); err == nil {
				address = resolved
			} else {
				s.logger.Debug("reverse geocode failed", "error", err)
			}
		}
		if address == "" {
			address = "address unknown"
		}
		locationLine = fmt.Sprintf("- User's current location: %s, %s (%s)",
			strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
			strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
			address)
	}

	imageLine := ""
	if hasImage {
		imageLine = "- User has shared a photo for you to identify and discuss"
	}

	var b strings.Builder
	b.WriteString(persona.SystemPrompt)
	b.WriteString("\n\nIMPORTANT CONTEXT:\n")
	b.WriteString(locationLine)
	b.WriteString("\n")
	b.WriteString(imageLine)
	b.WriteString(`

MAPS FEATURE:
When suggesting places to visit, you can include map links that will open in the user's maps app.
Use this format: [[MAP:Place Name:latitude:longitude]]
Example: [[MAP:Tower of London:51.5081:-0.0759]]

The app will render these as tappable "Navigate" buttons. Include 1-3 map links when recommending specific places.

IMAGE FEATURE:
To include relevant images in your response, use this format: [[IMG:search term]]
Example: [[IMG:Tower of London]] or [[IMG:Big Ben sunset]]

Include 1-2 image tokens when describing notable places or landmarks. This helps make your responses more visual and engaging.

Respond naturally and helpfully. Keep responses concise but informative (2-4 paragraphs typically). If you can identify a specific location from the image or coordinates, do so with confidence.`)
	return b.String()
}
