package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mwhitlock/wanderguide/internal/auth"
	"github.com/mwhitlock/wanderguide/internal/directive"
	"github.com/mwhitlock/wanderguide/internal/guide"
)

type GuideHandler struct {
	svc    *guide.Service
	logger *slog.Logger
}

func NewGuideHandler(svc *guide.Service, logger *slog.Logger) *GuideHandler {
	return &GuideHandler{svc: svc, logger: logger}
}

type guideRequest struct {
	Message     string `json:"message"`
	CharacterID string `json:"characterId"`
	Location    *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Address   string  `json:"address"`
	} `json:"location"`
	Image string `json:"image"`
}

type guideCharacter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type guideResponse struct {
	Response      string          `json:"response"`
	MapDirectives []directive.Map `json:"mapDirectives"`
	Images        []string        `json:"images"`
	Character     guideCharacter  `json:"character"`
	Remaining     int             `json:"remaining"`
}

// Respond handles POST /api/guide.
func (h *GuideHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req guideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" && req.Image == "" {
		writeError(w, http.StatusBadRequest, "Message or image is required")
		return
	}

	greq := guide.Request{
		UserID:       auth.UserID(r.Context()),
		Message:      req.Message,
		CharacterID:  req.CharacterID,
		ImageDataURL: req.Image,
	}
	if req.Location != nil {
		greq.Location = &guide.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			Address:   req.Location.Address,
		}
	}

	resp, err := h.svc.Respond(r.Context(), greq)
	if err != nil {
		var qe *guide.QuotaExceededError
		switch {
		case errors.As(err, &qe):
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":        "Daily limit reached",
				"limitReached": true,
				"message":      fmt.Sprintf("You've used your %d free queries today. Get a Day Pass for unlimited access!", qe.Limit),
			})
		case errors.Is(err, guide.ErrUnknownCharacter):
			writeError(w, http.StatusBadRequest, "Invalid character")
		default:
			h.logger.Error("guide request failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to generate response")
		}
		return
	}

	maps := resp.Maps
	if maps == nil {
		maps = []directive.Map{}
	}
	images := resp.Images
	if images == nil {
		images = []string{}
	}

	writeJSON(w, http.StatusOK, guideResponse{
		Response:      resp.Text,
		MapDirectives: maps,
		Images:        images,
		Character: guideCharacter{
			ID:    resp.Character.ID,
			Name:  resp.Character.Name,
			Emoji: resp.Character.Emoji,
		},
		Remaining: resp.Remaining,
	})
}
