package handler

import (
	"net/http"

	"github.com/mwhitlock/wanderguide/internal/character"
)

type CharactersHandler struct{}

func NewCharactersHandler() *CharactersHandler {
	return &CharactersHandler{}
}

// List handles GET /api/characters.
func (h *CharactersHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"characters": character.All(),
	})
}
