package handlers

import (
	"net/http"

	"github.com/quarzen/tradebook/pkg/journal/store"
)

// MistakeHandler handles mistake catalog endpoints.
type MistakeHandler struct {
	store store.Store
}

// NewMistakeHandler creates a new MistakeHandler.
func NewMistakeHandler(s store.Store) *MistakeHandler {
	return &MistakeHandler{store: s}
}

// List handles GET /api/v1/mistakes.
// Returns the full mistake catalog ordered by category and name.
func (h *MistakeHandler) List(w http.ResponseWriter, r *http.Request) {
	mistakes, err := h.store.ListMistakes(r.Context())
	if err != nil {
		InternalServerError(w, "Failed to list mistakes")
		return
	}

	WriteJSONOK(w, mistakes)
}
