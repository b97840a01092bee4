package handlers

import (
	"net/http"

	"github.com/quarzen/tradebook/pkg/journal/store"
)

// SymbolHandler handles symbol listing endpoints.
type SymbolHandler struct {
	store store.Store
}

// NewSymbolHandler creates a new SymbolHandler.
func NewSymbolHandler(s store.Store) *SymbolHandler {
	return &SymbolHandler{store: s}
}

// SymbolListResponse is the response body for GET /api/v1/symbols.
type SymbolListResponse struct {
	Tickers []string `json:"tickers"`
}

// List handles GET /api/v1/symbols.
// Returns the distinct tickers the authenticated user has traded.
func (h *SymbolHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	tickers, err := h.store.ListUserTickers(r.Context(), userID)
	if err != nil {
		InternalServerError(w, "Failed to list symbols")
		return
	}

	WriteJSONOK(w, SymbolListResponse{Tickers: tickers})
}
