package handlers

import (
	"net/http"

	"github.com/quarzen/tradebook/internal/telemetry"
	"github.com/quarzen/tradebook/pkg/analytics"
	"github.com/quarzen/tradebook/pkg/journal/store"
)

// AnalyticsHandler handles analytics report endpoints.
type AnalyticsHandler struct {
	store store.Store
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(s store.Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: s}
}

// Report handles GET /api/v1/analytics/report.
// Computes the full analytics report over the user's trades.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	ctx, span := telemetry.StartAnalyticsSpan(r.Context(), userID)
	defer span.End()

	trades, err := h.store.ListTrades(ctx, userID, nil)
	if err != nil {
		telemetry.RecordError(ctx, err)
		InternalServerError(w, "Failed to load trades")
		return
	}
	span.SetAttributes(telemetry.TradeCount(len(trades)))

	WriteJSONOK(w, analytics.BuildReport(trades))
}
