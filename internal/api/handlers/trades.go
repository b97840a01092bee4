package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quarzen/tradebook/internal/api/middleware"
	"github.com/quarzen/tradebook/internal/telemetry"
	"github.com/quarzen/tradebook/pkg/journal/models"
	"github.com/quarzen/tradebook/pkg/journal/store"
)

// TradeHandler handles trade CRUD and mistake-tagging endpoints.
//
// All operations are scoped to the authenticated user: a trade belonging to
// another account is indistinguishable from a missing one (404).
type TradeHandler struct {
	store store.Store
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(s store.Store) *TradeHandler {
	return &TradeHandler{store: s}
}

// TradeRequest is the request body for creating or updating a trade.
type TradeRequest struct {
	Ticker    string           `json:"ticker"`
	AssetType models.AssetType `json:"asset_type,omitempty"`

	Side       models.Side      `json:"side"`
	Quantity   decimal.Decimal  `json:"quantity"`
	EntryPrice decimal.Decimal  `json:"entry_price"`
	EntryAt    time.Time        `json:"entry_at"`
	ExitPrice  *decimal.Decimal `json:"exit_price,omitempty"`
	ExitAt     *time.Time       `json:"exit_at,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// TradeResponse augments the persisted trade with derived fields.
type TradeResponse struct {
	*models.Trade

	Closed bool             `json:"closed"`
	PnL    *decimal.Decimal `json:"pnl,omitempty"`
	Win    bool             `json:"win"`
}

// TradeListSummary aggregates the trades returned by a list request.
type TradeListSummary struct {
	Total       int             `json:"total"`
	Open        int             `json:"open"`
	Closed      int             `json:"closed"`
	RealizedPnL decimal.Decimal `json:"realized_pnl"`
}

// TradeListResponse is the response body for GET /api/v1/trades.
type TradeListResponse struct {
	Trades  []TradeResponse  `json:"trades"`
	Summary TradeListSummary `json:"summary"`
}

// SetMistakesRequest is the request body for PUT /api/v1/trades/{id}/mistakes.
type SetMistakesRequest struct {
	MistakeIDs []uint `json:"mistake_ids"`
}

// requireUser extracts the authenticated user ID, writing a 401 when the
// request carries no claims.
func requireUser(w http.ResponseWriter, r *http.Request) (uint, bool) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return 0, false
	}
	return claims.UserID, true
}

// Create handles POST /api/v1/trades.
func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req TradeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	ctx, span := telemetry.StartTradeSpan(r.Context(), "create", userID,
		telemetry.Ticker(req.Ticker), telemetry.Side(string(req.Side)))
	defer span.End()
	r = r.WithContext(ctx)

	trade, ok := h.tradeFromRequest(w, r, &req)
	if !ok {
		return
	}

	if err := h.store.CreateTrade(ctx, userID, trade); err != nil {
		telemetry.RecordError(ctx, err)
		if errors.Is(err, models.ErrSymbolNotFound) {
			UnprocessableEntity(w, "Unknown symbol")
			return
		}
		UnprocessableEntity(w, err.Error())
		return
	}
	span.SetAttributes(telemetry.TradeID(trade.ID))

	WriteJSONCreated(w, tradeToResponse(trade))
}

// List handles GET /api/v1/trades.
//
// Query parameters: start_date, end_date (RFC 3339 or YYYY-MM-DD), symbol,
// side (buy/sell), status (open/closed). The response includes a summary
// block with open/closed counts and total realized P&L.
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	filter, ok := parseTradeFilter(w, r)
	if !ok {
		return
	}

	ctx, span := telemetry.StartTradeSpan(r.Context(), "list", userID)
	defer span.End()

	trades, err := h.store.ListTrades(ctx, userID, filter)
	if err != nil {
		telemetry.RecordError(ctx, err)
		BadRequest(w, err.Error())
		return
	}
	span.SetAttributes(telemetry.TradeCount(len(trades)))

	response := TradeListResponse{
		Trades: make([]TradeResponse, 0, len(trades)),
		Summary: TradeListSummary{
			Total: len(trades),
		},
	}
	for _, trade := range trades {
		response.Trades = append(response.Trades, tradeToResponse(trade))
		if trade.IsClosed() {
			response.Summary.Closed++
			if pnl := trade.PnL(); pnl != nil {
				response.Summary.RealizedPnL = response.Summary.RealizedPnL.Add(*pnl)
			}
		} else {
			response.Summary.Open++
		}
	}

	WriteJSONOK(w, response)
}

// Get handles GET /api/v1/trades/{id}.
func (h *TradeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	tradeID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	ctx, span := telemetry.StartTradeSpan(r.Context(), "get", userID, telemetry.TradeID(tradeID))
	defer span.End()

	trade, err := h.store.GetTrade(ctx, userID, tradeID)
	if err != nil {
		if errors.Is(err, models.ErrTradeNotFound) {
			NotFound(w, "Trade not found")
			return
		}
		telemetry.RecordError(ctx, err)
		InternalServerError(w, "Failed to fetch trade")
		return
	}

	WriteJSONOK(w, tradeToResponse(trade))
}

// Update handles PUT /api/v1/trades/{id}.
func (h *TradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	tradeID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req TradeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	ctx, span := telemetry.StartTradeSpan(r.Context(), "update", userID, telemetry.TradeID(tradeID))
	defer span.End()
	r = r.WithContext(ctx)

	trade, ok := h.tradeFromRequest(w, r, &req)
	if !ok {
		return
	}
	trade.ID = tradeID

	if err := h.store.UpdateTrade(ctx, userID, trade); err != nil {
		if errors.Is(err, models.ErrTradeNotFound) {
			NotFound(w, "Trade not found")
			return
		}
		telemetry.RecordError(ctx, err)
		UnprocessableEntity(w, err.Error())
		return
	}

	WriteJSONOK(w, tradeToResponse(trade))
}

// Delete handles DELETE /api/v1/trades/{id}.
func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	tradeID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	ctx, span := telemetry.StartTradeSpan(r.Context(), "delete", userID, telemetry.TradeID(tradeID))
	defer span.End()

	if err := h.store.DeleteTrade(ctx, userID, tradeID); err != nil {
		if errors.Is(err, models.ErrTradeNotFound) {
			NotFound(w, "Trade not found")
			return
		}
		telemetry.RecordError(ctx, err)
		InternalServerError(w, "Failed to delete trade")
		return
	}

	WriteNoContent(w)
}

// SetMistakes handles PUT /api/v1/trades/{id}/mistakes.
// Replaces the full set of mistake tags on a trade.
func (h *TradeHandler) SetMistakes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	tradeID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req SetMistakesRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	ctx, span := telemetry.StartTradeSpan(r.Context(), "mistakes", userID,
		telemetry.TradeID(tradeID), telemetry.MistakeCount(len(req.MistakeIDs)))
	defer span.End()

	trade, err := h.store.SetTradeMistakes(ctx, userID, tradeID, req.MistakeIDs)
	if err != nil {
		if errors.Is(err, models.ErrTradeNotFound) {
			NotFound(w, "Trade not found")
			return
		}
		if errors.Is(err, models.ErrMistakeNotFound) {
			UnprocessableEntity(w, "Unknown mistake id")
			return
		}
		telemetry.RecordError(ctx, err)
		InternalServerError(w, "Failed to update mistakes")
		return
	}

	WriteJSONOK(w, tradeToResponse(trade))
}

// tradeFromRequest resolves the symbol and builds a Trade from the request
// body. Validation errors are written automatically.
func (h *TradeHandler) tradeFromRequest(w http.ResponseWriter, r *http.Request, req *TradeRequest) (*models.Trade, bool) {
	if req.Ticker == "" {
		BadRequest(w, "Ticker is required")
		return nil, false
	}

	assetType := req.AssetType
	if assetType == "" {
		assetType = models.AssetStock
	}

	symbol, err := h.store.GetOrCreateSymbol(r.Context(), req.Ticker, assetType)
	if err != nil {
		UnprocessableEntity(w, err.Error())
		return nil, false
	}

	return &models.Trade{
		SymbolID:   symbol.ID,
		Symbol:     *symbol,
		Side:       req.Side,
		Quantity:   req.Quantity,
		EntryPrice: req.EntryPrice,
		EntryAt:    req.EntryAt,
		ExitPrice:  req.ExitPrice,
		ExitAt:     req.ExitAt,
		Notes:      req.Notes,
	}, true
}

// parseTradeFilter builds a store.TradeFilter from query parameters.
func parseTradeFilter(w http.ResponseWriter, r *http.Request) (*store.TradeFilter, bool) {
	q := r.URL.Query()
	filter := &store.TradeFilter{
		Ticker: q.Get("symbol"),
		Side:   models.Side(q.Get("side")),
		Status: store.TradeStatus(q.Get("status")),
	}

	if raw := q.Get("start_date"); raw != "" {
		ts, err := parseTimeParam(raw)
		if err != nil {
			BadRequest(w, "Invalid start_date")
			return nil, false
		}
		filter.From = &ts
	}
	if raw := q.Get("end_date"); raw != "" {
		ts, err := parseTimeParam(raw)
		if err != nil {
			BadRequest(w, "Invalid end_date")
			return nil, false
		}
		// A bare date means "through the end of that day".
		if len(raw) == len("2006-01-02") {
			ts = ts.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &ts
	}

	return filter, true
}

// parseTimeParam accepts RFC 3339 timestamps and bare dates.
func parseTimeParam(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", raw)
}

// tradeToResponse decorates a trade with derived fields for API output.
func tradeToResponse(trade *models.Trade) TradeResponse {
	return TradeResponse{
		Trade:  trade,
		Closed: trade.IsClosed(),
		PnL:    trade.PnL(),
		Win:    trade.IsWin(),
	}
}
