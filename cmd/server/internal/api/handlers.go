package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/server/internal/quotefeed"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/server/internal/registry"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/server/internal/resolver"
)

type Handler struct {
	logger   *zap.Logger
	registry *registry.Registry
	resolver resolver.Resolver
	feed     quotefeed.Feed
}

// NewServer wires the handlers onto a mux and returns the root handler.
func NewServer(logger *zap.Logger, reg *registry.Registry, res resolver.Resolver, feed quotefeed.Feed) http.Handler {
	h := &Handler{
		logger:   logger,
		registry: reg,
		resolver: res,
		feed:     feed,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("POST /api/holdings", h.createHolding)
	mux.HandleFunc("GET /api/holdings", h.listHoldings)
	mux.HandleFunc("POST /api/holdings/clear", h.clearHoldings)
	mux.HandleFunc("GET /api/price", h.getPrice)
	// older route name, same logic
	mux.HandleFunc("GET /api/quote", h.getPrice)

	return mux
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": "Portfolio Tracker API",
	})
}

type createHoldingRequest struct {
	Symbol   string   `json:"symbol"`
	Quantity *float64 `json:"quantity"`
	AvgPrice *float64 `json:"avgPrice"`
}

func (h *Handler) createHolding(w http.ResponseWriter, r *http.Request) {
	var req createHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	holding, err := h.registry.Create(registry.CreateInput{
		Symbol:   req.Symbol,
		Quantity: req.Quantity,
		AvgPrice: req.AvgPrice,
	})
	if err != nil {
		var verr *registry.ValidationError
		if errors.As(err, &verr) {
			h.writeError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		h.logger.Error("Create holding failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	h.logger.Info("Holding created",
		zap.Int64("id", holding.ID),
		zap.String("symbol", holding.Symbol),
		zap.Float64("quantity", holding.Quantity))

	h.writeJSON(w, http.StatusCreated, holding)
}

func (h *Handler) listHoldings(w http.ResponseWriter, r *http.Request) {
	// List never returns nil, so an empty registry encodes as [] not null.
	h.writeJSON(w, http.StatusOK, h.registry.List())
}

func (h *Handler) clearHoldings(w http.ResponseWriter, r *http.Request) {
	h.registry.Clear()
	h.logger.Info("Holdings cleared")
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) getPrice(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.writeError(w, http.StatusBadRequest, "symbol required")
		return
	}

	quote, err := h.resolver.Resolve(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, resolver.ErrSymbolRequired) {
			h.writeError(w, http.StatusBadRequest, "symbol required")
			return
		}
		h.logger.Warn("Price resolution failed", zap.String("symbol", symbol), zap.Error(err))
		h.writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:  "price_fetch_failed",
			Detail: err.Error(),
		})
		return
	}

	// Best effort: a feed outage must not fail the price response.
	if err := h.feed.Publish(r.Context(), quote); err != nil {
		h.logger.Warn("Quote feed publish failed", zap.String("symbol", quote.Symbol), zap.Error(err))
	}

	h.writeJSON(w, http.StatusOK, quote)
}
