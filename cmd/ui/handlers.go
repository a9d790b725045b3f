package main

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log   *zap.Logger
	cfg   *config.Config
	store *database.TradeStore
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, cfg *config.Config, store *database.TradeStore) *APIHandler {
	return &APIHandler{log: log, cfg: cfg, store: store}
}

func (h *APIHandler) accountTrades() ([]models.Trade, error) {
	account, err := h.store.EnsureAccount(h.cfg.Account.Name, h.cfg.Account.Real)
	if err != nil {
		return nil, err
	}
	return h.store.ListTrades(account.ID)
}

// TradesHandler returns all stored trades, most recent entry first.
func (h *APIHandler) TradesHandler(w http.ResponseWriter, r *http.Request) {
	trades, err := h.accountTrades()
	if err != nil {
		h.log.Error("Failed to get trades from database", zap.Error(err))
		http.Error(w, "Failed to get trades", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trades)
}

// StatisticsHandler calculates and returns journal statistics.
func (h *APIHandler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	trades, err := h.accountTrades()
	if err != nil {
		h.log.Error("Failed to get trades for statistics", zap.Error(err))
		http.Error(w, "Failed to calculate statistics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(journal.ComputeStats(trades))
}

// ValuateHandler is the interactive valuation path: it values a single
// hand-entered trade with the same calculator batch reconstruction uses, so
// a live edit preview always matches what an import would have produced.
func (h *APIHandler) ValuateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var input journal.ValuationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid valuation request", http.StatusBadRequest)
		return
	}
	if input.Direction != models.DirectionLong && input.Direction != models.DirectionShort {
		http.Error(w, "direction must be \"long\" or \"short\"", http.StatusBadRequest)
		return
	}
	if input.Quantity <= 0 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(journal.Valuate(input))
}
