package handlers

import (
	"net/http"

	"homeledger/internal/api/request"
	"homeledger/internal/service"
)

// InvestmentHandler handles price refresh and market status HTTP requests.
type InvestmentHandler struct {
	refreshService *service.RefreshService
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(refreshService *service.RefreshService) *InvestmentHandler {
	return &InvestmentHandler{
		refreshService: refreshService,
	}
}

// RefreshResponse reports how many holdings a manual refresh updated.
type RefreshResponse struct {
	Refreshed int `json:"refreshed"`
}

// Refresh triggers an immediate price refresh for the household. Unlike the
// background sweep this runs even while the market is closed.
//
// Endpoint: POST /api/investments/refresh
func (h *InvestmentHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	n, err := h.refreshService.RefreshPrices(r.Context(), claims.HouseholdID)
	if err != nil {
		respondServiceError(w, err, "failed to refresh prices")
		return
	}

	respondJSON(w, http.StatusOK, RefreshResponse{Refreshed: n})
}

// RefreshStatus reports the household's refresh settings and timing.
//
// Endpoint: GET /api/investments/refresh-status
func (h *InvestmentHandler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	status, err := h.refreshService.RefreshStatus(claims.HouseholdID)
	if err != nil {
		respondServiceError(w, err, "failed to get refresh status")
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// UpdateRefreshSettings changes the household's refresh toggle and interval.
//
// Endpoint: PUT /api/investments/refresh-settings
func (h *InvestmentHandler) UpdateRefreshSettings(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdateRefreshSettingsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status, err := h.refreshService.UpdateRefreshSettings(claims.HouseholdID, req.Enabled, req.IntervalMinutes)
	if err != nil {
		respondServiceError(w, err, "failed to update refresh settings")
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// MarketStatus reports whether the exchange is open.
//
// Endpoint: GET /api/investments/market-status
func (h *InvestmentHandler) MarketStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.refreshService.MarketStatus())
}
