package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"homeledger/internal/api/request"
	"homeledger/internal/model"
	"homeledger/internal/service"
)

// AccountHandler handles account and holding HTTP requests.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Accounts lists the household's accounts.
//
// Endpoint: GET /api/accounts
func (h *AccountHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	accounts, err := h.accountService.GetAccounts(claims.HouseholdID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve accounts")
		return
	}

	respondJSON(w, http.StatusOK, accounts)
}

// Account retrieves one account.
//
// Endpoint: GET /api/accounts/{accountId}
func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	account, err := h.accountService.GetAccount(claims.HouseholdID, chi.URLParam(r, "accountId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve account")
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// CreateAccount creates a manual account.
//
// Endpoint: POST /api/accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accountService.CreateAccount(model.Account{
		HouseholdID:      claims.HouseholdID,
		Name:             req.Name,
		OfficialName:     req.OfficialName,
		InstitutionName:  req.InstitutionName,
		Type:             req.Type,
		Subtype:          req.Subtype,
		Mask:             req.Mask,
		CurrentBalance:   req.CurrentBalance,
		AvailableBalance: req.AvailableBalance,
		CurrencyCode:     req.CurrencyCode,
	})
	if err != nil {
		respondServiceError(w, err, "failed to create account")
		return
	}

	respondJSON(w, http.StatusCreated, account)
}

// UpdateAccount updates a manual account.
//
// Endpoint: PUT /api/accounts/{accountId}
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accountService.UpdateAccount(claims.HouseholdID, model.Account{
		ID:               chi.URLParam(r, "accountId"),
		Name:             req.Name,
		OfficialName:     req.OfficialName,
		InstitutionName:  req.InstitutionName,
		Subtype:          req.Subtype,
		Mask:             req.Mask,
		CurrentBalance:   req.CurrentBalance,
		AvailableBalance: req.AvailableBalance,
		IsHidden:         req.IsHidden,
	})
	if err != nil {
		respondServiceError(w, err, "failed to update account")
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// DeleteAccount removes an account and its holdings.
//
// Endpoint: DELETE /api/accounts/{accountId}
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.accountService.DeleteAccount(claims.HouseholdID, chi.URLParam(r, "accountId")); err != nil {
		respondServiceError(w, err, "failed to delete account")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Holdings lists the holdings of an investment account.
//
// Endpoint: GET /api/accounts/{accountId}/holdings
func (h *AccountHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	holdings, err := h.accountService.GetHoldings(claims.HouseholdID, chi.URLParam(r, "accountId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve holdings")
		return
	}

	respondJSON(w, http.StatusOK, holdings)
}

// CreateHolding adds a holding to an investment account.
//
// Endpoint: POST /api/accounts/{accountId}/holdings
func (h *AccountHandler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateHoldingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	holding, err := h.accountService.CreateHolding(claims.HouseholdID, model.Holding{
		AccountID:    chi.URLParam(r, "accountId"),
		TickerSymbol: req.TickerSymbol,
		Name:         req.Name,
		Quantity:     req.Quantity,
		CostBasis:    req.CostBasis,
		CurrentValue: req.CurrentValue,
		CurrencyCode: req.CurrencyCode,
	})
	if err != nil {
		respondServiceError(w, err, "failed to create holding")
		return
	}

	respondJSON(w, http.StatusCreated, holding)
}

// UpdateHolding updates a holding.
//
// Endpoint: PUT /api/holdings/{holdingId}
func (h *AccountHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdateHoldingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	holding, err := h.accountService.UpdateHolding(claims.HouseholdID, model.Holding{
		ID:           chi.URLParam(r, "holdingId"),
		TickerSymbol: req.TickerSymbol,
		Name:         req.Name,
		Quantity:     req.Quantity,
		CostBasis:    req.CostBasis,
		CurrentValue: req.CurrentValue,
	})
	if err != nil {
		respondServiceError(w, err, "failed to update holding")
		return
	}

	respondJSON(w, http.StatusOK, holding)
}

// DeleteHolding removes a holding.
//
// Endpoint: DELETE /api/holdings/{holdingId}
func (h *AccountHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.accountService.DeleteHolding(claims.HouseholdID, chi.URLParam(r, "holdingId")); err != nil {
		respondServiceError(w, err, "failed to delete holding")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
