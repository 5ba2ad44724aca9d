package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"homeledger/internal/api/request"
	"homeledger/internal/model"
	"homeledger/internal/service"
)

// PropertyDetailsHandler handles loan, recurring cost, and maintenance
// expense HTTP requests.
type PropertyDetailsHandler struct {
	detailsService *service.PropertyDetailsService
}

// NewPropertyDetailsHandler creates a new PropertyDetailsHandler
func NewPropertyDetailsHandler(detailsService *service.PropertyDetailsService) *PropertyDetailsHandler {
	return &PropertyDetailsHandler{
		detailsService: detailsService,
	}
}

// Loans lists the loans secured by a property.
//
// Endpoint: GET /api/properties/{propertyId}/loans
func (h *PropertyDetailsHandler) Loans(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	loans, err := h.detailsService.GetLoans(claims.HouseholdID, chi.URLParam(r, "propertyId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve loans")
		return
	}

	respondJSON(w, http.StatusOK, loans)
}

// loanFromRequest maps the request body to a loan, answering 400 on a bad
// date. The bool reports whether parsing succeeded.
func loanFromRequest(w http.ResponseWriter, req request.CreateLoanRequest) (model.Loan, bool) {
	originationDate, err := parseDatePtr(req.OriginationDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid origination_date", "expected YYYY-MM-DD")
		return model.Loan{}, false
	}
	maturityDate, err := parseDatePtr(req.MaturityDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid maturity_date", "expected YYYY-MM-DD")
		return model.Loan{}, false
	}

	return model.Loan{
		AccountID:       req.AccountID,
		LenderName:      req.LenderName,
		LoanType:        req.LoanType,
		OriginalAmount:  req.OriginalAmount,
		CurrentBalance:  req.CurrentBalance,
		InterestRate:    req.InterestRate,
		MonthlyPayment:  req.MonthlyPayment,
		PaymentDueDay:   req.PaymentDueDay,
		EscrowIncluded:  req.EscrowIncluded,
		EscrowAmount:    req.EscrowAmount,
		OriginationDate: originationDate,
		MaturityDate:    maturityDate,
		TermMonths:      req.TermMonths,
		Notes:           req.Notes,
	}, true
}

// CreateLoan attaches a loan to a property.
//
// Endpoint: POST /api/properties/{propertyId}/loans
func (h *PropertyDetailsHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	loan, ok := loanFromRequest(w, req)
	if !ok {
		return
	}
	loan.PropertyID = chi.URLParam(r, "propertyId")

	created, err := h.detailsService.CreateLoan(claims.HouseholdID, loan)
	if err != nil {
		respondServiceError(w, err, "failed to create loan")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// UpdateLoan updates a loan.
//
// Endpoint: PUT /api/loans/{loanId}
func (h *PropertyDetailsHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdateLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	loan, ok := loanFromRequest(w, req)
	if !ok {
		return
	}
	loan.ID = chi.URLParam(r, "loanId")

	updated, err := h.detailsService.UpdateLoan(claims.HouseholdID, loan)
	if err != nil {
		respondServiceError(w, err, "failed to update loan")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteLoan removes a loan.
//
// Endpoint: DELETE /api/loans/{loanId}
func (h *PropertyDetailsHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.detailsService.DeleteLoan(claims.HouseholdID, chi.URLParam(r, "loanId")); err != nil {
		respondServiceError(w, err, "failed to delete loan")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Costs lists a property's recurring costs.
//
// Endpoint: GET /api/properties/{propertyId}/costs
func (h *PropertyDetailsHandler) Costs(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	costs, err := h.detailsService.GetCosts(claims.HouseholdID, chi.URLParam(r, "propertyId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve costs")
		return
	}

	respondJSON(w, http.StatusOK, costs)
}

func costFromRequest(req request.CreatePropertyCostRequest) model.PropertyCost {
	cost := model.PropertyCost{
		Category:  req.Category,
		Label:     req.Label,
		Amount:    req.Amount,
		Frequency: req.Frequency,
		IsActive:  true,
		Notes:     req.Notes,
	}
	if req.IsActive != nil {
		cost.IsActive = *req.IsActive
	}
	return cost
}

// CreateCost attaches a recurring cost to a property.
//
// Endpoint: POST /api/properties/{propertyId}/costs
func (h *PropertyDetailsHandler) CreateCost(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreatePropertyCostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cost := costFromRequest(req)
	cost.PropertyID = chi.URLParam(r, "propertyId")

	created, err := h.detailsService.CreateCost(claims.HouseholdID, cost)
	if err != nil {
		respondServiceError(w, err, "failed to create cost")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// UpdateCost updates a recurring cost.
//
// Endpoint: PUT /api/properties/{propertyId}/costs/{costId}
func (h *PropertyDetailsHandler) UpdateCost(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdatePropertyCostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cost := costFromRequest(req)
	cost.ID = chi.URLParam(r, "costId")

	updated, err := h.detailsService.UpdateCost(claims.HouseholdID, chi.URLParam(r, "propertyId"), cost)
	if err != nil {
		respondServiceError(w, err, "failed to update cost")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteCost removes a recurring cost.
//
// Endpoint: DELETE /api/properties/{propertyId}/costs/{costId}
func (h *PropertyDetailsHandler) DeleteCost(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	err := h.detailsService.DeleteCost(claims.HouseholdID, chi.URLParam(r, "propertyId"), chi.URLParam(r, "costId"))
	if err != nil {
		respondServiceError(w, err, "failed to delete cost")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Expenses lists a property's maintenance expenses.
//
// Endpoint: GET /api/properties/{propertyId}/expenses
func (h *PropertyDetailsHandler) Expenses(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	expenses, err := h.detailsService.GetExpenses(claims.HouseholdID, chi.URLParam(r, "propertyId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve expenses")
		return
	}

	respondJSON(w, http.StatusOK, expenses)
}

// CreateExpense records a maintenance expense on a property.
//
// Endpoint: POST /api/properties/{propertyId}/expenses
func (h *PropertyDetailsHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expenseDate, err := parseDate(req.ExpenseDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expense_date", "expected YYYY-MM-DD")
		return
	}

	created, err := h.detailsService.RecordExpense(claims.HouseholdID, model.MaintenanceExpense{
		PropertyID:  chi.URLParam(r, "propertyId"),
		ExpenseDate: expenseDate,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Vendor:      req.Vendor,
		IsCapex:     req.IsCapex,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "failed to record expense")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// UpdateExpense updates a maintenance expense.
//
// Endpoint: PUT /api/properties/{propertyId}/expenses/{expenseId}
func (h *PropertyDetailsHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expenseDate, err := parseDate(req.ExpenseDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expense_date", "expected YYYY-MM-DD")
		return
	}

	updated, err := h.detailsService.UpdateExpense(claims.HouseholdID, chi.URLParam(r, "propertyId"), model.MaintenanceExpense{
		ID:          chi.URLParam(r, "expenseId"),
		ExpenseDate: expenseDate,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Vendor:      req.Vendor,
		IsCapex:     req.IsCapex,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "failed to update expense")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteExpense removes a maintenance expense.
//
// Endpoint: DELETE /api/properties/{propertyId}/expenses/{expenseId}
func (h *PropertyDetailsHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	err := h.detailsService.DeleteExpense(claims.HouseholdID, chi.URLParam(r, "propertyId"), chi.URLParam(r, "expenseId"))
	if err != nil {
		respondServiceError(w, err, "failed to delete expense")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
