package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"homeledger/internal/api/middleware"
	"homeledger/internal/apperrors"
	"homeledger/internal/auth"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondError sends a structured error body with the given status code.
func respondError(w http.ResponseWriter, status int, message, detail string) {
	body := map[string]string{"error": message}
	if detail != "" {
		body["detail"] = detail
	}
	respondJSON(w, status, body)
}

// notFoundErrors are the service sentinels that map to 404.
var notFoundErrors = []error{
	apperrors.ErrHouseholdNotFound,
	apperrors.ErrUserNotFound,
	apperrors.ErrAccountNotFound,
	apperrors.ErrHoldingNotFound,
	apperrors.ErrPropertyNotFound,
	apperrors.ErrUnitNotFound,
	apperrors.ErrTenantNotFound,
	apperrors.ErrLeaseNotFound,
	apperrors.ErrPaymentNotFound,
	apperrors.ErrRentChargeNotFound,
	apperrors.ErrLoanNotFound,
	apperrors.ErrPropertyCostNotFound,
	apperrors.ErrExpenseNotFound,
	apperrors.ErrCapitalEventNotFound,
	apperrors.ErrValuationNotFound,
}

// badRequestErrors are the service sentinels that map to 400.
var badRequestErrors = []error{
	apperrors.ErrMissingRequiredField,
	apperrors.ErrNegativeAmount,
	apperrors.ErrInvalidDateRange,
	apperrors.ErrInvalidMonth,
	apperrors.ErrAccountNotInvestment,
	apperrors.ErrNoTicker,
	apperrors.ErrInvalidUUID,
	apperrors.ErrEmptyID,
}

// respondServiceError translates service-layer sentinels to HTTP statuses.
// Unknown errors become 500 with the message hidden from the client.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			respondError(w, http.StatusNotFound, sentinel.Error(), "")
			return
		}
	}
	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			respondError(w, http.StatusBadRequest, sentinel.Error(), "")
			return
		}
	}
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, err.Error(), "")
	case errors.Is(err, apperrors.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error(), "")
	default:
		log.Printf("ERROR: %s: %v", message, err)
		respondError(w, http.StatusInternalServerError, message, err.Error())
	}
}

// decodeBody parses a JSON request body into dst, answering 400 on failure.
// Returns false if the response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// requireClaims extracts the authenticated claims, answering 401 if the auth
// middleware did not run. Returns nil if the response has been written.
func requireClaims(w http.ResponseWriter, r *http.Request) *auth.Claims {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required", "")
		return nil
	}
	return claims
}

// parseDate parses a YYYY-MM-DD request field. An empty string is allowed and
// returns the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

// parseDatePtr is parseDate for optional fields, mapping empty to nil.
func parseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
