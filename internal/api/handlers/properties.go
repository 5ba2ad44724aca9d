package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"homeledger/internal/api/request"
	"homeledger/internal/apperrors"
	"homeledger/internal/model"
	"homeledger/internal/service"
)

// PropertyHandler handles property, valuation, and capital event HTTP requests.
type PropertyHandler struct {
	propertyService *service.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// Properties lists the household's properties.
//
// Endpoint: GET /api/properties
func (h *PropertyHandler) Properties(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	properties, err := h.propertyService.GetProperties(claims.HouseholdID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve properties")
		return
	}

	respondJSON(w, http.StatusOK, properties)
}

// Property retrieves one property.
//
// Endpoint: GET /api/properties/{propertyId}
func (h *PropertyHandler) Property(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	property, err := h.propertyService.GetProperty(claims.HouseholdID, chi.URLParam(r, "propertyId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve property")
		return
	}

	respondJSON(w, http.StatusOK, property)
}

func propertyFromRequest(req request.CreatePropertyRequest) (model.Property, error) {
	purchaseDate, err := parseDatePtr(req.PurchaseDate)
	if err != nil {
		return model.Property{}, apperrors.ErrInvalidDateRange
	}

	return model.Property{
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		PropertyType:       req.PropertyType,
		PurchasePrice:      req.PurchasePrice,
		PurchaseDate:       purchaseDate,
		ClosingCosts:       req.ClosingCosts,
		CurrentValue:       req.CurrentValue,
		IsPrimaryResidence: req.IsPrimaryResidence,
		IsPropertyManaged:  req.IsPropertyManaged,
		ManagementFeePct:   req.ManagementFeePct,
		Notes:              req.Notes,
	}, nil
}

// CreateProperty creates a property in the household.
//
// Endpoint: POST /api/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreatePropertyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	property, err := propertyFromRequest(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase_date", "expected YYYY-MM-DD")
		return
	}
	property.HouseholdID = claims.HouseholdID

	created, err := h.propertyService.CreateProperty(property)
	if err != nil {
		respondServiceError(w, err, "failed to create property")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// UpdateProperty updates a property.
//
// Endpoint: PUT /api/properties/{propertyId}
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdatePropertyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	property, err := propertyFromRequest(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase_date", "expected YYYY-MM-DD")
		return
	}
	property.ID = chi.URLParam(r, "propertyId")

	updated, err := h.propertyService.UpdateProperty(claims.HouseholdID, property)
	if err != nil {
		respondServiceError(w, err, "failed to update property")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteProperty removes a property and everything attached to it.
//
// Endpoint: DELETE /api/properties/{propertyId}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.propertyService.DeleteProperty(claims.HouseholdID, chi.URLParam(r, "propertyId")); err != nil {
		respondServiceError(w, err, "failed to delete property")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Valuations lists a property's valuation history, newest first.
//
// Endpoint: GET /api/properties/{propertyId}/valuations
func (h *PropertyHandler) Valuations(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	valuations, err := h.propertyService.GetValuations(claims.HouseholdID, chi.URLParam(r, "propertyId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve valuations")
		return
	}

	respondJSON(w, http.StatusOK, valuations)
}

// CreateValuation records a valuation point and bumps the property's current value.
//
// Endpoint: POST /api/properties/{propertyId}/valuations
func (h *PropertyHandler) CreateValuation(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateValuationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	valuationDate, err := parseDate(req.ValuationDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid valuation_date", "expected YYYY-MM-DD")
		return
	}

	created, err := h.propertyService.RecordValuation(claims.HouseholdID, model.PropertyValuation{
		PropertyID:    chi.URLParam(r, "propertyId"),
		Value:         req.Value,
		Source:        req.Source,
		ValuationDate: valuationDate,
		Notes:         req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "failed to record valuation")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// CapitalEvents lists a property's capital timeline.
//
// Endpoint: GET /api/properties/{propertyId}/capital-events
func (h *PropertyHandler) CapitalEvents(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	events, err := h.propertyService.GetCapitalEvents(claims.HouseholdID, chi.URLParam(r, "propertyId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve capital events")
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// CreateCapitalEvent records a signed capital event.
//
// Endpoint: POST /api/properties/{propertyId}/capital-events
func (h *PropertyHandler) CreateCapitalEvent(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateCapitalEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event_date", "expected YYYY-MM-DD")
		return
	}

	created, err := h.propertyService.RecordCapitalEvent(claims.HouseholdID, model.CapitalEvent{
		PropertyID:  chi.URLParam(r, "propertyId"),
		EventDate:   eventDate,
		EventType:   req.EventType,
		Amount:      req.Amount,
		Description: req.Description,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "failed to record capital event")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// DeleteCapitalEvent removes a capital event.
//
// Endpoint: DELETE /api/properties/{propertyId}/capital-events/{eventId}
func (h *PropertyHandler) DeleteCapitalEvent(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	err := h.propertyService.DeleteCapitalEvent(claims.HouseholdID, chi.URLParam(r, "propertyId"), chi.URLParam(r, "eventId"))
	if err != nil {
		respondServiceError(w, err, "failed to delete capital event")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
