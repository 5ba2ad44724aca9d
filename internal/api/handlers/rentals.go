package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"homeledger/internal/api/request"
	"homeledger/internal/model"
	"homeledger/internal/service"
)

// RentalHandler handles unit, tenant, lease, charge, and payment HTTP requests.
type RentalHandler struct {
	rentalService *service.RentalService
}

// NewRentalHandler creates a new RentalHandler
func NewRentalHandler(rentalService *service.RentalService) *RentalHandler {
	return &RentalHandler{
		rentalService: rentalService,
	}
}

// Units lists a property's units.
//
// Endpoint: GET /api/properties/{propertyId}/units
func (h *RentalHandler) Units(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	units, err := h.rentalService.GetUnits(claims.HouseholdID, chi.URLParam(r, "propertyId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve units")
		return
	}

	respondJSON(w, http.StatusOK, units)
}

func unitFromRequest(req request.CreateUnitRequest) model.Unit {
	unit := model.Unit{
		UnitLabel:  req.UnitLabel,
		Beds:       req.Beds,
		Baths:      req.Baths,
		Sqft:       req.Sqft,
		IsRentable: true,
		Notes:      req.Notes,
	}
	if req.IsRentable != nil {
		unit.IsRentable = *req.IsRentable
	}
	return unit
}

// CreateUnit adds a unit to a property.
//
// Endpoint: POST /api/properties/{propertyId}/units
func (h *RentalHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateUnitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	unit := unitFromRequest(req)
	unit.PropertyID = chi.URLParam(r, "propertyId")

	created, err := h.rentalService.CreateUnit(claims.HouseholdID, unit)
	if err != nil {
		respondServiceError(w, err, "failed to create unit")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// UpdateUnit updates a unit.
//
// Endpoint: PUT /api/units/{unitId}
func (h *RentalHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdateUnitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	unit := unitFromRequest(req)
	unit.ID = chi.URLParam(r, "unitId")

	updated, err := h.rentalService.UpdateUnit(claims.HouseholdID, unit)
	if err != nil {
		respondServiceError(w, err, "failed to update unit")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteUnit removes a unit.
//
// Endpoint: DELETE /api/units/{unitId}
func (h *RentalHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.rentalService.DeleteUnit(claims.HouseholdID, chi.URLParam(r, "unitId")); err != nil {
		respondServiceError(w, err, "failed to delete unit")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Tenants lists the household's tenant directory.
//
// Endpoint: GET /api/tenants
func (h *RentalHandler) Tenants(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	tenants, err := h.rentalService.GetTenants(claims.HouseholdID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve tenants")
		return
	}

	respondJSON(w, http.StatusOK, tenants)
}

// CreateTenant adds a tenant to the household directory.
//
// Endpoint: POST /api/tenants
func (h *RentalHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.rentalService.CreateTenant(model.Tenant{
		HouseholdID: claims.HouseholdID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "failed to create tenant")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// UpdateTenant updates a tenant.
//
// Endpoint: PUT /api/tenants/{tenantId}
func (h *RentalHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdateTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.rentalService.UpdateTenant(claims.HouseholdID, model.Tenant{
		ID:    chi.URLParam(r, "tenantId"),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "failed to update tenant")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteTenant removes a tenant.
//
// Endpoint: DELETE /api/tenants/{tenantId}
func (h *RentalHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.rentalService.DeleteTenant(claims.HouseholdID, chi.URLParam(r, "tenantId")); err != nil {
		respondServiceError(w, err, "failed to delete tenant")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Leases lists a unit's leases, newest first.
//
// Endpoint: GET /api/units/{unitId}/leases
func (h *RentalHandler) Leases(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	leases, err := h.rentalService.GetLeasesOnUnit(claims.HouseholdID, chi.URLParam(r, "unitId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve leases")
		return
	}

	respondJSON(w, http.StatusOK, leases)
}

// CreateLease binds a tenant to a unit.
//
// Endpoint: POST /api/units/{unitId}/leases
func (h *RentalHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateLeaseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	lease, ok := h.leaseFromRequest(w, req.LeaseStart, req.LeaseEnd, req.MoveInDate, req.MoveOutDate)
	if !ok {
		return
	}
	lease.UnitID = chi.URLParam(r, "unitId")
	lease.TenantID = req.TenantID
	lease.MonthlyRent = req.MonthlyRent
	lease.Deposit = req.Deposit
	lease.Status = req.Status
	lease.Notes = req.Notes

	created, err := h.rentalService.CreateLease(claims.HouseholdID, lease)
	if err != nil {
		respondServiceError(w, err, "failed to create lease")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// leaseFromRequest parses the four lease date strings, answering 400 on a bad
// date. The bool reports whether parsing succeeded.
func (h *RentalHandler) leaseFromRequest(w http.ResponseWriter, start, end, moveIn, moveOut string) (model.Lease, bool) {
	var lease model.Lease
	var err error

	if lease.LeaseStart, err = parseDate(start); err != nil {
		respondError(w, http.StatusBadRequest, "invalid lease_start", "expected YYYY-MM-DD")
		return model.Lease{}, false
	}
	if lease.LeaseEnd, err = parseDatePtr(end); err != nil {
		respondError(w, http.StatusBadRequest, "invalid lease_end", "expected YYYY-MM-DD")
		return model.Lease{}, false
	}
	if lease.MoveInDate, err = parseDatePtr(moveIn); err != nil {
		respondError(w, http.StatusBadRequest, "invalid move_in_date", "expected YYYY-MM-DD")
		return model.Lease{}, false
	}
	if lease.MoveOutDate, err = parseDatePtr(moveOut); err != nil {
		respondError(w, http.StatusBadRequest, "invalid move_out_date", "expected YYYY-MM-DD")
		return model.Lease{}, false
	}

	return lease, true
}

// UpdateLease updates a lease.
//
// Endpoint: PUT /api/leases/{leaseId}
func (h *RentalHandler) UpdateLease(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.UpdateLeaseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	lease, ok := h.leaseFromRequest(w, req.LeaseStart, req.LeaseEnd, req.MoveInDate, req.MoveOutDate)
	if !ok {
		return
	}
	lease.ID = chi.URLParam(r, "leaseId")
	lease.MonthlyRent = req.MonthlyRent
	lease.Deposit = req.Deposit
	lease.Status = req.Status
	lease.Notes = req.Notes

	updated, err := h.rentalService.UpdateLease(claims.HouseholdID, lease)
	if err != nil {
		respondServiceError(w, err, "failed to update lease")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteLease removes a lease.
//
// Endpoint: DELETE /api/leases/{leaseId}
func (h *RentalHandler) DeleteLease(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.rentalService.DeleteLease(claims.HouseholdID, chi.URLParam(r, "leaseId")); err != nil {
		respondServiceError(w, err, "failed to delete lease")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Charges lists the charges billed against a lease.
//
// Endpoint: GET /api/leases/{leaseId}/charges
func (h *RentalHandler) Charges(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	charges, err := h.rentalService.GetCharges(claims.HouseholdID, chi.URLParam(r, "leaseId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve charges")
		return
	}

	respondJSON(w, http.StatusOK, charges)
}

// CreateCharge bills a charge against a lease.
//
// Endpoint: POST /api/leases/{leaseId}/charges
func (h *RentalHandler) CreateCharge(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreateRentChargeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	chargeDate, err := parseDate(req.ChargeDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid charge_date", "expected YYYY-MM-DD")
		return
	}

	created, err := h.rentalService.CreateCharge(claims.HouseholdID, model.RentCharge{
		LeaseID:    chi.URLParam(r, "leaseId"),
		ChargeDate: chargeDate,
		Amount:     req.Amount,
		ChargeType: req.ChargeType,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "failed to create charge")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Payments lists the payments collected against a lease.
//
// Endpoint: GET /api/leases/{leaseId}/payments
func (h *RentalHandler) Payments(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	payments, err := h.rentalService.GetPayments(claims.HouseholdID, chi.URLParam(r, "leaseId"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve payments")
		return
	}

	respondJSON(w, http.StatusOK, payments)
}

// CreatePayment records a collected payment against a lease.
//
// Endpoint: POST /api/leases/{leaseId}/payments
func (h *RentalHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req request.CreatePaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid payment_date", "expected YYYY-MM-DD")
		return
	}

	created, err := h.rentalService.RecordPayment(claims.HouseholdID, model.Payment{
		LeaseID:           chi.URLParam(r, "leaseId"),
		PaymentDate:       paymentDate,
		Amount:            req.Amount,
		Method:            req.Method,
		AppliedToChargeID: req.AppliedToChargeID,
		Notes:             req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "failed to record payment")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// DeletePayment removes a collected payment.
//
// Endpoint: DELETE /api/leases/{leaseId}/payments/{paymentId}
func (h *RentalHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	err := h.rentalService.DeletePayment(claims.HouseholdID, chi.URLParam(r, "leaseId"), chi.URLParam(r, "paymentId"))
	if err != nil {
		respondServiceError(w, err, "failed to delete payment")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
