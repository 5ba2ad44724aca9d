package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"homeledger/internal/api/handlers"
	"homeledger/internal/api/request"
	"homeledger/internal/model"
	"homeledger/internal/testutil"
)

// TestRentalHandler_Units tests the unit sub-resource endpoints.
//
// WHY: Units default to rentable unless the request says otherwise, and that
// flag decides whether the unit counts toward occupancy. The default must
// survive the request-to-model mapping.
func TestRentalHandler_Units(t *testing.T) {
	t.Run("creates a unit defaulting to rentable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewRentalHandler(testutil.NewTestRentalService(t, db))

		household := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(household.ID).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/properties/"+property.ID+"/units",
			request.CreateUnitRequest{UnitLabel: "Unit B"})
		req = testutil.WithURLParams(req, map[string]string{"propertyId": property.ID})
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateUnit(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var unit model.Unit
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&unit)

		if !unit.IsRentable {
			t.Error("Expected unit to default to rentable")
		}
		if unit.PropertyID != property.ID {
			t.Errorf("Expected property ID %s, got %s", property.ID, unit.PropertyID)
		}
	})

	t.Run("returns 404 when creating a unit on a foreign property", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewRentalHandler(testutil.NewTestRentalService(t, db))

		mine := testutil.NewHousehold().Build(t, db)
		theirs := testutil.NewHousehold().Build(t, db)
		foreign := testutil.NewProperty(theirs.ID).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/properties/"+foreign.ID+"/units",
			request.CreateUnitRequest{UnitLabel: "Unit B"})
		req = testutil.WithURLParams(req, map[string]string{"propertyId": foreign.ID})
		req = testutil.Authenticated(req, mine.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateUnit(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestRentalHandler_Leases tests the lease sub-resource endpoints.
//
// WHY: Lease creation crosses three resources (unit, tenant, lease) and the
// handler owns the date-string parsing. A bad date must 400 before the
// service runs, and an inverted range must surface the service's 400.
func TestRentalHandler_Leases(t *testing.T) {
	setup := func(t *testing.T) (*handlers.RentalHandler, string, model.Unit, model.Tenant) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		handler := handlers.NewRentalHandler(testutil.NewTestRentalService(t, db))

		household := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(household.ID).Build(t, db)
		unit := testutil.NewUnit(property.ID).Build(t, db)
		tenant := testutil.NewTenant(household.ID).Build(t, db)
		return handler, household.ID, unit, tenant
	}

	t.Run("creates a lease binding tenant to unit", func(t *testing.T) {
		handler, householdID, unit, tenant := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/units/"+unit.ID+"/leases",
			request.CreateLeaseRequest{
				TenantID:    tenant.ID,
				LeaseStart:  "2025-01-01",
				LeaseEnd:    "2025-12-31",
				MonthlyRent: decimal.NewFromInt(1800),
				Status:      "active",
			})
		req = testutil.WithURLParams(req, map[string]string{"unitId": unit.ID})
		req = testutil.Authenticated(req, householdID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateLease(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var lease model.Lease
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&lease)

		if lease.UnitID != unit.ID || lease.TenantID != tenant.ID {
			t.Errorf("Expected lease on unit %s tenant %s, got unit %s tenant %s",
				unit.ID, tenant.ID, lease.UnitID, lease.TenantID)
		}
	})

	t.Run("returns 400 for a malformed lease_start", func(t *testing.T) {
		handler, householdID, unit, tenant := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/units/"+unit.ID+"/leases",
			request.CreateLeaseRequest{
				TenantID:   tenant.ID,
				LeaseStart: "01/01/2025",
			})
		req = testutil.WithURLParams(req, map[string]string{"unitId": unit.ID})
		req = testutil.Authenticated(req, householdID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateLease(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 when lease_end precedes lease_start", func(t *testing.T) {
		handler, householdID, unit, tenant := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/units/"+unit.ID+"/leases",
			request.CreateLeaseRequest{
				TenantID:    tenant.ID,
				LeaseStart:  "2025-06-01",
				LeaseEnd:    "2025-01-01",
				MonthlyRent: decimal.NewFromInt(1800),
			})
		req = testutil.WithURLParams(req, map[string]string{"unitId": unit.ID})
		req = testutil.Authenticated(req, householdID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateLease(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestRentalHandler_Charges tests the charge sub-resource endpoints.
//
// WHY: Charges feed the delinquency metric, so a negative amount must be
// rejected and a created charge must come back on the list endpoint.
func TestRentalHandler_Charges(t *testing.T) {
	setup := func(t *testing.T) (*handlers.RentalHandler, string, model.Lease) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		handler := handlers.NewRentalHandler(testutil.NewTestRentalService(t, db))

		household := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(household.ID).Build(t, db)
		unit := testutil.NewUnit(property.ID).Build(t, db)
		tenant := testutil.NewTenant(household.ID).Build(t, db)
		lease := testutil.NewLease(unit.ID, tenant.ID).Build(t, db)
		return handler, household.ID, lease
	}

	t.Run("creates and lists charges", func(t *testing.T) {
		handler, householdID, lease := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/leases/"+lease.ID+"/charges",
			request.CreateRentChargeRequest{
				ChargeDate: "2025-06-01",
				Amount:     decimal.NewFromInt(1500),
				ChargeType: "rent",
			})
		req = testutil.WithURLParams(req, map[string]string{"leaseId": lease.ID})
		req = testutil.Authenticated(req, householdID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateCharge(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		listReq := testutil.NewRequestWithURLParams(http.MethodGet, "/api/leases/"+lease.ID+"/charges",
			map[string]string{"leaseId": lease.ID})
		listReq = testutil.Authenticated(listReq, householdID, testutil.MakeID())
		listW := httptest.NewRecorder()

		handler.Charges(listW, listReq)

		if listW.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", listW.Code, listW.Body.String())
		}

		var charges []model.RentCharge
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(listW.Body).Decode(&charges)

		if len(charges) != 1 {
			t.Fatalf("Expected 1 charge, got %d", len(charges))
		}
	})

	t.Run("returns 400 for a negative amount", func(t *testing.T) {
		handler, householdID, lease := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/leases/"+lease.ID+"/charges",
			request.CreateRentChargeRequest{
				ChargeDate: "2025-06-01",
				Amount:     decimal.NewFromInt(-100),
				ChargeType: "rent",
			})
		req = testutil.WithURLParams(req, map[string]string{"leaseId": lease.ID})
		req = testutil.Authenticated(req, householdID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateCharge(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
