package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homeledger/internal/api/handlers"
	"homeledger/internal/model"
	"homeledger/internal/testutil"
)

// TestReportHandler_PropertyReport tests the GET /api/reports/property/{propertyId} endpoint.
//
// WHY: The report endpoint is the heaviest read in the API. This verifies the
// query parameter plumbing (year, month, period=ltd) and the 404 on foreign
// properties; the metric math itself is covered by the report service tests.
func TestReportHandler_PropertyReport(t *testing.T) {
	t.Run("returns the report for the requested month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewReportHandler(testutil.NewTestReportService(t, db))

		household := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(household.ID).
			WithPurchase("2022-06-15", 300000, 9000).
			WithCurrentValue(380000).
			Build(t, db)

		unit := testutil.NewUnit(property.ID).Build(t, db)
		tenant := testutil.NewTenant(household.ID).Build(t, db)
		lease := testutil.NewLease(unit.ID, tenant.ID).WithStart("2024-01-01").WithRent(2000).Build(t, db)
		testutil.CreateRentCharge(t, db, lease.ID, "2025-06-01", 2000)
		testutil.CreatePayment(t, db, lease.ID, "2025-06-03", 2000)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reports/property/"+property.ID,
			map[string]string{"year": "2025", "month": "6"})
		req = testutil.WithURLParams(req, map[string]string{"propertyId": property.ID})
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.PropertyReport(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report model.PropertyReport
		if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
			t.Fatalf("Failed to decode report: %v", err)
		}

		if report.Year != 2025 || report.Month != "2025-06" {
			t.Errorf("Expected period 2025-06, got %d %s", report.Year, report.Month)
		}
		if report.Monthly.RentCollected != 2000 {
			t.Errorf("Expected rent collected 2000, got %v", report.Monthly.RentCollected)
		}
		if report.Lifetime != nil {
			t.Error("Expected no lifetime block without period=ltd")
		}
	})

	t.Run("includes the lifetime block when period=ltd", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewReportHandler(testutil.NewTestReportService(t, db))

		household := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(household.ID).
			WithPurchase("2022-06-15", 300000, 9000).
			Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reports/property/"+property.ID,
			map[string]string{"year": "2025", "month": "6", "period": "ltd"})
		req = testutil.WithURLParams(req, map[string]string{"propertyId": property.ID})
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.PropertyReport(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report model.PropertyReport
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&report)

		if report.Lifetime == nil {
			t.Fatal("Expected lifetime block with period=ltd")
		}
		if report.Lifetime.StartDate != "2022-06-15" {
			t.Errorf("Expected lifetime start 2022-06-15, got %s", report.Lifetime.StartDate)
		}
	})

	t.Run("returns 400 for an out of range month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewReportHandler(testutil.NewTestReportService(t, db))
		household := testutil.NewHousehold().Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reports/property/"+testutil.MakeID(),
			map[string]string{"year": "2025", "month": "13"})
		req = testutil.WithURLParams(req, map[string]string{"propertyId": testutil.MakeID()})
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.PropertyReport(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for another household's property", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewReportHandler(testutil.NewTestReportService(t, db))

		mine := testutil.NewHousehold().Build(t, db)
		theirs := testutil.NewHousehold().Build(t, db)
		foreign := testutil.NewProperty(theirs.ID).Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reports/property/"+foreign.ID,
			map[string]string{"year": "2025", "month": "6"})
		req = testutil.WithURLParams(req, map[string]string{"propertyId": foreign.ID})
		req = testutil.Authenticated(req, mine.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.PropertyReport(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestReportHandler_PortfolioReport tests the GET /api/reports/portfolio endpoint.
//
// WHY: The portfolio rollup is the landing page payload. An empty household
// must come back as a valid zero report, not an error.
func TestReportHandler_PortfolioReport(t *testing.T) {
	t.Run("returns totals across properties", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewReportHandler(testutil.NewTestReportService(t, db))

		household := testutil.NewHousehold().Build(t, db)
		testutil.NewProperty(household.ID).WithPurchase("2022-06-15", 300000, 9000).Build(t, db)
		testutil.NewProperty(household.ID).WithPurchase("2023-02-01", 250000, 7000).Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reports/portfolio",
			map[string]string{"year": "2025", "month": "6"})
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.PortfolioReport(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report model.PortfolioReport
		if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
			t.Fatalf("Failed to decode report: %v", err)
		}

		if len(report.Properties) != 2 {
			t.Errorf("Expected 2 property reports, got %d", len(report.Properties))
		}
		if report.Year != 2025 || report.Month != "2025-06" {
			t.Errorf("Expected period 2025-06, got %d %s", report.Year, report.Month)
		}
	})

	t.Run("returns a zero report for an empty household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewReportHandler(testutil.NewTestReportService(t, db))
		household := testutil.NewHousehold().Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reports/portfolio",
			map[string]string{"year": "2025", "month": "6"})
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.PortfolioReport(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report model.PortfolioReport
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&report)

		if len(report.Properties) != 0 {
			t.Errorf("Expected no property reports, got %d", len(report.Properties))
		}
	})
}
