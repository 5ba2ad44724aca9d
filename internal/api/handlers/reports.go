package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"homeledger/internal/service"
)

// ReportHandler handles property and portfolio report HTTP requests.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// reportPeriod reads the year and month query parameters, defaulting to the
// current calendar month. The bool reports whether the parameters were valid;
// on false a 400 has already been written.
func reportPeriod(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 || parsed > 9999 {
			respondError(w, http.StatusBadRequest, "invalid year", "expected a four digit year")
			return 0, 0, false
		}
		year = parsed
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			respondError(w, http.StatusBadRequest, "invalid month", "expected 1 through 12")
			return 0, 0, false
		}
		month = parsed
	}

	return year, month, true
}

// PropertyReport builds the full report for one property. Pass period=ltd to
// include the lifetime block.
//
// Endpoint: GET /api/reports/property/{propertyId}?year=&month=&period=
func (h *ReportHandler) PropertyReport(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	year, month, ok := reportPeriod(w, r)
	if !ok {
		return
	}
	includeLifetime := r.URL.Query().Get("period") == "ltd"

	report, err := h.reportService.BuildPropertyReport(claims.HouseholdID, chi.URLParam(r, "propertyId"), year, month, includeLifetime)
	if err != nil {
		respondServiceError(w, err, "failed to build property report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// PortfolioReport builds per-property reports plus portfolio totals for the
// whole household.
//
// Endpoint: GET /api/reports/portfolio?year=&month=
func (h *ReportHandler) PortfolioReport(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	year, month, ok := reportPeriod(w, r)
	if !ok {
		return
	}

	report, err := h.reportService.BuildPortfolioReport(claims.HouseholdID, year, month)
	if err != nil {
		respondServiceError(w, err, "failed to build portfolio report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
