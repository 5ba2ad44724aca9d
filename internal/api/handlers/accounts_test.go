package handlers_test

import (
	"database/sql"
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

// TestAccountHandler_Accounts tests the GET /api/accounts endpoint.
//
// WHY: The accounts list drives the net worth page. It must be scoped to the
// caller's household so one family never sees another's balances.
func TestAccountHandler_Accounts(t *testing.T) {
	setup := func(t *testing.T) (*handlers.AccountHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return handlers.NewAccountHandler(testutil.NewTestAccountService(t, db)), db
	}

	t.Run("returns 200 with empty array", func(t *testing.T) {
		handler, db := setup(t)
		household := testutil.NewHousehold().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.Accounts(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Account
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d items", len(response))
		}
	})

	t.Run("only returns the caller's accounts", func(t *testing.T) {
		handler, db := setup(t)
		mine := testutil.NewHousehold().Build(t, db)
		theirs := testutil.NewHousehold().Build(t, db)

		account := testutil.NewAccount(mine.ID).WithName("Checking").Build(t, db)
		testutil.NewAccount(theirs.ID).WithName("Other Checking").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
		req = testutil.Authenticated(req, mine.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.Accounts(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Account
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Fatalf("Expected 1 account, got %d", len(response))
		}
		if response[0].ID != account.ID {
			t.Errorf("Expected account ID %s, got %s", account.ID, response[0].ID)
		}
	})

	t.Run("returns 401 without claims", func(t *testing.T) {
		handler, _ := setup(t)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
		w := httptest.NewRecorder()

		handler.Accounts(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

// TestAccountHandler_CreateAccount tests the POST /api/accounts endpoint.
//
// WHY: Manual account entry is the only way balances get into the system, so
// creation must persist the submitted fields and stamp the caller's household.
func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("creates an account in the caller's household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db))
		household := testutil.NewHousehold().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/accounts", request.CreateAccountRequest{
			Name:           "Brokerage",
			Type:           "investment",
			CurrentBalance: decimal.NewNullDecimal(decimal.NewFromInt(25000)),
		})
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateAccount(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Account
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID == "" {
			t.Error("Expected ID to be populated")
		}
		if response.HouseholdID != household.ID {
			t.Errorf("Expected household ID %s, got %s", household.ID, response.HouseholdID)
		}
		if response.Name != "Brokerage" {
			t.Errorf("Expected name 'Brokerage', got '%s'", response.Name)
		}
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db))
		household := testutil.NewHousehold().Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/accounts", nil)
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateAccount(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestAccountHandler_Account tests the GET /api/accounts/{accountId} endpoint.
//
// WHY: Household scoping on single-resource fetches is the core tenancy
// guarantee. A foreign account must look exactly like a missing one.
func TestAccountHandler_Account(t *testing.T) {
	t.Run("returns 404 for another household's account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db))

		mine := testutil.NewHousehold().Build(t, db)
		theirs := testutil.NewHousehold().Build(t, db)
		foreign := testutil.NewAccount(theirs.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/accounts/"+foreign.ID,
			map[string]string{"accountId": foreign.ID})
		req = testutil.Authenticated(req, mine.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.Account(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestAccountHandler_Holdings tests the holdings sub-resource endpoints.
//
// WHY: Holdings carry the ticker symbols the price refresher keys on, so
// creation must land under the right account and list must come back scoped.
func TestAccountHandler_Holdings(t *testing.T) {
	t.Run("creates and lists holdings under an account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db))

		household := testutil.NewHousehold().Build(t, db)
		account := testutil.NewAccount(household.ID).Investment().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/accounts/"+account.ID+"/holdings",
			request.CreateHoldingRequest{
				TickerSymbol: "VOO",
				Name:         "Vanguard S&P 500",
				Quantity:     decimal.NewFromInt(12),
			})
		req = testutil.WithURLParams(req, map[string]string{"accountId": account.ID})
		req = testutil.Authenticated(req, household.ID, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.CreateHolding(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		listReq := testutil.NewRequestWithURLParams(http.MethodGet, "/api/accounts/"+account.ID+"/holdings",
			map[string]string{"accountId": account.ID})
		listReq = testutil.Authenticated(listReq, household.ID, testutil.MakeID())
		listW := httptest.NewRecorder()

		handler.Holdings(listW, listReq)

		if listW.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", listW.Code, listW.Body.String())
		}

		var holdings []model.Holding
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(listW.Body).Decode(&holdings)

		if len(holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(holdings))
		}
		if holdings[0].TickerSymbol != "VOO" {
			t.Errorf("Expected ticker 'VOO', got '%s'", holdings[0].TickerSymbol)
		}
	})
}
