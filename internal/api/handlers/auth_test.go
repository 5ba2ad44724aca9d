package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homeledger/internal/api/handlers"
	"homeledger/internal/api/request"
	"homeledger/internal/testutil"
)

// TestAuthHandler_Register tests the POST /api/auth/register endpoint.
//
// WHY: Registration is the entry point for every household. It has to create
// the household, hash the password, and hand back a usable token pair in one
// shot, and it must reject weak or incomplete signups with 400s the frontend
// can display.
func TestAuthHandler_Register(t *testing.T) {
	setup := func(t *testing.T) *handlers.AuthHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return handlers.NewAuthHandler(testutil.NewTestAuthService(t, db))
	}

	t.Run("creates household and user and returns tokens", func(t *testing.T) {
		handler := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/register", request.RegisterRequest{
			HouseholdName: "Doe Family",
			Email:         "jane@example.com",
			Name:          "Jane Doe",
			Password:      "correct horse battery",
		})
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response handlers.AuthResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if response.User.Email != "jane@example.com" {
			t.Errorf("Expected email 'jane@example.com', got '%s'", response.User.Email)
		}
		if response.User.HouseholdID == "" {
			t.Error("Expected household_id to be populated")
		}
		if response.AccessToken == "" || response.RefreshToken == "" {
			t.Error("Expected both tokens to be populated")
		}
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		handler := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/register", request.RegisterRequest{
			Email:    "  Jane@Example.COM ",
			Name:     "Jane Doe",
			Password: "correct horse battery",
		})
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response handlers.AuthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.User.Email != "jane@example.com" {
			t.Errorf("Expected normalized email, got '%s'", response.User.Email)
		}
	})

	t.Run("returns 400 for a short password", func(t *testing.T) {
		handler := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/register", request.RegisterRequest{
			Email:    "jane@example.com",
			Name:     "Jane Doe",
			Password: "short",
		})
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 when required fields are missing", func(t *testing.T) {
		handler := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/register", request.RegisterRequest{
			Email: "jane@example.com",
		})
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 409 when the email is already registered", func(t *testing.T) {
		handler := setup(t)

		body := request.RegisterRequest{
			Email:    "jane@example.com",
			Name:     "Jane Doe",
			Password: "correct horse battery",
		}

		w := httptest.NewRecorder()
		handler.Register(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/register", body))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201 on first register, got %d", w.Code)
		}

		w = httptest.NewRecorder()
		handler.Register(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/register", body))
		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409 on duplicate register, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestAuthHandler_Login tests the POST /api/auth/login endpoint.
//
// WHY: Login must accept the password set at registration and must not leak
// whether the email or the password was wrong. Both failure shapes come back
// as a single 401.
func TestAuthHandler_Login(t *testing.T) {
	setup := func(t *testing.T) *handlers.AuthHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAuthHandler(testutil.NewTestAuthService(t, db))

		w := httptest.NewRecorder()
		handler.Register(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/register", request.RegisterRequest{
			Email:    "jane@example.com",
			Name:     "Jane Doe",
			Password: "correct horse battery",
		}))
		if w.Code != http.StatusCreated {
			t.Fatalf("Failed to register fixture user: %d %s", w.Code, w.Body.String())
		}
		return handler
	}

	t.Run("returns tokens for valid credentials", func(t *testing.T) {
		handler := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login", request.LoginRequest{
			Email:    "jane@example.com",
			Password: "correct horse battery",
		})
		w := httptest.NewRecorder()

		handler.Login(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response handlers.AuthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.AccessToken == "" {
			t.Error("Expected access token to be populated")
		}
	})

	t.Run("returns 401 for a wrong password", func(t *testing.T) {
		handler := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login", request.LoginRequest{
			Email:    "jane@example.com",
			Password: "not the password",
		})
		w := httptest.NewRecorder()

		handler.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 401 for an unknown email", func(t *testing.T) {
		handler := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login", request.LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct horse battery",
		})
		w := httptest.NewRecorder()

		handler.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestAuthHandler_Refresh tests the POST /api/auth/refresh endpoint.
//
// WHY: Clients refresh silently when an access token expires. The refresh
// token minted at login must round-trip into a new pair, and an access token
// must not be accepted in its place.
func TestAuthHandler_Refresh(t *testing.T) {
	setup := func(t *testing.T) (*handlers.AuthHandler, handlers.AuthResponse) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAuthHandler(testutil.NewTestAuthService(t, db))

		w := httptest.NewRecorder()
		handler.Register(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/register", request.RegisterRequest{
			Email:    "jane@example.com",
			Name:     "Jane Doe",
			Password: "correct horse battery",
		}))
		if w.Code != http.StatusCreated {
			t.Fatalf("Failed to register fixture user: %d %s", w.Code, w.Body.String())
		}

		var registered handlers.AuthResponse
		if err := json.NewDecoder(w.Body).Decode(&registered); err != nil {
			t.Fatalf("Failed to decode register response: %v", err)
		}
		return handler, registered
	}

	t.Run("exchanges a refresh token for a new pair", func(t *testing.T) {
		handler, registered := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/refresh", request.RefreshRequest{
			RefreshToken: registered.RefreshToken,
		})
		w := httptest.NewRecorder()

		handler.Refresh(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response handlers.TokenPairResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.AccessToken == "" || response.RefreshToken == "" {
			t.Error("Expected a full token pair")
		}
	})

	t.Run("rejects an access token used as a refresh token", func(t *testing.T) {
		handler, registered := setup(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/refresh", request.RefreshRequest{
			RefreshToken: registered.AccessToken,
		})
		w := httptest.NewRecorder()

		handler.Refresh(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestAuthHandler_Me tests the GET /api/auth/me endpoint.
//
// WHY: The frontend calls /me on startup to restore a session. It must map
// the token claims back to the stored user and must fail closed without
// claims in the context.
func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAuthHandler(testutil.NewTestAuthService(t, db))

		household := testutil.NewHousehold().Build(t, db)
		user := testutil.NewUser(household.ID).WithEmail("jane@example.com").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req = testutil.Authenticated(req, household.ID, user.ID)
		w := httptest.NewRecorder()

		handler.Me(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response handlers.UserResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != user.ID {
			t.Errorf("Expected user ID %s, got %s", user.ID, response.ID)
		}
		if response.Email != "jane@example.com" {
			t.Errorf("Expected email 'jane@example.com', got '%s'", response.Email)
		}
	})

	t.Run("returns 401 without claims in context", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAuthHandler(testutil.NewTestAuthService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		w := httptest.NewRecorder()

		handler.Me(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}
