package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"homeledger/internal/client"
)

// TestClient_BearerToken tests that every request carries the access token.
//
// WHY: The server authenticates purely on the Authorization header. A client
// that drops it would turn every call into a refresh cycle.
func TestClient_BearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // Test stub
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	c := client.New(server.URL, client.WithTokenPair("access-token", "refresh-token"))

	if _, err := c.Accounts(context.Background()); err != nil {
		t.Fatalf("Accounts failed: %v", err)
	}
	if gotAuth != "Bearer access-token" {
		t.Errorf("Expected 'Bearer access-token', got '%s'", gotAuth)
	}
}

// TestClient_RefreshRetry tests the 401 handling policy.
//
// WHY: Access tokens expire every 15 minutes. The client must refresh and
// retry exactly once, silently, and only give up with ErrSessionExpired when
// the refreshed token is rejected too.
func TestClient_RefreshRetry(t *testing.T) {
	t.Run("refreshes once and retries after a 401", func(t *testing.T) {
		var accountCalls, refreshCalls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/auth/refresh":
				atomic.AddInt32(&refreshCalls, 1)
				var body map[string]string
				//nolint:errcheck // Test stub
				json.NewDecoder(r.Body).Decode(&body)
				if body["refresh_token"] != "refresh-token" {
					t.Errorf("Expected refresh token in body, got %q", body["refresh_token"])
				}
				//nolint:errcheck // Test stub
				json.NewEncoder(w).Encode(map[string]string{
					"access_token":  "fresh-access",
					"refresh_token": "fresh-refresh",
				})
			case "/api/accounts":
				if atomic.AddInt32(&accountCalls, 1) == 1 {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				if r.Header.Get("Authorization") != "Bearer fresh-access" {
					t.Errorf("Expected retry with fresh token, got '%s'", r.Header.Get("Authorization"))
				}
				//nolint:errcheck // Test stub
				w.Write([]byte("[]"))
			default:
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
		}))
		defer server.Close()

		c := client.New(server.URL, client.WithTokenPair("stale-access", "refresh-token"))

		if _, err := c.Accounts(context.Background()); err != nil {
			t.Fatalf("Expected silent recovery, got %v", err)
		}
		if refreshCalls != 1 {
			t.Errorf("Expected 1 refresh call, got %d", refreshCalls)
		}
		if accountCalls != 2 {
			t.Errorf("Expected 2 account calls, got %d", accountCalls)
		}

		access, refresh := c.Tokens()
		if access != "fresh-access" || refresh != "fresh-refresh" {
			t.Errorf("Expected stored tokens to rotate, got %s / %s", access, refresh)
		}
	})

	t.Run("returns ErrSessionExpired when the retry also gets a 401", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/auth/refresh" {
				//nolint:errcheck // Test stub
				json.NewEncoder(w).Encode(map[string]string{
					"access_token":  "still-bad",
					"refresh_token": "still-bad",
				})
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := client.New(server.URL, client.WithTokenPair("bad", "bad"))

		_, err := c.Accounts(context.Background())
		if !errors.Is(err, client.ErrSessionExpired) {
			t.Errorf("Expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("returns ErrSessionExpired when the refresh itself fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := client.New(server.URL, client.WithTokenPair("bad", "bad"))

		_, err := c.Accounts(context.Background())
		if !errors.Is(err, client.ErrSessionExpired) {
			t.Errorf("Expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("does not attempt refresh without a refresh token", func(t *testing.T) {
		var refreshCalls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/auth/refresh" {
				atomic.AddInt32(&refreshCalls, 1)
			}
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := client.New(server.URL)

		_, err := c.Accounts(context.Background())
		if !errors.Is(err, client.ErrSessionExpired) {
			t.Errorf("Expected ErrSessionExpired, got %v", err)
		}
		if refreshCalls != 0 {
			t.Errorf("Expected no refresh calls, got %d", refreshCalls)
		}
	})
}

// TestClient_APIError tests non-2xx decoding.
//
// WHY: Handlers answer errors as {"error": ..., "detail": ...}. Callers match
// on the status code and show the message, so both must survive the decode.
func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		//nolint:errcheck // Test stub
		w.Write([]byte(`{"error":"property not found"}`))
	}))
	defer server.Close()

	c := client.New(server.URL, client.WithTokenPair("access", "refresh"))

	_, err := c.Property(context.Background(), "some-id")

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", apiErr.Status)
	}
	if apiErr.Message != "property not found" {
		t.Errorf("Expected message 'property not found', got '%s'", apiErr.Message)
	}
}
