package handlers

import (
	"net/http"
	"strings"

	"homeledger/internal/api/request"
	"homeledger/internal/model"
	"homeledger/internal/service"
)

// AuthHandler handles registration, login, and token refresh.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// UserResponse is the public shape of a user. The password hash never
// crosses this boundary.
type UserResponse struct {
	ID          string `json:"id"`
	HouseholdID string `json:"household_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
}

// AuthResponse bundles the user with a fresh token pair.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		HouseholdID: u.HouseholdID,
		Email:       u.Email,
		Name:        u.Name,
	}
}

// Register creates a household and its first user.
//
// Endpoint: POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "email, name, and password are required", "")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters", "")
		return
	}
	if req.HouseholdName == "" {
		req.HouseholdName = req.Name
	}

	user, pair, err := h.authService.Register(req.HouseholdName, req.Email, req.Name, req.Password)
	if err != nil {
		respondServiceError(w, err, "failed to register")
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Login exchanges credentials for a token pair.
//
// Endpoint: POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, pair, err := h.authService.Login(strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		respondServiceError(w, err, "failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// TokenPairResponse carries a fresh token pair.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a refresh token for a new token pair.
//
// Endpoint: POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondServiceError(w, err, "failed to refresh token")
		return
	}

	respondJSON(w, http.StatusOK, TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Me returns the authenticated user.
//
// Endpoint: GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	user, err := h.authService.CurrentUser(claims.UserID)
	if err != nil {
		respondServiceError(w, err, "failed to load user")
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(user))
}
