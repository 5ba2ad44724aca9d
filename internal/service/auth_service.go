package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"homeledger/internal/apperrors"
	"homeledger/internal/auth"
	"homeledger/internal/model"
	"homeledger/internal/repository"
)

// TokenPair is what login, register, and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration, login, and token refresh.
type AuthService struct {
	userRepo      *repository.UserRepository
	householdRepo *repository.HouseholdRepository
	tokens        *auth.TokenManager
}

// NewAuthService creates a new AuthService with the provided dependencies.
func NewAuthService(
	userRepo *repository.UserRepository,
	householdRepo *repository.HouseholdRepository,
	tokens *auth.TokenManager,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		householdRepo: householdRepo,
		tokens:        tokens,
	}
}

// Register creates a household and its first user, then issues tokens.
func (s *AuthService) Register(householdName, email, name, password string) (model.User, TokenPair, error) {
	taken, err := s.userRepo.EmailExists(email)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}
	if taken {
		return model.User{}, TokenPair{}, apperrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	household, err := s.householdRepo.CreateHousehold(householdName)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	user, err := s.userRepo.CreateUser(household.ID, email, name, string(hash))
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	return user, pair, nil
}

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(email, password string) (model.User, TokenPair, error) {
	user, err := s.userRepo.GetUserOnEmail(email)
	if err == apperrors.ErrUserNotFound {
		return model.User{}, TokenPair{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	user, err := s.userRepo.GetUserOnID(claims.UserID)
	if err == apperrors.ErrUserNotFound {
		return TokenPair{}, apperrors.ErrInvalidToken
	}
	if err != nil {
		return TokenPair{}, err
	}

	return s.issueTokens(user)
}

// CurrentUser resolves the user behind a verified access token.
func (s *AuthService) CurrentUser(userID string) (model.User, error) {
	return s.userRepo.GetUserOnID(userID)
}

func (s *AuthService) issueTokens(user model.User) (TokenPair, error) {
	access, err := s.tokens.MintAccess(user.ID, user.HouseholdID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.MintRefresh(user.ID, user.HouseholdID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
