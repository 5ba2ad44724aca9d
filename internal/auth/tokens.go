// Package auth mints and verifies the bearer tokens issued at login. Tokens
// are fernet: the payload is encrypted and signed, and expiry is enforced by
// fernet's TTL check against the token's issue timestamp.
package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"homeledger/internal/apperrors"
)

const (
	// TypeAccess tokens authenticate API requests.
	TypeAccess = "access"
	// TypeRefresh tokens are exchanged for a new access token at /auth/refresh.
	TypeRefresh = "refresh"
)

// Claims is the payload carried inside a token.
type Claims struct {
	UserID      string `json:"user_id"`
	HouseholdID string `json:"household_id"`
	Type        string `json:"type"`
}

// TokenManager issues and verifies access and refresh tokens.
type TokenManager struct {
	keys       []*fernet.Key
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager parses the base64 urlsafe secret key and configures token
// lifetimes. Returns an error if the secret is not a valid fernet key.
func NewTokenManager(secretKey string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	key, err := fernet.DecodeKey(secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret key: %w", err)
	}

	return &TokenManager{
		keys:       []*fernet.Key{key},
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// MintAccess issues a short-lived access token for a user.
func (m *TokenManager) MintAccess(userID, householdID string) (string, error) {
	return m.mint(Claims{UserID: userID, HouseholdID: householdID, Type: TypeAccess})
}

// MintRefresh issues a long-lived refresh token for a user.
func (m *TokenManager) MintRefresh(userID, householdID string) (string, error) {
	return m.mint(Claims{UserID: userID, HouseholdID: householdID, Type: TypeRefresh})
}

func (m *TokenManager) mint(claims Claims) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token claims: %w", err)
	}

	tok, err := fernet.EncryptAndSign(payload, m.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(tok), nil
}

// VerifyAccess validates an access token and returns its claims.
func (m *TokenManager) VerifyAccess(token string) (*Claims, error) {
	return m.verify(token, TypeAccess, m.accessTTL)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (m *TokenManager) VerifyRefresh(token string) (*Claims, error) {
	return m.verify(token, TypeRefresh, m.refreshTTL)
}

func (m *TokenManager) verify(token, wantType string, ttl time.Duration) (*Claims, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), ttl, m.keys)
	if payload == nil {
		return nil, apperrors.ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.Type != wantType {
		return nil, apperrors.ErrInvalidToken
	}

	return &claims, nil
}

// GenerateKey returns a fresh base64 urlsafe fernet key, for bootstrapping
// an API_SECRET_KEY.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return key.Encode(), nil
}
