package client

import (
	"context"
	"net/http"

	"homeledger/internal/api/request"
	"homeledger/internal/model"
)

// TokenPair is the access/refresh pair issued by the auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	User model.User `json:"user"`
	TokenPair
}

// Register creates a household and its first user, storing the returned
// tokens for subsequent calls.
func (c *Client) Register(ctx context.Context, householdName, email, name, password string) (model.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", request.RegisterRequest{
		HouseholdName: householdName,
		Email:         email,
		Name:          name,
		Password:      password,
	}, &resp)
	if err != nil {
		return model.User{}, err
	}

	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return resp.User, nil
}

// Login exchanges credentials for a session, storing the returned tokens.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", request.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return model.User{}, err
	}

	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return resp.User, nil
}

// Me returns the user behind the current session.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user)
	return user, err
}
