package client

import (
	"context"
	"net/http"

	"homeledger/internal/api/request"
	"homeledger/internal/model"
)

// Accounts lists the household's accounts.
func (c *Client) Accounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := c.do(ctx, http.MethodGet, "/api/accounts", nil, &accounts)
	return accounts, err
}

// Account retrieves one account.
func (c *Client) Account(ctx context.Context, accountID string) (model.Account, error) {
	var account model.Account
	err := c.do(ctx, http.MethodGet, "/api/accounts/"+accountID, nil, &account)
	return account, err
}

// CreateAccount creates a manual account.
func (c *Client) CreateAccount(ctx context.Context, req request.CreateAccountRequest) (model.Account, error) {
	var account model.Account
	err := c.do(ctx, http.MethodPost, "/api/accounts", req, &account)
	return account, err
}

// UpdateAccount updates a manual account.
func (c *Client) UpdateAccount(ctx context.Context, accountID string, req request.UpdateAccountRequest) (model.Account, error) {
	var account model.Account
	err := c.do(ctx, http.MethodPut, "/api/accounts/"+accountID, req, &account)
	return account, err
}

// DeleteAccount removes an account and its holdings.
func (c *Client) DeleteAccount(ctx context.Context, accountID string) error {
	return c.do(ctx, http.MethodDelete, "/api/accounts/"+accountID, nil, nil)
}

// Holdings lists the holdings of an investment account.
func (c *Client) Holdings(ctx context.Context, accountID string) ([]model.Holding, error) {
	var holdings []model.Holding
	err := c.do(ctx, http.MethodGet, "/api/accounts/"+accountID+"/holdings", nil, &holdings)
	return holdings, err
}

// CreateHolding adds a holding to an investment account.
func (c *Client) CreateHolding(ctx context.Context, accountID string, req request.CreateHoldingRequest) (model.Holding, error) {
	var holding model.Holding
	err := c.do(ctx, http.MethodPost, "/api/accounts/"+accountID+"/holdings", req, &holding)
	return holding, err
}

// UpdateHolding updates a holding.
func (c *Client) UpdateHolding(ctx context.Context, holdingID string, req request.UpdateHoldingRequest) (model.Holding, error) {
	var holding model.Holding
	err := c.do(ctx, http.MethodPut, "/api/holdings/"+holdingID, req, &holding)
	return holding, err
}

// DeleteHolding removes a holding.
func (c *Client) DeleteHolding(ctx context.Context, holdingID string) error {
	return c.do(ctx, http.MethodDelete, "/api/holdings/"+holdingID, nil, nil)
}
