package client

import (
	"context"
	"net/http"

	"homeledger/internal/api/request"
	"homeledger/internal/model"
)

// Properties lists the household's properties.
func (c *Client) Properties(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property
	err := c.do(ctx, http.MethodGet, "/api/properties", nil, &properties)
	return properties, err
}

// Property retrieves one property.
func (c *Client) Property(ctx context.Context, propertyID string) (model.Property, error) {
	var property model.Property
	err := c.do(ctx, http.MethodGet, "/api/properties/"+propertyID, nil, &property)
	return property, err
}

// CreateProperty creates a property.
func (c *Client) CreateProperty(ctx context.Context, req request.CreatePropertyRequest) (model.Property, error) {
	var property model.Property
	err := c.do(ctx, http.MethodPost, "/api/properties", req, &property)
	return property, err
}

// UpdateProperty updates a property.
func (c *Client) UpdateProperty(ctx context.Context, propertyID string, req request.UpdatePropertyRequest) (model.Property, error) {
	var property model.Property
	err := c.do(ctx, http.MethodPut, "/api/properties/"+propertyID, req, &property)
	return property, err
}

// DeleteProperty removes a property and everything attached to it.
func (c *Client) DeleteProperty(ctx context.Context, propertyID string) error {
	return c.do(ctx, http.MethodDelete, "/api/properties/"+propertyID, nil, nil)
}

// Valuations lists a property's valuation history.
func (c *Client) Valuations(ctx context.Context, propertyID string) ([]model.PropertyValuation, error) {
	var valuations []model.PropertyValuation
	err := c.do(ctx, http.MethodGet, "/api/properties/"+propertyID+"/valuations", nil, &valuations)
	return valuations, err
}

// CreateValuation records a valuation point.
func (c *Client) CreateValuation(ctx context.Context, propertyID string, req request.CreateValuationRequest) (model.PropertyValuation, error) {
	var valuation model.PropertyValuation
	err := c.do(ctx, http.MethodPost, "/api/properties/"+propertyID+"/valuations", req, &valuation)
	return valuation, err
}

// CapitalEvents lists a property's capital timeline.
func (c *Client) CapitalEvents(ctx context.Context, propertyID string) ([]model.CapitalEvent, error) {
	var events []model.CapitalEvent
	err := c.do(ctx, http.MethodGet, "/api/properties/"+propertyID+"/capital-events", nil, &events)
	return events, err
}

// CreateCapitalEvent records a signed capital event.
func (c *Client) CreateCapitalEvent(ctx context.Context, propertyID string, req request.CreateCapitalEventRequest) (model.CapitalEvent, error) {
	var event model.CapitalEvent
	err := c.do(ctx, http.MethodPost, "/api/properties/"+propertyID+"/capital-events", req, &event)
	return event, err
}

// DeleteCapitalEvent removes a capital event.
func (c *Client) DeleteCapitalEvent(ctx context.Context, propertyID, eventID string) error {
	return c.do(ctx, http.MethodDelete, "/api/properties/"+propertyID+"/capital-events/"+eventID, nil, nil)
}

// Loans lists the loans secured by a property.
func (c *Client) Loans(ctx context.Context, propertyID string) ([]model.Loan, error) {
	var loans []model.Loan
	err := c.do(ctx, http.MethodGet, "/api/properties/"+propertyID+"/loans", nil, &loans)
	return loans, err
}

// CreateLoan attaches a loan to a property.
func (c *Client) CreateLoan(ctx context.Context, propertyID string, req request.CreateLoanRequest) (model.Loan, error) {
	var loan model.Loan
	err := c.do(ctx, http.MethodPost, "/api/properties/"+propertyID+"/loans", req, &loan)
	return loan, err
}

// UpdateLoan updates a loan.
func (c *Client) UpdateLoan(ctx context.Context, loanID string, req request.UpdateLoanRequest) (model.Loan, error) {
	var loan model.Loan
	err := c.do(ctx, http.MethodPut, "/api/loans/"+loanID, req, &loan)
	return loan, err
}

// DeleteLoan removes a loan.
func (c *Client) DeleteLoan(ctx context.Context, loanID string) error {
	return c.do(ctx, http.MethodDelete, "/api/loans/"+loanID, nil, nil)
}

// Costs lists a property's recurring costs.
func (c *Client) Costs(ctx context.Context, propertyID string) ([]model.PropertyCost, error) {
	var costs []model.PropertyCost
	err := c.do(ctx, http.MethodGet, "/api/properties/"+propertyID+"/costs", nil, &costs)
	return costs, err
}

// CreateCost attaches a recurring cost to a property.
func (c *Client) CreateCost(ctx context.Context, propertyID string, req request.CreatePropertyCostRequest) (model.PropertyCost, error) {
	var cost model.PropertyCost
	err := c.do(ctx, http.MethodPost, "/api/properties/"+propertyID+"/costs", req, &cost)
	return cost, err
}

// UpdateCost updates a recurring cost.
func (c *Client) UpdateCost(ctx context.Context, propertyID, costID string, req request.UpdatePropertyCostRequest) (model.PropertyCost, error) {
	var cost model.PropertyCost
	err := c.do(ctx, http.MethodPut, "/api/properties/"+propertyID+"/costs/"+costID, req, &cost)
	return cost, err
}

// DeleteCost removes a recurring cost.
func (c *Client) DeleteCost(ctx context.Context, propertyID, costID string) error {
	return c.do(ctx, http.MethodDelete, "/api/properties/"+propertyID+"/costs/"+costID, nil, nil)
}

// Expenses lists a property's maintenance expenses.
func (c *Client) Expenses(ctx context.Context, propertyID string) ([]model.MaintenanceExpense, error) {
	var expenses []model.MaintenanceExpense
	err := c.do(ctx, http.MethodGet, "/api/properties/"+propertyID+"/expenses", nil, &expenses)
	return expenses, err
}

// CreateExpense records a maintenance expense.
func (c *Client) CreateExpense(ctx context.Context, propertyID string, req request.CreateExpenseRequest) (model.MaintenanceExpense, error) {
	var expense model.MaintenanceExpense
	err := c.do(ctx, http.MethodPost, "/api/properties/"+propertyID+"/expenses", req, &expense)
	return expense, err
}

// UpdateExpense updates a maintenance expense.
func (c *Client) UpdateExpense(ctx context.Context, propertyID, expenseID string, req request.UpdateExpenseRequest) (model.MaintenanceExpense, error) {
	var expense model.MaintenanceExpense
	err := c.do(ctx, http.MethodPut, "/api/properties/"+propertyID+"/expenses/"+expenseID, req, &expense)
	return expense, err
}

// DeleteExpense removes a maintenance expense.
func (c *Client) DeleteExpense(ctx context.Context, propertyID, expenseID string) error {
	return c.do(ctx, http.MethodDelete, "/api/properties/"+propertyID+"/expenses/"+expenseID, nil, nil)
}
