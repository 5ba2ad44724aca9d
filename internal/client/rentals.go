package client

import (
	"context"
	"net/http"

	"homeledger/internal/api/request"
	"homeledger/internal/model"
)

// Units lists a property's units.
func (c *Client) Units(ctx context.Context, propertyID string) ([]model.Unit, error) {
	var units []model.Unit
	err := c.do(ctx, http.MethodGet, "/api/properties/"+propertyID+"/units", nil, &units)
	return units, err
}

// CreateUnit adds a unit to a property.
func (c *Client) CreateUnit(ctx context.Context, propertyID string, req request.CreateUnitRequest) (model.Unit, error) {
	var unit model.Unit
	err := c.do(ctx, http.MethodPost, "/api/properties/"+propertyID+"/units", req, &unit)
	return unit, err
}

// UpdateUnit updates a unit.
func (c *Client) UpdateUnit(ctx context.Context, unitID string, req request.UpdateUnitRequest) (model.Unit, error) {
	var unit model.Unit
	err := c.do(ctx, http.MethodPut, "/api/units/"+unitID, req, &unit)
	return unit, err
}

// DeleteUnit removes a unit.
func (c *Client) DeleteUnit(ctx context.Context, unitID string) error {
	return c.do(ctx, http.MethodDelete, "/api/units/"+unitID, nil, nil)
}

// Tenants lists the household's tenant directory.
func (c *Client) Tenants(ctx context.Context) ([]model.Tenant, error) {
	var tenants []model.Tenant
	err := c.do(ctx, http.MethodGet, "/api/tenants", nil, &tenants)
	return tenants, err
}

// CreateTenant adds a tenant to the household directory.
func (c *Client) CreateTenant(ctx context.Context, req request.CreateTenantRequest) (model.Tenant, error) {
	var tenant model.Tenant
	err := c.do(ctx, http.MethodPost, "/api/tenants", req, &tenant)
	return tenant, err
}

// UpdateTenant updates a tenant.
func (c *Client) UpdateTenant(ctx context.Context, tenantID string, req request.UpdateTenantRequest) (model.Tenant, error) {
	var tenant model.Tenant
	err := c.do(ctx, http.MethodPut, "/api/tenants/"+tenantID, req, &tenant)
	return tenant, err
}

// DeleteTenant removes a tenant.
func (c *Client) DeleteTenant(ctx context.Context, tenantID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tenants/"+tenantID, nil, nil)
}

// Leases lists a unit's leases.
func (c *Client) Leases(ctx context.Context, unitID string) ([]model.Lease, error) {
	var leases []model.Lease
	err := c.do(ctx, http.MethodGet, "/api/units/"+unitID+"/leases", nil, &leases)
	return leases, err
}

// CreateLease binds a tenant to a unit.
func (c *Client) CreateLease(ctx context.Context, unitID string, req request.CreateLeaseRequest) (model.Lease, error) {
	var lease model.Lease
	err := c.do(ctx, http.MethodPost, "/api/units/"+unitID+"/leases", req, &lease)
	return lease, err
}

// UpdateLease updates a lease.
func (c *Client) UpdateLease(ctx context.Context, leaseID string, req request.UpdateLeaseRequest) (model.Lease, error) {
	var lease model.Lease
	err := c.do(ctx, http.MethodPut, "/api/leases/"+leaseID, req, &lease)
	return lease, err
}

// DeleteLease removes a lease.
func (c *Client) DeleteLease(ctx context.Context, leaseID string) error {
	return c.do(ctx, http.MethodDelete, "/api/leases/"+leaseID, nil, nil)
}

// Charges lists the charges billed against a lease.
func (c *Client) Charges(ctx context.Context, leaseID string) ([]model.RentCharge, error) {
	var charges []model.RentCharge
	err := c.do(ctx, http.MethodGet, "/api/leases/"+leaseID+"/charges", nil, &charges)
	return charges, err
}

// CreateCharge bills a charge against a lease.
func (c *Client) CreateCharge(ctx context.Context, leaseID string, req request.CreateRentChargeRequest) (model.RentCharge, error) {
	var charge model.RentCharge
	err := c.do(ctx, http.MethodPost, "/api/leases/"+leaseID+"/charges", req, &charge)
	return charge, err
}

// Payments lists the payments collected against a lease.
func (c *Client) Payments(ctx context.Context, leaseID string) ([]model.Payment, error) {
	var payments []model.Payment
	err := c.do(ctx, http.MethodGet, "/api/leases/"+leaseID+"/payments", nil, &payments)
	return payments, err
}

// CreatePayment records a collected payment against a lease.
func (c *Client) CreatePayment(ctx context.Context, leaseID string, req request.CreatePaymentRequest) (model.Payment, error) {
	var payment model.Payment
	err := c.do(ctx, http.MethodPost, "/api/leases/"+leaseID+"/payments", req, &payment)
	return payment, err
}

// DeletePayment removes a collected payment.
func (c *Client) DeletePayment(ctx context.Context, leaseID, paymentID string) error {
	return c.do(ctx, http.MethodDelete, "/api/leases/"+leaseID+"/payments/"+paymentID, nil, nil)
}
