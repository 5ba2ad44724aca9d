package service

import (
	"homeledger/internal/apperrors"
	"homeledger/internal/model"
	"homeledger/internal/repository"
)

// RentalService handles unit, tenant, lease, charge, and payment business logic.
type RentalService struct {
	propertyRepo *repository.PropertyRepository
	unitRepo     *repository.UnitRepository
	tenantRepo   *repository.TenantRepository
	leaseRepo    *repository.LeaseRepository
	paymentRepo  *repository.PaymentRepository
}

// NewRentalService creates a new RentalService with the provided repositories.
func NewRentalService(
	propertyRepo *repository.PropertyRepository,
	unitRepo *repository.UnitRepository,
	tenantRepo *repository.TenantRepository,
	leaseRepo *repository.LeaseRepository,
	paymentRepo *repository.PaymentRepository,
) *RentalService {
	return &RentalService{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
		paymentRepo:  paymentRepo,
	}
}

func (s *RentalService) ownProperty(householdID, propertyID string) error {
	property, err := s.propertyRepo.GetPropertyOnID(propertyID)
	if err != nil {
		return err
	}
	if property.HouseholdID != householdID {
		return apperrors.ErrPropertyNotFound
	}
	return nil
}

// ownUnit resolves a unit and verifies its property belongs to the household.
func (s *RentalService) ownUnit(householdID, unitID string) (model.Unit, error) {
	unit, err := s.unitRepo.GetUnitOnID(unitID)
	if err != nil {
		return model.Unit{}, err
	}
	if err := s.ownProperty(householdID, unit.PropertyID); err != nil {
		return model.Unit{}, apperrors.ErrUnitNotFound
	}
	return unit, nil
}

// ownLease resolves a lease and verifies its unit's property belongs to the household.
func (s *RentalService) ownLease(householdID, leaseID string) (model.Lease, error) {
	lease, err := s.leaseRepo.GetLeaseOnID(leaseID)
	if err != nil {
		return model.Lease{}, err
	}
	if _, err := s.ownUnit(householdID, lease.UnitID); err != nil {
		return model.Lease{}, apperrors.ErrLeaseNotFound
	}
	return lease, nil
}

// GetUnits retrieves all units for a property.
func (s *RentalService) GetUnits(householdID, propertyID string) ([]model.Unit, error) {
	if err := s.ownProperty(householdID, propertyID); err != nil {
		return nil, err
	}
	return s.unitRepo.GetUnitsOnPropertyID(propertyID)
}

// CreateUnit adds a unit to a property.
func (s *RentalService) CreateUnit(householdID string, u model.Unit) (model.Unit, error) {
	if err := s.ownProperty(householdID, u.PropertyID); err != nil {
		return model.Unit{}, err
	}
	if u.UnitLabel == "" {
		return model.Unit{}, apperrors.ErrMissingRequiredField
	}
	return s.unitRepo.CreateUnit(u)
}

// UpdateUnit updates a unit after verifying household ownership.
func (s *RentalService) UpdateUnit(householdID string, u model.Unit) (model.Unit, error) {
	existing, err := s.ownUnit(householdID, u.ID)
	if err != nil {
		return model.Unit{}, err
	}

	u.PropertyID = existing.PropertyID
	if err := s.unitRepo.UpdateUnit(u); err != nil {
		return model.Unit{}, err
	}

	return s.unitRepo.GetUnitOnID(u.ID)
}

// DeleteUnit removes a unit after verifying household ownership.
func (s *RentalService) DeleteUnit(householdID, unitID string) error {
	if _, err := s.ownUnit(householdID, unitID); err != nil {
		return err
	}
	return s.unitRepo.DeleteUnit(unitID)
}

// GetTenants retrieves the household's tenant directory.
func (s *RentalService) GetTenants(householdID string) ([]model.Tenant, error) {
	return s.tenantRepo.GetTenants(householdID)
}

// CreateTenant adds a tenant to the household directory.
func (s *RentalService) CreateTenant(t model.Tenant) (model.Tenant, error) {
	if t.Name == "" {
		return model.Tenant{}, apperrors.ErrMissingRequiredField
	}
	return s.tenantRepo.CreateTenant(t)
}

// UpdateTenant updates a tenant after verifying household ownership.
func (s *RentalService) UpdateTenant(householdID string, t model.Tenant) (model.Tenant, error) {
	existing, err := s.tenantRepo.GetTenantOnID(t.ID)
	if err != nil {
		return model.Tenant{}, err
	}
	if existing.HouseholdID != householdID {
		return model.Tenant{}, apperrors.ErrTenantNotFound
	}

	t.HouseholdID = existing.HouseholdID
	if err := s.tenantRepo.UpdateTenant(t); err != nil {
		return model.Tenant{}, err
	}

	return s.tenantRepo.GetTenantOnID(t.ID)
}

// DeleteTenant removes a tenant after verifying household ownership.
func (s *RentalService) DeleteTenant(householdID, tenantID string) error {
	existing, err := s.tenantRepo.GetTenantOnID(tenantID)
	if err != nil {
		return err
	}
	if existing.HouseholdID != householdID {
		return apperrors.ErrTenantNotFound
	}
	return s.tenantRepo.DeleteTenant(tenantID)
}

// GetLeasesOnUnit retrieves all leases for a unit.
func (s *RentalService) GetLeasesOnUnit(householdID, unitID string) ([]model.Lease, error) {
	if _, err := s.ownUnit(householdID, unitID); err != nil {
		return nil, err
	}
	return s.leaseRepo.GetLeasesOnUnitID(unitID)
}

// CreateLease binds a tenant to a unit.
func (s *RentalService) CreateLease(householdID string, l model.Lease) (model.Lease, error) {
	if _, err := s.ownUnit(householdID, l.UnitID); err != nil {
		return model.Lease{}, err
	}

	tenant, err := s.tenantRepo.GetTenantOnID(l.TenantID)
	if err != nil {
		return model.Lease{}, err
	}
	if tenant.HouseholdID != householdID {
		return model.Lease{}, apperrors.ErrTenantNotFound
	}

	if l.LeaseStart.IsZero() {
		return model.Lease{}, apperrors.ErrMissingRequiredField
	}
	if l.LeaseEnd != nil && l.LeaseEnd.Before(l.LeaseStart) {
		return model.Lease{}, apperrors.ErrInvalidDateRange
	}

	return s.leaseRepo.CreateLease(l)
}

// UpdateLease updates a lease after verifying household ownership.
func (s *RentalService) UpdateLease(householdID string, l model.Lease) (model.Lease, error) {
	existing, err := s.ownLease(householdID, l.ID)
	if err != nil {
		return model.Lease{}, err
	}
	if l.LeaseEnd != nil && l.LeaseEnd.Before(l.LeaseStart) {
		return model.Lease{}, apperrors.ErrInvalidDateRange
	}

	l.UnitID = existing.UnitID
	l.TenantID = existing.TenantID
	if err := s.leaseRepo.UpdateLease(l); err != nil {
		return model.Lease{}, err
	}

	return s.leaseRepo.GetLeaseOnID(l.ID)
}

// DeleteLease removes a lease after verifying household ownership.
func (s *RentalService) DeleteLease(householdID, leaseID string) error {
	if _, err := s.ownLease(householdID, leaseID); err != nil {
		return err
	}
	return s.leaseRepo.DeleteLease(leaseID)
}

// GetCharges retrieves the charges billed against a lease.
func (s *RentalService) GetCharges(householdID, leaseID string) ([]model.RentCharge, error) {
	if _, err := s.ownLease(householdID, leaseID); err != nil {
		return nil, err
	}
	return s.leaseRepo.GetRentChargesOnLeaseID(leaseID)
}

// CreateCharge bills a charge against a lease.
func (s *RentalService) CreateCharge(householdID string, c model.RentCharge) (model.RentCharge, error) {
	if _, err := s.ownLease(householdID, c.LeaseID); err != nil {
		return model.RentCharge{}, err
	}
	if c.Amount.IsNegative() {
		return model.RentCharge{}, apperrors.ErrNegativeAmount
	}
	return s.leaseRepo.CreateRentCharge(c)
}

// GetPayments retrieves the payments collected against a lease.
func (s *RentalService) GetPayments(householdID, leaseID string) ([]model.Payment, error) {
	if _, err := s.ownLease(householdID, leaseID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetPaymentsOnLeaseID(leaseID)
}

// RecordPayment records a collected payment against a lease.
func (s *RentalService) RecordPayment(householdID string, p model.Payment) (model.Payment, error) {
	if _, err := s.ownLease(householdID, p.LeaseID); err != nil {
		return model.Payment{}, err
	}
	if p.Amount.IsNegative() {
		return model.Payment{}, apperrors.ErrNegativeAmount
	}
	return s.paymentRepo.CreatePayment(p)
}

// DeletePayment removes a collected payment after verifying household ownership.
func (s *RentalService) DeletePayment(householdID, leaseID, paymentID string) error {
	if _, err := s.ownLease(householdID, leaseID); err != nil {
		return err
	}
	return s.paymentRepo.DeletePayment(paymentID)
}
