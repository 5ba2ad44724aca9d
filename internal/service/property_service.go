package service

import (
	"database/sql"
	"fmt"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
	"homeledger/internal/repository"
)

// PropertyService handles property, valuation, and capital event business logic.
type PropertyService struct {
	db               *sql.DB
	propertyRepo     *repository.PropertyRepository
	valuationRepo    *repository.ValuationRepository
	capitalEventRepo *repository.CapitalEventRepository
}

// NewPropertyService creates a new PropertyService with the provided dependencies.
func NewPropertyService(
	db *sql.DB,
	propertyRepo *repository.PropertyRepository,
	valuationRepo *repository.ValuationRepository,
	capitalEventRepo *repository.CapitalEventRepository,
) *PropertyService {
	return &PropertyService{
		db:               db,
		propertyRepo:     propertyRepo,
		valuationRepo:    valuationRepo,
		capitalEventRepo: capitalEventRepo,
	}
}

// GetProperties retrieves all properties for a household.
func (s *PropertyService) GetProperties(householdID string) ([]model.Property, error) {
	return s.propertyRepo.GetProperties(householdID)
}

// GetProperty retrieves a single property, verifying household ownership.
func (s *PropertyService) GetProperty(householdID, propertyID string) (model.Property, error) {
	property, err := s.propertyRepo.GetPropertyOnID(propertyID)
	if err != nil {
		return model.Property{}, err
	}
	if property.HouseholdID != householdID {
		return model.Property{}, apperrors.ErrPropertyNotFound
	}
	return property, nil
}

// CreateProperty creates a property in the household.
func (s *PropertyService) CreateProperty(p model.Property) (model.Property, error) {
	if p.Address == "" {
		return model.Property{}, apperrors.ErrMissingRequiredField
	}
	return s.propertyRepo.CreateProperty(p)
}

// UpdateProperty updates a property after verifying household ownership.
func (s *PropertyService) UpdateProperty(householdID string, p model.Property) (model.Property, error) {
	existing, err := s.GetProperty(householdID, p.ID)
	if err != nil {
		return model.Property{}, err
	}

	p.HouseholdID = existing.HouseholdID
	if err := s.propertyRepo.UpdateProperty(p); err != nil {
		return model.Property{}, err
	}

	return s.propertyRepo.GetPropertyOnID(p.ID)
}

// DeleteProperty removes a property after verifying household ownership.
func (s *PropertyService) DeleteProperty(householdID, propertyID string) error {
	if _, err := s.GetProperty(householdID, propertyID); err != nil {
		return err
	}
	return s.propertyRepo.DeleteProperty(propertyID)
}

// GetValuations retrieves a property's valuation history.
func (s *PropertyService) GetValuations(householdID, propertyID string) ([]model.PropertyValuation, error) {
	if _, err := s.GetProperty(householdID, propertyID); err != nil {
		return nil, err
	}
	return s.valuationRepo.GetValuationsOnPropertyID(propertyID)
}

// RecordValuation inserts a valuation point and bumps the property's tracked
// current value and valuation date in the same transaction.
func (s *PropertyService) RecordValuation(householdID string, v model.PropertyValuation) (model.PropertyValuation, error) {
	if _, err := s.GetProperty(householdID, v.PropertyID); err != nil {
		return model.PropertyValuation{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.PropertyValuation{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after a successful commit is a no-op

	created, err := s.valuationRepo.WithTx(tx).CreateValuation(v)
	if err != nil {
		return model.PropertyValuation{}, err
	}

	if err := s.propertyRepo.WithTx(tx).SetCurrentValue(v.PropertyID, v.Value, v.ValuationDate); err != nil {
		return model.PropertyValuation{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.PropertyValuation{}, fmt.Errorf("failed to commit valuation: %w", err)
	}

	return created, nil
}

// GetCapitalEvents retrieves a property's capital timeline.
func (s *PropertyService) GetCapitalEvents(householdID, propertyID string) ([]model.CapitalEvent, error) {
	if _, err := s.GetProperty(householdID, propertyID); err != nil {
		return nil, err
	}
	return s.capitalEventRepo.GetCapitalEventsOnPropertyID(propertyID)
}

// RecordCapitalEvent inserts a capital event on a property's timeline.
func (s *PropertyService) RecordCapitalEvent(householdID string, e model.CapitalEvent) (model.CapitalEvent, error) {
	if _, err := s.GetProperty(householdID, e.PropertyID); err != nil {
		return model.CapitalEvent{}, err
	}
	if e.EventDate.IsZero() {
		return model.CapitalEvent{}, apperrors.ErrMissingRequiredField
	}
	return s.capitalEventRepo.CreateCapitalEvent(e)
}

// DeleteCapitalEvent removes a capital event after verifying household ownership.
func (s *PropertyService) DeleteCapitalEvent(householdID, propertyID, eventID string) error {
	if _, err := s.GetProperty(householdID, propertyID); err != nil {
		return err
	}
	return s.capitalEventRepo.DeleteCapitalEvent(eventID)
}
