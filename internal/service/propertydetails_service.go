package service

import (
	"homeledger/internal/apperrors"
	"homeledger/internal/model"
	"homeledger/internal/repository"
)

// PropertyDetailsService handles loans, recurring costs, and maintenance
// expenses attached to a property.
type PropertyDetailsService struct {
	propertyRepo *repository.PropertyRepository
	loanRepo     *repository.LoanRepository
	costRepo     *repository.PropertyCostRepository
	expenseRepo  *repository.ExpenseRepository
}

// NewPropertyDetailsService creates a new PropertyDetailsService with the provided repositories.
func NewPropertyDetailsService(
	propertyRepo *repository.PropertyRepository,
	loanRepo *repository.LoanRepository,
	costRepo *repository.PropertyCostRepository,
	expenseRepo *repository.ExpenseRepository,
) *PropertyDetailsService {
	return &PropertyDetailsService{
		propertyRepo: propertyRepo,
		loanRepo:     loanRepo,
		costRepo:     costRepo,
		expenseRepo:  expenseRepo,
	}
}

func (s *PropertyDetailsService) ownProperty(householdID, propertyID string) error {
	property, err := s.propertyRepo.GetPropertyOnID(propertyID)
	if err != nil {
		return err
	}
	if property.HouseholdID != householdID {
		return apperrors.ErrPropertyNotFound
	}
	return nil
}

// GetLoans retrieves the loans secured by a property.
func (s *PropertyDetailsService) GetLoans(householdID, propertyID string) ([]model.Loan, error) {
	if err := s.ownProperty(householdID, propertyID); err != nil {
		return nil, err
	}
	return s.loanRepo.GetLoansOnPropertyID(propertyID)
}

// CreateLoan attaches a loan to a property.
func (s *PropertyDetailsService) CreateLoan(householdID string, l model.Loan) (model.Loan, error) {
	if err := s.ownProperty(householdID, l.PropertyID); err != nil {
		return model.Loan{}, err
	}
	return s.loanRepo.CreateLoan(l)
}

// UpdateLoan updates a loan after verifying household ownership.
func (s *PropertyDetailsService) UpdateLoan(householdID string, l model.Loan) (model.Loan, error) {
	existing, err := s.loanRepo.GetLoanOnID(l.ID)
	if err != nil {
		return model.Loan{}, err
	}
	if err := s.ownProperty(householdID, existing.PropertyID); err != nil {
		return model.Loan{}, apperrors.ErrLoanNotFound
	}

	l.PropertyID = existing.PropertyID
	if err := s.loanRepo.UpdateLoan(l); err != nil {
		return model.Loan{}, err
	}

	return s.loanRepo.GetLoanOnID(l.ID)
}

// DeleteLoan removes a loan after verifying household ownership.
func (s *PropertyDetailsService) DeleteLoan(householdID, loanID string) error {
	existing, err := s.loanRepo.GetLoanOnID(loanID)
	if err != nil {
		return err
	}
	if err := s.ownProperty(householdID, existing.PropertyID); err != nil {
		return apperrors.ErrLoanNotFound
	}
	return s.loanRepo.DeleteLoan(loanID)
}

// GetCosts retrieves a property's recurring costs.
func (s *PropertyDetailsService) GetCosts(householdID, propertyID string) ([]model.PropertyCost, error) {
	if err := s.ownProperty(householdID, propertyID); err != nil {
		return nil, err
	}
	return s.costRepo.GetPropertyCostsOnPropertyID(propertyID)
}

// CreateCost attaches a recurring cost to a property.
func (s *PropertyDetailsService) CreateCost(householdID string, c model.PropertyCost) (model.PropertyCost, error) {
	if err := s.ownProperty(householdID, c.PropertyID); err != nil {
		return model.PropertyCost{}, err
	}
	if c.Amount.IsNegative() {
		return model.PropertyCost{}, apperrors.ErrNegativeAmount
	}
	return s.costRepo.CreatePropertyCost(c)
}

// UpdateCost updates a recurring cost after verifying household ownership.
func (s *PropertyDetailsService) UpdateCost(householdID, propertyID string, c model.PropertyCost) (model.PropertyCost, error) {
	if err := s.ownProperty(householdID, propertyID); err != nil {
		return model.PropertyCost{}, err
	}
	if c.Amount.IsNegative() {
		return model.PropertyCost{}, apperrors.ErrNegativeAmount
	}

	c.PropertyID = propertyID
	if err := s.costRepo.UpdatePropertyCost(c); err != nil {
		return model.PropertyCost{}, err
	}

	costs, err := s.costRepo.GetPropertyCostsOnPropertyID(propertyID)
	if err != nil {
		return model.PropertyCost{}, err
	}
	for _, cost := range costs {
		if cost.ID == c.ID {
			return cost, nil
		}
	}
	return model.PropertyCost{}, apperrors.ErrPropertyCostNotFound
}

// DeleteCost removes a recurring cost.
func (s *PropertyDetailsService) DeleteCost(householdID, propertyID, costID string) error {
	if err := s.ownProperty(householdID, propertyID); err != nil {
		return err
	}
	return s.costRepo.DeletePropertyCost(costID)
}

// GetExpenses retrieves a property's maintenance expenses.
func (s *PropertyDetailsService) GetExpenses(householdID, propertyID string) ([]model.MaintenanceExpense, error) {
	if err := s.ownProperty(householdID, propertyID); err != nil {
		return nil, err
	}
	return s.expenseRepo.GetExpensesOnPropertyID(propertyID)
}

// RecordExpense records a maintenance expense on a property.
func (s *PropertyDetailsService) RecordExpense(householdID string, e model.MaintenanceExpense) (model.MaintenanceExpense, error) {
	if err := s.ownProperty(householdID, e.PropertyID); err != nil {
		return model.MaintenanceExpense{}, err
	}
	if e.Description == "" || e.ExpenseDate.IsZero() {
		return model.MaintenanceExpense{}, apperrors.ErrMissingRequiredField
	}
	if e.Amount.IsNegative() {
		return model.MaintenanceExpense{}, apperrors.ErrNegativeAmount
	}
	return s.expenseRepo.CreateExpense(e)
}

// UpdateExpense updates a maintenance expense after verifying household ownership.
func (s *PropertyDetailsService) UpdateExpense(householdID, propertyID string, e model.MaintenanceExpense) (model.MaintenanceExpense, error) {
	if err := s.ownProperty(householdID, propertyID); err != nil {
		return model.MaintenanceExpense{}, err
	}
	if e.Amount.IsNegative() {
		return model.MaintenanceExpense{}, apperrors.ErrNegativeAmount
	}

	e.PropertyID = propertyID
	if err := s.expenseRepo.UpdateExpense(e); err != nil {
		return model.MaintenanceExpense{}, err
	}

	expenses, err := s.expenseRepo.GetExpensesOnPropertyID(propertyID)
	if err != nil {
		return model.MaintenanceExpense{}, err
	}
	for _, exp := range expenses {
		if exp.ID == e.ID {
			return exp, nil
		}
	}
	return model.MaintenanceExpense{}, apperrors.ErrExpenseNotFound
}

// DeleteExpense removes a maintenance expense.
func (s *PropertyDetailsService) DeleteExpense(householdID, propertyID, expenseID string) error {
	if err := s.ownProperty(householdID, propertyID); err != nil {
		return err
	}
	return s.expenseRepo.DeleteExpense(expenseID)
}
