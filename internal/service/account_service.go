package service

import (
	"homeledger/internal/apperrors"
	"homeledger/internal/model"
	"homeledger/internal/repository"
)

// AccountService handles account and holding business logic.
type AccountService struct {
	accountRepo *repository.AccountRepository
	holdingRepo *repository.HoldingRepository
}

// NewAccountService creates a new AccountService with the provided repositories.
func NewAccountService(accountRepo *repository.AccountRepository, holdingRepo *repository.HoldingRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		holdingRepo: holdingRepo,
	}
}

// GetAccounts retrieves all accounts for a household.
func (s *AccountService) GetAccounts(householdID string) ([]model.Account, error) {
	return s.accountRepo.GetAccounts(householdID)
}

// GetAccount retrieves a single account, verifying household ownership.
func (s *AccountService) GetAccount(householdID, accountID string) (model.Account, error) {
	account, err := s.accountRepo.GetAccountOnID(accountID)
	if err != nil {
		return model.Account{}, err
	}
	if account.HouseholdID != householdID {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	return account, nil
}

// CreateAccount creates a manual account in the household.
func (s *AccountService) CreateAccount(a model.Account) (model.Account, error) {
	if a.Name == "" || a.Type == "" {
		return model.Account{}, apperrors.ErrMissingRequiredField
	}
	a.IsManual = true
	return s.accountRepo.CreateAccount(a)
}

// UpdateAccount updates an account after verifying household ownership.
func (s *AccountService) UpdateAccount(householdID string, a model.Account) (model.Account, error) {
	existing, err := s.GetAccount(householdID, a.ID)
	if err != nil {
		return model.Account{}, err
	}

	a.HouseholdID = existing.HouseholdID
	if err := s.accountRepo.UpdateAccount(a); err != nil {
		return model.Account{}, err
	}

	return s.accountRepo.GetAccountOnID(a.ID)
}

// DeleteAccount removes an account after verifying household ownership.
func (s *AccountService) DeleteAccount(householdID, accountID string) error {
	if _, err := s.GetAccount(householdID, accountID); err != nil {
		return err
	}
	return s.accountRepo.DeleteAccount(accountID)
}

// GetHoldings retrieves the holdings of an account, verifying household ownership.
func (s *AccountService) GetHoldings(householdID, accountID string) ([]model.Holding, error) {
	if _, err := s.GetAccount(householdID, accountID); err != nil {
		return nil, err
	}
	return s.holdingRepo.GetHoldingsOnAccountID(accountID)
}

// CreateHolding adds a holding to an investment account.
func (s *AccountService) CreateHolding(householdID string, h model.Holding) (model.Holding, error) {
	account, err := s.GetAccount(householdID, h.AccountID)
	if err != nil {
		return model.Holding{}, err
	}
	if account.Type != "investment" {
		return model.Holding{}, apperrors.ErrAccountNotInvestment
	}
	if h.Quantity.IsNegative() {
		return model.Holding{}, apperrors.ErrNegativeAmount
	}

	h.HouseholdID = householdID
	return s.holdingRepo.CreateHolding(h)
}

// UpdateHolding updates a holding after verifying household ownership.
func (s *AccountService) UpdateHolding(householdID string, h model.Holding) (model.Holding, error) {
	existing, err := s.holdingRepo.GetHoldingOnID(h.ID)
	if err != nil {
		return model.Holding{}, err
	}
	if existing.HouseholdID != householdID {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if h.Quantity.IsNegative() {
		return model.Holding{}, apperrors.ErrNegativeAmount
	}

	h.AccountID = existing.AccountID
	h.HouseholdID = existing.HouseholdID
	if err := s.holdingRepo.UpdateHolding(h); err != nil {
		return model.Holding{}, err
	}

	return s.holdingRepo.GetHoldingOnID(h.ID)
}

// DeleteHolding removes a holding after verifying household ownership.
func (s *AccountService) DeleteHolding(householdID, holdingID string) error {
	existing, err := s.holdingRepo.GetHoldingOnID(holdingID)
	if err != nil {
		return err
	}
	if existing.HouseholdID != householdID {
		return apperrors.ErrHoldingNotFound
	}
	return s.holdingRepo.DeleteHolding(holdingID)
}
