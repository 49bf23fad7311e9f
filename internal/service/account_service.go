package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
)

// AccountService handles account business logic.
type AccountService struct {
	accounts  account.IAccountReader
	processor IProcessor
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts account.IAccountReader, processor IProcessor) *AccountService {
	return &AccountService{accounts: accounts, processor: processor}
}

// CreateAccount registers a new account and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, email string, income decimal.Decimal) (uuid.UUID, error) {
	defer logging.GetLogData(ctx).AddTiming("createAccount")()

	action := &actions.CreateAccount{Email: email, Income: income}
	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return accountFromStorage(row), nil
}

// UpdateIncome replaces the account's income, which selects the savings tier.
func (s *AccountService) UpdateIncome(ctx context.Context, id uuid.UUID, income decimal.Decimal) error {
	return s.processor.Process(ctx, &actions.UpdateIncome{AccountID: id, Income: income})
}
