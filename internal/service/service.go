package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/policy"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// IProcessor runs write actions, each in its own database transaction.
type IProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// IAccountLoader reads one consistent snapshot of an account.
type IAccountLoader interface {
	LoadAccount(ctx context.Context, id uuid.UUID) (*storage.AccountState, error)
}

// Service holds all business logic services.
type Service struct {
	Account        *AccountService
	Transaction    *TransactionService
	Budget         *BudgetService
	Recommendation *RecommendationService
}

// NewService wires every service against one storage and write processor.
func NewService(store *storage.Storage, processor IProcessor, p policy.Policy) *Service {
	return &Service{
		Account:        NewAccountService(store.Reader.Accounts, processor),
		Transaction:    NewTransactionService(store.Reader.Accounts, store.Reader.Transactions, processor),
		Budget:         NewBudgetService(store, processor, p.DefaultLimits),
		Recommendation: NewRecommendationService(store, p),
	}
}
