package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/budget"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
)

// Budget is the effective budget of an account together with whether the
// stored mapping was ever configured.
type Budget struct {
	Period     budget.Period
	Configured bool
}

// BudgetService handles budget period business logic.
type BudgetService struct {
	loader    IAccountLoader
	processor IProcessor
	defaults  budget.Limits
	now       func() time.Time
}

// NewBudgetService creates a new BudgetService resolving unset state against
// defaults.
func NewBudgetService(loader IAccountLoader, processor IProcessor, defaults budget.Limits) *BudgetService {
	return &BudgetService{
		loader:    loader,
		processor: processor,
		defaults:  defaults.Clone(),
		now:       time.Now,
	}
}

// GetBudget returns the account's effective budget period.
func (s *BudgetService) GetBudget(ctx context.Context, accountID uuid.UUID) (*Budget, error) {
	state, err := s.loader.LoadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.effective(state.Budget), nil
}

// SetBudget overwrites the limits mapping and applies any provided dates.
func (s *BudgetService) SetBudget(ctx context.Context, accountID uuid.UUID, update budget.Update) (*Budget, error) {
	action := &actions.SetBudget{AccountID: accountID, Update: update, Now: s.now()}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return s.effective(action.Result), nil
}

// ResetBudget restores the defaults for the current calendar month.
func (s *BudgetService) ResetBudget(ctx context.Context, accountID uuid.UUID) (*Budget, error) {
	action := &actions.ResetBudget{AccountID: accountID, Now: s.now(), Defaults: s.defaults}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return s.effective(action.Result), nil
}

func (s *BudgetService) effective(state budget.State) *Budget {
	return &Budget{
		Period:     state.Effective(s.now(), s.defaults),
		Configured: state.Limits != nil,
	}
}
