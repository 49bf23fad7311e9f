package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/budget"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// SetBudget overwrites the account's limits mapping and, when given, its dates.
// Now picks the month that fills an unset bound.
type SetBudget struct {
	AccountID uuid.UUID
	Update    budget.Update
	Now       time.Time

	Result budget.State
}

func (s *SetBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Account.FindByIDForUpdate(ctx, s.AccountID); err != nil {
		return err
	}

	current, err := writer.Budget.FindByAccount(ctx, s.AccountID)
	if err != nil {
		return err
	}

	next, err := current.Set(s.Update, s.Now)
	if err != nil {
		return err
	}

	if err := writer.Budget.Save(ctx, s.AccountID, next); err != nil {
		return err
	}

	s.Result = next
	return nil
}

// ResetBudget restores the default limits and pins the range to the month
// containing Now.
type ResetBudget struct {
	AccountID uuid.UUID
	Now       time.Time
	Defaults  budget.Limits

	Result budget.State
}

func (r *ResetBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Account.FindByIDForUpdate(ctx, r.AccountID); err != nil {
		return err
	}

	next := budget.Reset(r.Now, r.Defaults)
	if err := writer.Budget.Save(ctx, r.AccountID, next); err != nil {
		return err
	}

	r.Result = next
	return nil
}
