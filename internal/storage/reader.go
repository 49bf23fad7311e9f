package storage

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/period"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

type Reader struct {
	Accounts     *account.Reader
	Transactions *transaction.Reader
	Periods      *period.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Periods:      period.NewReader(exec),
	}
}

// LoadAccount reads everything recorded for one account through the reader's
// executor. Consistency across tables is the executor's concern.
func (r *Reader) LoadAccount(ctx context.Context, id uuid.UUID) (*AccountState, error) {
	acc, err := r.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	txs, err := r.Transactions.ListByAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	state, err := r.Periods.FindByAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AccountState{
		Account:      acc,
		Transactions: txs,
		Budget:       state,
	}, nil
}
