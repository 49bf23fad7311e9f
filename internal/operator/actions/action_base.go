package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// lockLedger takes the account row lock and loads the account's ledger under
// it. Every ledger mutation goes through here.
func lockLedger(ctx context.Context, writer *storage.Writer, accountID uuid.UUID, opts ...ledger.Option) (*ledger.Ledger, error) {
	if _, err := writer.Account.FindByIDForUpdate(ctx, accountID); err != nil {
		return nil, err
	}

	txs, err := writer.Transaction.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return ledger.New(accountID, txs, opts...), nil
}
