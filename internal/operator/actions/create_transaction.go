package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// CreateTransaction appends a transaction to the end of an account's ledger.
type CreateTransaction struct {
	AccountID uuid.UUID
	Draft     ledger.Draft
	Options   []ledger.Option

	// Result holds the stored transaction once Perform succeeds.
	Result ledger.Transaction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	l, err := lockLedger(ctx, writer, t.AccountID, t.Options...)
	if err != nil {
		return err
	}

	tx, err := l.Append(t.Draft)
	if err != nil {
		return err
	}

	if err := writer.Transaction.Insert(ctx, tx); err != nil {
		return err
	}

	t.Result = tx
	return nil
}
