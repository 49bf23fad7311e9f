package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// UpdateTransaction replaces the mutable fields of one transaction in place.
type UpdateTransaction struct {
	AccountID     uuid.UUID
	TransactionID uuid.UUID
	Draft         ledger.Draft

	Result ledger.Transaction
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	l, err := lockLedger(ctx, writer, t.AccountID)
	if err != nil {
		return err
	}

	tx, err := l.Update(t.TransactionID, t.Draft)
	if err != nil {
		return err
	}

	if err := writer.Transaction.Update(ctx, tx); err != nil {
		return err
	}

	t.Result = tx
	return nil
}
