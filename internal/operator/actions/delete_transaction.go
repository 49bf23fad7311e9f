package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

// DeleteTransaction removes a transaction. A missing id succeeds without
// touching storage.
type DeleteTransaction struct {
	AccountID     uuid.UUID
	TransactionID uuid.UUID

	Removed bool
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	l, err := lockLedger(ctx, writer, t.AccountID)
	if err != nil {
		return err
	}

	if !l.Remove(t.TransactionID) {
		return nil
	}

	if err := writer.Transaction.Delete(ctx, t.AccountID, t.TransactionID); err != nil {
		return err
	}

	t.Removed = true
	return nil
}
