package transaction

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

var _ ITransactionWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert appends tx to the end of its account's ledger.
func (w *Writer) Insert(ctx context.Context, tx ledger.Transaction) error {
	q := psql.Insert(
		im.Into(tableName, "id", "account_id", "kind", "amount", "category", "description", "transaction_date"),
		im.Values(psql.Arg(tx.ID, tx.AccountID, string(tx.Kind), tx.Amount, tx.Category, tx.Description, tx.Timestamp)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns. The ledger position (seq) is untouched.
func (w *Writer) Update(ctx context.Context, tx ledger.Transaction) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("kind").ToArg(string(tx.Kind)),
		um.SetCol("amount").ToArg(tx.Amount),
		um.SetCol("category").ToArg(tx.Category),
		um.SetCol("description").ToArg(tx.Description),
		um.SetCol("transaction_date").ToArg(tx.Timestamp),
		um.Where(psql.Quote("id").EQ(psql.Arg(tx.ID))),
		um.Where(psql.Quote("account_id").EQ(psql.Arg(tx.AccountID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound("transaction", tx.ID.String())
	}
	return nil
}

// Delete removes the transaction if it exists. Deleting a missing id is not an
// error.
func (w *Writer) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
