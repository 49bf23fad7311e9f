package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
)

const uniqueViolation = "23505"

var _ IAccountWriter = (*Writer)(nil)

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

// FindByIDForUpdate locks the account row for the rest of the transaction.
// Every mutation of an account's ledger or budget takes this lock first.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return w.find(ctx, id, sm.ForUpdate())
}

func (w *Writer) Create(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(tableName, "id", "email", "income"),
		im.Values(psql.Arg(id, create.Email, create.Income)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return uuid.Nil, apperrors.Validation("email", "is already registered")
		}
		return uuid.Nil, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func (w *Writer) UpdateIncome(ctx context.Context, id uuid.UUID, income decimal.Decimal) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("income").ToArg(income),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return fmt.Errorf("update account income: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound("account", id.String())
	}
	return nil
}
