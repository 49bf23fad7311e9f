package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

const tableName = "transactions"

var columns = []any{"id", "account_id", "kind", "amount", "category", "description", "transaction_date"}

// transactionRow represents a transaction record.
type transactionRow struct {
	ID              uuid.UUID       `db:"id"`
	AccountID       uuid.UUID       `db:"account_id"`
	Kind            string          `db:"kind"`
	Amount          decimal.Decimal `db:"amount"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
}

func rowToTransaction(row transactionRow) ledger.Transaction {
	return ledger.Transaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		Kind:        ledger.Kind(row.Kind),
		Amount:      row.Amount,
		Category:    row.Category,
		Description: row.Description,
		Timestamp:   row.TransactionDate,
	}
}

// TransactionFilter specifies a page of one account's ledger.
type TransactionFilter struct {
	AccountID uuid.UUID
	Limit     int
	Offset    int
}

// ITransactionReader defines the read side of transaction storage.
type ITransactionReader interface {
	// ListByAccount returns the whole ledger in insertion order.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Transaction, error)
	// List returns up to Limit+1 rows so callers can detect a next page.
	List(ctx context.Context, filter *TransactionFilter) ([]ledger.Transaction, error)
}

// ITransactionWriter defines transaction storage operations available inside a
// write transaction.
type ITransactionWriter interface {
	ITransactionReader
	Insert(ctx context.Context, tx ledger.Transaction) error
	Update(ctx context.Context, tx ledger.Transaction) error
	Delete(ctx context.Context, accountID, id uuid.UUID) error
}
