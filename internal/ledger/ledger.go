// Package ledger holds the ordered income/expense records owned by one account.
//
// A Ledger operates on an already-loaded snapshot; persisting the result of each
// operation is the caller's job.
package ledger

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind accepts exactly "income" or "expense".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome, KindExpense:
		return Kind(s), nil
	default:
		return "", apperrors.Validation("kind", "must be one of income, expense")
	}
}

// Transaction is a single ledger record.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Kind        Kind
	Amount      decimal.Decimal
	Category    string
	Description string
	Timestamp   time.Time
}

// Draft carries the mutable fields of a transaction as supplied by a caller.
// A nil Amount or Timestamp means the field was not provided.
type Draft struct {
	Kind        string
	Amount      *decimal.Decimal
	Category    string
	Description string
	Timestamp   *time.Time
}

type Option func(*Ledger)

// WithClock overrides the time source used for default timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator overrides how new transaction ids are produced.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

// Ledger is the insertion-ordered transaction list of one account.
type Ledger struct {
	accountID    uuid.UUID
	transactions []Transaction
	now          func() time.Time
	newID        func() (uuid.UUID, error)
}

// New wraps transactions, which must already be in insertion order.
func New(accountID uuid.UUID, transactions []Transaction, opts ...Option) *Ledger {
	l := &Ledger{
		accountID:    accountID,
		transactions: append([]Transaction(nil), transactions...),
		now:          time.Now,
		newID:        uuid.NewV4,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append validates the draft, assigns an id and a default timestamp, and adds
// the transaction at the end of the ledger.
func (l *Ledger) Append(d Draft) (Transaction, error) {
	kind, amount, err := validate(d)
	if err != nil {
		return Transaction{}, err
	}

	id, err := l.newID()
	if err != nil {
		return Transaction{}, err
	}

	timestamp := l.now()
	if d.Timestamp != nil {
		timestamp = *d.Timestamp
	}

	tx := Transaction{
		ID:          id,
		AccountID:   l.accountID,
		Kind:        kind,
		Amount:      amount,
		Category:    d.Category,
		Description: d.Description,
		Timestamp:   timestamp,
	}
	l.transactions = append(l.transactions, tx)
	return tx, nil
}

// Update replaces every mutable field of the transaction with the given id.
// The id, owner and ledger position never change. A draft without a timestamp
// keeps the stored one.
func (l *Ledger) Update(id uuid.UUID, d Draft) (Transaction, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return Transaction{}, apperrors.NotFound("transaction", id.String())
	}

	kind, amount, err := validate(d)
	if err != nil {
		return Transaction{}, err
	}

	tx := l.transactions[idx]
	tx.Kind = kind
	tx.Amount = amount
	tx.Category = d.Category
	tx.Description = d.Description
	if d.Timestamp != nil {
		tx.Timestamp = *d.Timestamp
	}
	l.transactions[idx] = tx
	return tx, nil
}

// Remove drops the transaction with the given id. Removing an id that is not
// in the ledger is a no-op; the result reports whether anything was removed.
func (l *Ledger) Remove(id uuid.UUID) bool {
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	l.transactions = append(l.transactions[:idx], l.transactions[idx+1:]...)
	return true
}

// Find returns the transaction with the given id.
func (l *Ledger) Find(id uuid.UUID) (Transaction, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return Transaction{}, false
	}
	return l.transactions[idx], true
}

// List returns a copy of all transactions in insertion order.
func (l *Ledger) List() []Transaction {
	return append([]Transaction(nil), l.transactions...)
}

func (l *Ledger) indexOf(id uuid.UUID) int {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func validate(d Draft) (Kind, decimal.Decimal, error) {
	kind, err := ParseKind(d.Kind)
	if err != nil {
		return "", decimal.Zero, err
	}
	if d.Amount == nil {
		return "", decimal.Zero, apperrors.Validation("amount", "is required")
	}
	if d.Amount.IsNegative() {
		return "", decimal.Zero, apperrors.Validation("amount", "must not be negative")
	}
	if strings.TrimSpace(d.Category) == "" {
		return "", decimal.Zero, apperrors.Validation("category", "is required")
	}
	return kind, *d.Amount, nil
}
