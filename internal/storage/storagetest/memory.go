// Package storagetest provides in-memory table writers for tests that need a
// storage.Writer without a database.
package storagetest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
	"github.com/carson-networks/finance-tracker/internal/budget"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/period"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

var (
	_ account.IAccountWriter         = (*Store)(nil)
	_ transaction.ITransactionWriter = (*transactions)(nil)
	_ period.IPeriodWriter           = (*periods)(nil)
)

// Store holds every table in memory. Writes are applied immediately; Commit
// and Rollback are only counted.
type Store struct {
	mu sync.Mutex

	Accounts     map[uuid.UUID]*account.Account
	Transactions []ledger.Transaction
	Periods      map[uuid.UUID]budget.State

	Locked    []uuid.UUID
	Commits   int
	Rollbacks int

	// FailWrite, when set, is returned by the next Write call.
	FailWrite error
}

func New() *Store {
	return &Store{
		Accounts: make(map[uuid.UUID]*account.Account),
		Periods:  make(map[uuid.UUID]budget.State),
	}
}

// AddAccount seeds an account and returns its id.
func (s *Store) AddAccount(email string, income decimal.Decimal) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.Must(uuid.NewV4())
	s.Accounts[id] = &account.Account{ID: id, Email: email, Income: income, CreatedAt: time.Now()}
	return id
}

// Write satisfies the operator's writer opener.
func (s *Store) Write(_ context.Context) (*storage.Writer, error) {
	if err := s.FailWrite; err != nil {
		s.FailWrite = nil
		return nil, err
	}
	return s.Writer(), nil
}

func (s *Store) Writer() *storage.Writer {
	return storage.NewWriterWithTx(&tx{store: s}, s, &transactions{store: s}, &periods{store: s})
}

// TransactionTable exposes the transactions table on its own.
func (s *Store) TransactionTable() transaction.ITransactionWriter {
	return &transactions{store: s}
}

// LoadAccount mirrors storage.Storage.LoadAccount.
func (s *Store) LoadAccount(ctx context.Context, id uuid.UUID) (*storage.AccountState, error) {
	acc, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	txs, _ := (&transactions{store: s}).ListByAccount(ctx, id)
	state, _ := (&periods{store: s}).FindByAccount(ctx, id)
	return &storage.AccountState{Account: acc, Transactions: txs, Budget: state}, nil
}

type tx struct {
	store *Store
}

func (t *tx) Commit(_ context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.Commits++
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.Rollbacks++
	return nil
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.Accounts[id]
	if !ok {
		return nil, apperrors.NotFound("account", id.String())
	}
	copied := *acc
	return &copied, nil
}

func (s *Store) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	acc, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.Locked = append(s.Locked, id)
	s.mu.Unlock()
	return acc, nil
}

func (s *Store) Create(_ context.Context, create *account.AccountCreate) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.Accounts {
		if strings.EqualFold(acc.Email, create.Email) {
			return uuid.Nil, apperrors.Validation("email", "is already registered")
		}
	}
	id := uuid.Must(uuid.NewV4())
	s.Accounts[id] = &account.Account{ID: id, Email: create.Email, Income: create.Income, CreatedAt: time.Now()}
	return id, nil
}

func (s *Store) UpdateIncome(_ context.Context, id uuid.UUID, income decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.Accounts[id]
	if !ok {
		return apperrors.NotFound("account", id.String())
	}
	acc.Income = income
	return nil
}

type transactions struct {
	store *Store
}

func (t *transactions) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Transaction, error) {
	return t.List(ctx, &transaction.TransactionFilter{AccountID: accountID})
}

func (t *transactions) List(_ context.Context, filter *transaction.TransactionFilter) ([]ledger.Transaction, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []ledger.Transaction
	for _, tx := range t.store.Transactions {
		if tx.AccountID == filter.AccountID {
			out = append(out, tx)
		}
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit+1 {
		out = out[:filter.Limit+1]
	}
	return out, nil
}

func (t *transactions) Insert(_ context.Context, tx ledger.Transaction) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.Transactions = append(t.store.Transactions, tx)
	return nil
}

func (t *transactions) Update(_ context.Context, tx ledger.Transaction) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := range t.store.Transactions {
		if t.store.Transactions[i].ID == tx.ID && t.store.Transactions[i].AccountID == tx.AccountID {
			t.store.Transactions[i] = tx
			return nil
		}
	}
	return apperrors.NotFound("transaction", tx.ID.String())
}

func (t *transactions) Delete(_ context.Context, accountID, id uuid.UUID) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := range t.store.Transactions {
		if t.store.Transactions[i].ID == id && t.store.Transactions[i].AccountID == accountID {
			t.store.Transactions = append(t.store.Transactions[:i], t.store.Transactions[i+1:]...)
			return nil
		}
	}
	return nil
}

type periods struct {
	store *Store
}

func (p *periods) FindByAccount(_ context.Context, accountID uuid.UUID) (budget.State, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	return p.store.Periods[accountID], nil
}

func (p *periods) Create(_ context.Context, accountID uuid.UUID) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	if _, ok := p.store.Periods[accountID]; ok {
		return errors.New("budget period already exists")
	}
	p.store.Periods[accountID] = budget.State{}
	return nil
}

func (p *periods) Save(_ context.Context, accountID uuid.UUID, state budget.State) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	p.store.Periods[accountID] = state
	return nil
}
