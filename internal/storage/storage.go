package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid/v5"
	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/budget"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
)

type Storage struct {
	DB    *sql.DB
	bobDB bob.DB

	Reader *Reader
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewStorage(db), nil
}

func NewStorage(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:     db,
		bobDB:  bobDB,
		Reader: NewReader(bobDB),
	}
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// Write begins a read-write transaction. The caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	w := NewWriter(tx)
	return &w, nil
}

// AccountState is one consistent snapshot of everything recorded for an
// account.
type AccountState struct {
	Account      *account.Account
	Transactions []ledger.Transaction
	Budget       budget.State
}

// LoadAccount reads the account, its ledger and its budget period inside a
// single read-only snapshot so the three never disagree.
func (s *Storage) LoadAccount(ctx context.Context, id uuid.UUID) (*AccountState, error) {
	tx, err := s.bobDB.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return NewReader(tx).LoadAccount(ctx, id)
}
