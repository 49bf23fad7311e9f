package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/period"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// Tx is the part of a database transaction a Writer needs to finish it.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Writer struct {
	tx          Tx
	Account     account.IAccountWriter
	Transaction transaction.ITransactionWriter
	Budget      period.IPeriodWriter
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		Account:     account.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
		Budget:      period.NewWriter(tx),
	}
}

// NewWriterWithTx assembles a Writer from arbitrary table writers.
func NewWriterWithTx(
	tx Tx,
	accounts account.IAccountWriter,
	transactions transaction.ITransactionWriter,
	periods period.IPeriodWriter,
) *Writer {
	return &Writer{
		tx:          tx,
		Account:     accounts,
		Transaction: transactions,
		Budget:      periods,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
