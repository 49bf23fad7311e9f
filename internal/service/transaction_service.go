package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService handles ledger business logic.
type TransactionService struct {
	accounts     account.IAccountReader
	transactions transaction.ITransactionReader
	processor    IProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	accounts account.IAccountReader,
	transactions transaction.ITransactionReader,
	processor IProcessor,
) *TransactionService {
	return &TransactionService{
		accounts:     accounts,
		transactions: transactions,
		processor:    processor,
	}
}

// AppendTransaction records a new transaction at the end of the ledger.
func (s *TransactionService) AppendTransaction(ctx context.Context, accountID uuid.UUID, draft ledger.Draft) (ledger.Transaction, error) {
	defer logging.GetLogData(ctx).AddTiming("appendTransaction")()

	action := &actions.CreateTransaction{AccountID: accountID, Draft: draft}
	if err := s.processor.Process(ctx, action); err != nil {
		return ledger.Transaction{}, err
	}
	return action.Result, nil
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, accountID, id uuid.UUID, draft ledger.Draft) (ledger.Transaction, error) {
	defer logging.GetLogData(ctx).AddTiming("updateTransaction")()

	action := &actions.UpdateTransaction{AccountID: accountID, TransactionID: id, Draft: draft}
	if err := s.processor.Process(ctx, action); err != nil {
		return ledger.Transaction{}, err
	}
	return action.Result, nil
}

// RemoveTransaction deletes a transaction; a missing id is not an error.
func (s *TransactionService) RemoveTransaction(ctx context.Context, accountID, id uuid.UUID) error {
	defer logging.GetLogData(ctx).AddTiming("removeTransaction")()

	action := &actions.DeleteTransaction{AccountID: accountID, TransactionID: id}
	if err := s.processor.Process(ctx, action); err != nil {
		return err
	}
	logging.GetLogData(ctx).AddData("removed", action.Removed)
	return nil
}

// GetTransaction looks up one transaction in the account's ledger.
func (s *TransactionService) GetTransaction(ctx context.Context, accountID, id uuid.UUID) (ledger.Transaction, error) {
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return ledger.Transaction{}, err
	}

	txs, err := s.transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return ledger.Transaction{}, err
	}

	tx, ok := ledger.New(accountID, txs).Find(id)
	if !ok {
		return ledger.Transaction{}, apperrors.NotFound("transaction", id.String())
	}
	return tx, nil
}

// ListTransactions returns a page of the ledger in insertion order using
// cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID uuid.UUID, cursor *TransactionCursor) ([]ledger.Transaction, *TransactionCursor, error) {
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return nil, nil, err
	}

	limit := defaultLimit
	offset := 0
	if cursor != nil {
		offset = cursor.Position
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
	}

	rows, err := s.transactions.List(ctx, &transaction.TransactionFilter{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	return rows, nextCursor, nil
}
