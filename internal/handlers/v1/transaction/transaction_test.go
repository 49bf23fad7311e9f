package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// mockTransactionService is a mock for the transaction service interfaces.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) AppendTransaction(ctx context.Context, accountID uuid.UUID, draft ledger.Draft) (ledger.Transaction, error) {
	args := m.Called(ctx, accountID, draft)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, accountID, id uuid.UUID, draft ledger.Draft) (ledger.Transaction, error) {
	args := m.Called(ctx, accountID, id, draft)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, accountID, id uuid.UUID) (ledger.Transaction, error) {
	args := m.Called(ctx, accountID, id)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) RemoveTransaction(ctx context.Context, accountID, id uuid.UUID) error {
	args := m.Called(ctx, accountID, id)
	return args.Error(0)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, accountID uuid.UUID, cursor *service.TransactionCursor) ([]ledger.Transaction, *service.TransactionCursor, error) {
	args := m.Called(ctx, accountID, cursor)
	var rows []ledger.Transaction
	if args.Get(0) != nil {
		rows = args.Get(0).([]ledger.Transaction)
	}
	var next *service.TransactionCursor
	if args.Get(1) != nil {
		next = args.Get(1).(*service.TransactionCursor)
	}
	return rows, next, args.Error(2)
}

// newTestAPI registers every transaction handler against a humatest API.
func newTestAPI(t *testing.T, svc *mockTransactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc).Register(api)
	NewGetTransactionHandler(svc).Register(api)
	NewUpdateTransactionHandler(svc).Register(api)
	NewDeleteTransactionHandler(svc).Register(api)
	NewListTransactionsHandler(svc).Register(api)
	return api
}

func header(id uuid.UUID) string {
	return "X-Account-ID: " + id.String()
}

func sampleTransaction(accountID uuid.UUID) ledger.Transaction {
	return ledger.Transaction{
		ID:        uuid.Must(uuid.NewV4()),
		AccountID: accountID,
		Kind:      ledger.KindExpense,
		Amount:    decimal.RequireFromString("12.5"),
		Category:  "Food",
		Timestamp: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

// -- parseTransactionBody unit tests --

func TestParseTransactionBody_WithTimestamp(t *testing.T) {
	draft, err := parseTransactionBody(TransactionBody{
		Kind:        "expense",
		Amount:      12.5,
		Category:    "Food",
		Description: "lunch",
		Timestamp:   "2025-01-15T10:30:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "expense", draft.Kind)
	assert.True(t, draft.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "lunch", draft.Description)
	require.NotNil(t, draft.Timestamp)
	assert.True(t, draft.Timestamp.Equal(time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)))
}

func TestParseTransactionBody_WithoutTimestamp(t *testing.T) {
	draft, err := parseTransactionBody(TransactionBody{Kind: "income", Amount: 0, Category: "Gift"})

	require.NoError(t, err)
	assert.Nil(t, draft.Timestamp)
	assert.True(t, draft.Amount.IsZero())
}

func TestParseTransactionBody_BadTimestamp(t *testing.T) {
	_, err := parseTransactionBody(TransactionBody{Kind: "income", Category: "Gift", Timestamp: "yesterday"})

	assert.Error(t, err)
}

// -- HTTP tests (full Huma stack via humatest) --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	stored := sampleTransaction(accountID)

	svc := new(mockTransactionService)
	svc.On("AppendTransaction", mock.Anything, accountID, mock.MatchedBy(func(d ledger.Draft) bool {
		return d.Kind == "expense" && d.Amount.Equal(decimal.RequireFromString("12.5")) && d.Category == "Food"
	})).Return(stored, nil)

	resp := newTestAPI(t, svc).Post("/v1/transaction", header(accountID), map[string]any{
		"kind":     "expense",
		"amount":   12.5,
		"category": "Food",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, stored.ID.String(), body.ID)
	assert.Equal(t, 12.5, body.Amount)
	assert.Equal(t, "2025-01-15T10:30:00Z", body.Timestamp)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_SchemaViolations(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	api := newTestAPI(t, svc)

	tests := map[string]map[string]any{
		"negative amount": {"kind": "expense", "amount": -1, "category": "Food"},
		"unknown kind":    {"kind": "refund", "amount": 1, "category": "Food"},
		"empty category":  {"kind": "expense", "amount": 1, "category": ""},
		"missing amount":  {"kind": "expense", "category": "Food"},
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp := api.Post("/v1/transaction", header(accountID), body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		})
	}
	svc.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_CreateTransaction_ValidationFromLedger(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("AppendTransaction", mock.Anything, accountID, mock.Anything).
		Return(ledger.Transaction{}, apperrors.Validation("category", "must not be blank"))

	resp := newTestAPI(t, svc).Post("/v1/transaction", header(accountID), map[string]any{
		"kind": "expense", "amount": 1, "category": "   ",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_CreateTransaction_UnknownAccount(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("AppendTransaction", mock.Anything, accountID, mock.Anything).
		Return(ledger.Transaction{}, apperrors.NotFound("account", accountID.String()))

	resp := newTestAPI(t, svc).Post("/v1/transaction", header(accountID), map[string]any{
		"kind": "expense", "amount": 1, "category": "Food",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_UpdateTransaction(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	stored := sampleTransaction(accountID)
	stored.Category = "Dining Out"

	svc := new(mockTransactionService)
	svc.On("UpdateTransaction", mock.Anything, accountID, stored.ID, mock.MatchedBy(func(d ledger.Draft) bool {
		return d.Category == "Dining Out" && d.Timestamp == nil
	})).Return(stored, nil)

	resp := newTestAPI(t, svc).Put("/v1/transaction/"+stored.ID.String(), header(accountID), map[string]any{
		"kind": "expense", "amount": 12.5, "category": "Dining Out",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Dining Out", body.Category)
}

func TestHTTP_UpdateTransaction_NotFound(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("UpdateTransaction", mock.Anything, accountID, id, mock.Anything).
		Return(ledger.Transaction{}, apperrors.NotFound("transaction", id.String()))

	resp := newTestAPI(t, svc).Put("/v1/transaction/"+id.String(), header(accountID), map[string]any{
		"kind": "expense", "amount": 1, "category": "Food",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_GetTransaction(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	stored := sampleTransaction(accountID)
	svc := new(mockTransactionService)
	svc.On("GetTransaction", mock.Anything, accountID, stored.ID).Return(stored, nil)

	resp := newTestAPI(t, svc).Get("/v1/transaction/"+stored.ID.String(), header(accountID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, stored.ID.String(), body.ID)
	assert.Equal(t, "Food", body.Category)
}

func TestHTTP_GetTransaction_NotFound(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("GetTransaction", mock.Anything, accountID, id).
		Return(ledger.Transaction{}, apperrors.NotFound("transaction", id.String()))

	resp := newTestAPI(t, svc).Get("/v1/transaction/"+id.String(), header(accountID))

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_DeleteTransaction_AlwaysNoContent(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("RemoveTransaction", mock.Anything, accountID, id).Return(nil).Twice()
	api := newTestAPI(t, svc)

	assert.Equal(t, http.StatusNoContent, api.Delete("/v1/transaction/"+id.String(), header(accountID)).Code)
	assert.Equal(t, http.StatusNoContent, api.Delete("/v1/transaction/"+id.String(), header(accountID)).Code)
	svc.AssertExpectations(t)
}

func TestHTTP_DeleteTransaction_InvalidID(t *testing.T) {
	svc := new(mockTransactionService)

	resp := newTestAPI(t, svc).Delete("/v1/transaction/not-a-uuid", header(uuid.Must(uuid.NewV4())))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHTTP_ListTransactions_FirstPage(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	rows := []ledger.Transaction{sampleTransaction(accountID), sampleTransaction(accountID)}
	next := &service.TransactionCursor{Position: 2, Limit: 2}

	svc := new(mockTransactionService)
	svc.On("ListTransactions", mock.Anything, accountID, &service.TransactionCursor{Position: 0, Limit: 2}).
		Return(rows, next, nil)

	resp := newTestAPI(t, svc).Get("/v1/transactions?limit=2", header(accountID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Transactions, 2)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 2, body.NextCursor.Position)
}

func TestHTTP_ListTransactions_DefaultsAndEmpty(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("ListTransactions", mock.Anything, accountID, (*service.TransactionCursor)(nil)).
		Return(nil, nil, nil)

	resp := newTestAPI(t, svc).Get("/v1/transactions", header(accountID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotNil(t, body.Transactions)
	assert.Empty(t, body.Transactions)
	assert.Nil(t, body.NextCursor)
}

func TestHTTP_ListTransactions_ServiceError(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("ListTransactions", mock.Anything, accountID, mock.Anything).
		Return(nil, nil, errors.New("db down"))

	resp := newTestAPI(t, svc).Get("/v1/transactions", header(accountID))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestParseListTransactionsInput(t *testing.T) {
	assert.Nil(t, parseListTransactionsInput(&ListTransactionsInput{}))
	assert.Equal(t, &service.TransactionCursor{Position: 40, Limit: 20}, parseListTransactionsInput(&ListTransactionsInput{Position: 40}))
	assert.Equal(t, &service.TransactionCursor{Position: 0, Limit: 5}, parseListTransactionsInput(&ListTransactionsInput{Limit: 5}))
}
