package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// ListTransactionsCursor represents a pagination cursor in responses.
type ListTransactionsCursor struct {
	Position int `json:"position" doc:"Offset for the next page"`
	Limit    int `json:"limit" doc:"Page size used for this cursor"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	handlers.AccountHeader
	Position int `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit    int `query:"limit" minimum:"0" maximum:"100" doc:"Page size, default 20"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions in insertion order"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, accountID uuid.UUID, cursor *service.TransactionCursor) ([]ledger.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns a page of the calling account's ledger in insertion order.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput builds the service cursor. Without a limit or
// position the service uses its default page.
func parseListTransactionsInput(input *ListTransactionsInput) *service.TransactionCursor {
	if input.Limit == 0 && input.Position == 0 {
		return nil
	}
	limit := input.Limit
	if limit == 0 {
		limit = 20
	}
	return &service.TransactionCursor{Position: input.Position, Limit: limit}
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	accountID, err := input.Account(ctx)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listTransactionsMs")
	rows, next, err := h.TransactionService.ListTransactions(ctx, accountID, parseListTransactionsInput(input))
	stopTimer()
	if err != nil {
		return nil, handlers.Error(err, "failed to list transactions")
	}
	logData.AddData("transactionCount", len(rows))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(rows)),
	}
	for i, row := range rows {
		resp.Transactions[i] = transactionToAPI(row)
	}
	if next != nil {
		resp.NextCursor = &ListTransactionsCursor{Position: next.Position, Limit: next.Limit}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
