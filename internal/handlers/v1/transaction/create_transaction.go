package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	handlers.AccountHeader
	Body TransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for appending transactions.
type transactionCreator interface {
	AppendTransaction(ctx context.Context, accountID uuid.UUID, draft ledger.Draft) (ledger.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Appends a transaction to the calling account's ledger.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	accountID, err := input.Account(ctx)
	if err != nil {
		return nil, err
	}

	draft, err := parseTransactionBody(input.Body)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.AppendTransaction(ctx, accountID, draft)
	if err != nil {
		return nil, handlers.Error(err, "failed to create transaction")
	}

	return &CreateTransactionOutput{Status: http.StatusCreated, Body: transactionToAPI(tx)}, nil
}
