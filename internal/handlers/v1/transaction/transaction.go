package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID          string  `json:"id" doc:"Transaction UUID"`
	Kind        string  `json:"kind" enum:"income,expense" doc:"Transaction kind"`
	Amount      float64 `json:"amount" doc:"Non-negative amount"`
	Category    string  `json:"category" doc:"Category label"`
	Description string  `json:"description" doc:"Free-form description"`
	Timestamp   string  `json:"timestamp" doc:"RFC3339 transaction time"`
}

// TransactionBody is the request body shared by create and update. Every
// mutable field is replaced; an omitted timestamp defaults to now on create
// and keeps the stored value on update.
type TransactionBody struct {
	Kind        string  `json:"kind" enum:"income,expense" doc:"Transaction kind"`
	Amount      float64 `json:"amount" minimum:"0" doc:"Non-negative amount"`
	Category    string  `json:"category" minLength:"1" doc:"Category label, matched exactly"`
	Description string  `json:"description,omitempty" doc:"Free-form description"`
	Timestamp   string  `json:"timestamp,omitempty" format:"date-time" doc:"RFC3339 transaction time"`
}

// parseTransactionBody converts the API body into a ledger draft.
func parseTransactionBody(body TransactionBody) (ledger.Draft, error) {
	amount := decimal.NewFromFloat(body.Amount)
	draft := ledger.Draft{
		Kind:        body.Kind,
		Amount:      &amount,
		Category:    body.Category,
		Description: body.Description,
	}

	if body.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, body.Timestamp)
		if err != nil {
			return ledger.Draft{}, huma.NewError(http.StatusBadRequest, "invalid timestamp", err)
		}
		draft.Timestamp = &ts
	}
	return draft, nil
}

func transactionToAPI(tx ledger.Transaction) Transaction {
	amount, _ := tx.Amount.Float64()
	return Transaction{
		ID:          tx.ID.String(),
		Kind:        string(tx.Kind),
		Amount:      amount,
		Category:    tx.Category,
		Description: tx.Description,
		Timestamp:   tx.Timestamp.UTC().Format(time.RFC3339),
	}
}
