package account

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID        string  `json:"id" doc:"Account UUID"`
	Email     string  `json:"email" doc:"Account email"`
	Income    float64 `json:"income" doc:"Income used to pick the savings tier"`
	CreatedAt string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func accountToAPI(acc *service.Account) Account {
	income, _ := acc.Income.Float64()
	return Account{
		ID:        acc.ID.String(),
		Email:     acc.Email,
		Income:    income,
		CreatedAt: acc.CreatedAt.UTC().Format(time.RFC3339),
	}
}
