package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID        uuid.UUID
	Email     string
	Income    decimal.Decimal
	CreatedAt time.Time
}

func accountFromStorage(row *account.Account) *Account {
	return &Account{
		ID:        row.ID,
		Email:     row.Email,
		Income:    row.Income,
		CreatedAt: row.CreatedAt,
	}
}
