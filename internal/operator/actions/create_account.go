package actions

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
)

// CreateAccount registers an account along with its empty budget period.
type CreateAccount struct {
	Email  string
	Income decimal.Decimal

	// ID is set once Perform succeeds.
	ID uuid.UUID
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return apperrors.Validation("email", "is required")
	}
	if c.Income.IsNegative() {
		return apperrors.Validation("income", "must not be negative")
	}

	id, err := writer.Account.Create(ctx, &account.AccountCreate{
		Email:  email,
		Income: c.Income,
	})
	if err != nil {
		return err
	}

	if err := writer.Budget.Create(ctx, id); err != nil {
		return err
	}

	c.ID = id
	return nil
}
