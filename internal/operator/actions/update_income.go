package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

type UpdateIncome struct {
	AccountID uuid.UUID
	Income    decimal.Decimal
}

func (u *UpdateIncome) Perform(ctx context.Context, writer *storage.Writer) error {
	if u.Income.IsNegative() {
		return apperrors.Validation("income", "must not be negative")
	}

	if _, err := writer.Account.FindByIDForUpdate(ctx, u.AccountID); err != nil {
		return err
	}

	return writer.Account.UpdateIncome(ctx, u.AccountID, u.Income)
}
