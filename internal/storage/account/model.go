package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "accounts"

var columns = []any{"id", "email", "income", "created_at"}

// Account represents an account record.
type Account struct {
	ID        uuid.UUID       `db:"id"`
	Email     string          `db:"email"`
	Income    decimal.Decimal `db:"income"`
	CreatedAt time.Time       `db:"created_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	Email  string
	Income decimal.Decimal
}

// IAccountReader defines the read side of account storage.
type IAccountReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
}

// IAccountWriter defines account storage operations available inside a write
// transaction.
type IAccountWriter interface {
	IAccountReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	Create(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	UpdateIncome(ctx context.Context, id uuid.UUID, income decimal.Decimal) error
}
