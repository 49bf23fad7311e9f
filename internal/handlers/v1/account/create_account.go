package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Email  string  `json:"email" required:"true" format:"email" minLength:"3" doc:"Unique account email"`
	Income float64 `json:"income,omitempty" minimum:"0" doc:"Income, defaults to 0"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountOutput is the Huma output for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"UUID of the new account"`
	}
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, email string, income decimal.Decimal) (uuid.UUID, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/account",
		Summary:       "Create account",
		Description:   "Registers a new account with an empty budget.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	id, err := h.AccountService.CreateAccount(ctx, input.Body.Email, decimal.NewFromFloat(input.Body.Income))
	if err != nil {
		return nil, handlers.Error(err, "failed to create account")
	}

	out := &CreateAccountOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}
