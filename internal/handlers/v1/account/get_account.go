package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type GetAccountInput struct {
	handlers.AccountHeader
}

type GetAccountOutput struct {
	Body Account
}

type accountReader interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error)
}

// GetAccountHandler handles GET /v1/account.
type GetAccountHandler struct {
	AccountService accountReader
}

func NewGetAccountHandler(svc accountReader) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account",
		Summary:     "Get account",
		Description: "Returns the calling account.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	id, err := input.Account(ctx)
	if err != nil {
		return nil, err
	}

	acc, err := h.AccountService.GetAccount(ctx, id)
	if err != nil {
		return nil, handlers.Error(err, "failed to get account")
	}
	return &GetAccountOutput{Body: accountToAPI(acc)}, nil
}

type UpdateIncomeInput struct {
	handlers.AccountHeader
	Body struct {
		Income float64 `json:"income" required:"true" minimum:"0" doc:"New income"`
	}
}

type incomeUpdater interface {
	UpdateIncome(ctx context.Context, id uuid.UUID, income decimal.Decimal) error
}

// UpdateIncomeHandler handles PUT /v1/account/income.
type UpdateIncomeHandler struct {
	AccountService incomeUpdater
}

func NewUpdateIncomeHandler(svc incomeUpdater) *UpdateIncomeHandler {
	return &UpdateIncomeHandler{AccountService: svc}
}

func (h *UpdateIncomeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "update-income",
		Method:        http.MethodPut,
		Path:          "/v1/account/income",
		Summary:       "Update income",
		Description:   "Replaces the calling account's income.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *UpdateIncomeHandler) handle(ctx context.Context, input *UpdateIncomeInput) (*struct{}, error) {
	id, err := input.Account(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.AccountService.UpdateIncome(ctx, id, decimal.NewFromFloat(input.Body.Income)); err != nil {
		return nil, handlers.Error(err, "failed to update income")
	}
	return nil, nil
}
