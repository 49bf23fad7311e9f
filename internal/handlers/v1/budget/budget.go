package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	domain "github.com/carson-networks/finance-tracker/internal/budget"
	"github.com/carson-networks/finance-tracker/internal/handlers"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// Budget is the API response model for an effective budget period.
type Budget struct {
	Limits     map[string]float64 `json:"limits" doc:"Spending limit per category"`
	StartDate  string             `json:"startDate" format:"date" doc:"First day of the period"`
	EndDate    string             `json:"endDate" format:"date" doc:"Last day of the period"`
	Configured bool               `json:"configured" doc:"False while the default limits are in effect"`
}

type BudgetOutput struct {
	Body Budget
}

func budgetToAPI(b *service.Budget) Budget {
	limits := make(map[string]float64, len(b.Period.Limits))
	for category, limit := range b.Period.Limits {
		limits[category], _ = limit.Float64()
	}
	return Budget{
		Limits:     limits,
		StartDate:  b.Period.Start.Format(domain.DateLayout),
		EndDate:    b.Period.End.Format(domain.DateLayout),
		Configured: b.Configured,
	}
}

type budgetService interface {
	GetBudget(ctx context.Context, accountID uuid.UUID) (*service.Budget, error)
	SetBudget(ctx context.Context, accountID uuid.UUID, update domain.Update) (*service.Budget, error)
	ResetBudget(ctx context.Context, accountID uuid.UUID) (*service.Budget, error)
}

// Handler serves the budget period operations.
type Handler struct {
	BudgetService budgetService
}

func NewHandler(svc budgetService) *Handler {
	return &Handler{BudgetService: svc}
}

// Register registers the get, set and reset budget endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "Get budget",
		Description: "Returns the effective budget period, substituting defaults for unset values.",
		Tags:        []string{"Budget"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "set-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget",
		Summary:     "Set budget",
		Description: "Replaces the limits mapping wholesale. Dates change only when provided.",
		Tags:        []string{"Budget"},
	}, h.set)

	huma.Register(api, huma.Operation{
		OperationID: "reset-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget/reset",
		Summary:     "Reset budget",
		Description: "Restores the default limits for the current calendar month.",
		Tags:        []string{"Budget"},
	}, h.reset)
}

type GetBudgetInput struct {
	handlers.AccountHeader
}

func (h *Handler) get(ctx context.Context, input *GetBudgetInput) (*BudgetOutput, error) {
	id, err := input.Account(ctx)
	if err != nil {
		return nil, err
	}

	b, err := h.BudgetService.GetBudget(ctx, id)
	if err != nil {
		return nil, handlers.Error(err, "failed to get budget")
	}
	return &BudgetOutput{Body: budgetToAPI(b)}, nil
}

type SetBudgetBody struct {
	Limits    map[string]float64 `json:"limits" required:"true" doc:"Complete category to limit mapping"`
	StartDate string             `json:"startDate,omitempty" format:"date" doc:"ISO-8601 first day"`
	EndDate   string             `json:"endDate,omitempty" format:"date" doc:"ISO-8601 last day"`
}

type SetBudgetInput struct {
	handlers.AccountHeader
	Body SetBudgetBody
}

// parseSetBudgetBody converts the API body into a budget update.
func parseSetBudgetBody(body SetBudgetBody) (domain.Update, error) {
	update := domain.Update{Limits: make(domain.Limits, len(body.Limits))}
	for category, limit := range body.Limits {
		update.Limits[category] = decimal.NewFromFloat(limit)
	}

	if body.StartDate != "" {
		start, err := domain.ParseDate("startDate", body.StartDate)
		if err != nil {
			return domain.Update{}, err
		}
		update.Start = &start
	}
	if body.EndDate != "" {
		end, err := domain.ParseDate("endDate", body.EndDate)
		if err != nil {
			return domain.Update{}, err
		}
		update.End = &end
	}
	return update, nil
}

func (h *Handler) set(ctx context.Context, input *SetBudgetInput) (*BudgetOutput, error) {
	id, err := input.Account(ctx)
	if err != nil {
		return nil, err
	}

	update, err := parseSetBudgetBody(input.Body)
	if err != nil {
		return nil, handlers.Error(err, "failed to set budget")
	}

	b, err := h.BudgetService.SetBudget(ctx, id, update)
	if err != nil {
		return nil, handlers.Error(err, "failed to set budget")
	}
	return &BudgetOutput{Body: budgetToAPI(b)}, nil
}

type ResetBudgetInput struct {
	handlers.AccountHeader
}

func (h *Handler) reset(ctx context.Context, input *ResetBudgetInput) (*BudgetOutput, error) {
	id, err := input.Account(ctx)
	if err != nil {
		return nil, err
	}

	b, err := h.BudgetService.ResetBudget(ctx, id)
	if err != nil {
		return nil, handlers.Error(err, "failed to reset budget")
	}
	return &BudgetOutput{Body: budgetToAPI(b)}, nil
}
