package recommendation

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/recommend"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// Recommendation is the API response model for one piece of savings advice.
type Recommendation struct {
	Category         string  `json:"category" doc:"Spending category"`
	Tip              string  `json:"tip" doc:"Advice for the category"`
	PotentialSavings float64 `json:"potentialSavings" doc:"Estimated savings, rounded to cents"`
}

type RecommendationsInput struct {
	handlers.AccountHeader
	Scope string `query:"scope" enum:"ledger,period" doc:"Aggregate the whole ledger or only the effective budget period"`
}

type RecommendationsOutput struct {
	Body []Recommendation
}

type recommender interface {
	Recommend(ctx context.Context, accountID uuid.UUID, scope service.Scope) ([]recommend.Recommendation, error)
}

// Handler handles GET /v1/recommendations.
type Handler struct {
	RecommendationService recommender
}

func NewHandler(svc recommender) *Handler {
	return &Handler{RecommendationService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-recommendations",
		Method:      http.MethodGet,
		Path:        "/v1/recommendations",
		Summary:     "Get recommendations",
		Description: "Ranks the calling account's largest expense categories and estimates what could be saved in each.",
		Tags:        []string{"Recommendations"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, input *RecommendationsInput) (*RecommendationsOutput, error) {
	id, err := input.Account(ctx)
	if err != nil {
		return nil, err
	}

	scope, err := service.ParseScope(input.Scope)
	if err != nil {
		return nil, handlers.Error(err, "failed to get recommendations")
	}
	logging.GetLogData(ctx).AddData("scope", string(scope))

	recs, err := h.RecommendationService.Recommend(ctx, id, scope)
	if err != nil {
		return nil, handlers.Error(err, "failed to get recommendations")
	}

	body := make([]Recommendation, len(recs))
	for i, rec := range recs {
		savings, _ := rec.PotentialSavings.Float64()
		body[i] = Recommendation{
			Category:         rec.Category,
			Tip:              rec.Tip,
			PotentialSavings: savings,
		}
	}
	return &RecommendationsOutput{Body: body}, nil
}
