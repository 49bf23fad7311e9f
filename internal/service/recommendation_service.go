package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/policy"
	"github.com/carson-networks/finance-tracker/internal/recommend"
)

// Scope selects which transactions feed the aggregation.
type Scope string

const (
	// ScopeLedger aggregates every expense in the ledger.
	ScopeLedger Scope = "ledger"
	// ScopePeriod aggregates only expenses inside the effective budget period.
	ScopePeriod Scope = "period"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeLedger:
		return ScopeLedger, nil
	case ScopePeriod:
		return ScopePeriod, nil
	}
	return "", apperrors.Validation("scope", "must be ledger or period")
}

// RecommendationService produces savings advice for an account.
type RecommendationService struct {
	loader IAccountLoader
	engine *recommend.Engine
	now    func() time.Time
}

func NewRecommendationService(loader IAccountLoader, p policy.Policy) *RecommendationService {
	return &RecommendationService{
		loader: loader,
		engine: recommend.NewEngine(p),
		now:    time.Now,
	}
}

// Recommend aggregates the account's expenses in scope and ranks them against
// the account's income.
func (s *RecommendationService) Recommend(ctx context.Context, accountID uuid.UUID, scope Scope) ([]recommend.Recommendation, error) {
	logData := logging.GetLogData(ctx)

	endLoad := logData.AddTiming("loadAccount")
	state, err := s.loader.LoadAccount(ctx, accountID)
	endLoad()
	if err != nil {
		return nil, err
	}

	var totals recommend.Totals
	switch scope {
	case ScopePeriod:
		period := state.Budget.Effective(s.now(), s.engine.Policy().DefaultLimits)
		totals = recommend.AggregateBetween(state.Transactions, period)
	default:
		totals = recommend.Aggregate(state.Transactions)
	}

	recs := s.engine.Recommend(totals, state.Account.Income)
	logData.AddData("transactions", len(state.Transactions))
	logData.AddData("categories", len(totals))
	logData.AddData("expenseTotal", totals.Sum().String())
	logData.AddData("recommendations", len(recs))
	return recs, nil
}
