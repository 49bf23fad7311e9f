// Package recommend turns a ledger into per-category totals and ranks the
// categories worth cutting back on.
package recommend

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/policy"
)

// Recommendation is a savings tip for one category.
type Recommendation struct {
	Category         string
	Tip              string
	PotentialSavings decimal.Decimal
	// Total is the category total the recommendation was ranked by.
	Total decimal.Decimal
}

type Engine struct {
	policy policy.Policy
}

func NewEngine(p policy.Policy) *Engine {
	return &Engine{policy: p}
}

// Policy is the rule set the engine ranks against.
func (e *Engine) Policy() policy.Policy {
	return e.policy
}

// Recommend ranks the categories above the materiality threshold by total,
// highest first, and returns at most MaxRecommendations entries. Ties keep the
// aggregation order. An empty result is returned when nothing qualifies.
func (e *Engine) Recommend(totals Totals, income decimal.Decimal) []Recommendation {
	multiplier := e.policy.Multiplier(income)

	material := make(Totals, 0, len(totals))
	for _, ct := range totals {
		if ct.Total.GreaterThan(e.policy.MaterialityThreshold) {
			material = append(material, ct)
		}
	}
	sort.SliceStable(material, func(i, j int) bool {
		return material[i].Total.GreaterThan(material[j].Total)
	})
	if len(material) > e.policy.MaxRecommendations {
		material = material[:e.policy.MaxRecommendations]
	}

	recommendations := make([]Recommendation, 0, len(material))
	for _, ct := range material {
		advice := e.policy.AdviceFor(ct.Category)
		recommendations = append(recommendations, Recommendation{
			Category:         ct.Category,
			Tip:              advice.Tip,
			PotentialSavings: PotentialSavings(ct.Total, multiplier, advice.Weight),
			Total:            ct.Total,
		})
	}
	return recommendations
}

// PotentialSavings is total x multiplier x weight rounded to cents.
func PotentialSavings(total, multiplier, weight decimal.Decimal) decimal.Decimal {
	return total.Mul(multiplier).Mul(weight).Round(2)
}
