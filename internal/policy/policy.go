// Package policy holds the tunable business parameters of the budget and
// recommendation engine: materiality threshold, income tiers, per-category
// advice weights and the default budget table.
package policy

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
	"github.com/carson-networks/finance-tracker/internal/budget"
)

// CategoryPlaceholder is substituted with the category label in FallbackTip.
const CategoryPlaceholder = "{category}"

// Tier applies Multiplier to incomes strictly below Below. A nil Below is the
// open-ended top tier.
type Tier struct {
	Below      *decimal.Decimal
	Multiplier decimal.Decimal
}

// Advice is the tip and savings weight attached to one category label.
type Advice struct {
	Tip    string
	Weight decimal.Decimal
}

type Policy struct {
	// Categories need a total strictly greater than this to be recommended on.
	MaterialityThreshold decimal.Decimal
	MaxRecommendations   int
	// Ordered by ascending Below; the last tier must be open-ended.
	IncomeTiers []Tier
	// Looked up by exact category label.
	Advice        map[string]Advice
	DefaultWeight decimal.Decimal
	FallbackTip   string
	DefaultLimits budget.Limits
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bound(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// Default returns the built-in policy.
func Default() Policy {
	return Policy{
		MaterialityThreshold: dec("30"),
		MaxRecommendations:   3,
		IncomeTiers: []Tier{
			{Below: bound("200"), Multiplier: dec("0.3")},
			{Below: bound("500"), Multiplier: dec("0.2")},
			{Multiplier: dec("0.1")},
		},
		Advice: map[string]Advice{
			"Entertainment": {Tip: "Look for free or low-cost activities, or consider sharing subscriptions.", Weight: dec("0.5")},
			"Dining Out":    {Tip: "Consider meal prepping or limiting eating out to once a week.", Weight: dec("0.4")},
			"Clothing":      {Tip: "Shop at thrift stores or during sales, focusing on versatile items.", Weight: dec("0.35")},
			"Personal":      {Tip: "Try DIY for personal care or seek affordable alternatives.", Weight: dec("0.3")},
		},
		DefaultWeight: dec("0.25"),
		FallbackTip:   "Find ways to cut back in the " + CategoryPlaceholder + " category.",
		DefaultLimits: budget.Limits{
			"Food":           dec("400"),
			"Transportation": dec("150"),
			"Entertainment":  dec("100"),
			"Clothing":       dec("100"),
			"Personal":       dec("75"),
			"Misc":           dec("50"),
		},
	}
}

// Multiplier returns the savings multiplier of the first tier whose bound lies
// above income.
func (p Policy) Multiplier(income decimal.Decimal) decimal.Decimal {
	for _, tier := range p.IncomeTiers {
		if tier.Below == nil || income.LessThan(*tier.Below) {
			return tier.Multiplier
		}
	}
	return decimal.Zero
}

// AdviceFor returns the configured advice for category, or the fallback tip
// with the default weight.
func (p Policy) AdviceFor(category string) Advice {
	if advice, ok := p.Advice[category]; ok {
		return advice
	}
	return Advice{
		Tip:    strings.ReplaceAll(p.FallbackTip, CategoryPlaceholder, category),
		Weight: p.DefaultWeight,
	}
}

func (p Policy) Validate() error {
	if p.MaterialityThreshold.IsNegative() {
		return apperrors.Config("materialityThreshold", "must not be negative")
	}
	if p.MaxRecommendations < 1 {
		return apperrors.Config("maxRecommendations", "must be at least 1")
	}
	if len(p.IncomeTiers) == 0 {
		return apperrors.Config("incomeTiers", "at least one tier is required")
	}
	var previous *decimal.Decimal
	for i, tier := range p.IncomeTiers {
		last := i == len(p.IncomeTiers)-1
		if tier.Multiplier.IsNegative() {
			return apperrors.Config("incomeTiers.multiplier", "must not be negative")
		}
		if tier.Below == nil {
			if !last {
				return apperrors.Config("incomeTiers", "only the last tier may be open-ended")
			}
			continue
		}
		if last {
			return apperrors.Config("incomeTiers", "the last tier must be open-ended")
		}
		if previous != nil && !tier.Below.GreaterThan(*previous) {
			return apperrors.Config("incomeTiers.below", "bounds must be strictly ascending")
		}
		previous = tier.Below
	}
	for category, advice := range p.Advice {
		if advice.Weight.IsNegative() {
			return apperrors.Config("advice."+category+".weight", "must not be negative")
		}
	}
	if p.DefaultWeight.IsNegative() {
		return apperrors.Config("defaultWeight", "must not be negative")
	}
	if strings.TrimSpace(p.FallbackTip) == "" {
		return apperrors.Config("fallbackTip", "must not be empty")
	}
	return budget.ValidateLimits(p.DefaultLimits)
}
