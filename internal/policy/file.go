package policy

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/carson-networks/finance-tracker/internal/budget"
)

// fileConfig mirrors Policy in YAML. Omitted scalars keep the default; a
// provided list or map replaces the default one wholesale.
type fileConfig struct {
	MaterialityThreshold *float64              `yaml:"materialityThreshold"`
	MaxRecommendations   *int                  `yaml:"maxRecommendations"`
	IncomeTiers          []fileTier            `yaml:"incomeTiers"`
	Advice               map[string]fileAdvice `yaml:"advice"`
	DefaultWeight        *float64              `yaml:"defaultWeight"`
	FallbackTip          *string               `yaml:"fallbackTip"`
	DefaultLimits        map[string]float64    `yaml:"defaultLimits"`
}

type fileTier struct {
	Below      *float64 `yaml:"below"`
	Multiplier float64  `yaml:"multiplier"`
}

type fileAdvice struct {
	Tip    string  `yaml:"tip"`
	Weight float64 `yaml:"weight"`
}

// LoadFile reads a YAML policy file on top of Default and validates the result.
func LoadFile(path string) (Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML policy overrides on top of Default.
func Parse(raw []byte) (Policy, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Policy{}, fmt.Errorf("decode policy file: %w", err)
	}

	p := Default()
	if fc.MaterialityThreshold != nil {
		p.MaterialityThreshold = decimal.NewFromFloat(*fc.MaterialityThreshold)
	}
	if fc.MaxRecommendations != nil {
		p.MaxRecommendations = *fc.MaxRecommendations
	}
	if fc.IncomeTiers != nil {
		p.IncomeTiers = make([]Tier, len(fc.IncomeTiers))
		for i, t := range fc.IncomeTiers {
			p.IncomeTiers[i] = Tier{Multiplier: decimal.NewFromFloat(t.Multiplier)}
			if t.Below != nil {
				below := decimal.NewFromFloat(*t.Below)
				p.IncomeTiers[i].Below = &below
			}
		}
	}
	if fc.Advice != nil {
		p.Advice = make(map[string]Advice, len(fc.Advice))
		for category, a := range fc.Advice {
			p.Advice[category] = Advice{Tip: a.Tip, Weight: decimal.NewFromFloat(a.Weight)}
		}
	}
	if fc.DefaultWeight != nil {
		p.DefaultWeight = decimal.NewFromFloat(*fc.DefaultWeight)
	}
	if fc.FallbackTip != nil {
		p.FallbackTip = *fc.FallbackTip
	}
	if fc.DefaultLimits != nil {
		p.DefaultLimits = make(budget.Limits, len(fc.DefaultLimits))
		for category, limit := range fc.DefaultLimits {
			p.DefaultLimits[category] = decimal.NewFromFloat(limit)
		}
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
