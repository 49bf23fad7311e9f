package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestMultiplier_TierBoundaries(t *testing.T) {
	p := Default()

	tests := []struct {
		income string
		want   string
	}{
		{"0", "0.3"},
		{"199.99", "0.3"},
		{"200", "0.2"},
		{"499.99", "0.2"},
		{"500", "0.1"},
		{"100000", "0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.income, func(t *testing.T) {
			got := p.Multiplier(decimal.RequireFromString(tt.income))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestAdviceFor_KnownAndFallback(t *testing.T) {
	p := Default()

	entertainment := p.AdviceFor("Entertainment")
	assert.True(t, entertainment.Weight.Equal(decimal.RequireFromString("0.5")))

	misc := p.AdviceFor("Misc")
	assert.Equal(t, "Find ways to cut back in the Misc category.", misc.Tip)
	assert.True(t, misc.Weight.Equal(decimal.RequireFromString("0.25")))

	// Lookup is exact: a differently-cased label falls through.
	lower := p.AdviceFor("entertainment")
	assert.Equal(t, "Find ways to cut back in the entertainment category.", lower.Tip)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Policy)
	}{
		{"negative threshold", func(p *Policy) { p.MaterialityThreshold = decimal.NewFromInt(-1) }},
		{"zero max", func(p *Policy) { p.MaxRecommendations = 0 }},
		{"no tiers", func(p *Policy) { p.IncomeTiers = nil }},
		{"bounded last tier", func(p *Policy) { p.IncomeTiers = p.IncomeTiers[:2] }},
		{"open middle tier", func(p *Policy) { p.IncomeTiers[0].Below = nil }},
		{"descending bounds", func(p *Policy) { p.IncomeTiers[1].Below = bound("100") }},
		{"negative weight", func(p *Policy) { p.Advice["Clothing"] = Advice{Tip: "x", Weight: decimal.NewFromInt(-1)} }},
		{"empty fallback", func(p *Policy) { p.FallbackTip = " " }},
		{"negative default limit", func(p *Policy) { p.DefaultLimits["Food"] = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			assert.True(t, apperrors.IsConfig(p.Validate()))
		})
	}
}

func TestParse_OverridesOnTopOfDefaults(t *testing.T) {
	raw := []byte(`
materialityThreshold: 20
incomeTiers:
  - below: 1000
    multiplier: 0.15
  - multiplier: 0.05
advice: {}
`)

	p, err := Parse(raw)

	require.NoError(t, err)
	assert.True(t, p.MaterialityThreshold.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 3, p.MaxRecommendations, "omitted scalar keeps default")
	assert.True(t, p.Multiplier(decimal.NewFromInt(999)).Equal(decimal.RequireFromString("0.15")))
	assert.True(t, p.Multiplier(decimal.NewFromInt(1000)).Equal(decimal.RequireFromString("0.05")))
	assert.Empty(t, p.Advice, "provided map replaces the defaults")
	assert.Len(t, p.DefaultLimits, 6)
}

func TestParse_InvalidPolicy(t *testing.T) {
	_, err := Parse([]byte("maxRecommendations: 0\n"))
	assert.True(t, apperrors.IsConfig(err))
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("materialityThreshold: [unterminated"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaultLimits:\n  Food: 250\n"), 0o600))

	p, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"Food"}, p.DefaultLimits.Categories())
	assert.True(t, p.DefaultLimits["Food"].Equal(decimal.NewFromInt(250)))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
