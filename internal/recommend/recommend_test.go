package recommend

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/budget"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/policy"
)

func tx(kind ledger.Kind, amount, category string) ledger.Transaction {
	return ledger.Transaction{
		ID:        uuid.Must(uuid.NewV4()),
		Kind:      kind,
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
		Timestamp: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// -- Aggregate tests --

func TestAggregate_ExpensesOnlyInFirstSeenOrder(t *testing.T) {
	transactions := []ledger.Transaction{
		tx(ledger.KindExpense, "10", "Food"),
		tx(ledger.KindIncome, "500", "Salary"),
		tx(ledger.KindExpense, "5.25", "Misc"),
		tx(ledger.KindExpense, "2.75", "Food"),
		tx(ledger.KindIncome, "20", "Food"),
	}

	totals := Aggregate(transactions)

	require.Len(t, totals, 2)
	assert.Equal(t, "Food", totals[0].Category)
	assert.True(t, totals[0].Total.Equal(d("12.75")))
	assert.Equal(t, "Misc", totals[1].Category)
	assert.True(t, totals[1].Total.Equal(d("5.25")))
}

func TestAggregate_NoExpenses(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]ledger.Transaction{tx(ledger.KindIncome, "100", "Salary")}))
}

func TestAggregate_SumMatchesExpenseTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	categories := []string{"Food", "Misc", "Clothing", "Personal", "Entertainment"}

	for run := 0; run < 50; run++ {
		var transactions []ledger.Transaction
		expected := decimal.Zero
		for i := 0; i < rng.Intn(40); i++ {
			kind := ledger.KindExpense
			if rng.Intn(3) == 0 {
				kind = ledger.KindIncome
			}
			amount := decimal.New(rng.Int63n(100000), -2)
			transactions = append(transactions, ledger.Transaction{
				Kind:     kind,
				Amount:   amount,
				Category: categories[rng.Intn(len(categories))],
			})
			if kind == ledger.KindExpense {
				expected = expected.Add(amount)
			}
		}

		totals := Aggregate(transactions)

		assert.True(t, totals.Sum().Equal(expected), "run %d: got %s want %s", run, totals.Sum(), expected)
	}
}

func TestAggregateBetween_RestrictsToPeriod(t *testing.T) {
	inside := tx(ledger.KindExpense, "40", "Food")
	outside := tx(ledger.KindExpense, "60", "Food")
	outside.Timestamp = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	period := budget.Period{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	totals := AggregateBetween([]ledger.Transaction{inside, outside}, period)

	require.Len(t, totals, 1)
	assert.True(t, totals[0].Total.Equal(d("40")))
	assert.True(t, Aggregate([]ledger.Transaction{inside, outside})[0].Total.Equal(d("100")))
}

// -- Recommend tests --

func TestRecommend_ClothingEntertainmentScenario(t *testing.T) {
	engine := NewEngine(policy.Default())
	totals := Aggregate([]ledger.Transaction{
		tx(ledger.KindExpense, "40", "Clothing"),
		tx(ledger.KindExpense, "35", "Entertainment"),
		tx(ledger.KindExpense, "10", "Misc"),
	})

	recs := engine.Recommend(totals, d("150"))

	require.Len(t, recs, 2)
	assert.Equal(t, "Clothing", recs[0].Category)
	assert.Equal(t, "Shop at thrift stores or during sales, focusing on versatile items.", recs[0].Tip)
	assert.True(t, recs[0].PotentialSavings.Equal(d("4.2")), "got %s", recs[0].PotentialSavings)
	assert.Equal(t, "Entertainment", recs[1].Category)
	assert.True(t, recs[1].PotentialSavings.Equal(d("5.25")), "got %s", recs[1].PotentialSavings)
}

func TestRecommend_CapsAtThreeSortedDescending(t *testing.T) {
	engine := NewEngine(policy.Default())
	totals := Totals{
		{Category: "A", Total: d("50")},
		{Category: "B", Total: d("300")},
		{Category: "C", Total: d("31")},
		{Category: "D", Total: d("120")},
		{Category: "E", Total: d("75")},
	}

	recs := engine.Recommend(totals, d("1000"))

	require.Len(t, recs, 3)
	assert.Equal(t, []string{"B", "D", "E"}, []string{recs[0].Category, recs[1].Category, recs[2].Category})
	for i := 1; i < len(recs); i++ {
		assert.False(t, recs[i].Total.GreaterThan(recs[i-1].Total))
	}
}

func TestRecommend_TiesKeepAggregationOrder(t *testing.T) {
	engine := NewEngine(policy.Default())
	totals := Totals{
		{Category: "Zeta", Total: d("80")},
		{Category: "Alpha", Total: d("80")},
		{Category: "Mid", Total: d("80")},
	}

	recs := engine.Recommend(totals, d("0"))

	require.Len(t, recs, 3)
	assert.Equal(t, "Zeta", recs[0].Category)
	assert.Equal(t, "Alpha", recs[1].Category)
	assert.Equal(t, "Mid", recs[2].Category)
}

func TestRecommend_EmptyResults(t *testing.T) {
	engine := NewEngine(policy.Default())

	assert.Empty(t, engine.Recommend(Totals{}, d("100")))
	assert.NotNil(t, engine.Recommend(Totals{}, d("100")))

	belowThreshold := Totals{
		{Category: "Food", Total: d("30")},
		{Category: "Misc", Total: d("29.99")},
	}
	assert.Empty(t, engine.Recommend(belowThreshold, d("100")), "threshold is strict")
}

func TestRecommend_SavingsFormulaAcrossTiers(t *testing.T) {
	p := policy.Default()
	engine := NewEngine(p)
	totals := Totals{
		{Category: "Entertainment", Total: d("123.45")},
		{Category: "Dining Out", Total: d("99.99")},
		{Category: "Groceries", Total: d("45.67")},
	}

	for _, income := range []string{"0", "199", "200", "350", "500", "9000"} {
		t.Run(income, func(t *testing.T) {
			recs := engine.Recommend(totals, d(income))
			require.Len(t, recs, 3)
			for _, rec := range recs {
				want := rec.Total.Mul(p.Multiplier(d(income))).Mul(p.AdviceFor(rec.Category).Weight).Round(2)
				assert.True(t, rec.PotentialSavings.Equal(want), "%s: got %s want %s", rec.Category, rec.PotentialSavings, want)
			}
		})
	}
}

func TestRecommend_ConfigurableThresholdAndCount(t *testing.T) {
	p := policy.Default()
	p.MaterialityThreshold = d("20")
	p.MaxRecommendations = 1
	engine := NewEngine(p)

	recs := engine.Recommend(Totals{
		{Category: "Misc", Total: d("25")},
		{Category: "Food", Total: d("21")},
	}, d("100"))

	require.Len(t, recs, 1)
	assert.Equal(t, "Misc", recs[0].Category)
	assert.Equal(t, "Find ways to cut back in the Misc category.", recs[0].Tip)
	assert.True(t, recs[0].PotentialSavings.Equal(d("1.88")), "25 x 0.3 x 0.25 = 1.875")
}

func TestRecommend_NeverExceedsMax(t *testing.T) {
	engine := NewEngine(policy.Default())
	totals := Totals{}
	for i := 0; i < 20; i++ {
		totals = append(totals, CategoryTotal{Category: "C" + strconv.Itoa(i), Total: decimal.NewFromInt(int64(31 + i))})
	}

	recs := engine.Recommend(totals, d("250"))

	assert.Len(t, recs, 3)
	assert.Equal(t, "C19", recs[0].Category)
}
