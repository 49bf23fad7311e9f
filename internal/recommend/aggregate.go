package recommend

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/budget"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// CategoryTotal is the summed expense amount of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Totals holds category totals in the order each category first appears in
// the ledger.
type Totals []CategoryTotal

// Sum is the total over all categories.
func (t Totals) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, ct := range t {
		sum = sum.Add(ct.Total)
	}
	return sum
}

// Aggregate sums expense transactions per category over the whole ledger.
// Income never contributes.
func Aggregate(transactions []ledger.Transaction) Totals {
	return aggregate(transactions, func(ledger.Transaction) bool { return true })
}

// AggregateBetween is Aggregate restricted to transactions dated inside the
// budget period.
func AggregateBetween(transactions []ledger.Transaction, period budget.Period) Totals {
	return aggregate(transactions, func(tx ledger.Transaction) bool {
		return period.Contains(tx.Timestamp)
	})
}

func aggregate(transactions []ledger.Transaction, include func(ledger.Transaction) bool) Totals {
	totals := Totals{}
	index := make(map[string]int)
	for _, tx := range transactions {
		if tx.Kind != ledger.KindExpense || !include(tx) {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			index[tx.Category] = len(totals)
			totals = append(totals, CategoryTotal{Category: tx.Category, Total: tx.Amount})
			continue
		}
		totals[i].Total = totals[i].Total.Add(tx.Amount)
	}
	return totals
}
