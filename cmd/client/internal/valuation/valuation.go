// Package valuation computes display figures over holdings. All functions
// are pure; an unresolved price is reported as unknown, never as zero.
package valuation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/models"
)

// RowValue returns currentPrice * quantity rounded to two decimals. The
// second return is false when the price is unresolved or either factor is
// not a finite number.
func RowValue(h models.Holding) (decimal.Decimal, bool) {
	if h.CurrentPrice == nil {
		return decimal.Zero, false
	}
	price := *h.CurrentPrice
	if !isFinite(price) || !isFinite(h.Quantity) {
		return decimal.Zero, false
	}

	return decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(h.Quantity)).Round(2), true
}

// TotalValue sums the known row values. Unknown rows contribute zero, so
// the total is a lower bound while some prices are unresolved.
func TotalValue(holdings []models.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		if v, ok := RowValue(h); ok {
			total = total.Add(v)
		}
	}
	return total.Round(2)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
