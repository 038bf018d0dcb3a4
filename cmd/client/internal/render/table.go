package render

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/client/internal/valuation"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/models"
)

const unresolved = "-"

// Table writes the holdings as an aligned table. Unresolved prices render
// as "-" so they cannot be mistaken for a zero-value position.
func Table(w io.Writer, holdings []models.Holding) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tQTY\tAVG PRICE\tCURRENT\tVALUE")

	for _, h := range holdings {
		avg := unresolved
		if h.AvgPrice != nil {
			avg = fmt.Sprintf("%.2f", *h.AvgPrice)
		}

		current := unresolved
		if h.CurrentPrice != nil {
			current = fmt.Sprintf("%.2f", *h.CurrentPrice)
		}

		value := unresolved
		if v, ok := valuation.RowValue(h); ok {
			value = v.StringFixed(2)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			h.Symbol,
			strconv.FormatFloat(h.Quantity, 'f', -1, 64),
			avg,
			current,
			value,
		)
	}

	tw.Flush()
}

// Total formats the portfolio total as USD.
func Total(holdings []models.Holding) string {
	total := valuation.TotalValue(holdings)
	cents := total.Mul(decimal.NewFromInt(100)).IntPart()
	return money.New(cents, money.USD).Display()
}
