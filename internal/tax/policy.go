// Package tax computes jurisdiction-specific tax lines for an invoice.
//
// India applies the CGST+SGST split as one combined line, Japan shows a
// consumption tax line only when the invoice opts in, and every other
// jurisdiction applies the flat invoice tax rate. The subtotal is always
// recomputed from the line items.
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-renderer/internal/model"
	"github.com/rezonia/invoice-renderer/internal/money"
)

// Line is a single tax row in the totals block.
type Line struct {
	Label  string
	Amount decimal.Decimal
}

// Result holds the derived totals for an invoice.
type Result struct {
	Subtotal   decimal.Decimal
	Lines      []Line
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// Compute derives subtotal, tax lines and grand total from an invoice
// snapshot. It never fails: out-of-range rates are clamped to zero and
// missing split rates degenerate to a zero-tax line.
func Compute(inv *model.Invoice) Result {
	subtotal := decimal.Zero
	for i := range inv.Items {
		subtotal = subtotal.Add(money.LineTotal(inv.Items[i].Hours, inv.Items[i].Rate))
	}

	var lines []Line
	switch inv.Jurisdiction() {
	case model.JurisdictionIndia:
		// CGST and SGST are carried separately in the data model but
		// printed as one combined line.
		combined := clampRate(inv.CGSTRate).Add(clampRate(inv.SGSTRate))
		lines = append(lines, Line{
			Label:  fmt.Sprintf("Tax (%s%%)", combined.String()),
			Amount: money.Percentage(subtotal, combined),
		})

	case model.JurisdictionJapan:
		if inv.ShowConsumptionTax {
			rate := clampRate(inv.TaxRate)
			lines = append(lines, Line{
				Label:  fmt.Sprintf("Consumption Tax (%s%%)", rate.String()),
				Amount: money.Percentage(subtotal, rate),
			})
		}

	default:
		rate := clampRate(inv.TaxRate)
		lines = append(lines, Line{
			Label:  fmt.Sprintf("Tax (%s%%)", rate.String()),
			Amount: money.Percentage(subtotal, rate),
		})
	}

	tax := decimal.Zero
	for _, l := range lines {
		tax = tax.Add(l.Amount)
	}

	return Result{
		Subtotal:   subtotal,
		Lines:      lines,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// clampRate treats negative rates as zero. Rates are percentages.
func clampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}
