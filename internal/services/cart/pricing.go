package cart

import (
	"github.com/shopspring/decimal"

	"payquick/internal/models"
)

// DefaultTaxRate is the sales tax applied at checkout.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Totals is the amount breakdown shown on the summary step.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Subtotal sums price times quantity over items, rounded to cents.
func Subtotal(items []models.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum.Round(2)
}

// ComputeTotals applies rate to the subtotal of items. Tax and total are
// rounded to cents independently, so total is always subtotal plus tax.
func ComputeTotals(items []models.CartItem, rate decimal.Decimal) Totals {
	subtotal := Subtotal(items)
	tax := subtotal.Mul(rate).Round(2)
	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    subtotal.Add(tax).InexactFloat64(),
	}
}

// ParseTaxRate reads a decimal rate such as "0.08". Negative or malformed
// values fall back to DefaultTaxRate.
func ParseTaxRate(s string) decimal.Decimal {
	rate, err := decimal.NewFromString(s)
	if err != nil || rate.IsNegative() {
		return DefaultTaxRate
	}
	return rate
}
