package checkout

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold = decimal.RequireFromString("50.00")
	// FlatShippingFee is charged below FreeShippingThreshold.
	FlatShippingFee = decimal.RequireFromString("9.99")
)

// Totals is the order summary derived from a cart subtotal.
type Totals struct {
	Subtotal             decimal.Decimal `json:"subtotal"`
	Shipping             decimal.Decimal `json:"shipping"`
	Total                decimal.Decimal `json:"total"`
	FreeShipping         bool            `json:"free_shipping"`
	AmountToFreeShipping decimal.Decimal `json:"amount_to_free_shipping"`
}

// ComputeTotals applies the flat shipping policy to subtotal.
func ComputeTotals(subtotal decimal.Decimal) Totals {
	shipping := Shipping(subtotal)
	remaining := decimal.Zero
	if subtotal.LessThan(FreeShippingThreshold) {
		remaining = FreeShippingThreshold.Sub(subtotal)
	}
	return Totals{
		Subtotal:             subtotal,
		Shipping:             shipping,
		Total:                subtotal.Add(shipping),
		FreeShipping:         shipping.IsZero(),
		AmountToFreeShipping: remaining,
	}
}

// Shipping is zero at or above FreeShippingThreshold and FlatShippingFee below it.
func Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

// Display renders an amount with two decimal places.
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
