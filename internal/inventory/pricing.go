package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ApplyDiscount returns price reduced by percent, rounded half-up to cents.
// A zero discount returns the price untouched.
func ApplyDiscount(price, percent decimal.Decimal) decimal.Decimal {
	if percent.IsZero() {
		return price
	}
	return price.Mul(hundred.Sub(percent)).Div(hundred).Round(2)
}
