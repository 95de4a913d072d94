package cart

import "github.com/shopspring/decimal"

// DefaultTaxRate is the standard goods tax applied to subtotals.
var DefaultTaxRate = decimal.NewFromFloat(0.18)

// TierDiscount is the standard order-size discount: 5% from 5000 to 20000,
// 10% above that up to 50000, 15% beyond. Small orders get none.
func TierDiscount(amount decimal.Decimal) decimal.Decimal {
	var percent int64
	switch {
	case amount.GreaterThan(decimal.NewFromInt(50000)):
		percent = 15
	case amount.GreaterThan(decimal.NewFromInt(20000)):
		percent = 10
	case amount.GreaterThanOrEqual(decimal.NewFromInt(5000)):
		percent = 5
	}
	return amount.Mul(decimal.NewFromInt(percent)).Div(decimal.NewFromInt(100))
}

// TierDeliveryFee is the standard delivery rule: flat 50 under 500, reduced
// to 30 up to 2000, free above.
func TierDeliveryFee(amount decimal.Decimal) decimal.Decimal {
	switch {
	case amount.LessThan(decimal.NewFromInt(500)):
		return decimal.NewFromInt(50)
	case amount.LessThanOrEqual(decimal.NewFromInt(2000)):
		return decimal.NewFromInt(30)
	default:
		return decimal.Zero
	}
}

// DefaultRates returns a Calculator carrying the standard business rules.
// Two discount evaluators are installed on purpose: summary computation
// averages their results.
func DefaultRates() Calculator {
	return Calculator{
		TaxRate:     DefaultTaxRate,
		DeliveryFee: TierDeliveryFee,
		Discounts:   []RateFn{TierDiscount, TierDiscount},
	}
}
