package cart

import "github.com/shopspring/decimal"

// RateFn maps an order amount to a derived amount (a discount, a fee).
type RateFn func(amount decimal.Decimal) decimal.Decimal

// Summary is the derived aggregate for a cart. It is computed on demand and
// never persisted. Total always equals Subtotal - Discount + Tax + DeliveryFee
// exactly, with every component rounded to cents before combination.
type Summary struct {
	Subtotal    decimal.Decimal `json:"sub_total"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Calculator computes cart summaries from externally supplied rate rules.
// It is pure: no caching, no I/O, deterministic for its inputs.
//
// Discounts holds one or more independently constructed evaluators whose
// results are averaged, not summed. The averaging is a domain rule carried
// over deliberately; do not collapse the list to a single evaluator.
type Calculator struct {
	TaxRate     decimal.Decimal
	DeliveryFee RateFn
	Discounts   []RateFn
}

// Summarize computes the aggregate for the given lines.
func (c Calculator) Summarize(items []Line) Summary {
	subtotal := decimal.Zero
	for _, line := range items {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discount := decimal.Zero
	if n := len(c.Discounts); n > 0 {
		for _, fn := range c.Discounts {
			discount = discount.Add(fn(subtotal))
		}
		discount = discount.Div(decimal.NewFromInt(int64(n)))
	}

	tax := subtotal.Mul(c.TaxRate)

	delivery := decimal.Zero
	if c.DeliveryFee != nil {
		delivery = c.DeliveryFee(subtotal)
	}

	subtotal = subtotal.Round(2)
	discount = discount.Round(2)
	tax = tax.Round(2)
	delivery = delivery.Round(2)

	return Summary{
		Subtotal:    subtotal,
		Discount:    discount,
		Tax:         tax,
		DeliveryFee: delivery,
		Total:       subtotal.Sub(discount).Add(tax).Add(delivery),
	}
}
