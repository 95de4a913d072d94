package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestSummarizeCombinesComponents(t *testing.T) {
	calc := Calculator{
		TaxRate:     dec("0.18"),
		DeliveryFee: func(decimal.Decimal) decimal.Decimal { return dec("30") },
		Discounts: []RateFn{
			func(decimal.Decimal) decimal.Decimal { return dec("10") },
			func(decimal.Decimal) decimal.Decimal { return dec("20") },
		},
	}

	// Subtotal 200, averaged discount 15, tax 36, delivery 30.
	got := calc.Summarize([]Line{
		{ProductID: "p1", UnitPrice: dec("100"), Quantity: 2},
	})

	assertDecimal(t, "Subtotal", got.Subtotal, dec("200"))
	assertDecimal(t, "Discount", got.Discount, dec("15"))
	assertDecimal(t, "Tax", got.Tax, dec("36"))
	assertDecimal(t, "DeliveryFee", got.DeliveryFee, dec("30"))
	assertDecimal(t, "Total", got.Total, dec("251"))
}

func TestSummarizeAveragesDiscounts(t *testing.T) {
	calc := Calculator{
		Discounts: []RateFn{
			func(decimal.Decimal) decimal.Decimal { return dec("100") },
			func(decimal.Decimal) decimal.Decimal { return dec("100") },
		},
	}

	got := calc.Summarize([]Line{{ProductID: "p1", UnitPrice: dec("1000"), Quantity: 1}})

	// Two evaluators returning 100 each average to 100, not 200.
	assertDecimal(t, "Discount", got.Discount, dec("100"))
}

func TestSummarizeEmptyCart(t *testing.T) {
	got := DefaultRates().Summarize(nil)

	assertDecimal(t, "Subtotal", got.Subtotal, decimal.Zero)
	assertDecimal(t, "Discount", got.Discount, decimal.Zero)
	assertDecimal(t, "Tax", got.Tax, decimal.Zero)
	// The flat fee still applies below the free-delivery threshold.
	assertDecimal(t, "DeliveryFee", got.DeliveryFee, dec("50"))
	assertDecimal(t, "Total", got.Total, dec("50"))
}

func TestSummarizeInvariantHolds(t *testing.T) {
	carts := [][]Line{
		{{ProductID: "p1", UnitPrice: dec("99.99"), Quantity: 3}},
		{{ProductID: "p1", UnitPrice: dec("1500"), Quantity: 2}, {ProductID: "p2", UnitPrice: dec("349.99"), Quantity: 1}},
		{{ProductID: "p1", UnitPrice: dec("25999"), Quantity: 2}},
		{{ProductID: "p1", UnitPrice: dec("0.01"), Quantity: 1}},
	}
	calc := DefaultRates()

	for i, items := range carts {
		got := calc.Summarize(items)
		want := got.Subtotal.Sub(got.Discount).Add(got.Tax).Add(got.DeliveryFee)
		if !got.Total.Equal(want) {
			t.Errorf("cart %d: Total = %s, want Subtotal-Discount+Tax+DeliveryFee = %s", i, got.Total, want)
		}
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	calc := DefaultRates()
	items := []Line{
		{ProductID: "p1", UnitPrice: dec("1500"), Quantity: 2},
		{ProductID: "p2", UnitPrice: dec("120.50"), Quantity: 3},
	}

	first := calc.Summarize(items)
	for i := 0; i < 5; i++ {
		if got := calc.Summarize(items); !got.Total.Equal(first.Total) {
			t.Fatalf("run %d: Total = %s, want %s", i, got.Total, first.Total)
		}
	}
}

func TestTierDiscount(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "0"},
		{"4999.99", "0"},
		{"5000", "250"},   // 5%
		{"20000", "1000"}, // 5% boundary
		{"20000.01", "2000.001"},
		{"50000", "5000"}, // 10% boundary
		{"50000.01", "7500.0015"},
	}
	for _, tc := range cases {
		got := TierDiscount(dec(tc.amount))
		if !got.Equal(dec(tc.want)) {
			t.Errorf("TierDiscount(%s) = %s, want %s", tc.amount, got, tc.want)
		}
	}
}

func TestTierDeliveryFee(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "50"},
		{"499.99", "50"},
		{"500", "30"},
		{"2000", "30"},
		{"2000.01", "0"},
	}
	for _, tc := range cases {
		got := TierDeliveryFee(dec(tc.amount))
		if !got.Equal(dec(tc.want)) {
			t.Errorf("TierDeliveryFee(%s) = %s, want %s", tc.amount, got, tc.want)
		}
	}
}

func TestDefaultRatesCarriesTwoDiscountEvaluators(t *testing.T) {
	calc := DefaultRates()
	if len(calc.Discounts) != 2 {
		t.Fatalf("Discounts = %d evaluators, want 2", len(calc.Discounts))
	}
	// Identical evaluators average to the single-evaluator value.
	got := calc.Summarize([]Line{{ProductID: "p1", UnitPrice: dec("10000"), Quantity: 1}})
	assertDecimal(t, "Discount", got.Discount, dec("500"))
}
