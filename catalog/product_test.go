package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-cache-aside/pkg/testsupport"
)

func validProduct() Product {
	return Product{
		ID:       "42",
		Name:     "Sony WH-1000XM5",
		Category: "Electronics",
		Price:    decimal.NewFromInt(399),
		Quantity: 10,
	}
}

func TestProductValidate(t *testing.T) {
	if err := validProduct().Validate(); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Product)
	}{
		{"missing id", func(p *Product) { p.ID = "" }},
		{"missing name", func(p *Product) { p.Name = "" }},
		{"missing category", func(p *Product) { p.Category = "" }},
		{"negative price", func(p *Product) { p.Price = decimal.NewFromInt(-1) }},
		{"negative quantity", func(p *Product) { p.Quantity = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProduct()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestProductValidateAllowsZeroes(t *testing.T) {
	p := validProduct()
	p.Price = decimal.Zero
	p.Quantity = 0
	if err := p.Validate(); err != nil {
		t.Errorf("free out-of-stock product rejected: %v", err)
	}
}

func TestSeedMatchesFixture(t *testing.T) {
	var want []Product
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("products.json"), &want)

	if diff := cmp.Diff(want, Seed()); diff != "" {
		t.Errorf("seed data drifted from fixture (-fixture +seed):\n%s", diff)
	}
}

func TestSeedIsValid(t *testing.T) {
	for _, p := range Seed() {
		if err := p.Validate(); err != nil {
			t.Errorf("seed product %s invalid: %v", p.ID, err)
		}
	}
}
