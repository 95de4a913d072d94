// Package catalog holds the store-backed example entity the caching layer is
// exercised with, along with its validation rules and seed data.
package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Kind is the entity-kind segment used in catalog cache keys.
const Kind = "products"

// Product is a durable catalog entity.
type Product struct {
	bun.BaseModel `bun:"table:products" json:"-" msgpack:"-"`

	ID       string          `json:"id" bun:"id,pk"`
	Name     string          `json:"name" bun:"name"`
	Category string          `json:"category" bun:"category"`
	Price    decimal.Decimal `json:"price" bun:"price"`
	Quantity int             `json:"quantity" bun:"quantity"`
}

// Validate reports malformed products before they reach the store.
func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.Price, validation.By(nonNegative)),
		validation.Field(&p.Quantity, validation.Min(0)),
	)
}

func nonNegative(v any) error {
	d, ok := v.(decimal.Decimal)
	if !ok || d.IsNegative() {
		return validation.NewError("validation_price", "must be a non-negative amount")
	}
	return nil
}

// Seed returns the catalog fixture set used by examples and integration tests.
func Seed() []Product {
	price := func(units int64) decimal.Decimal { return decimal.NewFromInt(units) }
	return []Product{
		{ID: "1", Name: "Apple iPhone 14", Category: "Electronics", Price: price(999), Quantity: 50},
		{ID: "2", Name: "Samsung Galaxy S22", Category: "Electronics", Price: price(899), Quantity: 40},
		{ID: "3", Name: "Sony WH-1000XM4 Headphones", Category: "Electronics", Price: price(349), Quantity: 30},
		{ID: "4", Name: "Nike Air Zoom Pegasus", Category: "Footwear", Price: price(120), Quantity: 100},
		{ID: "5", Name: "Adidas Ultraboost", Category: "Footwear", Price: price(180), Quantity: 80},
		{ID: "6", Name: "Organic Apples (1kg)", Category: "Groceries", Price: price(4), Quantity: 200},
		{ID: "7", Name: "Organic Bananas (1 Dozen)", Category: "Groceries", Price: price(3), Quantity: 150},
	}
}
