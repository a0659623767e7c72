package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is non-negative by convention; the store
// does not enforce it.
type Product struct {
	ID        int64
	Name      string
	Category  string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a copy safe to hand out from in-memory stores.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Fields are the mutable attributes of a product.
type Fields struct {
	Name     string
	Category string
	Price    decimal.Decimal
}

// Apply overwrites the mutable attributes and bumps UpdatedAt.
func (p *Product) Apply(f Fields, now time.Time) {
	p.Name = f.Name
	p.Category = f.Category
	p.Price = f.Price
	p.UpdatedAt = now
}
