package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/sheikhstore/storefront/internal/domain/shared"
)

// Product is a read-only snapshot of a catalog product as served by the
// backend. The cart keeps its own copy at add time, so later catalog
// changes never affect items already added.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	PhotoPath   string   `json:"photoPath"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category,omitempty"`
	CategoryID  int64    `json:"categoryId,omitempty"`
	Price       decimal.Decimal `json:"price"`
	// OriginalPrice equals Price when the product is not discounted.
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Stock         int             `json:"stock"`
	Status        string          `json:"status,omitempty"`
	Discount      int             `json:"discount,omitempty"`
	Promo         bool            `json:"promo"`
	Colors        []string        `json:"colors,omitempty"`
}

// InStock returns true if the product can still be ordered.
// A product with zero stock must never be addable to a cart.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// HasDiscount returns true if the product is sold below its original price.
func (p *Product) HasDiscount() bool {
	return p.Price.LessThan(p.OriginalPrice)
}

// Validate checks the invariants a well-formed backend product satisfies.
func (p *Product) Validate() error {
	if p.Name == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if p.Stock < 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Product stock cannot be negative")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRODUCT", "Product price cannot be negative")
	}
	if p.OriginalPrice.IsPositive() && p.Price.GreaterThan(p.OriginalPrice) {
		return shared.NewDomainError("INVALID_PRODUCT", "Product price cannot exceed original price")
	}
	return nil
}
