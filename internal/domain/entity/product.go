// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item that can be sold over the counter.
// Stock is mutated only through signed stock-delta operations during
// checkout and refund; the quantity never goes negative.
type Product struct {
	ID                uuid.UUID       // The unique identifier for the product.
	Name              string          // The display name shown on receipts and the catalog.
	Description       string          // Optional free-form description.
	Category          string          // Optional grouping used by catalog search.
	Price             decimal.Decimal // Current unit price. Non-negative.
	StockQuantity     int             // Units on hand. Never negative.
	LowStockThreshold int             // Stock level at or below which the product counts as low stock.
	CreatedAt         time.Time       // Timestamp of when this product was created.
	UpdatedAt         time.Time       // Timestamp of the last modification.
}

// IsLowStock reports whether the on-hand quantity has fallen to or below
// the product's low-stock threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// HasStock reports whether at least qty units are currently on hand.
// This is a point-in-time read, not a reservation.
func (p *Product) HasStock(qty int) bool {
	return p.StockQuantity >= qty
}
