// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"till/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrStockConflict is returned by AdjustStock when the signed delta would
// drive the stock quantity negative. The row is left unchanged.
var ErrStockConflict = errors.New("stock adjustment would go negative")

// ProductRepository is the catalog store: product lookup, search, and the
// signed stock-delta mutation the transaction engine uses during checkout
// and refund.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Search lists products matching a name/description term and/or a
	// category, ordered by name. Empty arguments match everything.
	Search(ctx context.Context, term, category string) ([]*entity.Product, error)

	// LowStock lists products whose stock is at or below their threshold,
	// lowest stock first.
	LowStock(ctx context.Context) ([]*entity.Product, error)

	// Categories lists the distinct non-empty product categories.
	Categories(ctx context.Context) ([]string, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// AdjustStock applies a signed delta to the product's stock quantity:
	// negative on sale, positive on refund or restock. It fails with
	// ErrStockConflict, without mutating, if the result would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}
