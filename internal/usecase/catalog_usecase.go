package usecase

import (
	"context"

	"till/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogUsecase covers catalog management: product CRUD, search, and
// stock operations outside the sale path (restocking).
type CatalogUsecase interface {
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, input *UpdateProductInput) error
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	SearchProducts(ctx context.Context, term, category string) ([]*entity.Product, error)
	LowStockProducts(ctx context.Context) ([]*entity.Product, error)
	Categories(ctx context.Context) ([]string, error)

	// RestockProduct adds quantity units of stock. Quantity must be positive.
	RestockProduct(ctx context.Context, id uuid.UUID, quantity int) error
}

// --- Input DTOs ---

// CreateProductInput defines the data required to add a catalog product.
type CreateProductInput struct {
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category,omitempty"`
	Price             decimal.Decimal `json:"price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
}

// UpdateProductInput defines the data required to edit a catalog product.
// Nil fields are left unchanged.
type UpdateProductInput struct {
	ID                uuid.UUID        `json:"id"`
	Name              *string          `json:"name,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Category          *string          `json:"category,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
}
