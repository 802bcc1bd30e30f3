// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"till/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleUsecase is the transaction engine: it owns the single in-progress
// sale for its cashier session, validates and commits checkouts, and
// reverses committed sales on refund.
//
// One engine instance serves one till. Callers must not share an instance
// across concurrent sessions.
type SaleUsecase interface {
	// StartSale opens a new in-progress sale. Any sale already in progress
	// is silently discarded; callers must not assume prior cart state
	// survives this call.
	StartSale(ctx context.Context, input *StartSaleInput) (*entity.Sale, error)

	// AddItemToCart looks up the product, pre-checks availability against
	// current stock (a pre-check, not a reservation), and adds the line.
	AddItemToCart(ctx context.Context, productID uuid.UUID, quantity int) error

	// RemoveItemFromCart drops the product's line from the open cart.
	RemoveItemFromCart(ctx context.Context, productID uuid.UUID) error

	// Checkout validates payment and stock, then commits: persists the
	// sale with its line items, decrements stock, and credits loyalty
	// points, all inside one database transaction.
	Checkout(ctx context.Context, cashTendered decimal.Decimal) (*CheckoutOutput, error)

	// CancelSale discards the in-progress sale with no side effects.
	CancelSale()

	// CurrentSale returns the open sale, or nil when none is in progress.
	CurrentSale() *entity.Sale

	// GetSale reconstructs a committed sale from storage. An unknown id
	// yields (nil, nil), not an error.
	GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleRecord, error)

	// Refund restores stock for every line of a committed sale and flips
	// its status to Refunded. Loyalty points are not reversed.
	Refund(ctx context.Context, id uuid.UUID) error
}

// --- Input / Output DTOs ---

// StartSaleInput defines the data required to open a sale.
type StartSaleInput struct {
	CashierID     uuid.UUID            `json:"cashier_id"`
	CustomerID    *uuid.UUID           `json:"customer_id,omitempty"`
	PaymentMethod entity.PaymentMethod `json:"payment_method,omitempty"`
}

// CheckoutOutput carries the committed sale id and the final monetary
// fields, ready for receipt rendering by the caller.
type CheckoutOutput struct {
	SaleID        uuid.UUID       `json:"sale_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Change        decimal.Decimal `json:"change"`
	LoyaltyPoints int             `json:"loyalty_points"`
}
