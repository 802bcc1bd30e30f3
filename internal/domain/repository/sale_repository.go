package repository

import (
	"context"
	"errors"

	"till/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSaleNotFound is a domain-specific error returned when a sale is not found.
var ErrSaleNotFound = errors.New("sale not found")

// SaleRepository is the persistence backend for committed sales. The
// header and all line items are written as one durable record.
type SaleRepository interface {
	// Create persists the sale header and every line item, returning the
	// assigned sale id. Monetary fields are frozen from the sale's current
	// computed values at this moment.
	Create(ctx context.Context, sale *entity.Sale) (uuid.UUID, error)

	// FindByID reconstructs a committed sale (header plus line items).
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleRecord, error)

	// UpdateStatus flips the durable status of a committed sale.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SaleStatus) error
}
