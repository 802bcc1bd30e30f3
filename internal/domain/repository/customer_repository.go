package repository

import (
	"context"
	"errors"

	"till/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCustomerNotFound is a domain-specific error returned when a customer is not found.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository is the loyalty/customer store.
type CustomerRepository interface {
	// FindByID retrieves a single customer by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// Create persists a new customer.
	Create(ctx context.Context, customer *entity.Customer) error

	// Update modifies an existing customer, including tier and point balance.
	Update(ctx context.Context, customer *entity.Customer) error
}
