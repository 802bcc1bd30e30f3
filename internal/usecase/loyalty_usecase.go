package usecase

import (
	"context"

	"till/internal/domain/entity"

	"github.com/google/uuid"
)

// LoyaltyUsecase covers the customer/loyalty store: registration, lookup,
// and point accrual with the tier auto-promotion rule.
type LoyaltyUsecase interface {
	RegisterCustomer(ctx context.Context, input *RegisterCustomerInput) (*entity.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// CreditPoints adds earned points to the customer's balance and
	// auto-promotes to VIP at the threshold. It returns the updated customer.
	CreditPoints(ctx context.Context, customerID uuid.UUID, points int) (*entity.Customer, error)
}

// RegisterCustomerInput defines the data required to register a loyalty customer.
type RegisterCustomerInput struct {
	Name  string      `json:"name"`
	Email string      `json:"email,omitempty"`
	Phone string      `json:"phone,omitempty"`
	Tier  entity.Tier `json:"tier,omitempty"`
}
