package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"till/internal/domain/entity"
	domainerrors "till/internal/domain/errors"
	"till/internal/domain/repository"
	"till/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// loyaltyService implements the LoyaltyUsecase interface.
type loyaltyService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewLoyaltyService is the constructor for loyaltyService.
func NewLoyaltyService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.LoyaltyUsecase {
	return &loyaltyService{
		txManager: txManager,
		logger:    logger,
	}
}

// RegisterCustomer creates a loyalty customer. The tier defaults to Regular.
func (srv *loyaltyService) RegisterCustomer(ctx context.Context, input *usecase.RegisterCustomerInput) (*entity.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrInvalidCustomer.WithDetails("customer name is required")
	}

	tier := input.Tier
	if tier == "" {
		tier = entity.TierRegular
	}
	if !tier.Valid() {
		return nil, domainerrors.ErrInvalidCustomer.WithDetails(
			fmt.Sprintf("unknown tier %q", input.Tier))
	}

	customer := &entity.Customer{
		Name:  strings.TrimSpace(input.Name),
		Email: input.Email,
		Phone: input.Phone,
		Tier:  tier,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.CustomerRepo().Create(ctx, customer)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register customer")
	}
	srv.logger.Info("Customer registered", "customerID", customer.ID, "tier", customer.Tier)

	return customer, nil
}

// GetCustomer retrieves a single customer by id.
func (srv *loyaltyService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer *entity.Customer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.CustomerRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return domainerrors.ErrCustomerNotFound.WithDetails(fmt.Sprintf("customer %s", id))
			}

			return errors.Wrap(err, "failed to find customer")
		}
		customer = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get customer")
	}

	return customer, nil
}

// CreditPoints accrues loyalty points and applies the VIP auto-promotion
// rule, all within one database transaction.
func (srv *loyaltyService) CreditPoints(ctx context.Context, customerID uuid.UUID, points int) (*entity.Customer, error) {
	if points <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("points to credit must be positive, got %d", points))
	}

	var customer *entity.Customer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.CustomerRepo()

		found, err := customerRepo.FindByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return domainerrors.ErrCustomerNotFound.WithDetails(fmt.Sprintf("customer %s", customerID))
			}

			return errors.Wrap(err, "failed to find customer")
		}

		found.CreditPoints(points)
		if err := customerRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update customer")
		}
		customer = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to credit points")
	}
	srv.logger.Debug("Loyalty points credited",
		"customerID", customerID, "points", points, "balance", customer.LoyaltyPoints, "tier", customer.Tier)

	return customer, nil
}
