package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"till/internal/domain/entity"
	domainerrors "till/internal/domain/errors"
	"till/internal/domain/repository"
	mockRepo "till/internal/mocks/repository"
	"till/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// loyaltyServiceFixtures holds all test dependencies for loyalty service tests.
type loyaltyServiceFixtures struct {
	service      usecase.LoyaltyUsecase
	customerRepo *mockRepo.MockCustomerRepository
}

func createTestLoyaltyService(t *testing.T) loyaltyServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	factory.EXPECT().CustomerRepo().Return(customerRepo).Maybe()
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		}).
		Maybe()

	service := NewLoyaltyService(txManager, logger)

	return loyaltyServiceFixtures{
		service:      service,
		customerRepo: customerRepo,
	}
}

func TestLoyaltyService_RegisterCustomer_DefaultsToRegular(t *testing.T) {
	fx := createTestLoyaltyService(t)
	ctx := context.Background()

	fx.customerRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Customer")).
		RunAndReturn(func(_ context.Context, customer *entity.Customer) error {
			customer.ID = uuid.New()
			return nil
		})

	customer, err := fx.service.RegisterCustomer(ctx, &usecase.RegisterCustomerInput{
		Name:  " Mei Lin ",
		Email: "mei@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mei Lin", customer.Name)
	assert.Equal(t, entity.TierRegular, customer.Tier)
	assert.NotEqual(t, uuid.Nil, customer.ID)
}

func TestLoyaltyService_RegisterCustomer_Validation(t *testing.T) {
	fx := createTestLoyaltyService(t)
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, &usecase.RegisterCustomerInput{Name: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCustomer)

	_, err = fx.service.RegisterCustomer(ctx, &usecase.RegisterCustomerInput{
		Name: "Mei Lin",
		Tier: entity.Tier("Platinum"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCustomer)
}

func TestLoyaltyService_GetCustomer(t *testing.T) {
	fx := createTestLoyaltyService(t)
	ctx := context.Background()
	existing := &entity.Customer{ID: uuid.New(), Name: "Mei Lin", Tier: entity.TierStudent}

	fx.customerRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)

	customer, err := fx.service.GetCustomer(ctx, existing.ID)
	require.NoError(t, err)
	assert.Same(t, existing, customer)
}

func TestLoyaltyService_GetCustomer_UnknownCustomer(t *testing.T) {
	fx := createTestLoyaltyService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.customerRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrCustomerNotFound)

	_, err := fx.service.GetCustomer(ctx, id)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
}

func TestLoyaltyService_CreditPoints_RejectsNonPositive(t *testing.T) {
	fx := createTestLoyaltyService(t)
	ctx := context.Background()

	_, err := fx.service.CreditPoints(ctx, uuid.New(), 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.CreditPoints(ctx, uuid.New(), -5)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestLoyaltyService_CreditPoints_PromotesAtThreshold(t *testing.T) {
	fx := createTestLoyaltyService(t)
	ctx := context.Background()
	existing := &entity.Customer{
		ID:            uuid.New(),
		Name:          "Mei Lin",
		Tier:          entity.TierRegular,
		LoyaltyPoints: 95,
	}

	fx.customerRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)
	fx.customerRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Customer")).
		RunAndReturn(func(_ context.Context, customer *entity.Customer) error {
			assert.Equal(t, 105, customer.LoyaltyPoints)
			assert.Equal(t, entity.TierVIP, customer.Tier)
			return nil
		})

	customer, err := fx.service.CreditPoints(ctx, existing.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 105, customer.LoyaltyPoints)
	assert.Equal(t, entity.TierVIP, customer.Tier)
}

func TestLoyaltyService_CreditPoints_UnknownCustomer(t *testing.T) {
	fx := createTestLoyaltyService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.customerRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrCustomerNotFound)

	_, err := fx.service.CreditPoints(ctx, id, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
}
