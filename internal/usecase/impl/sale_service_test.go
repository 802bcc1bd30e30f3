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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// saleServiceFixtures holds all test dependencies for sale service tests.
// Every Execute call on the transaction manager runs the callback against
// the shared factory, so repository expectations drive the outcome.
type saleServiceFixtures struct {
	service      usecase.SaleUsecase
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	productRepo  *mockRepo.MockProductRepository
	customerRepo *mockRepo.MockCustomerRepository
	saleRepo     *mockRepo.MockSaleRepository
}

func createTestSaleService(t *testing.T) saleServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	saleRepo := mockRepo.NewMockSaleRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	factory.EXPECT().ProductRepo().Return(productRepo).Maybe()
	factory.EXPECT().CustomerRepo().Return(customerRepo).Maybe()
	factory.EXPECT().SaleRepo().Return(saleRepo).Maybe()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		}).
		Maybe()

	service := NewSaleService(txManager, logger)

	return saleServiceFixtures{
		service:      service,
		txManager:    txManager,
		factory:      factory,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
	}
}

func fixtureProduct(name, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
}

func TestSaleService_StartSale_WalkIn(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	cashierID := uuid.New()

	sale, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: cashierID})
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, cashierID, sale.CashierID)
	assert.Nil(t, sale.Customer)
	assert.Equal(t, entity.PaymentCash, sale.PaymentMethod)
	assert.Equal(t, uuid.Nil, sale.ID)
	assert.Same(t, sale, fx.service.CurrentSale())
}

func TestSaleService_StartSale_WithCustomer(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	customer := &entity.Customer{ID: uuid.New(), Name: "Vera", Tier: entity.TierVIP}

	fx.customerRepo.EXPECT().FindByID(ctx, customer.ID).Return(customer, nil)

	sale, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{
		CashierID:     uuid.New(),
		CustomerID:    &customer.ID,
		PaymentMethod: entity.PaymentCredit,
	})
	require.NoError(t, err)
	assert.Same(t, customer, sale.Customer)
	assert.Equal(t, entity.PaymentCredit, sale.PaymentMethod)
}

func TestSaleService_StartSale_UnknownCustomer(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	customerID := uuid.New()

	fx.customerRepo.EXPECT().FindByID(ctx, customerID).Return(nil, repository.ErrCustomerNotFound)

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{
		CashierID:  uuid.New(),
		CustomerID: &customerID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
	assert.Nil(t, fx.service.CurrentSale())
}

func TestSaleService_StartSale_InvalidPaymentMethod(t *testing.T) {
	fx := createTestSaleService(t)

	_, err := fx.service.StartSale(context.Background(), &usecase.StartSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: entity.PaymentMethod("Barter"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestSaleService_StartSale_DiscardsOpenSale(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	product := fixtureProduct("Coffee", "4.50", 50)

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	require.NoError(t, fx.service.AddItemToCart(ctx, product.ID, 2))

	second, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, second.Items)
}

func TestSaleService_AddItemToCart_NoActiveSale(t *testing.T) {
	fx := createTestSaleService(t)

	err := fx.service.AddItemToCart(context.Background(), uuid.New(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSale)
}

func TestSaleService_AddItemToCart_InvalidQuantity(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	err = fx.service.AddItemToCart(ctx, uuid.New(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
}

func TestSaleService_AddItemToCart_UnknownProduct(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	productID := uuid.New()

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	err = fx.service.AddItemToCart(ctx, productID, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestSaleService_AddItemToCart_InsufficientStock(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	product := fixtureProduct("Coffee", "4.50", 2)

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	err = fx.service.AddItemToCart(ctx, product.ID, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Empty(t, fx.service.CurrentSale().Items)
}

func TestSaleService_AddItemToCart_MergesLines(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	product := fixtureProduct("Coffee", "4.50", 50)

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil).Times(2)

	require.NoError(t, fx.service.AddItemToCart(ctx, product.ID, 2))
	require.NoError(t, fx.service.AddItemToCart(ctx, product.ID, 3))

	sale := fx.service.CurrentSale()
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 5, sale.Items[0].Quantity)
}

func TestSaleService_RemoveItemFromCart(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	product := fixtureProduct("Coffee", "4.50", 50)

	err := fx.service.RemoveItemFromCart(ctx, product.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSale)

	_, err = fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	require.NoError(t, fx.service.AddItemToCart(ctx, product.ID, 2))

	require.NoError(t, fx.service.RemoveItemFromCart(ctx, product.ID))
	assert.Empty(t, fx.service.CurrentSale().Items)

	// Removing a product that is not in the cart is a no-op.
	require.NoError(t, fx.service.RemoveItemFromCart(ctx, uuid.New()))
}

func TestSaleService_Checkout_NoActiveSale(t *testing.T) {
	fx := createTestSaleService(t)

	_, err := fx.service.Checkout(context.Background(), decimal.NewFromInt(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSale)
}

func TestSaleService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	_, err = fx.service.Checkout(ctx, decimal.NewFromInt(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestSaleService_Checkout_InsufficientPayment(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	product := fixtureProduct("Coffee", "4.50", 50)

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	require.NoError(t, fx.service.AddItemToCart(ctx, product.ID, 2))

	// Total is 9.90; 5.00 is not enough.
	_, err = fx.service.Checkout(ctx, decimal.RequireFromString("5.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientPayment)

	// The sale stays open so the cashier can retry.
	assert.NotNil(t, fx.service.CurrentSale())
}

func TestSaleService_Checkout_Success_WalkInCash(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	product := fixtureProduct("Coffee", "4.50", 50)
	saleID := uuid.New()

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	// One lookup at add time, one re-validation on the commit path.
	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil).Times(2)
	require.NoError(t, fx.service.AddItemToCart(ctx, product.ID, 2))

	fx.saleRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Sale")).Return(saleID, nil)
	fx.productRepo.EXPECT().AdjustStock(ctx, product.ID, -2).Return(nil)

	output, err := fx.service.Checkout(ctx, decimal.RequireFromString("20.00"))
	require.NoError(t, err)
	assert.Equal(t, saleID, output.SaleID)
	assert.True(t, output.Subtotal.Equal(decimal.RequireFromString("9.00")))
	assert.True(t, output.Discount.IsZero())
	assert.True(t, output.Tax.Equal(decimal.RequireFromString("0.90")))
	assert.True(t, output.Total.Equal(decimal.RequireFromString("9.90")))
	assert.True(t, output.Change.Equal(decimal.RequireFromString("10.10")))
	assert.Equal(t, 9, output.LoyaltyPoints)

	// The till is clear for the next customer.
	assert.Nil(t, fx.service.CurrentSale())
}

func TestSaleService_Checkout_Success_CreditsLoyaltyAndPromotes(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	product := fixtureProduct("Beans 1kg", "100.00", 10)
	saleID := uuid.New()
	customer := &entity.Customer{ID: uuid.New(), Name: "Pat", Tier: entity.TierRegular, LoyaltyPoints: 20}

	// One customer lookup at start, one inside the loyalty credit.
	fx.customerRepo.EXPECT().FindByID(ctx, customer.ID).Return(customer, nil).Times(2)
	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{
		CashierID:     uuid.New(),
		CustomerID:    &customer.ID,
		PaymentMethod: entity.PaymentCredit,
	})
	require.NoError(t, err)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil).Times(2)
	require.NoError(t, fx.service.AddItemToCart(ctx, product.ID, 1))

	// Subtotal 100, no discount for Regular, tax 10, total 110 -> 110 points.
	fx.saleRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Sale")).Return(saleID, nil)
	fx.productRepo.EXPECT().AdjustStock(ctx, product.ID, -1).Return(nil)
	fx.customerRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Customer")).
		RunAndReturn(func(_ context.Context, updated *entity.Customer) error {
			assert.Equal(t, 130, updated.LoyaltyPoints)
			assert.Equal(t, entity.TierVIP, updated.Tier)
			return nil
		})

	output, err := fx.service.Checkout(ctx, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, 110, output.LoyaltyPoints)
	assert.True(t, output.Change.IsZero())
}

func TestSaleService_Checkout_StockConflictRollsBack(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	product := fixtureProduct("Coffee", "4.50", 50)
	saleID := uuid.New()

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil).Times(2)
	require.NoError(t, fx.service.AddItemToCart(ctx, product.ID, 2))

	fx.saleRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Sale")).Return(saleID, nil)
	fx.productRepo.EXPECT().AdjustStock(ctx, product.ID, -2).Return(repository.ErrStockConflict)

	_, err = fx.service.Checkout(ctx, decimal.RequireFromString("20.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	// The commit rolled back; the cart is still open for the cashier.
	assert.NotNil(t, fx.service.CurrentSale())
}

func TestSaleService_Checkout_RevalidationStopsBeforePersist(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	product := fixtureProduct("Coffee", "4.50", 5)

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil).Once()
	require.NoError(t, fx.service.AddItemToCart(ctx, product.ID, 5))

	// Stock moved between add and checkout. No Create expectation is set,
	// so any persist attempt would fail the test.
	drained := fixtureProduct("Coffee", "4.50", 1)
	drained.ID = product.ID
	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(drained, nil).Once()

	_, err = fx.service.Checkout(ctx, decimal.RequireFromString("50.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}

func TestSaleService_CancelSale(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()

	// Cancelling with nothing open is fine.
	fx.service.CancelSale()

	_, err := fx.service.StartSale(ctx, &usecase.StartSaleInput{CashierID: uuid.New()})
	require.NoError(t, err)

	fx.service.CancelSale()
	assert.Nil(t, fx.service.CurrentSale())
}

func TestSaleService_GetSale(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	saleID := uuid.New()
	record := &entity.SaleRecord{ID: saleID, Status: entity.StatusCompleted}

	fx.saleRepo.EXPECT().FindByID(ctx, saleID).Return(record, nil)

	got, err := fx.service.GetSale(ctx, saleID)
	require.NoError(t, err)
	assert.Same(t, record, got)
}

func TestSaleService_GetSale_UnknownIsNotAnError(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	saleID := uuid.New()

	fx.saleRepo.EXPECT().FindByID(ctx, saleID).Return(nil, repository.ErrSaleNotFound)

	got, err := fx.service.GetSale(ctx, saleID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaleService_Refund_Success(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	saleID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	record := &entity.SaleRecord{
		ID:     saleID,
		Status: entity.StatusCompleted,
		Items: []entity.LineItem{
			{ProductID: productA, Quantity: 2},
			{ProductID: productB, Quantity: 1},
		},
	}

	fx.saleRepo.EXPECT().FindByID(ctx, saleID).Return(record, nil)
	fx.productRepo.EXPECT().AdjustStock(ctx, productA, 2).Return(nil)
	fx.productRepo.EXPECT().AdjustStock(ctx, productB, 1).Return(nil)
	fx.saleRepo.EXPECT().UpdateStatus(ctx, saleID, entity.StatusRefunded).Return(nil)

	// No customer repository expectations: loyalty points stay credited.
	require.NoError(t, fx.service.Refund(ctx, saleID))
}

func TestSaleService_Refund_UnknownSale(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	saleID := uuid.New()

	fx.saleRepo.EXPECT().FindByID(ctx, saleID).Return(nil, repository.ErrSaleNotFound)

	err := fx.service.Refund(ctx, saleID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrSaleNotFound)
}

func TestSaleService_Refund_AlreadyRefunded(t *testing.T) {
	fx := createTestSaleService(t)
	ctx := context.Background()
	saleID := uuid.New()
	record := &entity.SaleRecord{ID: saleID, Status: entity.StatusRefunded}

	fx.saleRepo.EXPECT().FindByID(ctx, saleID).Return(record, nil)

	err := fx.service.Refund(ctx, saleID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyRefunded)
}
