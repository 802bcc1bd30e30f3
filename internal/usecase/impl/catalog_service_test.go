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

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service     usecase.CatalogUsecase
	txManager   *mockRepo.MockTransactionManager
	productRepo *mockRepo.MockProductRepository
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	factory.EXPECT().ProductRepo().Return(productRepo).Maybe()
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		}).
		Maybe()

	service := NewCatalogService(txManager, logger)

	return catalogServiceFixtures{
		service:     service,
		txManager:   txManager,
		productRepo: productRepo,
	}
}

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	input := &usecase.CreateProductInput{
		Name:              "  Espresso  ",
		Category:          "Drinks",
		Price:             decimal.RequireFromString("3.20"),
		StockQuantity:     40,
		LowStockThreshold: 5,
	}

	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		RunAndReturn(func(_ context.Context, product *entity.Product) error {
			product.ID = uuid.New()
			return nil
		})

	product, err := fx.service.CreateProduct(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "Espresso", product.Name)
	assert.NotEqual(t, uuid.Nil, product.ID)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	_, err := fx.service.CreateProduct(ctx, &usecase.CreateProductInput{
		Name:  "  ",
		Price: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProduct)

	_, err = fx.service.CreateProduct(ctx, &usecase.CreateProductInput{
		Name:  "Espresso",
		Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProduct)

	_, err = fx.service.CreateProduct(ctx, &usecase.CreateProductInput{
		Name:          "Espresso",
		Price:         decimal.NewFromInt(1),
		StockQuantity: -3,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProduct)
}

func TestCatalogService_UpdateProduct_PatchesOnlyGivenFields(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	existing := &entity.Product{
		ID:                uuid.New(),
		Name:              "Espresso",
		Category:          "Drinks",
		Price:             decimal.RequireFromString("3.20"),
		StockQuantity:     40,
		LowStockThreshold: 5,
	}

	newPrice := decimal.RequireFromString("3.50")

	fx.productRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)
	fx.productRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Product")).
		RunAndReturn(func(_ context.Context, product *entity.Product) error {
			assert.Equal(t, "Espresso", product.Name)
			assert.True(t, product.Price.Equal(newPrice))
			assert.Equal(t, 40, product.StockQuantity)
			return nil
		})

	err := fx.service.UpdateProduct(ctx, &usecase.UpdateProductInput{
		ID:    existing.ID,
		Price: &newPrice,
	})
	require.NoError(t, err)
}

func TestCatalogService_UpdateProduct_UnknownProduct(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.productRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrProductNotFound)

	err := fx.service.UpdateProduct(ctx, &usecase.UpdateProductInput{ID: id})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_GetProduct(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	existing := &entity.Product{ID: uuid.New(), Name: "Espresso"}

	fx.productRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)

	product, err := fx.service.GetProduct(ctx, existing.ID)
	require.NoError(t, err)
	assert.Same(t, existing, product)
}

func TestCatalogService_SearchProducts(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	results := []*entity.Product{{ID: uuid.New(), Name: "Espresso"}}

	fx.productRepo.EXPECT().Search(ctx, "esp", "Drinks").Return(results, nil)

	products, err := fx.service.SearchProducts(ctx, "esp", "Drinks")
	require.NoError(t, err)
	assert.Equal(t, results, products)
}

func TestCatalogService_LowStockProducts(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	results := []*entity.Product{{ID: uuid.New(), Name: "Milk", StockQuantity: 1, LowStockThreshold: 5}}

	fx.productRepo.EXPECT().LowStock(ctx).Return(results, nil)

	products, err := fx.service.LowStockProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, results, products)
}

func TestCatalogService_Categories(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().Categories(ctx).Return([]string{"Drinks", "Food"}, nil)

	categories, err := fx.service.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Drinks", "Food"}, categories)
}

func TestCatalogService_RestockProduct(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	id := uuid.New()

	err := fx.service.RestockProduct(ctx, id, 0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)

	fx.productRepo.EXPECT().AdjustStock(ctx, id, 12).Return(nil)
	require.NoError(t, fx.service.RestockProduct(ctx, id, 12))
}

func TestCatalogService_RestockProduct_UnknownProduct(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.productRepo.EXPECT().AdjustStock(ctx, id, 3).Return(repository.ErrProductNotFound)

	err := fx.service.RestockProduct(ctx, id, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
