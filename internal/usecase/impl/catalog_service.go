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

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateProduct validates and persists a new catalog product.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateProductFields(input.Name, input.Price.IsNegative(), input.StockQuantity); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:              strings.TrimSpace(input.Name),
		Description:       input.Description,
		Category:          input.Category,
		Price:             input.Price,
		StockQuantity:     input.StockQuantity,
		LowStockThreshold: input.LowStockThreshold,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProductRepo().Create(ctx, product)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}
	srv.logger.Info("Product created", "productID", product.ID, "name", product.Name)

	return product, nil
}

// UpdateProduct edits an existing product. Nil input fields are left unchanged.
func (srv *catalogService) UpdateProduct(ctx context.Context, input *usecase.UpdateProductInput) error {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return domainerrors.ErrInvalidProduct.WithDetails("product name is required")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return domainerrors.ErrInvalidProduct.WithDetails("price cannot be negative")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WithDetails(fmt.Sprintf("product %s", input.ID))
			}

			return errors.Wrap(err, "failed to find product")
		}

		if input.Name != nil {
			product.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Category != nil {
			product.Category = *input.Category
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.LowStockThreshold != nil {
			product.LowStockThreshold = *input.LowStockThreshold
		}

		return errors.Wrap(productRepo.Update(ctx, product), "failed to update product")
	})
	if err != nil {
		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

// GetProduct retrieves a single product by id.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WithDetails(fmt.Sprintf("product %s", id))
			}

			return errors.Wrap(err, "failed to find product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// SearchProducts lists products matching a term and/or category.
func (srv *catalogService) SearchProducts(ctx context.Context, term, category string) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().Search(ctx, term, category)
		if err != nil {
			return errors.Wrap(err, "failed to search products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return products, nil
}

// LowStockProducts lists products at or below their low-stock threshold.
func (srv *catalogService) LowStockProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().LowStock(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list low-stock products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list low-stock products")
	}

	return products, nil
}

// Categories lists the distinct product categories.
func (srv *catalogService) Categories(ctx context.Context) ([]string, error) {
	var categories []string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().Categories(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list categories")
		}
		categories = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// RestockProduct adds stock outside the sale path.
func (srv *catalogService) RestockProduct(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domainerrors.ErrInvalidQuantity.WithDetails(
			fmt.Sprintf("restock quantity %d", quantity))
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().AdjustStock(ctx, id, quantity); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WithDetails(fmt.Sprintf("product %s", id))
			}

			return errors.Wrap(err, "failed to adjust stock")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to restock product")
	}
	srv.logger.Info("Product restocked", "productID", id, "quantity", quantity)

	return nil
}

// validateProductFields applies the catalog's creation rules.
func validateProductFields(name string, negativePrice bool, stock int) error {
	if strings.TrimSpace(name) == "" {
		return domainerrors.ErrInvalidProduct.WithDetails("product name is required")
	}
	if negativePrice {
		return domainerrors.ErrInvalidProduct.WithDetails("price cannot be negative")
	}
	if stock < 0 {
		return domainerrors.ErrInvalidProduct.WithDetails("stock quantity cannot be negative")
	}

	return nil
}
