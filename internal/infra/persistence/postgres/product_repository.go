// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"till/internal/domain/entity"
	domainerrors "till/internal/domain/errors"
	"till/internal/domain/repository"
	"till/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// Search lists products matching a name/description term and/or a category.
// Empty arguments match everything.
func (repo *productRepository) Search(ctx context.Context, term, category string) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if term != "" {
		pattern := "%" + term + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var productModels []*model.ProductModel
	if err := query.Order("name ASC").Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// LowStock lists products whose stock is at or below their threshold, lowest stock first.
func (repo *productRepository) LowStock(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("stock_quantity <= low_stock_threshold").
		Order("stock_quantity ASC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list low stock products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// Categories lists the distinct non-empty product categories.
func (repo *productRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("category <> ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	// Update the entity with generated values
	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":                productM.Name,
			"description":         productM.Description,
			"category":            productM.Category,
			"price":               productM.Price,
			"stock_quantity":      productM.StockQuantity,
			"low_stock_threshold": productM.LowStockThreshold,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// AdjustStock applies a signed delta to the stock quantity as a single
// conditional UPDATE. The WHERE guard makes the non-negative invariant
// hold even under concurrent checkouts: the losing transaction matches
// zero rows instead of writing a negative quantity.
func (repo *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return repository.ErrStockConflict
		}

		return errors.Wrap(result.Error, "failed to adjust stock")
	}

	if result.RowsAffected == 0 {
		// Either the product does not exist or the delta would go negative.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.ProductModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to adjust stock")
		}
		if count == 0 {
			return repository.ErrProductNotFound
		}

		return repository.ErrStockConflict
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:                data.ID,
		Name:              data.Name,
		Description:       data.Description,
		Category:          data.Category,
		Price:             data.Price,
		StockQuantity:     data.StockQuantity,
		LowStockThreshold: data.LowStockThreshold,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:                data.ID,
		Name:              data.Name,
		Description:       data.Description,
		Category:          data.Category,
		Price:             data.Price,
		StockQuantity:     data.StockQuantity,
		LowStockThreshold: data.LowStockThreshold,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
