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

// saleRepository implements the repository.SaleRepository interface.
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository is the constructor for saleRepository.
func NewSaleRepository(db *gorm.DB) repository.SaleRepository {
	return &saleRepository{
		db: db,
	}
}

// Create persists the sale header and its line items in one associated
// create. The monetary columns freeze the values the sale computes right
// now; they are never derived from line items again.
func (repo *saleRepository) Create(ctx context.Context, sale *entity.Sale) (uuid.UUID, error) {
	saleM := fromSaleDomain(sale)

	if err := repo.db.WithContext(ctx).Create(saleM).Error; err != nil {
		return uuid.Nil, domainerrors.NewDatabaseExecuteError(err, "failed to create sale")
	}

	return saleM.ID, nil
}

// FindByID reconstructs a committed sale, header plus line items.
func (repo *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleRecord, error) {
	var saleM model.SaleModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&saleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSaleNotFound
		}

		return nil, errors.Wrap(err, "failed to find sale by ID")
	}

	return toSaleRecordDomain(&saleM), nil
}

// UpdateStatus flips the durable status of a committed sale.
func (repo *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SaleStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SaleModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update sale status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSaleNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toSaleRecordDomain converts a GORM SaleModel to a domain SaleRecord.
func toSaleRecordDomain(data *model.SaleModel) *entity.SaleRecord {
	if data == nil {
		return nil
	}

	items := make([]entity.LineItem, 0, len(data.Items))
	for i := range data.Items {
		itemM := &data.Items[i]
		items = append(items, entity.LineItem{
			ProductID:   itemM.ProductID,
			ProductName: itemM.ProductName,
			UnitPrice:   itemM.UnitPrice,
			Quantity:    itemM.Quantity,
		})
	}

	return &entity.SaleRecord{
		ID:            data.ID,
		CustomerID:    data.CustomerID,
		CashierID:     data.CashierID,
		Items:         items,
		Subtotal:      data.Subtotal,
		Discount:      data.Discount,
		Tax:           data.Tax,
		Total:         data.Total,
		PaymentMethod: entity.PaymentMethod(data.PaymentMethod),
		CashTendered:  data.CashTendered,
		Change:        data.Change,
		Status:        entity.SaleStatus(data.Status),
		CreatedAt:     data.CreatedAt,
	}
}

// fromSaleDomain converts an in-progress domain Sale to a GORM SaleModel,
// computing and freezing the monetary columns.
func fromSaleDomain(data *entity.Sale) *model.SaleModel {
	if data == nil {
		return nil
	}

	var customerID *uuid.UUID
	if data.Customer != nil {
		id := data.Customer.ID
		customerID = &id
	}

	items := make([]model.SaleItemModel, 0, len(data.Items))
	for i := range data.Items {
		item := &data.Items[i]
		items = append(items, model.SaleItemModel{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			LineSubtotal: item.Subtotal(),
		})
	}

	return &model.SaleModel{
		CustomerID:    customerID,
		CashierID:     data.CashierID,
		Subtotal:      data.Subtotal(),
		Discount:      data.Discount(),
		Tax:           data.Tax(),
		Total:         data.Total(),
		PaymentMethod: string(data.PaymentMethod),
		CashTendered:  data.CashTendered,
		Change:        data.Change(),
		Status:        string(data.Status),
		Items:         items,
	}
}
