// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"till/internal/domain/entity"
	domainerrors "till/internal/domain/errors"
	"till/internal/domain/repository"
	"till/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// saleService implements the SaleUsecase interface. It holds the one
// in-progress sale for its till; the mutex gives single-writer discipline
// over the cart, while committed sales live only in the database.
type saleService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger

	mu      sync.Mutex
	current *entity.Sale
}

// NewSaleService is the constructor for saleService.
func NewSaleService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.SaleUsecase {
	return &saleService{
		txManager: txManager,
		logger:    logger,
	}
}

// StartSale opens a new in-progress sale, discarding any sale already open.
func (srv *saleService) StartSale(ctx context.Context, input *usecase.StartSaleInput) (*entity.Sale, error) {
	if input.PaymentMethod != "" && !input.PaymentMethod.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	var customer *entity.Customer
	if input.CustomerID != nil {
		err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			found, err := repoFactory.CustomerRepo().FindByID(ctx, *input.CustomerID)
			if err != nil {
				if errors.Is(err, repository.ErrCustomerNotFound) {
					return domainerrors.ErrCustomerNotFound.WithDetails(
						fmt.Sprintf("customer %s", *input.CustomerID))
				}

				return errors.Wrap(err, "failed to find customer")
			}
			customer = found

			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to start sale")
		}
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.current != nil {
		// Replacing an open sale discards it without saving.
		srv.logger.Info("Discarding in-progress sale", "items", len(srv.current.Items))
	}

	srv.current = entity.NewSale(input.CashierID, customer, input.PaymentMethod)
	srv.logger.Debug("Started sale", "cashierID", input.CashierID, "method", srv.current.PaymentMethod)

	return srv.current, nil
}

// AddItemToCart pre-checks availability against current catalog stock and
// adds the line. The check is a point-in-time read, not a reservation;
// checkout re-validates before committing.
func (srv *saleService) AddItemToCart(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domainerrors.ErrInvalidQuantity.WithDetails(
			fmt.Sprintf("product %s: quantity %d", productID, quantity))
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.current == nil {
		return domainerrors.ErrNoActiveSale
	}

	var product *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WithDetails(
					fmt.Sprintf("product %s", productID))
			}

			return errors.Wrap(err, "failed to find product")
		}
		product = found

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to add item")
	}

	if !product.HasStock(quantity) {
		return domainerrors.ErrInsufficientStock.WithDetails(
			fmt.Sprintf("product %s (%s): requested %d, available %d",
				product.Name, product.ID, quantity, product.StockQuantity))
	}

	if err := srv.current.AddItem(product, quantity); err != nil {
		return err
	}
	srv.logger.Debug("Added item to cart", "productID", productID, "quantity", quantity)

	return nil
}

// RemoveItemFromCart drops the product's line from the open cart.
// Removing an absent product is a no-op.
func (srv *saleService) RemoveItemFromCart(_ context.Context, productID uuid.UUID) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.current == nil {
		return domainerrors.ErrNoActiveSale
	}

	srv.current.RemoveItem(productID)

	return nil
}

// Checkout is the commit path. Gates run in order: active sale, non-empty
// cart, sufficient cash, then stock re-validation. The persist, the stock
// decrements, and the loyalty credit all execute inside one database
// transaction, so a failure at any point rolls the whole commit back and
// leaves catalog and loyalty state untouched.
func (srv *saleService) Checkout(ctx context.Context, cashTendered decimal.Decimal) (*usecase.CheckoutOutput, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	sale := srv.current
	if sale == nil {
		return nil, domainerrors.ErrNoActiveSale
	}
	if len(sale.Items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	if sale.PaymentMethod == entity.PaymentCash {
		sale.CashTendered = cashTendered
		if total := sale.Total(); cashTendered.LessThan(total) {
			return nil, domainerrors.ErrInsufficientPayment.WithDetails(
				fmt.Sprintf("total %s, tendered %s", total, cashTendered))
		}
	}

	var saleID uuid.UUID
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		// Stock may have moved since the add-time pre-check; re-validate
		// every line against current availability before writing anything.
		for i := range sale.Items {
			item := &sale.Items[i]
			product, err := productRepo.FindByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WithDetails(
						fmt.Sprintf("product %s", item.ProductID))
				}

				return errors.Wrap(err, "failed to re-validate stock")
			}
			if !product.HasStock(item.Quantity) {
				return domainerrors.ErrInsufficientStock.WithDetails(
					fmt.Sprintf("product %s (%s): requested %d, available %d",
						product.Name, product.ID, item.Quantity, product.StockQuantity))
			}
		}

		id, err := repoFactory.SaleRepo().Create(ctx, sale)
		if err != nil {
			return errors.Wrap(err, "failed to persist sale")
		}
		saleID = id

		for i := range sale.Items {
			item := &sale.Items[i]
			if err := productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					return domainerrors.ErrInsufficientStock.WithDetails(
						fmt.Sprintf("product %s: stock changed during checkout", item.ProductID))
				}

				return errors.Wrap(err, "failed to decrement stock")
			}
		}

		if sale.Customer != nil {
			if points := sale.LoyaltyPoints(); points > 0 {
				customerRepo := repoFactory.CustomerRepo()

				customer, err := customerRepo.FindByID(ctx, sale.Customer.ID)
				if err != nil {
					return errors.Wrap(err, "failed to find customer for loyalty credit")
				}

				customer.CreditPoints(points)
				if err := customerRepo.Update(ctx, customer); err != nil {
					return errors.Wrap(err, "failed to credit loyalty points")
				}
			}
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Checkout failed", "error", err)

		return nil, errors.Wrap(err, "checkout failed")
	}

	sale.ID = saleID
	output := &usecase.CheckoutOutput{
		SaleID:        saleID,
		Subtotal:      sale.Subtotal(),
		Discount:      sale.Discount(),
		Tax:           sale.Tax(),
		Total:         sale.Total(),
		Change:        sale.Change(),
		LoyaltyPoints: sale.LoyaltyPoints(),
	}

	// The sale is durable now; the till is ready for the next customer.
	srv.current = nil
	srv.logger.Info("Sale committed", "saleID", saleID, "total", output.Total)

	return output, nil
}

// CancelSale discards the in-progress sale. It always succeeds, even when
// no sale is open.
func (srv *saleService) CancelSale() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.current = nil
}

// CurrentSale returns the open sale, or nil when none is in progress.
func (srv *saleService) CurrentSale() *entity.Sale {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.current
}

// GetSale reconstructs a committed sale from storage. An unknown id is
// not an error; callers receive nil.
func (srv *saleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleRecord, error) {
	var record *entity.SaleRecord

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.SaleRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrSaleNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to load sale")
		}
		record = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sale")
	}

	return record, nil
}

// Refund restores stock for every persisted line item and flips the sale's
// status to Refunded, inside one database transaction. Loyalty points
// credited at checkout are deliberately left alone.
func (srv *saleService) Refund(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		saleRepo := repoFactory.SaleRepo()

		record, err := saleRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrSaleNotFound) {
				return domainerrors.ErrSaleNotFound.WithDetails(fmt.Sprintf("sale %s", id))
			}

			return errors.Wrap(err, "failed to load sale")
		}

		if record.Status == entity.StatusRefunded {
			return domainerrors.ErrAlreadyRefunded.WithDetails(fmt.Sprintf("sale %s", id))
		}

		productRepo := repoFactory.ProductRepo()
		for i := range record.Items {
			item := &record.Items[i]
			if err := productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return errors.Wrap(err, "failed to restore stock")
			}
		}

		if err := saleRepo.UpdateStatus(ctx, id, entity.StatusRefunded); err != nil {
			return errors.Wrap(err, "failed to update sale status")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Refund failed", "saleID", id, "error", err)

		return errors.Wrap(err, "refund failed")
	}
	srv.logger.Info("Sale refunded", "saleID", id)

	return nil
}
