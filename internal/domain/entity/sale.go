package entity

import (
	"fmt"
	"time"

	domainerrors "till/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod labels how a sale was paid. Payments are recorded, not
// processed; no gateway is involved.
type PaymentMethod string

// Supported payment methods.
const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCredit PaymentMethod = "Credit"
	PaymentDebit  PaymentMethod = "Debit"
	PaymentOther  PaymentMethod = "Other"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentDebit, PaymentOther:
		return true
	default:
		return false
	}
}

// SaleStatus is the durable state of a committed sale.
type SaleStatus string

// A sale is Completed once committed and Refunded after a refund.
// Refunded is terminal.
const (
	StatusCompleted SaleStatus = "Completed"
	StatusRefunded  SaleStatus = "Refunded"
)

// TaxRate is the flat sales tax applied after the discount.
var TaxRate = decimal.NewFromFloat(0.10)

// currencyScale is the number of decimal places monetary amounts are
// rounded to.
const currencyScale = 2

// LineItem is one product entry in a sale. The unit price is frozen at
// the moment the item enters the cart and does not track later catalog
// price changes.
type LineItem struct {
	ProductID   uuid.UUID       // The product this line refers to.
	ProductName string          // Name snapshot for receipts.
	UnitPrice   decimal.Decimal // Price snapshot captured at add time.
	Quantity    int             // Units sold. At least 1.
}

// Subtotal returns unit price times quantity for this line.
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Sale is the in-progress cart a cashier is building, and the source of
// every monetary computation. All derived values are pure functions of
// the current line items, recomputed on demand and never cached, so they
// cannot drift from cart contents.
//
// A Sale is owned by a single cashier session; it is not safe for
// concurrent mutation.
type Sale struct {
	ID            uuid.UUID       // Assigned at persist time; uuid.Nil while the sale is open.
	Customer      *Customer       // Optional loyalty customer. Nil for walk-in sales.
	CashierID     uuid.UUID       // Staff member operating the till.
	Items         []LineItem      // Line items in insertion order, one per product.
	PaymentMethod PaymentMethod   // How the sale is being paid.
	CashTendered  decimal.Decimal // Cash handed over; only meaningful for cash payments.
	Status        SaleStatus      // Completed once committed.
	CreatedAt     time.Time       // When the sale was opened.
}

// NewSale opens an in-progress sale for the given cashier and optional
// customer.
func NewSale(cashierID uuid.UUID, customer *Customer, method PaymentMethod) *Sale {
	if method == "" {
		method = PaymentCash
	}

	return &Sale{
		Customer:      customer,
		CashierID:     cashierID,
		PaymentMethod: method,
		Status:        StatusCompleted,
		CreatedAt:     time.Now(),
	}
}

// AddItem puts qty units of product into the cart, freezing the current
// catalog price. If a line for the product already exists its quantity is
// incremented instead of appending a duplicate row. No stock check happens
// here; availability is the engine's concern.
func (s *Sale) AddItem(product *Product, qty int) error {
	if qty <= 0 {
		return domainerrors.ErrInvalidQuantity.WithDetails(
			fmt.Sprintf("product %s: quantity %d", product.ID, qty))
	}

	for i := range s.Items {
		if s.Items[i].ProductID == product.ID {
			s.Items[i].Quantity += qty

			return nil
		}
	}

	s.Items = append(s.Items, LineItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    qty,
	})

	return nil
}

// RemoveItem drops every line matching the product id. Removing an absent
// product is a no-op, not an error.
func (s *Sale) RemoveItem(productID uuid.UUID) {
	kept := s.Items[:0]
	for _, item := range s.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.Items = kept
}

// Clear empties the cart.
func (s *Sale) Clear() {
	s.Items = nil
}

// Quantity returns the units of the given product currently in the cart.
func (s *Sale) Quantity(productID uuid.UUID) int {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			return s.Items[i].Quantity
		}
	}

	return 0
}

// Subtotal is the sum of line subtotals before discount and tax.
func (s *Sale) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range s.Items {
		sum = sum.Add(s.Items[i].Subtotal())
	}

	return sum
}

// Discount is the tier discount applied to the subtotal. Walk-in sales
// get no discount.
func (s *Sale) Discount() decimal.Decimal {
	if s.Customer == nil {
		return decimal.Zero
	}

	return s.Subtotal().Mul(s.Customer.Tier.DiscountRate()).Round(currencyScale)
}

// Tax is the flat-rate tax on the discounted subtotal.
func (s *Sale) Tax() decimal.Decimal {
	return s.Subtotal().Sub(s.Discount()).Mul(TaxRate).Round(currencyScale)
}

// Total is subtotal minus discount plus tax.
func (s *Sale) Total() decimal.Decimal {
	return s.Subtotal().Sub(s.Discount()).Add(s.Tax())
}

// Change is what the cashier hands back on a cash sale: the tendered cash
// over the total, floored at zero. Non-cash payments give no change.
func (s *Sale) Change() decimal.Decimal {
	if s.PaymentMethod != PaymentCash {
		return decimal.Zero
	}

	change := s.CashTendered.Sub(s.Total())
	if change.IsNegative() {
		return decimal.Zero
	}

	return change
}

// LoyaltyPoints is the points earned by this sale: one point per whole
// currency unit of the total, regardless of tier.
func (s *Sale) LoyaltyPoints() int {
	return int(s.Total().Floor().IntPart())
}

// SaleRecord is the durable form of a committed sale as reconstructed
// from storage. Unlike Sale, its monetary fields are the values computed
// and persisted at commit time; they are not recomputed, so later catalog
// or tier changes cannot rewrite history.
type SaleRecord struct {
	ID            uuid.UUID
	CustomerID    *uuid.UUID
	CashierID     uuid.UUID
	Items         []LineItem
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	CashTendered  decimal.Decimal
	Change        decimal.Decimal
	Status        SaleStatus
	CreatedAt     time.Time
}
