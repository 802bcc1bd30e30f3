package entity

import (
	"testing"

	domainerrors "till/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(name string, price string, stock int) *Product {
	return &Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
}

func TestSale_AddItem_MergesDuplicateLines(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	coffee := newTestProduct("Coffee", "4.50", 50)

	require.NoError(t, sale.AddItem(coffee, 2))
	require.NoError(t, sale.AddItem(coffee, 3))

	require.Len(t, sale.Items, 1)
	assert.Equal(t, 5, sale.Quantity(coffee.ID))
	assert.True(t, sale.Subtotal().Equal(decimal.RequireFromString("22.50")))
}

func TestSale_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	coffee := newTestProduct("Coffee", "4.50", 50)

	err := sale.AddItem(coffee, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)

	err = sale.AddItem(coffee, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
	assert.Empty(t, sale.Items)
}

func TestSale_AddItem_FreezesUnitPrice(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	coffee := newTestProduct("Coffee", "4.50", 50)

	require.NoError(t, sale.AddItem(coffee, 1))

	// A later catalog price change must not affect the line already in the cart.
	coffee.Price = decimal.RequireFromString("9.99")

	assert.True(t, sale.Subtotal().Equal(decimal.RequireFromString("4.50")))
}

func TestSale_RemoveItem(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	coffee := newTestProduct("Coffee", "4.50", 50)
	muffin := newTestProduct("Muffin", "3.00", 20)

	require.NoError(t, sale.AddItem(coffee, 2))
	require.NoError(t, sale.AddItem(muffin, 1))

	sale.RemoveItem(coffee.ID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, muffin.ID, sale.Items[0].ProductID)

	// Removing an absent product is a no-op.
	sale.RemoveItem(uuid.New())
	assert.Len(t, sale.Items, 1)
}

func TestSale_Clear(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	require.NoError(t, sale.AddItem(newTestProduct("Coffee", "4.50", 50), 2))

	sale.Clear()
	assert.Empty(t, sale.Items)
	assert.True(t, sale.Subtotal().IsZero())
}

func TestSale_Totals_WalkIn(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	require.NoError(t, sale.AddItem(newTestProduct("Coffee", "4.50", 50), 2))

	// No customer, no discount. Tax is 10% of the subtotal.
	assert.True(t, sale.Subtotal().Equal(decimal.RequireFromString("9.00")))
	assert.True(t, sale.Discount().IsZero())
	assert.True(t, sale.Tax().Equal(decimal.RequireFromString("0.90")))
	assert.True(t, sale.Total().Equal(decimal.RequireFromString("9.90")))
}

func TestSale_Totals_VIPCustomer(t *testing.T) {
	vip := &Customer{ID: uuid.New(), Name: "Vera", Tier: TierVIP}
	sale := NewSale(uuid.New(), vip, PaymentCash)
	require.NoError(t, sale.AddItem(newTestProduct("Beans 1kg", "100.00", 10), 1))

	// 100 subtotal, 15% VIP discount, 10% tax on the discounted amount.
	assert.True(t, sale.Subtotal().Equal(decimal.RequireFromString("100.00")))
	assert.True(t, sale.Discount().Equal(decimal.RequireFromString("15.00")))
	assert.True(t, sale.Tax().Equal(decimal.RequireFromString("8.50")))
	assert.True(t, sale.Total().Equal(decimal.RequireFromString("93.50")))
	assert.Equal(t, 93, sale.LoyaltyPoints())
}

func TestSale_Totals_StudentCustomer(t *testing.T) {
	student := &Customer{ID: uuid.New(), Name: "Sam", Tier: TierStudent}
	sale := NewSale(uuid.New(), student, PaymentCash)
	require.NoError(t, sale.AddItem(newTestProduct("Sandwich", "8.00", 15), 1))

	assert.True(t, sale.Discount().Equal(decimal.RequireFromString("0.80")))
	assert.True(t, sale.Tax().Equal(decimal.RequireFromString("0.72")))
	assert.True(t, sale.Total().Equal(decimal.RequireFromString("7.92")))
}

func TestSale_Totals_RecomputedAfterMutation(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	coffee := newTestProduct("Coffee", "4.50", 50)
	muffin := newTestProduct("Muffin", "3.00", 20)

	require.NoError(t, sale.AddItem(coffee, 2))
	require.NoError(t, sale.AddItem(muffin, 1))
	require.True(t, sale.Subtotal().Equal(decimal.RequireFromString("12.00")))

	sale.RemoveItem(muffin.ID)
	assert.True(t, sale.Subtotal().Equal(decimal.RequireFromString("9.00")))
}

func TestSale_Change_CashOnly(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	require.NoError(t, sale.AddItem(newTestProduct("Coffee", "4.50", 50), 2))
	sale.CashTendered = decimal.RequireFromString("20.00")

	// Total is 9.90, change 10.10.
	assert.True(t, sale.Change().Equal(decimal.RequireFromString("10.10")))

	sale.PaymentMethod = PaymentCredit
	assert.True(t, sale.Change().IsZero())
}

func TestSale_Change_NeverNegative(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	require.NoError(t, sale.AddItem(newTestProduct("Coffee", "4.50", 50), 2))
	sale.CashTendered = decimal.RequireFromString("5.00")

	assert.True(t, sale.Change().IsZero())
}

func TestSale_LoyaltyPoints_FloorOfTotal(t *testing.T) {
	sale := NewSale(uuid.New(), nil, PaymentCash)
	require.NoError(t, sale.AddItem(newTestProduct("Coffee", "4.50", 50), 2))

	// Total 9.90 earns 9 points.
	assert.Equal(t, 9, sale.LoyaltyPoints())
}

func TestNewSale_DefaultsToCash(t *testing.T) {
	sale := NewSale(uuid.New(), nil, "")

	assert.Equal(t, PaymentCash, sale.PaymentMethod)
	assert.Equal(t, StatusCompleted, sale.Status)
	assert.Equal(t, uuid.Nil, sale.ID)
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentCredit.Valid())
	assert.True(t, PaymentDebit.Valid())
	assert.True(t, PaymentOther.Valid())
	assert.False(t, PaymentMethod("Barter").Valid())
}
