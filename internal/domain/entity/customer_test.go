package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTier_DiscountRate(t *testing.T) {
	assert.True(t, TierRegular.DiscountRate().IsZero())
	assert.True(t, TierStudent.DiscountRate().Equal(decimal.RequireFromString("0.1")))
	assert.True(t, TierVIP.DiscountRate().Equal(decimal.RequireFromString("0.15")))
	assert.True(t, Tier("Unknown").DiscountRate().IsZero())
}

func TestTier_Valid(t *testing.T) {
	assert.True(t, TierRegular.Valid())
	assert.True(t, TierStudent.Valid())
	assert.True(t, TierVIP.Valid())
	assert.False(t, Tier("Gold").Valid())
}

func TestCustomer_CreditPoints_PromotesAtThreshold(t *testing.T) {
	customer := &Customer{ID: uuid.New(), Name: "Pat", Tier: TierRegular, LoyaltyPoints: 95}

	customer.CreditPoints(4)
	assert.Equal(t, 99, customer.LoyaltyPoints)
	assert.Equal(t, TierRegular, customer.Tier)

	customer.CreditPoints(1)
	assert.Equal(t, 100, customer.LoyaltyPoints)
	assert.Equal(t, TierVIP, customer.Tier)
}

func TestCustomer_CreditPoints_StudentPromotesToVIP(t *testing.T) {
	customer := &Customer{ID: uuid.New(), Name: "Sam", Tier: TierStudent, LoyaltyPoints: 0}

	customer.CreditPoints(150)
	assert.Equal(t, TierVIP, customer.Tier)
}

func TestCustomer_CreditPoints_IgnoresNonPositive(t *testing.T) {
	customer := &Customer{ID: uuid.New(), Name: "Pat", Tier: TierRegular, LoyaltyPoints: 10}

	customer.CreditPoints(0)
	customer.CreditPoints(-5)
	assert.Equal(t, 10, customer.LoyaltyPoints)
}

func TestCustomer_CreditPoints_NeverDemotes(t *testing.T) {
	customer := &Customer{ID: uuid.New(), Name: "Vera", Tier: TierVIP, LoyaltyPoints: 120}

	customer.CreditPoints(1)
	assert.Equal(t, TierVIP, customer.Tier)
}
