package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tier classifies a customer for discount purposes.
type Tier string

// Customer tiers. The discount table is fixed business policy.
const (
	TierRegular Tier = "Regular"
	TierStudent Tier = "Student"
	TierVIP     Tier = "VIP"
)

// vipThreshold is the loyalty point balance at which a customer is
// automatically promoted to VIP. Promotion is one-way; there is no
// auto-demotion even if a later policy allows spending points.
const vipThreshold = 100

var tierDiscountRates = map[Tier]decimal.Decimal{
	TierRegular: decimal.Zero,
	TierStudent: decimal.NewFromFloat(0.10),
	TierVIP:     decimal.NewFromFloat(0.15),
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	_, ok := tierDiscountRates[t]

	return ok
}

// DiscountRate returns the discount rate for the tier, zero for unknown tiers.
func (t Tier) DiscountRate() decimal.Decimal {
	return tierDiscountRates[t]
}

// Customer is a loyalty program member. Walk-in sales carry no customer
// and earn no points.
type Customer struct {
	ID            uuid.UUID // The unique identifier for the customer.
	Name          string    // Display name.
	Email         string    // Optional contact email.
	Phone         string    // Optional contact phone.
	Tier          Tier      // Classification driving the discount rate.
	LoyaltyPoints int       // Accumulated points. Never negative.
	CreatedAt     time.Time // Timestamp of when this customer was registered.
	UpdatedAt     time.Time // Timestamp of the last modification.
}

// CreditPoints adds earned loyalty points to the balance and applies the
// tier auto-promotion rule: once the balance reaches the VIP threshold the
// customer becomes VIP and stays VIP.
func (c *Customer) CreditPoints(points int) {
	if points <= 0 {
		return
	}

	c.LoyaltyPoints += points
	if c.LoyaltyPoints >= vipThreshold && c.Tier != TierVIP {
		c.Tier = TierVIP
	}
}
