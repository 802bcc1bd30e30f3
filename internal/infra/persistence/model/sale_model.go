package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel mirrors the 'sales' table. Monetary columns hold the values
// computed at commit time; they are never recomputed from line items.
type SaleModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	CashierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	CashTendered  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Change        decimal.Decimal `gorm:"column:change_due;type:numeric(12,2);not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null;default:'Completed'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []SaleItemModel `gorm:"foreignKey:SaleID"`
}

// TableName explicitly sets the table name for GORM.
func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel mirrors the 'sale_items' table. ProductName and UnitPrice
// are snapshots taken when the item entered the cart, so receipts survive
// later catalog edits.
type SaleItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName  string          `gorm:"type:varchar(100);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity     int             `gorm:"not null"`
	LineSubtotal decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SaleItemModel) TableName() string {
	return "sale_items"
}
