package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type ProductModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Description       string          `gorm:"type:text"`
	Category          string          `gorm:"type:varchar(50);index"`
	Price             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StockQuantity     int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:5"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
