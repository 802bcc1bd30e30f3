package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerModel mirrors the 'customers' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type CustomerModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Email         string    `gorm:"type:varchar(255)"`
	Phone         string    `gorm:"type:varchar(50)"`
	Tier          string    `gorm:"type:varchar(20);not null;default:'Regular'"`
	LoyaltyPoints int       `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
