package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_IsLowStock(t *testing.T) {
	product := &Product{StockQuantity: 5, LowStockThreshold: 5}
	assert.True(t, product.IsLowStock())

	product.StockQuantity = 6
	assert.False(t, product.IsLowStock())

	product.StockQuantity = 0
	assert.True(t, product.IsLowStock())
}

func TestProduct_HasStock(t *testing.T) {
	product := &Product{StockQuantity: 3}

	assert.True(t, product.HasStock(3))
	assert.True(t, product.HasStock(1))
	assert.False(t, product.HasStock(4))
}
