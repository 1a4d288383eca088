package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityForStock(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		want  Availability
	}{
		{"zero stock is out of stock", 0, OutOfStock},
		{"one unit is limited", 1, LimitedStock},
		{"threshold is limited", 5, LimitedStock},
		{"above threshold is in stock", 6, InStock},
		{"large stock is in stock", 1000, InStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AvailabilityForStock(tt.stock))
		})
	}
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryFruits.Valid())
	assert.True(t, CategoryOthers.Valid())
	assert.False(t, Category("Electronics").Valid())
	assert.False(t, Category("").Valid())
}

func TestUnitValid(t *testing.T) {
	assert.True(t, UnitKg.Valid())
	assert.True(t, UnitPackets.Valid())
	assert.False(t, Unit("boxes").Valid())
}
