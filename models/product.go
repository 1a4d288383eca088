package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryFruits     Category = "Fruits"
	CategoryVegetables Category = "Vegetables"
	CategoryDairy      Category = "Dairy"
	CategoryMeat       Category = "Meat"
	CategoryGrains     Category = "Grains"
	CategoryBeverages  Category = "Beverages"
	CategorySnacks     Category = "Snacks"
	CategoryOthers     Category = "Others"
)

var Categories = []Category{
	CategoryFruits, CategoryVegetables, CategoryDairy, CategoryMeat,
	CategoryGrains, CategoryBeverages, CategorySnacks, CategoryOthers,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type Unit string

const (
	UnitKg      Unit = "kg"
	UnitGrams   Unit = "grams"
	UnitLiters  Unit = "liters"
	UnitPieces  Unit = "pieces"
	UnitPackets Unit = "packets"
)

var Units = []Unit{UnitKg, UnitGrams, UnitLiters, UnitPieces, UnitPackets}

func (u Unit) Valid() bool {
	for _, v := range Units {
		if u == v {
			return true
		}
	}
	return false
}

type Availability string

const (
	InStock      Availability = "In Stock"
	LimitedStock Availability = "Limited Stock"
	OutOfStock   Availability = "Out of Stock"
)

// LimitedStockThreshold is the stock level at or below which a product is
// reported as Limited Stock.
const LimitedStockThreshold = 5

// AvailabilityForStock derives availability from a stock level. Availability
// is never stored independently of stock; every write that touches stock
// recomputes it through this function (or its pipeline equivalent in the
// repository).
func AvailabilityForStock(stock int) Availability {
	switch {
	case stock == 0:
		return OutOfStock
	case stock <= LimitedStockThreshold:
		return LimitedStock
	default:
		return InStock
	}
}

type Product struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	Price        float64            `json:"price" bson:"price"`
	Category     Category           `json:"category" bson:"category"`
	Image        string             `json:"image" bson:"image"`
	Stock        int                `json:"stock" bson:"stock"`
	Unit         Unit               `json:"unit" bson:"unit"`
	Availability Availability       `json:"availability" bson:"availability"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
