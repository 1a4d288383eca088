package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line in a cart: a product reference and a quantity.
// A cart holds at most one line per product; adding an already-present
// product merges into the existing line.
type CartItem struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Cart is the stored form of a user's cart: one document per user.
type Cart struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Items     []CartItem         `json:"items" bson:"items"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// PopulatedCartItem is a cart line joined with its current product document
// and a subtotal computed from the current price.
type PopulatedCartItem struct {
	ID       primitive.ObjectID `json:"_id"`
	Product  Product            `json:"product"`
	Quantity int                `json:"quantity"`
	Subtotal float64            `json:"subtotal"`
}

// PopulatedCart is the response form of a cart. TotalAmount floats with
// catalog price changes until checkout; only the order snapshot freezes it.
type PopulatedCart struct {
	UserID      string              `json:"user_id"`
	Items       []PopulatedCartItem `json:"items"`
	TotalAmount float64             `json:"total_amount"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
