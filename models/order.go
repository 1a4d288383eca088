package models

import (
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusConfirmed  OrderStatus = "Confirmed"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusProcessing,
	StatusShipped, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in status s may still be cancelled.
// Cancelled is reachable only from Pending and Confirmed; Delivered and
// Cancelled are terminal.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "Online"
	PaymentCard   PaymentMethod = "Card"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCOD || p == PaymentOnline || p == PaymentCard
}

// OrderItem is an immutable snapshot of a cart line at order time. Name and
// price are captured here so later catalog edits never alter placed orders.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

type ShippingAddress struct {
	Street  string `json:"street" bson:"street" binding:"required"`
	City    string `json:"city" bson:"city" binding:"required"`
	State   string `json:"state" bson:"state" binding:"required"`
	Pincode string `json:"pincode" bson:"pincode" binding:"required"`
	Phone   string `json:"phone" bson:"phone" binding:"required"`
}

type TrackingUpdate struct {
	Status      string    `json:"status" bson:"status"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
	Description string    `json:"description" bson:"description"`
}

// TrackingInfo holds the current tracking label and an append-only sequence
// of status updates.
type TrackingInfo struct {
	Status  string           `json:"status" bson:"status"`
	Updates []TrackingUpdate `json:"updates" bson:"updates"`
}

type Order struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderID         string             `json:"order_id" bson:"order_id"`
	UserID          string             `json:"user_id" bson:"user_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	TotalAmount     float64            `json:"total_amount" bson:"total_amount"`
	ShippingAddress ShippingAddress    `json:"shipping_address" bson:"shipping_address"`
	PaymentMethod   PaymentMethod      `json:"payment_method" bson:"payment_method"`
	OrderStatus     OrderStatus        `json:"order_status" bson:"order_status"`
	TrackingInfo    TrackingInfo       `json:"tracking_info" bson:"tracking_info"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewOrderID generates a human-readable order identifier, e.g. ORD1756700000000042.
// Uniqueness is enforced by the orders collection index.
func NewOrderID() string {
	return fmt.Sprintf("ORD%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
