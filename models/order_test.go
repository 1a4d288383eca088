package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusCancellable(t *testing.T) {
	assert.True(t, StatusPending.Cancellable())
	assert.True(t, StatusConfirmed.Cancellable())

	for _, s := range []OrderStatus{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.False(t, s.Cancellable(), "status %s must not be cancellable", s)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("Returned").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentCOD.Valid())
	assert.True(t, PaymentOnline.Valid())
	assert.True(t, PaymentCard.Valid())
	assert.False(t, PaymentMethod("Crypto").Valid())
}

func TestNewOrderID(t *testing.T) {
	id := NewOrderID()
	assert.True(t, strings.HasPrefix(id, "ORD"))
	// ORD + 13-digit millisecond timestamp + 3 random digits
	assert.Len(t, id, 19)
}
