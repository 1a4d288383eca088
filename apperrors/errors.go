package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Error is an application error carrying its HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Access denied", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Business error types
var (
	ErrEmptyCart         = New(http.StatusBadRequest, "Cart is empty", nil)
	ErrInvalidTransition = New(http.StatusBadRequest, "Order cannot be cancelled", nil)
	ErrInvalidStatus     = New(http.StatusBadRequest, "Invalid order status", nil)
	ErrDuplicateEmail    = New(http.StatusConflict, "Email is already registered", nil)
)

// NotFound returns a 404 error for a missing entity.
func NotFound(entity string) *Error {
	return New(http.StatusNotFound, entity+" not found", nil)
}

// InsufficientStock returns a 400 error naming the product whose stock
// cannot cover the requested quantity.
func InsufficientStock(productName string) *Error {
	return New(http.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s", productName), nil)
}

// PartialFulfillment marks an order that was persisted before one of its
// stock decrements failed. It must never be swallowed: the order exists and
// the catalog no longer matches it.
func PartialFulfillment(orderID, productName string, err error) *Error {
	return New(http.StatusInternalServerError,
		fmt.Sprintf("Order %s created but stock update failed for %s", orderID, productName), err)
}

// StorageUnavailable wraps a transient storage fault.
func StorageUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, "Storage temporarily unavailable", err)
}

// FromStorage converts a storage-layer error into an application error.
// Document-missing errors become 404s; timeouts and connection faults
// become 503s so callers can distinguish transient infrastructure failures.
func FromStorage(err error, entity string) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return NotFound(entity)
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err):
		return StorageUnavailable(err)
	default:
		return New(http.StatusInternalServerError, "Database query error", err)
	}
}

// Respond writes err as a JSON response on the gin context, mapping unknown
// errors to a 500.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = New(http.StatusInternalServerError, "Internal server error", err)
	}
	c.JSON(appErr.Code, gin.H{"message": appErr.Message})
}
