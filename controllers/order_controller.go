package controllers

import (
	"net/http"

	"github.com/DivyaDarni/ShopSmart/apperrors"
	"github.com/DivyaDarni/ShopSmart/middleware"
	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/services"

	"github.com/gin-gonic/gin"
)

// OrderController serves the authenticated order endpoints.
type OrderController struct {
	orders *services.OrderService
	cache  *CacheManager
}

func NewOrderController(orders *services.OrderService, cache *CacheManager) *OrderController {
	return &OrderController{orders: orders, cache: cache}
}

type createOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   models.PaymentMethod   `json:"payment_method"`
}

// CreateOrder places an order from the caller's cart.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	order, appErr := oc.orders.PlaceOrder(c.Request.Context(), userID, req.ShippingAddress, req.PaymentMethod)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	// Stock changed for every ordered product.
	oc.cache.Invalidate(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order created successfully",
		"order":    order,
		"order_id": order.OrderID,
	})
}

// GetMyOrders returns the caller's orders, newest first.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	orders, appErr := oc.orders.GetUserOrders(c.Request.Context(), userID)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID returns a single order for its owner or an admin.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	order, appErr := oc.orders.GetOrder(c.Request.Context(), c.Param("orderId"), userID, middleware.GetRole(c))
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder cancels an order while it is still Pending or Confirmed.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	order, appErr := oc.orders.CancelOrder(c.Request.Context(), c.Param("orderId"), userID, middleware.GetRole(c))
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	// Cancellation restored stock.
	oc.cache.Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}
