package controllers

import (
	"net/http"
	"strconv"

	"github.com/DivyaDarni/ShopSmart/apperrors"
	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/services"

	"github.com/gin-gonic/gin"
)

// AdminController serves the admin panel: dashboard, product CRUD, order
// management and user listing. All routes behind RequireAdmin.
type AdminController struct {
	admin    *services.AdminService
	products *services.ProductService
	orders   *services.OrderService
	cache    *CacheManager
}

func NewAdminController(admin *services.AdminService, products *services.ProductService, orders *services.OrderService, cache *CacheManager) *AdminController {
	return &AdminController{admin: admin, products: products, orders: orders, cache: cache}
}

// GetDashboard returns the admin dashboard summary.
func (ac *AdminController) GetDashboard(c *gin.Context) {
	dashboard, appErr := ac.admin.GetDashboard(c.Request.Context())
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GetProducts returns paginated products for the admin panel.
func (ac *AdminController) GetProducts(c *gin.Context) {
	page, limit := parsePaginationParams(c)

	result, appErr := ac.products.AdminList(c.Request.Context(), page, limit,
		c.Query("category"), c.Query("availability"))
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateProduct adds a product to the catalog.
func (ac *AdminController) CreateProduct(c *gin.Context) {
	var req services.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "details": err.Error()})
		return
	}

	product, appErr := ac.products.Create(c.Request.Context(), req)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	ac.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "product": product})
}

// UpdateProduct edits a product.
func (ac *AdminController) UpdateProduct(c *gin.Context) {
	var req services.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "details": err.Error()})
		return
	}

	product, appErr := ac.products.Update(c.Request.Context(), c.Param("id"), req)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	ac.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// DeleteProduct removes a product from the catalog.
func (ac *AdminController) DeleteProduct(c *gin.Context) {
	if appErr := ac.products.Delete(c.Request.Context(), c.Param("id")); appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	ac.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetOrders returns paginated orders, optionally filtered by status.
func (ac *AdminController) GetOrders(c *gin.Context) {
	page, limit := parsePaginationParams(c)

	result, appErr := ac.orders.ListOrders(c.Request.Context(), c.Query("status"), page, limit)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

type updateStatusRequest struct {
	Status      models.OrderStatus `json:"status" binding:"required"`
	Description string             `json:"description"`
}

// UpdateOrderStatus transitions an order's status. Setting Cancelled
// restores stock exactly like a customer cancellation.
func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	order, appErr := ac.orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status, req.Description)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	if req.Status == models.StatusCancelled {
		ac.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
}

// GetUsers lists customer accounts.
func (ac *AdminController) GetUsers(c *gin.Context) {
	users, appErr := ac.admin.ListCustomers(c.Request.Context())
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}
	c.JSON(http.StatusOK, users)
}

// parsePaginationParams extracts and bounds pagination query parameters.
func parsePaginationParams(c *gin.Context) (int64, int64) {
	const maxLimit = 100

	page := int64(1)
	limit := int64(10)

	if p, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64); err == nil && l > 0 {
		limit = l
		if limit > maxLimit {
			limit = maxLimit
		}
	}
	return page, limit
}
