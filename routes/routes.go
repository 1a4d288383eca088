package routes

import (
	"github.com/DivyaDarni/ShopSmart/controllers"
	"github.com/DivyaDarni/ShopSmart/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires all application routes onto the engine.
func Register(
	r *gin.Engine,
	jwtSecret string,
	authController *controllers.AuthController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
	adminController *controllers.AdminController,
) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", middleware.Auth(jwtSecret), authController.Me)
	}

	products := api.Group("/products")
	{
		products.GET("", productController.GetProducts)
		products.GET("/:id", productController.GetProductByID)
		products.GET("/categories/list", productController.GetCategories)
	}

	cart := api.Group("/cart", middleware.Auth(jwtSecret))
	{
		cart.GET("", cartController.GetCart)
		cart.POST("/add", cartController.AddItem)
		cart.PUT("/update/:itemId", cartController.UpdateItem)
		cart.DELETE("/remove/:itemId", cartController.RemoveItem)
		cart.DELETE("/clear", cartController.ClearCart)
	}

	orders := api.Group("/orders", middleware.Auth(jwtSecret))
	{
		orders.POST("", orderController.CreateOrder)
		orders.GET("/mine", orderController.GetMyOrders)
		orders.GET("/:orderId", orderController.GetOrderByID)
		orders.PUT("/:orderId/cancel", orderController.CancelOrder)
	}

	admin := api.Group("/admin", middleware.Auth(jwtSecret), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminController.GetDashboard)
		admin.GET("/products", adminController.GetProducts)
		admin.POST("/products", adminController.CreateProduct)
		admin.PUT("/products/:id", adminController.UpdateProduct)
		admin.DELETE("/products/:id", adminController.DeleteProduct)
		admin.GET("/orders", adminController.GetOrders)
		admin.PUT("/orders/:orderId/status", adminController.UpdateOrderStatus)
		admin.GET("/users", adminController.GetUsers)
	}
}
