package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/config"
	cartControllers "github.com/EricVikberg/M7011E/controllers/cart"
	orderControllers "github.com/EricVikberg/M7011E/controllers/order"
	productControllers "github.com/EricVikberg/M7011E/controllers/product"
	userControllers "github.com/EricVikberg/M7011E/controllers/user"
	"github.com/EricVikberg/M7011E/middleware"
	"github.com/EricVikberg/M7011E/sessions"
)

// SetupStorefrontRoutes registers the shopper-facing endpoints: catalog
// browsing, the cart (anonymous or authenticated) and orders.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB, store *sessions.Store, cfg config.Config) {
	// ──────────────── Catalog ────────────────
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/categories", productControllers.GetCategories(db))

	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.AuthOptional(cfg.JWTSecret), middleware.EnsureSession(store))
	{
		cartGroup.GET("", cartControllers.GetCart(db))
		cartGroup.POST("/items", cartControllers.AddCartItem(db))
		cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(db))
		cartGroup.DELETE("", cartControllers.ClearCart(db))
	}

	// ──────────────── Orders ────────────────
	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		orderGroup.POST("", orderControllers.CreateOrderHandler(db)) // POST /orders
		orderGroup.GET("", orderControllers.GetOrders(db))
		orderGroup.GET("/:order_id", orderControllers.GetOrderByID(db))
	}

	// ──────────────── Account ────────────────
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PUT("", userControllers.UpdateProfile(db))
	}
}
