package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/auth"
	"github.com/EricVikberg/M7011E/config"
	orderControllers "github.com/EricVikberg/M7011E/controllers/order"
	productControllers "github.com/EricVikberg/M7011E/controllers/product"
	userControllers "github.com/EricVikberg/M7011E/controllers/user"
	"github.com/EricVikberg/M7011E/middleware"
)

// SetupAdminRoutes registers the staff-only endpoints. Each subgroup is
// gated on the capability it needs rather than a shared admin flag.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateToken(cfg.JWTSecret))

	catalog := admin.Group("/")
	catalog.Use(middleware.RequireCapability(auth.CapCatalogWrite))
	{
		catalog.POST("/products", productControllers.CreateProduct(db))
		catalog.PUT("/products/:id", productControllers.UpdateProduct(db))
		catalog.DELETE("/products/:id", productControllers.DeleteProduct(db))
		catalog.POST("/categories", productControllers.CreateCategory(db))
		catalog.PUT("/categories/:id", productControllers.UpdateCategory(db))
	}

	orders := admin.Group("/orders")
	orders.Use(middleware.RequireCapability(auth.CapOrderStream))
	{
		orders.GET("/stream", orderControllers.StreamOrders())
	}

	users := admin.Group("/users")
	users.Use(middleware.RequireCapability(auth.CapUserList))
	{
		users.GET("", userControllers.GetAllUsers(db))
	}
}
