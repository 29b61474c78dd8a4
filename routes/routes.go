package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/config"
	"github.com/EricVikberg/M7011E/sessions"
)

// SetupRoutes wires up the auth, storefront and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store *sessions.Store, cfg config.Config) {
	SetupAuthRoutes(r, db, cfg)
	SetupStorefrontRoutes(r, db, store, cfg)
	SetupAdminRoutes(r, db, cfg)
}
