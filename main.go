package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/config"
	"github.com/EricVikberg/M7011E/metrics"
	"github.com/EricVikberg/M7011E/middleware"
	"github.com/EricVikberg/M7011E/models"
	"github.com/EricVikberg/M7011E/routes"
	"github.com/EricVikberg/M7011E/sessions"
)

func main() {
	log.Println("Starting storefront API...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Session token store
	redisClient, err := sessions.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	store := sessions.NewStore(redisClient, cfg.SessionTTL)

	// Gin setup
	r := gin.Default()
	r.Use(middleware.Metrics())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Operational endpoints
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Setup routes
	routes.SetupRoutes(r, db, store, cfg)

	// Sweep abandoned anonymous carts daily at 3 AM
	go startDailyCartSweep(db, cfg.CartRetention, 3, 0)

	// Start server
	log.Printf("Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	return db
}

// startDailyCartSweep deletes anonymous carts untouched for longer than
// the retention window, daily at a fixed hour. User-owned carts are never
// swept.
func startDailyCartSweep(db *gorm.DB, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("Next cart sweep scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		cutoff := time.Now().Add(-retention)
		result := db.Where("user_id IS NULL AND updated_at < ?", cutoff).Delete(&models.Cart{})
		if result.Error != nil {
			log.Printf("Cart sweep failed: %v", result.Error)
		} else if result.RowsAffected > 0 {
			log.Printf("Cart sweep removed %d abandoned carts", result.RowsAffected)
		}
	}
}
