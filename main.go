package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aayushsiwach/fruit-seller/cartstore"
	"github.com/aayushsiwach/fruit-seller/catalog"
	cartControllers "github.com/aayushsiwach/fruit-seller/controllers/cart"
	"github.com/aayushsiwach/fruit-seller/events"
	"github.com/aayushsiwach/fruit-seller/models"
	"github.com/aayushsiwach/fruit-seller/orders"
	"github.com/aayushsiwach/fruit-seller/repository"
	"github.com/aayushsiwach/fruit-seller/reservation"
	"github.com/aayushsiwach/fruit-seller/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Prices and totals serialize as JSON numbers, matching the storefront
	decimal.MarshalJSONWithoutQuotes = true

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Redis holds the session-local carts
	redisClient := redis.NewClient(&redis.Options{
		Addr:     envOrDefault("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// Order-placed events go to RabbitMQ when configured
	var publisher orders.Publisher = events.NopPublisher{}
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(amqpURL)
		if err != nil {
			log.Fatalf("❌ RabbitMQ connection failed: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	// Wire services
	inventory := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reserver := reservation.NewReserver(inventory)
	catalogService := catalog.NewService(inventory)
	orderService := orders.NewService(inventory, reserver, orderRepo, publisher)
	cartDeps := cartControllers.Deps{
		Products: inventory,
		Persist:  cartstore.NewRedisPersistence(redisClient),
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Catalog:   catalogService,
		Inventory: inventory,
		Orders:    orderService,
		Cart:      cartDeps,
	})

	// Start server
	port := envOrDefault("PORT", "8080")
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
