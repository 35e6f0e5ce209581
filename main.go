package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/events"
	"catalog/pkg/mediastore"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("MEDIA_STORE_URL", "")
	viper.SetDefault("MEDIA_UPLOAD_DIR", "./uploads")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	mediaStoreURL := viper.GetString("MEDIA_STORE_URL")
	mediaUploadDir := viper.GetString("MEDIA_UPLOAD_DIR")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Repository ---
	// With a DATABASE_URL the products live in PostgreSQL; without one an
	// in-memory repository keeps local runs dependency-free.
	var productRepo repositories.ProductRepository
	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory product repository")
		productRepo = repositories.NewMockProductRepository()
	}

	// --- Initialize Media Store ---
	// A remote media host takes priority; otherwise uploads land in a local
	// directory served as static content.
	var media mediastore.Uploader
	if mediaStoreURL != "" {
		media = mediastore.NewClient(mediastore.Config{URL: mediaStoreURL})
	} else {
		localStore, err := mediastore.NewLocalStore(mediaUploadDir, "/uploads")
		if err != nil {
			log.Fatalf("Failed to initialize local media store: %v", err)
		}
		media = localStore
		log.Printf("MEDIA_STORE_URL not set, storing uploads under %s", mediaUploadDir)
	}

	// --- Initialize RabbitMQ Client ---
	// Event publishing is optional: without a broker the service still runs,
	// it just skips product lifecycle events.
	var publisher events.Publisher
	var mqClient *events.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = events.NewClient(events.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Failed to initialize RabbitMQ client, continuing without events: %v", err)
		} else {
			publisher = mqClient
			defer mqClient.Close() // Ensure the connection is closed on exit
		}
	}

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for product lifecycle events published by this or other
	// instances. Downstream work (cache invalidation, notifications) hangs
	// off this handler.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for product events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Product Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeProductEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo, media, publisher)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // room for the thumbnail plus up to ten images
	})

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New())

	// Serve locally stored media when no remote store is configured
	if mediaStoreURL == "" {
		app.Static("/uploads", mediaUploadDir)
	}

	// --- API Routes ---
	// Group routes under /api/v1
	apiV1 := app.Group("/api/v1")

	// Register product routes
	productHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	// Shutdown Fiber app
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
