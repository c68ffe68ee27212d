package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcart/internal/config"
	"foodcart/internal/database"
	"foodcart/internal/events"
	"foodcart/internal/handlers"
	"foodcart/internal/migrations"
	"foodcart/internal/redis"
	"foodcart/internal/repository"
	"foodcart/internal/services"
	"foodcart/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const (
	readTimeout       = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
)

func main() {
	// Load configuration
	cfg := config.Load()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// Initialize database
	db, err := database.Initialize(cfg.DBDriver, cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := migrations.RunMigrations(db, cfg.SeedDemoData); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	// Optional infrastructure
	var productCache services.ProductCache
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.Initialize(cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to Redis")
		}
		if cfg.SeedDemoData {
			if err := redisClient.InvalidateAvailableProducts(context.Background()); err != nil {
				logrus.WithError(err).Warn("Failed to invalidate product cache")
			}
		}
		productCache = redisClient
	} else {
		logrus.Info("REDIS_URL not set, product cache disabled")
	}

	var publisher services.OrderPublisher
	var producer *events.Producer
	if cfg.KafkaBroker != "" {
		producer = events.NewProducer(events.NewKafkaWriter(cfg.KafkaBroker, cfg.OrderTopic))
		publisher = producer
	} else {
		logrus.Info("KAFKA_BROKER not set, order events disabled")
	}

	var notifier services.NotificationService
	if cfg.WhatsAppAPIURL != "" && cfg.ManagerPhone != "" {
		whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)
		notifier = services.NewNotificationService(whatsappClient, cfg.ManagerPhone)
	} else {
		logrus.Info("WhatsApp gateway not configured, manager notifications disabled")
	}

	// Initialize repositories
	restaurantRepo := repository.NewRestaurantRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)

	// Initialize services
	catalogService := services.NewCatalogService(productRepo, productCache, time.Duration(cfg.CacheTTL)*time.Second, cfg.StaticURL, cfg.MediaURL)
	orderService := services.NewOrderService(db, orderRepo, orderItemRepo, productRepo, restaurantRepo, cfg.PhoneRegion, publisher, notifier)

	// Setup routes
	router := gin.Default()
	handlers.NewAPIHandler(catalogService, orderService).RegisterRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           c.Handler(router),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	go func() {
		logrus.Infof("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	logrus.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Failed to shut down server gracefully")
	}
	if err := orderService.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warn("Order notifications still pending at shutdown")
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Kafka writer")
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Redis client")
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
