package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorent/internal/config"
	"gorent/internal/handlers"
	"gorent/internal/middleware"
	"gorent/internal/repositories/mongodb"
	"gorent/internal/services"
	"gorent/pkg/cache"
	"gorent/pkg/database"
	"gorent/pkg/logger"
	"gorent/pkg/maps"
	"gorent/pkg/oauth"
	"gorent/pkg/payment"
	"gorent/pkg/push"
	"gorent/pkg/storage"
	"gorent/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: cfg.App.Debug,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}
	cancelIndexes()

	// Cache is optional; repositories and services nil-check it.
	var cacheService services.CacheService
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Warnf("Redis unavailable, running without cache: %v", err)
	} else {
		cacheService = redisCache
		defer redisCache.Close()
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database, cacheService)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database, cacheService)
	bookingRepo := mongodb.NewBookingRepository(db.Database, cacheService)
	paymentRepo := mongodb.NewPaymentRepository(db.Database, cacheService)
	notificationRepo := mongodb.NewNotificationRepository(db.Database, cacheService)

	// External providers
	var pushProvider push.Provider
	if cfg.Push.Enabled {
		fcm, err := push.NewFCMProvider(cfg.Push.FCMCredentialsFile)
		if err != nil {
			appLogger.Warnf("FCM unavailable, push disabled: %v", err)
		} else {
			pushProvider = fcm
		}
	}

	var storageProvider storage.Provider
	if cfg.Storage.Enabled {
		gcs, err := storage.NewGCSProvider(cfg.Storage.Bucket, cfg.Storage.CredentialsFile, cfg.Storage.CDNDomain)
		if err != nil {
			appLogger.Warnf("GCS unavailable, image uploads disabled: %v", err)
		} else {
			storageProvider = gcs
		}
	}

	var estimator maps.DistanceEstimator
	if cfg.Maps.GoogleAPIKey != "" {
		provider, err := maps.NewGoogleMapsProvider(cfg.Maps.GoogleAPIKey)
		if err != nil {
			appLogger.Warnf("Maps unavailable, distance estimation disabled: %v", err)
		} else {
			estimator = provider
		}
	}

	gateway := payment.NewStripeGateway(cfg.Payment.StripeSecretKey)
	oauthProvider := oauth.NewGoogleProvider(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.GoogleRedirectURL)

	// Services
	notificationService := services.NewNotificationService(notificationRepo, userRepo, pushProvider, appLogger)
	authService := services.NewAuthService(userRepo, cacheService, oauthProvider, cfg.Security.JWTSecret, appLogger)
	userService := services.NewUserService(userRepo, appLogger)
	catalogService := services.NewCatalogService(vehicleRepo, appLogger)
	pricingService := services.NewPricingService(vehicleRepo, estimator)
	bookingService := services.NewBookingService(bookingRepo, vehicleRepo, userRepo, notificationService, appLogger)
	paymentService := services.NewPaymentService(paymentRepo, bookingRepo, gateway, cfg.Payment.Currency, appLogger)
	vehicleService := services.NewVehicleService(vehicleRepo, storageProvider, appLogger)
	adminService := services.NewAdminService(userRepo, vehicleRepo, bookingRepo, appLogger)

	// Handlers
	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, userService),
		Catalog:      handlers.NewCatalogHandler(catalogService, pricingService, userService),
		Booking:      handlers.NewBookingHandler(bookingService, paymentService),
		Driver:       handlers.NewDriverHandler(bookingService, userService),
		Admin:        handlers.NewAdminHandler(adminService, vehicleService, userService, bookingService, paymentService),
		Notification: handlers.NewNotificationHandler(notificationService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(appLogger))

	v1 := router.Group("/api/v1")
	routes.Setup(v1, h, cfg.Security.JWTSecret, authService)

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if err := db.Ping(); err != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting server on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}
