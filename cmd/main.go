package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"sweetshop/internal/caching"
	"sweetshop/internal/config"
	"sweetshop/internal/handlers"
	"sweetshop/internal/jobs"
	"sweetshop/internal/middleware"
	"sweetshop/internal/repositories"
	"sweetshop/internal/services"
	"sweetshop/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Cache is optional; everything degrades to direct reads without it.
	var cacheSvc caching.CacheService
	if cfg.CacheEnabled() {
		cacheSvc = caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := cacheSvc.Ping(ctx); err != nil {
			log.Printf("WARNING: Redis unreachable, continuing without cache: %v", err)
			cacheSvc = nil
		}
	}

	// Object storage is optional; image upload returns 503 without it.
	var imageSvc services.ImageService
	if cfg.StorageEnabled() {
		imageSvc, err = services.NewMinioImageService(
			cfg.MinioEndpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
			cfg.MinioUseSSL,
		)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO service: %v", err)
		}
		if err := imageSvc.EnsureBucket(ctx); err != nil {
			log.Fatalf("Failed to prepare MinIO bucket: %v", err)
		}
	}

	// Create repositories
	sweetRepo := repositories.NewSweetRepo(pool)
	customerRepo := repositories.NewCustomerRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)
	statsRepo := repositories.NewStatsRepo(pool)

	// Create services
	sweetSvc := services.NewSweetService(sweetRepo, orderItemRepo, cacheSvc)
	customerSvc := services.NewCustomerService(customerRepo, orderRepo, cacheSvc)
	orderSvc := services.NewOrderService(pool, cacheSvc)
	dashboardSvc := services.NewDashboardService(statsRepo, cacheSvc)

	// Create handlers
	sweetHandlers := handlers.NewSweetHandlers(sweetSvc, imageSvc)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background stats refresh only makes sense when the cache is up.
	if cacheSvc != nil {
		refresher, err := jobs.NewStatsRefresher(dashboardSvc, statsRepo)
		if err != nil {
			log.Fatalf("Failed to create stats refresher: %v", err)
		}
		if err := refresher.Start(cfg.StatsRefreshInterval); err != nil {
			log.Fatalf("Failed to start stats refresher: %v", err)
		}
		defer func() {
			if err := refresher.Stop(); err != nil {
				log.Printf("Stats refresher shutdown: %v", err)
			}
		}()
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no identity required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Everything else requires the identity header.
	api := e.Group("")
	api.Use(middleware.RequireIdentity())

	// Sweet routes
	api.GET("/sweets", sweetHandlers.ListSweets)
	api.POST("/sweets", sweetHandlers.CreateSweet)
	api.GET("/sweets/:id", sweetHandlers.GetSweet)
	api.PUT("/sweets/:id", sweetHandlers.UpdateSweet)
	api.DELETE("/sweets/:id", sweetHandlers.DeleteSweet)
	api.POST("/sweets/:id/image", sweetHandlers.UploadImage)

	// Customer routes
	api.GET("/customers", customerHandlers.ListCustomers)
	api.POST("/customers", customerHandlers.CreateCustomer)
	api.GET("/customers/:id", customerHandlers.GetCustomer)
	api.PUT("/customers/:id", customerHandlers.UpdateCustomer)
	api.DELETE("/customers/:id", customerHandlers.DeleteCustomer)

	// Order routes
	api.GET("/orders", orderHandlers.ListOrders)
	api.POST("/orders", orderHandlers.CreateOrder)
	api.GET("/orders/:id", orderHandlers.GetOrder)
	api.PUT("/orders/:id", orderHandlers.UpdateOrder)
	api.DELETE("/orders/:id", orderHandlers.DeleteOrder)

	// Dashboard routes
	api.GET("/dashboard/stats", dashboardHandlers.GetStats)
	api.GET("/categories", sweetHandlers.GetCategories)

	log.Printf("Sweet Shop API v%s starting on port %s", version, cfg.Port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", cfg.Port)))
}
