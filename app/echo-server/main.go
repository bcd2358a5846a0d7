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

	"ecommerceRecommender/app/echo-server/router"
	"ecommerceRecommender/business/product"
	"ecommerceRecommender/business/recommendation"
	userService "ecommerceRecommender/business/user"
	"ecommerceRecommender/internal/middleware"
	psqlRepo "ecommerceRecommender/internal/repository/postgres"
	redisRepo "ecommerceRecommender/internal/repository/redis"
	"ecommerceRecommender/internal/rest"
	"ecommerceRecommender/pkg/config"
	"ecommerceRecommender/pkg/database"
	redisClient "ecommerceRecommender/pkg/database/redis"
	"ecommerceRecommender/pkg/logger"
	"ecommerceRecommender/pkg/metrics"
	"ecommerceRecommender/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	logger.Info("Database connected successfully")

	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Audience, cfg.JWT.TTL)

	// Redis is optional; without it tokens are checked by signature only.
	var (
		sessions     userService.SessionStore
		authRequired = middleware.AuthMiddleware(jwtManager)
	)
	rdb, err := redisClient.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to stateless token auth", "error", err)
	} else {
		sessionRepo := redisRepo.NewSessionRepository(rdb)
		sessions = sessionRepo
		authRequired = middleware.AuthMiddlewareWithRedis(jwtManager, sessionRepo)
		logger.Info("Redis connected successfully")
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)

	// Init service
	userSvc := userService.NewUserService(userRepo, jwtManager, sessions, validate)
	productSvc := product.NewProductService(productRepo, interactionRepo, validate)
	recoSvc := recommendation.NewService(interactionRepo, recommendation.Config{
		SimilarUsers:         cfg.Recommendation.SimilarUsers,
		TopN:                 cfg.Recommendation.TopN,
		MinDocumentFrequency: cfg.Recommendation.MinDocumentFrequency,
	})

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	productHandler := rest.NewProductHandler(productSvc)
	recoHandler := rest.NewRecommendationHandler(recoSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	router.SetupHealthRoutes(e)

	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired, middleware.AdminOnly())
	router.SetRecommendationRoutes(api, recoHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisClient.CloseRedisClient(rdb); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
