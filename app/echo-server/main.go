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

	"keel/app/echo-server/router"
	"keel/business/merchant"
	"keel/business/rewards"
	userService "keel/business/user"
	"keel/business/visits"
	"keel/internal/middleware"
	"keel/internal/repository/openai"
	"keel/internal/repository/places"
	psqlRepo "keel/internal/repository/postgres"
	redisRepo "keel/internal/repository/redis"
	"keel/internal/rest"
	"keel/pkg/config"
	"keel/pkg/database"
	redisdb "keel/pkg/database/redis"
	"keel/pkg/logger"
	"keel/pkg/metrics"
	"keel/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Keel", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey, 24*time.Hour)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Rules must load at startup; serving without a table is worse than not
	// starting at all.
	rulesProvider, err := rewards.NewRulesProvider(cfg.Rewards.RulesPath)
	if err != nil {
		logger.Fatal("Failed to load rewards rules", "error", err, "path", cfg.Rewards.RulesPath)
	}
	logger.Info("Rewards rules loaded", "cards", len(rulesProvider.Current().Cards))

	placesRepo := places.NewPlacesRepository(
		places.PlacesConfig{
			APIKey:       cfg.Places.APIKey,
			BaseURL:      cfg.Places.BaseURL,
			RadiusMeters: cfg.Places.RadiusMeters,
			Timeout:      time.Duration(cfg.Places.TimeoutSec) * time.Second,
			Retries:      cfg.Places.Retries,
		},
	)

	openAIRepo := openai.NewOpenAIRepository(
		openai.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: time.Duration(cfg.OpenAI.TimeoutSec) * time.Second,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	cardRepo := psqlRepo.NewCardRepository(db)
	rotatingRepo := psqlRepo.NewRotatingRepository(db)
	visitRepo := psqlRepo.NewVisitRepository(db)
	cacheRepo := redisRepo.NewCacheRepository(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, cardRepo, rotatingRepo, validate)
	rewardsSvc := rewards.NewRewardsService(rulesProvider, openAIRepo)
	merchantSvc := merchant.NewMerchantService(placesRepo, cacheRepo, cfg.Places.MinConfidence)
	visitSvc := visits.NewVisitService(visitRepo, cacheRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	recommendHandler := rest.NewRecommendHandler(rewardsSvc, userSvc, merchantSvc)
	merchantHandler := rest.NewMerchantHandler(merchantSvc)
	visitHandler := rest.NewVisitHandler(visitSvc)
	adminHandler := rest.NewAdminHandler(rulesProvider, cacheRepo)
	healthHandler := rest.NewHealthHandler(db)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler)
	router.SetupCardRoutes(api, userHandler)
	router.SetupRecommendRoutes(api, recommendHandler)
	router.SetupMerchantRoutes(api, merchantHandler)
	router.SetupVisitRoutes(api, visitHandler)
	router.SetupAdminRoutes(api, adminHandler)
	router.SetupHealthRoutes(e, healthHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

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

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
