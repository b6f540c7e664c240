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

	"pulseMontreal/app/echo-server/router"
	"pulseMontreal/business/activity"
	"pulseMontreal/business/enrich"
	"pulseMontreal/business/event"
	"pulseMontreal/business/recommend"
	"pulseMontreal/business/taste"
	"pulseMontreal/business/trending"
	userService "pulseMontreal/business/user"
	"pulseMontreal/internal/middleware"
	"pulseMontreal/internal/repository/notification"
	psqlRepo "pulseMontreal/internal/repository/postgres"
	redisRepo "pulseMontreal/internal/repository/redis"
	"pulseMontreal/internal/rest"
	"pulseMontreal/pkg/config"
	"pulseMontreal/pkg/database"
	redisdb "pulseMontreal/pkg/database/redis"
	"pulseMontreal/pkg/logger"
	"pulseMontreal/pkg/metrics"

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
	logger.Info("Starting Pulse Montreal", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close redis client", "error", err)
		}
	}()

	metrics.Init()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	eventRepo := psqlRepo.NewEventRepository(db)
	eventTagRepo := psqlRepo.NewEventTagRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	favoriteRepo := psqlRepo.NewFavoriteRepository(db)
	interestRepo := psqlRepo.NewInterestTagRepository(db)
	profileRepo := psqlRepo.NewTasteProfileRepository(db)
	taxonomyRepo := psqlRepo.NewTaxonomyRepository(db)
	jobRepo := psqlRepo.NewJobRepository(db)

	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	trendingCache := redisRepo.NewTrendingCache(
		redisClient,
		time.Duration(cfg.Scoring.TrendingCacheTTLSec)*time.Second,
	)

	// The tag taxonomy is read once at startup; updating it means restarting
	// the service.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	taxonomy, err := taxonomyRepo.FindAll(startupCtx)
	startupCancel()
	if err != nil {
		logger.Fatal("Failed to load tag taxonomy", "error", err)
	}
	matcher := enrich.NewMatcher(taxonomy)
	logger.Info("Tag taxonomy loaded", "entries", len(taxonomy))

	tasteCfg := taste.DefaultConfig()
	tasteCfg.HalfLifeDays = cfg.Scoring.ProfileHalfLifeDays
	tasteCfg.RebuildConcurrency = cfg.Scoring.RebuildConcurrency
	tasteCfg.ActiveWindowDays = cfg.Scoring.ActiveUserWindowDays

	// Init service
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	enrichService := enrich.NewService(eventRepo, eventTagRepo, jobRepo, matcher)
	eventService := event.NewEventService(eventRepo, eventTagRepo, enrichService)
	activityService := activity.NewActivityService(interactionRepo, favoriteRepo, interestRepo, eventRepo)
	tasteService := taste.NewService(interactionRepo, favoriteRepo, interestRepo, eventTagRepo, profileRepo, tasteCfg)
	trendingService := trending.NewService(interactionRepo, eventRepo, trendingCache, trending.DefaultConfig())
	recommendService := recommend.NewService(userRepo, eventRepo, eventTagRepo, profileRepo, trendingService, recommend.DefaultConfig())

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	eventHandler := rest.NewEventHandler(eventService)
	activityHandler := rest.NewActivityHandler(activityService)
	recommendationHandler := rest.NewRecommendationHandler(recommendService)
	trendingHandler := rest.NewTrendingHandler(trendingService, eventRepo)
	tasteHandler := rest.NewTasteHandler(tasteService, profileRepo)
	enrichHandler := rest.NewEnrichHandler(enrichService, jobRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)
	adminOnly := middleware.AdminOnly()
	organizerOnly := middleware.OrganizerOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupEventRoutes(api, eventHandler, authRequired, organizerOnly)
	router.SetupActivityRoutes(api, activityHandler, authRequired)
	router.SetupRecommendationRoutes(api, recommendationHandler, authRequired)
	router.SetupTrendingRoutes(api, trendingHandler)
	router.SetupTasteRoutes(api, tasteHandler, authRequired, adminOnly)
	router.SetupEnrichRoutes(api, enrichHandler, authRequired, adminOnly)

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
