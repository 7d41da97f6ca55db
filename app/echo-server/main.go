package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"smelterAdvisor/app/echo-server/metrics"
	"smelterAdvisor/app/echo-server/router"
	"smelterAdvisor/business/advisor"
	"smelterAdvisor/business/feed"
	"smelterAdvisor/business/operator"
	"smelterAdvisor/internal/middleware"
	memoryRepo "smelterAdvisor/internal/repository/memory"
	psqlRepo "smelterAdvisor/internal/repository/postgres"
	redisRepo "smelterAdvisor/internal/repository/redis"
	"smelterAdvisor/internal/rest"
	"smelterAdvisor/pkg/config"
	"smelterAdvisor/pkg/database"
	redisdb "smelterAdvisor/pkg/database/redis"
	"smelterAdvisor/pkg/logger"
	pkgmetrics "smelterAdvisor/pkg/metrics"
	"smelterAdvisor/pkg/utils"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.SetLevel(cfg.App.LogLevel)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version, "estimator_mode", cfg.Advisor.EstimatorMode)

	advisorCfg, err := buildAdvisorConfig(cfg)
	if err != nil {
		logger.Fatal("Invalid advisor configuration", "error", err)
	}

	estimator := buildEstimator(cfg)
	metrics.Init(cfg.App.Version, estimator.Name())

	// Init repo
	var (
		paramRepo advisor.ParameterRepository         = memoryRepo.NewParameterRepository()
		logRepo   advisor.RecommendationLogRepository = memoryRepo.NewLogRepository(cfg.Advisor.HistoryLimit)
		stateRepo advisor.StateRepository             = memoryRepo.NewStateRepository()
	)

	if cfg.Database.Enabled {
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		if err := database.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database connected successfully")

		paramRepo = psqlRepo.NewAdvisorParameterRepository(db)
		logRepo = psqlRepo.NewAdvisorLogRepository(db)
	}

	if cfg.Redis.Enabled {
		client, err := redisdb.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer func() {
			if err := redisdb.CloseRedisClient(client); err != nil {
				logger.Error("Failed to close redis", "error", err)
			}
		}()
		logger.Info("Redis connected successfully")

		stateRepo = redisRepo.NewStateRepository(client, cfg.Redis.StateTTL)
	}

	// Init service
	tokens := utils.NewTokenIssuer(cfg.JWT.SecretKey, cfg.JWT.TTL)
	advisorService := advisor.NewAdvisorService(estimator, stateRepo, paramRepo, logRepo, advisorCfg)
	operatorService := operator.NewOperatorService(cfg.Operator.Username, cfg.Operator.PasswordHash, tokens)

	// Init handler
	advisorHandler := rest.NewAdvisorHandler(advisorService)
	adminHandler := rest.NewAdvisorAdminHandler(advisorService)
	authHandler := rest.NewAuthHandler(operatorService)
	healthHandler := rest.NewHealthHandler(cfg.App.Version, advisorService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(pkgmetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, rest.HeaderSessionID},
		ExposeHeaders: []string{echo.HeaderXRequestID},
	}))

	rateLimiter := echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Server.RateLimit)))

	// Setup routes
	router.SetupSystemRoutes(e, healthHandler)

	api := e.Group("/api/v1", rateLimiter)
	router.SetupAdvisorRoutes(api, advisorHandler)
	router.SetupAuthRoutes(api, authHandler)
	if cfg.Operator.Enabled() {
		router.SetupAdminRoutes(api, adminHandler, tokens)
	} else {
		logger.Warn("Operator account not configured, admin routes disabled")
	}

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()

	if cfg.Feed.Enabled {
		rows, err := feed.LoadFiles(cfg.Feed.Files)
		if err != nil {
			logger.Fatal("Failed to load feed data", "error", err)
		}

		var feedAdvisor feed.Advisor
		if cfg.Feed.Advise {
			feedAdvisor = advisorService
		}

		player := feed.NewPlayer(rows, cfg.Feed.Interval, feedAdvisor)
		router.SetupFeedRoutes(e, rest.NewFeedHandler(feedCtx, player, cfg.Server.CORSAllowOrigins))
		logger.Info("Feed replay enabled", "rows", player.Rows(), "interval", cfg.Feed.Interval.String(), "advise", cfg.Feed.Advise)
	}

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopFeed()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

// buildAdvisorConfig layers env settings and the optional parameters file over the built-in defaults.
func buildAdvisorConfig(cfg *config.Config) (advisor.Config, error) {
	ac := advisor.DefaultConfig()
	ac.TargetCu = cfg.Advisor.TargetCu
	ac.DeadBand = cfg.Advisor.DeadBand
	ac.MaxAdjustments = cfg.Advisor.MaxAdjustments

	if cfg.Advisor.ParametersFile != "" {
		return advisor.ApplyParametersFile(ac, cfg.Advisor.ParametersFile)
	}

	if err := ac.Validate(); err != nil {
		return advisor.Config{}, err
	}
	return ac, nil
}

// buildEstimator never fails: a model that cannot be loaded leaves the service degraded.
func buildEstimator(cfg *config.Config) advisor.MetricEstimator {
	if cfg.Advisor.EstimatorMode == config.EstimatorModeSimulated {
		return advisor.NewSimulatedEstimator(cfg.Advisor.Seed, cfg.Advisor.NoiseStdDev)
	}

	model, err := advisor.LoadLinearModel(cfg.Advisor.ModelPath)
	if err != nil {
		logger.Error("Failed to load model, predictions unavailable", "path", cfg.Advisor.ModelPath, "error", err)
		return advisor.NewModelEstimator(nil)
	}

	logger.Info("Model loaded", "path", cfg.Advisor.ModelPath, "features", len(model.FeatureNames))
	return advisor.NewModelEstimator(model)
}
