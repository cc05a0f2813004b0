package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tilanet/auth-service/internal/pkg/config"
	"github.com/tilanet/auth-service/internal/pkg/database"
	"github.com/tilanet/auth-service/internal/pkg/health"
	"github.com/tilanet/auth-service/internal/pkg/logger"
	"github.com/tilanet/auth-service/internal/pkg/middleware"
	nrpkg "github.com/tilanet/auth-service/internal/pkg/newrelic"
	"github.com/tilanet/auth-service/services/auth/gateway"
	"github.com/tilanet/auth-service/services/auth/handler"
	httpHandler "github.com/tilanet/auth-service/services/auth/handler/http"
	"github.com/tilanet/auth-service/services/auth/repository"
	"github.com/tilanet/auth-service/services/auth/usecase"
)

func main() {
	appName := "auth-service"
	configPath := os.Getenv("CONFIG_PATH")
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repository
	authRepo := repository.NewAuthRepo(configs, postgresClient.GetDB())

	// Initialize Gateway
	smsGW := gateway.NewSMSGateway(configs.SMS)

	// Initialize UseCase
	authUC := usecase.NewAuthUC(authRepo, authRepo, authRepo, smsGW, configs)

	// Handlers for HTTP
	authHandler := httpHandler.NewAuthHandler(authUC)
	otpHandler := httpHandler.NewOTPHandler(authUC)

	// Initialize handlers
	h := handler.NewHandler(authHandler, otpHandler, configs, redisClient.Client)

	// Initialize Echo router
	e := echo.New()

	// Add middlewares
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName)

	// Register service routes
	h.RegisterRoutes(e)

	// Start server
	zapLogger.Info("Starting server",
		zap.String("app", appName),
		zap.Int("port", configs.Server.Port),
	)

	if err := e.Start(fmt.Sprintf(":%d", configs.Server.Port)); err != nil {
		zapLogger.Fatal("Failed to start server",
			zap.String("app", appName),
			zap.Error(err),
		)
	}
}
