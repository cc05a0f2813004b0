package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/tilanet/auth-service/internal/pkg/middleware"
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/services/auth/handler/http"
)

// Handler coordinates the HTTP handlers for the auth service
type Handler struct {
	authHandler *http.AuthHandler
	otpHandler  *http.OTPHandler
	cfg         *models.Config
	redisClient *redis.Client
}

// NewHandler creates and initializes all handlers
func NewHandler(
	authHandler *http.AuthHandler,
	otpHandler *http.OTPHandler,
	cfg *models.Config,
	redisClient *redis.Client,
) *Handler {
	return &Handler{
		authHandler: authHandler,
		otpHandler:  otpHandler,
		cfg:         cfg,
		redisClient: redisClient,
	}
}

// RegisterRoutes mounts all routes under the /api prefix
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	jwtMW := middleware.JWTAuthMiddleware(h.cfg.JWT)

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", h.authHandler.Signup)
	authGroup.POST("/verify-otp", h.authHandler.VerifyOTP, h.rateLimit("rate:verify")...)
	authGroup.POST("/signin", h.authHandler.Signin, h.rateLimit("rate:signin")...)
	authGroup.POST("/refresh-token", h.authHandler.RefreshToken)
	authGroup.POST("/resend-otp", h.otpHandler.ResendOTP, h.rateLimit("rate:otp")...)
	authGroup.GET("/countries", h.authHandler.GetCountries)
	authGroup.GET("/languages", h.authHandler.GetLanguages)

	authGroup.POST("/logout", h.authHandler.Logout, jwtMW)
	authGroup.PUT("/language", h.authHandler.UpdateLanguage, jwtMW)

	otpGroup := api.Group("/otp")
	otpGroup.POST("/send", h.otpHandler.SendOTP, h.rateLimit("rate:otp")...)
	otpGroup.POST("/verify", h.otpHandler.VerifyOTP, h.rateLimit("rate:verify")...)
	otpGroup.POST("/resend", h.otpHandler.ResendOTP, h.rateLimit("rate:otp")...)
}

// rateLimit returns the redis-backed limiter for abuse-prone routes,
// or nothing when the limiter is disabled
func (h *Handler) rateLimit(key string) []echo.MiddlewareFunc {
	if !h.cfg.RateLimit.Enabled || h.redisClient == nil {
		return nil
	}
	return []echo.MiddlewareFunc{
		middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RedisClient: h.redisClient,
			Key:         key,
			Limit:       h.cfg.RateLimit.Limit,
			Period:      time.Duration(h.cfg.RateLimit.Period) * time.Second,
		}),
	}
}
