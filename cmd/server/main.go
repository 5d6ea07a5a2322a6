package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"payment_service_echo/internal/config"
	"payment_service_echo/internal/handlers"
	"payment_service_echo/internal/middleware"
	"payment_service_echo/internal/repository"
	"payment_service_echo/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Optional Redis cache for statistics
	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(cfg.RedisURL, logger)
		if err != nil {
			logger.Warn("redis unavailable, statistics caching disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// Wire store, services and handlers
	repo := repository.NewInMemoryPaymentRepository()
	paymentService := services.NewPaymentService(repo, logger)
	refundService := services.NewRefundService(repo, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, refundService, cache, cfg.StatsCacheTTL)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.CustomErrorHandler(logger)

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		MaxAge:       3600,
	}))

	// Payment routes
	payments := e.Group("/payments")
	payments.POST("", paymentHandler.CreatePayment)
	payments.GET("", paymentHandler.ListPayments)
	payments.GET("/stats", paymentHandler.Statistics)
	payments.GET("/health", paymentHandler.Health)
	payments.POST("/restricted-refund", paymentHandler.RestrictedRefund)
	payments.GET("/order/:orderId", paymentHandler.GetPaymentsByOrder)
	payments.GET("/customer/:customerId", paymentHandler.GetPaymentsByCustomer)
	payments.GET("/status/:status", paymentHandler.GetPaymentsByStatus)
	payments.GET("/:paymentId", paymentHandler.GetPayment)
	payments.PATCH("/:paymentId/status", paymentHandler.UpdateStatus)
	payments.POST("/:paymentId/refund", paymentHandler.Refund)
	payments.DELETE("/:paymentId", paymentHandler.DeletePayment)

	logger.Info("server starting", zap.String("port", cfg.Port))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// newLogger builds a production zap logger at the configured level
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
