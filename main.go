package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/KingAshu22/Parichay-Admin/config"
	"github.com/KingAshu22/Parichay-Admin/controllers"
	"github.com/KingAshu22/Parichay-Admin/database"
	"github.com/KingAshu22/Parichay-Admin/kafka"
	"github.com/KingAshu22/Parichay-Admin/logger"
	"github.com/KingAshu22/Parichay-Admin/middleware"
	aws_pkg "github.com/KingAshu22/Parichay-Admin/pkg/aws"
	"github.com/KingAshu22/Parichay-Admin/repository"
	"github.com/KingAshu22/Parichay-Admin/routes"
	"github.com/KingAshu22/Parichay-Admin/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.Initialize(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// --- 1. Infrastructure clients ---

	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.MongoDB); err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	redisClient := database.NewRedisClient(cfg.RedisURL)

	// Orphaned-intent alerting is optional; without a topic ARN the error
	// log is the only signal.
	var snsPublisher aws_pkg.SNSPublisher
	if cfg.OrderAlertTopic != "" {
		awsCfg, err := aws_pkg.LoadConfig(context.Background())
		if err != nil {
			log.Fatal("Failed to load AWS config", zap.Error(err))
		}
		snsPublisher = aws_pkg.NewSNSClient(awsCfg)
	}

	producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaOrderTopic)

	gateway := services.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.GatewayTimeout)

	// --- 2. Dependency injection ---

	productRepo := repository.NewProductRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	idempotencyRepo := repository.NewIdempotencyRepository(redisClient, cfg.IdempotencyTTL)

	checkoutService := services.NewCheckoutService(
		productRepo, orderRepo, gateway,
		producer, snsPublisher, cfg.OrderAlertTopic,
		log,
	)
	orderService := services.NewOrderService(orderRepo, log)

	checkoutController := controllers.NewCheckoutController(checkoutService, idempotencyRepo, log)
	orderController := controllers.NewOrderController(orderService)

	// --- 3. HTTP server & middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	// Per-request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, checkoutController, orderController)

	// --- 4. Graceful shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Storefront service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down storefront service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := producer.Close(); err != nil {
		log.Error("Failed to close Kafka producer", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		log.Error("Failed to disconnect MongoDB", zap.Error(err))
	}

	log.Info("Storefront service stopped gracefully")
}
