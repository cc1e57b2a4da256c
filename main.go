package main

import (
	"context"
	"os"

	api "watches-backend/cmd/api"
	analyticsRepo "watches-backend/internal/analytics/repository"
	analyticsUsecase "watches-backend/internal/analytics/usecase"
	authdomain "watches-backend/internal/auth/domain"
	authRepo "watches-backend/internal/auth/repository"
	authUsecase "watches-backend/internal/auth/usecase"
	catalogdomain "watches-backend/internal/catalog/domain"
	catalogRepo "watches-backend/internal/catalog/repository"
	catalogUsecase "watches-backend/internal/catalog/usecase"
	orderdomain "watches-backend/internal/order/domain"
	orderRepo "watches-backend/internal/order/repository"
	"watches-backend/internal/order/scheduler"
	orderUsecase "watches-backend/internal/order/usecase"
	"watches-backend/pkg/cache"
	"watches-backend/pkg/config"
	"watches-backend/pkg/database"
	"watches-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("Unknown LOG_LEVEL %q, keeping %s", cfg.LogLevel, log.GetLevel())
	}
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&catalogdomain.DeliveryService{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	m := metrics.New()

	// The board feed cache is optional; without redis every board load hits postgres.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Printf("[WARN] Redis unavailable, board cache disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Printf("Board cache enabled (ttl %s)", cfg.BoardCacheTTL)
		}
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	orderRepository := orderRepo.NewCachedRepository(orderRepo.NewGormOrderRepository(db), redisClient, cfg.BoardCacheTTL, m)
	catalogRepository := catalogRepo.NewCatalogRepository(db)
	analyticsRepository := analyticsRepo.NewAnalyticsRepository(db)

	if redisClient != nil {
		warmer := scheduler.NewBoardWarmer(orderRepository, cfg.BoardCacheTTL)
		warmer.Start()
		defer warmer.Stop()
	}

	// Initialize use cases (dependency injection)
	handler := api.NewHandler(
		authUsecase.NewAuthUsecase(userRepo, cfg),
		orderUsecase.NewOrderUsecase(orderRepository, catalogRepository, m),
		catalogUsecase.NewCatalogUsecase(catalogRepository),
		analyticsUsecase.NewAnalyticsUsecase(analyticsRepository),
		m,
		cfg,
	)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
