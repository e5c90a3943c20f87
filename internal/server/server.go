package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"ethnikart/internal/config"
	"ethnikart/internal/keyvalue"
	custommiddleware "ethnikart/internal/middleware"
	"ethnikart/internal/repository"
	"ethnikart/internal/service"
	"ethnikart/internal/session"
	"ethnikart/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	writer keyvalue.Writer
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	registry := prometheus.NewRegistry()
	metrics := custommiddleware.NewMetrics(registry)
	router.Use(metrics.Middleware())

	// Redis backs the session mirror and the rate limiter. Without it the
	// service still starts, on an in-process mirror and no limiter.
	var redisClient *redis.Client
	var kv keyvalue.Store
	if redisClient = keyvalue.NewRedisClient(cfg.Redis); redisClient != nil {
		kv = keyvalue.NewRedisStore(redisClient)
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 300,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	} else {
		logger.Warn("Redis not configured; session state will not survive restarts")
		kv = keyvalue.NewMemoryStore()
	}

	writer := keyvalue.NewDebouncedWriter(kv, 200*time.Millisecond, logger)
	sessions := session.NewManager(kv, writer, logger)
	router.Use(sessions.Middleware())

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	adminService := service.NewAdminService(cfg.Admin)
	checkoutService := service.NewCheckoutService(orderRepo, cfg.Payment, cfg.Checkout.TaxRate)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productRepo, categoryRepo, logger)
	cartHandler := transport.NewCartHandler(logger)
	favouritesHandler := transport.NewFavouritesHandler(logger)
	adminHandler := transport.NewAdminHandler(adminService, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, logger)

	adminMiddleware := custommiddleware.AdminAuthMiddleware(adminService, logger)

	// Register routes
	productHandler.RegisterRoutes(router, adminMiddleware)
	cartHandler.RegisterRoutes(router)
	favouritesHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		writer: writer,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Flush any batched session writes before the process exits.
	if err := s.writer.Close(); err != nil {
		s.logger.Error("Failed to flush session state", zap.Error(err))
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
