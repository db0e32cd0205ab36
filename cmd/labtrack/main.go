package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/aidosbek/labtrack/internal/lending"
	httpDelivery "github.com/aidosbek/labtrack/internal/lending/delivery/http"
	"github.com/aidosbek/labtrack/internal/lending/domain"
	"github.com/aidosbek/labtrack/internal/lending/repository"
	"github.com/aidosbek/labtrack/kafka"
	"github.com/aidosbek/labtrack/pkg/database"
	"github.com/aidosbek/labtrack/pkg/logger"
	"github.com/aidosbek/labtrack/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "labtrack")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logLevel := getEnv("LOG_LEVEL", "info")
	logger.Init(serviceName, logLevel, isDevelopment)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting lending service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName, os.Getenv("JAEGER_ENDPOINT"))
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Pick the store backend. Postgres is preferred; when it is not
	// reachable the service runs on the seeded in-memory store so the
	// lab desk keeps working offline.
	store, sqlDB := buildStore()
	if sqlDB != nil {
		defer sqlDB.Close()
	}

	store = repository.NewTracingStore(store)

	// Optional Kafka audit events
	var events httpDelivery.EventPublisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, events disabled")
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	handler, err := lending.InitializeHTTPHandler(store, events)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	if days, err := strconv.Atoi(getEnv("OVERDUE_DAYS_THRESHOLD", "7")); err == nil {
		handler.SetOverdueThreshold(days)
	}

	// Optional Redis-backed rate limiting
	var rateLimiter *httpDelivery.RateLimiter
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		rateLimiter = httpDelivery.NewRateLimiter(redisClient, 100, time.Minute)
		logger.Logger.Info().Str("redis", redisAddr).Msg("Rate limiting enabled")
	}

	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(handler, sqlDB, rateLimiter, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// buildStore connects to Postgres and runs migrations, falling back
// to the seeded in-memory store. The returned *sql.DB is nil for the
// memory backend.
func buildStore() (domain.Store, *sql.DB) {
	if getEnv("DB_BACKEND", "postgres") == "memory" {
		logger.Logger.Info().Msg("Using in-memory store")
		return repository.NewMemoryStoreWithFixtures(), nil
	}

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "labtrack"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Postgres unavailable, using in-memory store")
		return repository.NewMemoryStoreWithFixtures(), nil
	}

	gormStore := repository.NewGormStore(db)
	if err := gormStore.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}

	logger.Logger.Info().Msg("Database initialized successfully")
	return gormStore, sqlDB
}

func startHTTPServer(handler *httpDelivery.LendingHandler, db *sql.DB, rateLimiter *httpDelivery.RateLimiter, port string) {
	router := mux.NewRouter()

	httpDelivery.RegisterMiddlewares(router, httpDelivery.DefaultMiddlewareConfig(rateLimiter))

	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
