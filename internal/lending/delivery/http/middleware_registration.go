package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// MiddlewareConfig holds middleware configuration
type MiddlewareConfig struct {
	EnableLogging bool
	EnableTracing bool
	RateLimiter   *RateLimiter
}

// DefaultMiddlewareConfig returns default middleware configuration.
// rateLimiter may be nil when no Redis backend is configured.
func DefaultMiddlewareConfig(rateLimiter *RateLimiter) MiddlewareConfig {
	return MiddlewareConfig{
		EnableLogging: true,
		EnableTracing: true,
		RateLimiter:   rateLimiter,
	}
}

// RegisterMiddlewares registers all middlewares to the router
func RegisterMiddlewares(router *mux.Router, config MiddlewareConfig) {
	// Request ID first so every later stage can log it
	router.Use(RequestIDMiddleware)

	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return TracingMiddleware("http-request", next)
		})
	}

	if config.EnableLogging {
		router.Use(LoggingMiddleware)
	}

	if config.RateLimiter != nil {
		router.Use(config.RateLimiter.Middleware)
	}
}
