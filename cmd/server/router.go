package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scoring-api/internal/api"
	apiMiddleware "github.com/phrazzld/scoring-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Metrics)
	r.Use(apiMiddleware.Recover(app.logger))
	if limit := app.config.Server.RateLimit; limit > 0 {
		r.Use(apiMiddleware.RateLimit(rate.NewLimiter(rate.Limit(limit), app.config.Server.RateBurst)))
	}

	methodHandler := api.NewMethodHandler(app.dispatcher, app.logger)

	r.Post("/method", methodHandler.Method)
	r.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	return r
}
