package middleware

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/scoring-api/internal/api/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var rateLimitRejects = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "scoring_rate_limit_rejects_total",
		Help: "Total number of requests rejected due to rate limiting",
	},
)

// RateLimit rejects requests with 429 once limiter runs out of tokens.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				rateLimitRejects.Inc()
				w.Header().Set("Retry-After", "1")
				shared.RespondWithEnvelope(w, r, http.StatusTooManyRequests, nil)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", int(limiter.Limit())))
			next.ServeHTTP(w, r)
		})
	}
}
