package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/scoring-api/internal/api/shared"
	"github.com/phrazzld/scoring-api/internal/platform/logger"
	"github.com/phrazzld/scoring-api/internal/redact"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var panicRecoveries = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "scoring_panic_recoveries_total",
		Help: "Total number of panics recovered in HTTP handlers",
	},
)

// Recover answers a panicking handler with the 500 envelope and logs the
// panic value. http.ErrAbortHandler is re-raised so the server can drop the
// connection.
func Recover(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				panicRecoveries.Inc()
				logger.FromContextOrDefault(r.Context(), base).Error("panic recovered",
					slog.String("error", redact.String(fmt.Sprintf("%v", rec))),
					slog.String("path", r.URL.Path),
					slog.String("stack", redact.String(string(debug.Stack()))))

				shared.RespondWithEnvelope(w, r, http.StatusInternalServerError, nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
