package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scoring-api/internal/api/shared"
	"github.com/phrazzld/scoring-api/internal/platform/logger"
)

// NewTraceMiddleware tags each request with a request ID taken from the
// X-Request-ID header or generated, and stores a logger carrying it in the
// request context. The ID is echoed in the response header.
// This middleware should be applied early in the middleware chain.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(shared.RequestIDHeader)
			if id == "" {
				id = shared.NewRequestID()
			}

			log := base.With(slog.String("request_id", id))
			ctx := shared.WithRequestID(r.Context(), id)
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
