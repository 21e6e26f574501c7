package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scoring-api/internal/api/shared"
	"github.com/phrazzld/scoring-api/internal/platform/logger"
	"github.com/phrazzld/scoring-api/internal/redact"
)

// MethodHandler serves POST /method on top of a Dispatcher.
type MethodHandler struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewMethodHandler creates a new MethodHandler
func NewMethodHandler(dispatcher *Dispatcher, logger *slog.Logger) *MethodHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MethodHandler")
	}

	return &MethodHandler{
		dispatcher: dispatcher,
		logger:     logger.With(slog.String("component", "method_handler")),
	}
}

// Method handles POST /method requests.
// The body must be a JSON object; anything that does not decode is answered
// with 400. Every request is logged once with the diagnostics collected by
// the method handler.
func (h *MethodHandler) Method(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := shared.DecodeBody(r)
	if err != nil {
		log.Info("request handled",
			slog.String("path", r.URL.Path),
			slog.Int("code", http.StatusBadRequest),
			slog.String("error", redact.Error(err)))
		shared.RespondWithEnvelope(w, r, http.StatusBadRequest, nil)
		return
	}

	diag := Diagnostics{}
	payload, code, err := h.dispatcher.Handle(r.Context(), body, diag)
	if err != nil {
		log.Error("unexpected error",
			slog.String("path", r.URL.Path),
			slog.Int("code", http.StatusInternalServerError),
			slog.Any("context", map[string]any(diag)),
			slog.String("error", redact.Error(err)))
		shared.RespondWithEnvelope(w, r, http.StatusInternalServerError, nil)
		return
	}

	log.Info("request handled",
		slog.String("path", r.URL.Path),
		slog.Int("code", code),
		slog.Any("context", map[string]any(diag)))
	shared.RespondWithEnvelope(w, r, code, payload)
}

// NotFound answers unknown paths with the 404 envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithEnvelope(w, r, http.StatusNotFound, nil)
}

// MethodNotAllowed answers known paths requested with the wrong verb.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithEnvelope(w, r, http.StatusMethodNotAllowed, nil)
}
