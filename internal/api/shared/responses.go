package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// SuccessResponse is the envelope of a 200 answer.
type SuccessResponse struct {
	Response any `json:"response"`
	Code     int `json:"code"`
}

// ErrorResponse is the envelope of every other answer.
type ErrorResponse struct {
	Error any `json:"error"`
	Code  int `json:"code"`
}

// errorTexts are the envelope messages used when a handler gives none.
var errorTexts = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusUnprocessableEntity: "Invalid Request",
	http.StatusInternalServerError: "Internal Server Error",
}

// ErrorText returns the default envelope message for an error status code.
func ErrorText(code int) string {
	if text, ok := errorTexts[code]; ok {
		return text
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unknown Error"
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err, "request_id", GetRequestID(r.Context()))
	}
}

// RespondWithEnvelope wraps payload in the response envelope. For 200 the
// payload becomes "response"; otherwise it becomes "error", falling back to
// the default text of the status when payload is nil or empty.
func RespondWithEnvelope(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if status == http.StatusOK {
		RespondWithJSON(w, r, status, SuccessResponse{Response: payload, Code: status})
		return
	}
	RespondWithError(w, r, status, payload)
}

// RespondWithError writes an error envelope.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message any) {
	if message == nil || message == "" {
		message = ErrorText(status)
	}
	RespondWithJSON(w, r, status, ErrorResponse{Error: message, Code: status})
}
