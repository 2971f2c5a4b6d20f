package httputil

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorBody is the tagged error object nested under `error` in responses.
type ErrorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondTaggedError writes the standard error envelope with a stable code
// and optional context details.
func RespondTaggedError(w http.ResponseWriter, status int, code, message string, details map[string]any) {
	RespondJSON(w, status, ErrorResponse{
		Error: ErrorBody{
			Code:      code,
			Message:   message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Details:   details,
		},
	})
}

// RespondError writes a tagged error without details.
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondTaggedError(w, status, code, message, nil)
}
