// Package respond writes JSON and plain-text responses for the HTTP layer.
package respond

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Messages shared by the API error responses.
const (
	MessageNotFound    = "Not found"
	MessageServerError = "Server error"
)

// JSON writes payload with the given status code
func JSON(w http.ResponseWriter, statusCode int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		statusCode = http.StatusInternalServerError
		body = []byte(`{"error":"` + MessageServerError + `"}`)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(append(body, '\n'))
}

// Error writes {"error": message}
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"error": message})
}

// IsAPI reports whether the request targets the JSON API.
func IsAPI(r *http.Request) bool {
	return r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/")
}

// ServerError answers an unhandled failure: JSON under /api, plain text elsewhere.
func ServerError(w http.ResponseWriter, r *http.Request) {
	if IsAPI(r) {
		Error(w, http.StatusInternalServerError, MessageServerError)
		return
	}
	http.Error(w, MessageServerError, http.StatusInternalServerError)
}
