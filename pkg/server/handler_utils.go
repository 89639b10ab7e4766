package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/getzep/zep-extract/pkg/models"
)

var validate = validator.New()

// APIError represents an error response.
type APIError struct {
	Message string `json:"message"`
}

// encodeJSON encodes data into JSON and writes it to the response writer.
func encodeJSON(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(data)
}

// decodeJSON decodes a JSON request body into the provided data struct.
func decodeJSON(r *http.Request, data interface{}) error {
	return json.NewDecoder(r.Body).Decode(data)
}

// renderError renders an error response as an APIError.
func renderError(w http.ResponseWriter, err error, status int) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		status = http.StatusRequestEntityTooLarge
	}

	switch {
	case status >= http.StatusInternalServerError:
		log.Error(err)
	case status != http.StatusNotFound:
		log.Debug(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(APIError{Message: err.Error()}); encErr != nil {
		log.Errorf("error encoding error response: %v", encErr)
	}
}

// extractErrorStatus maps extraction errors onto HTTP status codes.
func extractErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrRecognition):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrCompletionTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, models.ErrCompletionUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
