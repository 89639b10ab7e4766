package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/pkg/models"
)

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Usage   string `json:"usage"`
}

// RootHandler describes the service.
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := RootResponse{
			Message: "zep-extract entity and tag extraction service",
			Version: config.VersionString,
			Usage:   `POST /extract with JSON {"text": "..."}`,
		}
		if err := encodeJSON(w, resp); err != nil {
			renderError(w, err, http.StatusInternalServerError)
		}
	}
}

// ExtractHandler handles POST /extract. Errors map to 400 (invalid input),
// 500 (recognition), 502 and 504 (tag generation under the fail policy).
func ExtractHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ExtractRequest
		if err := decodeJSON(r, &req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				renderError(w, err, http.StatusRequestEntityTooLarge)
				return
			}
			renderError(w, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			renderError(w, models.NewInvalidInputError("text must be non-empty"), http.StatusBadRequest)
			return
		}

		resp, err := appState.Extractor.Extract(r.Context(), req.Text)
		if err != nil {
			renderError(w, err, extractErrorStatus(err))
			return
		}

		if err := encodeJSON(w, resp); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
