package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/wizallet/wizallet-be/internal/models"
)

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError translates an error into its HTTP response. Expected failures
// carry their own status; anything else is logged and answered with a generic
// 500 so store internals never leak to the caller.
func respondError(w http.ResponseWriter, err error) {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		respondJSON(w, apiErr.Status, apiErr)
		return
	}
	log.Error().Err(err).Msg("Unexpected error handling request")
	respondJSON(w, http.StatusInternalServerError, models.NewInternalError())
}
