package handlers

import (
	"net/http"

	"trip-itinerary-service/internal/platform/logger"
)

// Health provides a minimal liveness check endpoint.
func Health(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
