package handlers

import (
	"errors"
	"net/http"

	"trip-itinerary-service/internal/api/dto"
	"trip-itinerary-service/internal/platform/logger"
	"trip-itinerary-service/internal/ports"
	"trip-itinerary-service/internal/services"
)

type ItineraryHandler struct {
	Log  *logger.Logger
	Repo ports.TripRepository
	Svc  *services.ReplanService
}

// Generate builds a fresh itinerary version for the trip's current stops.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")

	itinerary, warnings, err := h.Svc.Generate(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(h.Log, w, r, http.StatusNotFound, "trip not found")
			return
		}
		h.Log.Error("generate itinerary failed", "trip_id", tripID, "err", err)
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.ItineraryResponse{Itinerary: itinerary, Warnings: warnings})
}

// Latest returns the most recent itinerary version.
func (h *ItineraryHandler) Latest(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")

	itinerary, ok, err := h.Repo.GetLatestItinerary(r.Context(), tripID)
	if err != nil {
		h.Log.Error("get latest itinerary failed", "trip_id", tripID, "err", err)
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if !ok {
		writeError(h.Log, w, r, http.StatusNotFound, "trip has no itinerary yet")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.ItineraryResponse{Itinerary: itinerary})
}

// Versions returns the trip's full itinerary version history.
func (h *ItineraryHandler) Versions(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")

	versions, err := h.Repo.ListItineraryVersions(r.Context(), tripID)
	if err != nil {
		h.Log.Error("list itinerary versions failed", "trip_id", tripID, "err", err)
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.VersionListResponse{Versions: versions})
}
