package handlers

import (
	"errors"
	"net/http"
	"strings"

	"trip-itinerary-service/internal/api/dto"
	"trip-itinerary-service/internal/domain"
	"trip-itinerary-service/internal/platform/logger"
	"trip-itinerary-service/internal/ports"
)

type TripHandler struct {
	Log  *logger.Logger
	Repo ports.TripRepository
}

// Create registers or updates a trip's planning parameters.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.TripID) == "" {
		writeError(h.Log, w, r, http.StatusBadRequest, "trip_id is required")
		return
	}
	if _, err := domain.ParseClock(req.StartClock); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "start_clock must be HH:MM")
		return
	}
	if _, err := domain.ParseClock(req.EndClock); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "end_clock must be HH:MM")
		return
	}

	mode := domain.TransportMode(req.Mode)
	switch mode {
	case domain.ModeDriving, domain.ModeWalking, domain.ModeTransit:
	case "":
		mode = domain.ModeDriving
	default:
		writeError(h.Log, w, r, http.StatusBadRequest, "mode must be driving, walking or transit")
		return
	}

	trip := domain.Trip{
		TripID:        req.TripID,
		Name:          req.Name,
		StartClock:    req.StartClock,
		EndClock:      req.EndClock,
		Mode:          mode,
		StartLocation: req.StartLocation,
	}

	if err := h.Repo.SaveTrip(r.Context(), trip); err != nil {
		h.Log.Error("save trip failed", "trip_id", req.TripID, "err", err)
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, trip)
}

// ReplaceStops swaps the trip's full stop list. Replacement is wholesale,
// not an incremental merge.
func (h *TripHandler) ReplaceStops(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")

	var req dto.ReplaceStopsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	stops := make([]domain.Stop, 0, len(req.Stops))
	for _, s := range req.Stops {
		if strings.TrimSpace(s.ID) == "" {
			writeError(h.Log, w, r, http.StatusBadRequest, "every stop needs an id")
			return
		}
		if s.DurationMin <= 0 {
			writeError(h.Log, w, r, http.StatusBadRequest, "every stop needs a positive duration_min")
			return
		}
		stops = append(stops, s.ToDomain())
	}

	if _, err := h.Repo.GetTrip(r.Context(), tripID); err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(h.Log, w, r, http.StatusNotFound, "trip not found")
			return
		}
		h.Log.Error("get trip failed", "trip_id", tripID, "err", err)
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Repo.ReplaceStops(r.Context(), tripID, stops); err != nil {
		h.Log.Error("replace stops failed", "trip_id", tripID, "err", err)
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, map[string]int{"stops": len(stops)})
}

// ListStops returns the trip's current stop list.
func (h *TripHandler) ListStops(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")

	stops, err := h.Repo.GetStops(r.Context(), tripID)
	if err != nil {
		h.Log.Error("get stops failed", "trip_id", tripID, "err", err)
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, map[string]any{"stops": stops})
}
