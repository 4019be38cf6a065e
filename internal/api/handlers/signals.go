package handlers

import (
	"net/http"

	"trip-itinerary-service/internal/adapters/signals"
	"trip-itinerary-service/internal/api/dto"
	"trip-itinerary-service/internal/domain"
	"trip-itinerary-service/internal/platform/logger"
	"trip-itinerary-service/internal/services"
)

type SignalHandler struct {
	Log   *logger.Logger
	Store signals.Store
	Svc   *services.ReplanService
}

// Ingest stores the latest signal of the given type (last-write-wins) and
// immediately re-evaluates the suggestion builders against it.
func (h *SignalHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")
	signalType := r.PathValue("type")

	var value any
	switch signalType {
	case domain.SignalWeather:
		var sig domain.WeatherSignal
		if err := decodeBody(r, &sig); err != nil {
			writeError(h.Log, w, r, http.StatusBadRequest, "invalid weather signal body")
			return
		}
		value = &sig
	case domain.SignalCrowd:
		var sig domain.CrowdSignal
		if err := decodeBody(r, &sig); err != nil {
			writeError(h.Log, w, r, http.StatusBadRequest, "invalid crowd signal body")
			return
		}
		value = &sig
	case domain.SignalTransit:
		var sig domain.TransitSignal
		if err := decodeBody(r, &sig); err != nil {
			writeError(h.Log, w, r, http.StatusBadRequest, "invalid transit signal body")
			return
		}
		value = &sig
	case domain.SignalCommunity:
		var sig domain.CommunitySignal
		if err := decodeBody(r, &sig); err != nil {
			writeError(h.Log, w, r, http.StatusBadRequest, "invalid community signal body")
			return
		}
		value = &sig
	default:
		writeError(h.Log, w, r, http.StatusNotFound, "unknown signal type")
		return
	}

	if err := h.Store.Put(r.Context(), tripID, signalType, value); err != nil {
		h.Log.Error("store signal failed", "trip_id", tripID, "type", signalType, "err", err)
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	created, err := h.Svc.Refresh(r.Context(), tripID)
	if err != nil {
		h.Log.Error("suggestion refresh failed", "trip_id", tripID, "err", err)
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.RefreshResponse{Created: created})
}
