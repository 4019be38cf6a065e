package handlers

import (
	"errors"
	"net/http"

	"trip-itinerary-service/internal/api/dto"
	"trip-itinerary-service/internal/domain"
	"trip-itinerary-service/internal/platform/logger"
	"trip-itinerary-service/internal/services"
)

type SuggestionHandler struct {
	Log *logger.Logger
	Svc *services.ReplanService
}

// List returns the trip's suggestions, optionally filtered with
// ?status=pending|accepted|rejected|applied.
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")
	status := domain.SuggestionStatus(r.URL.Query().Get("status"))

	switch status {
	case "", domain.StatusPending, domain.StatusAccepted, domain.StatusRejected, domain.StatusApplied:
	default:
		writeError(h.Log, w, r, http.StatusBadRequest, "unknown status filter")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.SuggestionListResponse{
		Suggestions: h.Svc.Suggestions(tripID, status),
	})
}

// Accept marks a pending suggestion accepted and reinforces its trigger
// weight.
func (h *SuggestionHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, true)
}

// Reject marks a pending suggestion rejected and dampens its trigger
// weight.
func (h *SuggestionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, false)
}

func (h *SuggestionHandler) resolve(w http.ResponseWriter, r *http.Request, accepted bool) {
	tripID := r.PathValue("id")
	suggestionID := r.PathValue("sid")

	sug, err := h.Svc.Resolve(r.Context(), tripID, suggestionID, accepted)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatusTransition):
			writeError(h.Log, w, r, http.StatusConflict, "suggestion is not pending")
		case errors.Is(err, services.ErrSuggestionNotFound):
			writeError(h.Log, w, r, http.StatusNotFound, "suggestion not found")
		default:
			h.Log.Error("resolve suggestion failed", "trip_id", tripID, "suggestion_id", suggestionID, "err", err)
			writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.SuggestionResponse{Suggestion: sug})
}

// Apply turns an accepted suggestion into a new itinerary version.
func (h *SuggestionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")
	suggestionID := r.PathValue("sid")

	itinerary, warnings, err := h.Svc.Apply(r.Context(), tripID, suggestionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatusTransition):
			writeError(h.Log, w, r, http.StatusConflict, "suggestion must be accepted before applying")
		case errors.Is(err, services.ErrSuggestionNotFound):
			writeError(h.Log, w, r, http.StatusNotFound, "suggestion not found")
		default:
			h.Log.Error("apply suggestion failed", "trip_id", tripID, "suggestion_id", suggestionID, "err", err)
			writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.ItineraryResponse{Itinerary: itinerary, Warnings: warnings})
}

// Weights exposes the trip's adaptive feedback weights.
func (h *SuggestionHandler) Weights(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")
	writeJSON(h.Log, w, r, http.StatusOK, dto.WeightsResponse{Weights: h.Svc.Weights(tripID)})
}
