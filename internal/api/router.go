package api

import (
	"net/http"

	"trip-itinerary-service/internal/adapters/signals"
	"trip-itinerary-service/internal/api/handlers"
	"trip-itinerary-service/internal/platform/logger"
	"trip-itinerary-service/internal/ports"
	"trip-itinerary-service/internal/services"
)

// NewRouter wires all HTTP handlers onto a mux and wraps the whole tree in
// the logging middleware.
func NewRouter(log *logger.Logger, repo ports.TripRepository, store signals.Store, svc *services.ReplanService) http.Handler {
	mux := http.NewServeMux()

	trips := &handlers.TripHandler{Log: log, Repo: repo}
	itineraries := &handlers.ItineraryHandler{Log: log, Repo: repo, Svc: svc}
	sig := &handlers.SignalHandler{Log: log, Store: store, Svc: svc}
	sugg := &handlers.SuggestionHandler{Log: log, Svc: svc}

	mux.HandleFunc("GET /health", handlers.Health(log))

	mux.HandleFunc("POST /trips", trips.Create)
	mux.HandleFunc("PUT /trips/{id}/stops", trips.ReplaceStops)
	mux.HandleFunc("GET /trips/{id}/stops", trips.ListStops)

	mux.HandleFunc("POST /trips/{id}/itinerary", itineraries.Generate)
	mux.HandleFunc("GET /trips/{id}/itinerary", itineraries.Latest)
	mux.HandleFunc("GET /trips/{id}/itinerary/versions", itineraries.Versions)

	mux.HandleFunc("POST /trips/{id}/signals/{type}", sig.Ingest)

	mux.HandleFunc("GET /trips/{id}/suggestions", sugg.List)
	mux.HandleFunc("POST /trips/{id}/suggestions/{sid}/accept", sugg.Accept)
	mux.HandleFunc("POST /trips/{id}/suggestions/{sid}/reject", sugg.Reject)
	mux.HandleFunc("POST /trips/{id}/suggestions/{sid}/apply", sugg.Apply)
	mux.HandleFunc("GET /trips/{id}/weights", sugg.Weights)

	return loggingMiddleware(log, mux)
}
