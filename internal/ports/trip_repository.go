package ports

import (
	"context"
	"errors"

	"trip-itinerary-service/internal/domain"
)

// ErrTripNotFound is returned when a trip identifier is unknown.
var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for trip, stop and itinerary-version persistence.
// The core never owns storage; it reads inputs here and hands back new
// itinerary versions for the host to keep.
type TripRepository interface {
	// GetTrip returns the trip's planning parameters.
	GetTrip(ctx context.Context, tripID string) (domain.Trip, error)

	// SaveTrip inserts or updates a trip's planning parameters.
	SaveTrip(ctx context.Context, trip domain.Trip) error

	// GetStops returns the trip's stops in their current order.
	GetStops(ctx context.Context, tripID string) ([]domain.Stop, error)

	// ReplaceStops replaces the trip's full stop list (full-set replace,
	// not incremental merge).
	ReplaceStops(ctx context.Context, tripID string, stops []domain.Stop) error

	// GetLatestItinerary returns the most recently appended itinerary
	// version, or false when the trip has none yet.
	GetLatestItinerary(ctx context.Context, tripID string) (domain.Itinerary, bool, error)

	// AppendItineraryVersion stores a new immutable version and returns it
	// with the assigned version number.
	AppendItineraryVersion(ctx context.Context, tripID string, it domain.Itinerary) (domain.Itinerary, error)

	// ListItineraryVersions returns all versions in ascending order.
	ListItineraryVersions(ctx context.Context, tripID string) ([]domain.Itinerary, error)
}
