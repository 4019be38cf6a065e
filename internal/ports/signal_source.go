package ports

import (
	"context"

	"trip-itinerary-service/internal/domain"
)

// Port: read-only access to the latest disruption signals for a trip.
// Each accessor returns (nil, nil) when the source has no data; absence is
// not an error.
type SignalSource interface {
	Weather(ctx context.Context, tripID string) (*domain.WeatherSignal, error)
	Crowd(ctx context.Context, tripID string) (*domain.CrowdSignal, error)
	Transit(ctx context.Context, tripID string) (*domain.TransitSignal, error)
	Community(ctx context.Context, tripID string) (*domain.CommunitySignal, error)
}
