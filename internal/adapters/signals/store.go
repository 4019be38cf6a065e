package signals

import (
	"context"

	"trip-itinerary-service/internal/ports"
)

// Store is a SignalSource the host can also write to. Signals are
// trip-scoped and last-write-wins per type; no history is kept.
type Store interface {
	ports.SignalSource

	// Put replaces the trip's latest signal of the given type. value must
	// be one of the domain signal structs matching signalType.
	Put(ctx context.Context, tripID string, signalType string, value any) error
}
