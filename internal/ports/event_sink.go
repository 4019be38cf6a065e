package ports

import "context"

// Port: push generated suggestions and itinerary versions to subscribers.
// The core has no knowledge of the transport behind it.
type EventSink interface {
	Publish(ctx context.Context, tripID string, event string, payload any) error
}
