package events

import "context"

// NopSink discards all events. Used when no delivery transport is
// configured.
type NopSink struct{}

func (NopSink) Publish(ctx context.Context, tripID string, event string, payload any) error {
	return nil
}
