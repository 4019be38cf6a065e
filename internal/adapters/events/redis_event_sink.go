package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"trip-itinerary-service/internal/platform/logger"
)

// DefaultChannel is the pub/sub channel itinerary and suggestion events go
// out on.
const DefaultChannel = "itinerary-events"

// Envelope is the wire format for published events.
type Envelope struct {
	TripID  string          `json:"trip_id"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	SentAt  time.Time       `json:"sent_at"`
}

// RedisEventSink publishes events to a Redis pub/sub channel for the push
// delivery layer to forward to viewers.
type RedisEventSink struct {
	rdb     *goredis.Client
	channel string
	log     *logger.Logger
}

func NewRedisEventSink(rdb *goredis.Client, channel string, log *logger.Logger) *RedisEventSink {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisEventSink{rdb: rdb, channel: channel, log: log}
}

func (s *RedisEventSink) Publish(ctx context.Context, tripID string, event string, payload any) error {
	if s == nil || s.rdb == nil {
		return errors.New("event sink: redis client is nil")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("event sink: marshal %s payload: %w", event, err)
	}

	raw, err := json.Marshal(Envelope{
		TripID:  tripID,
		Event:   event,
		Payload: body,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("event sink: marshal envelope: %w", err)
	}

	if err := s.rdb.Publish(ctx, s.channel, raw).Err(); err != nil {
		return fmt.Errorf("event sink: publish %s: %w", event, err)
	}

	s.log.Debug("event published", "trip_id", tripID, "event", event, "channel", s.channel)
	return nil
}
