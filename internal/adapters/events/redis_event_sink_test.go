package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"trip-itinerary-service/internal/platform/logger"
)

func TestRedisEventSinkPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	ctx := context.Background()

	sub := rdb.Subscribe(ctx, DefaultChannel)
	t.Cleanup(func() { sub.Close() })
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	sink := NewRedisEventSink(rdb, "", logger.NewNop())
	if err := sink.Publish(ctx, "t1", "itinerary.updated", map[string]int{"version": 2}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var env Envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if env.TripID != "t1" || env.Event != "itinerary.updated" {
			t.Errorf("envelope = %+v", env)
		}
		var body map[string]int
		if err := json.Unmarshal(env.Payload, &body); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if body["version"] != 2 {
			t.Errorf("payload = %v", body)
		}
		if env.SentAt.IsZero() {
			t.Error("sent_at not set")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestRedisEventSinkNilClient(t *testing.T) {
	sink := NewRedisEventSink(nil, "", logger.NewNop())
	if err := sink.Publish(context.Background(), "t1", "x", nil); err == nil {
		t.Error("expected error for nil client")
	}
}

func TestNopSink(t *testing.T) {
	if err := (NopSink{}).Publish(context.Background(), "t1", "x", nil); err != nil {
		t.Errorf("nop sink publish: %v", err)
	}
}
