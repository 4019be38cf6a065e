package signals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"trip-itinerary-service/internal/domain"
)

// RedisSignalStore keeps the latest signal per trip and type in Redis so
// multiple service instances observe the same feed.
type RedisSignalStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedisSignalStore(rdb *goredis.Client, ttl time.Duration) *RedisSignalStore {
	return &RedisSignalStore{rdb: rdb, ttl: ttl}
}

func signalKey(tripID, signalType string) string {
	return "trip:" + tripID + ":signal:" + signalType
}

func (s *RedisSignalStore) Put(ctx context.Context, tripID string, signalType string, value any) error {
	if s == nil || s.rdb == nil {
		return errors.New("signal store: redis client is nil")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("signal store: marshal %s signal: %w", signalType, err)
	}

	if err := s.rdb.Set(ctx, signalKey(tripID, signalType), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("signal store: set %s signal: %w", signalType, err)
	}
	return nil
}

func (s *RedisSignalStore) Weather(ctx context.Context, tripID string) (*domain.WeatherSignal, error) {
	var out domain.WeatherSignal
	ok, err := s.get(ctx, tripID, domain.SignalWeather, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

func (s *RedisSignalStore) Crowd(ctx context.Context, tripID string) (*domain.CrowdSignal, error) {
	var out domain.CrowdSignal
	ok, err := s.get(ctx, tripID, domain.SignalCrowd, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

func (s *RedisSignalStore) Transit(ctx context.Context, tripID string) (*domain.TransitSignal, error) {
	var out domain.TransitSignal
	ok, err := s.get(ctx, tripID, domain.SignalTransit, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

func (s *RedisSignalStore) Community(ctx context.Context, tripID string) (*domain.CommunitySignal, error) {
	var out domain.CommunitySignal
	ok, err := s.get(ctx, tripID, domain.SignalCommunity, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// get returns false without error when the trip has no signal of the type.
func (s *RedisSignalStore) get(ctx context.Context, tripID, signalType string, dst any) (bool, error) {
	if s == nil || s.rdb == nil {
		return false, errors.New("signal store: redis client is nil")
	}

	raw, err := s.rdb.Get(ctx, signalKey(tripID, signalType)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("signal store: get %s signal: %w", signalType, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("signal store: decode %s signal: %w", signalType, err)
	}
	return true, nil
}
