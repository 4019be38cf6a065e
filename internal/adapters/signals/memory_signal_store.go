package signals

import (
	"context"
	"fmt"
	"sync"

	"trip-itinerary-service/internal/domain"
)

// MemorySignalStore is the in-process Store used when Redis is not
// configured, and in tests. Safe for concurrent use.
type MemorySignalStore struct {
	mu sync.RWMutex
	m  map[string]domain.Signals
}

func NewMemorySignalStore() *MemorySignalStore {
	return &MemorySignalStore{m: make(map[string]domain.Signals)}
}

func (s *MemorySignalStore) Put(ctx context.Context, tripID string, signalType string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sig := s.m[tripID]
	switch signalType {
	case domain.SignalWeather:
		v, ok := value.(*domain.WeatherSignal)
		if !ok {
			return fmt.Errorf("signal store: %T is not a weather signal", value)
		}
		sig.Weather = v
	case domain.SignalCrowd:
		v, ok := value.(*domain.CrowdSignal)
		if !ok {
			return fmt.Errorf("signal store: %T is not a crowd signal", value)
		}
		sig.Crowd = v
	case domain.SignalTransit:
		v, ok := value.(*domain.TransitSignal)
		if !ok {
			return fmt.Errorf("signal store: %T is not a transit signal", value)
		}
		sig.Transit = v
	case domain.SignalCommunity:
		v, ok := value.(*domain.CommunitySignal)
		if !ok {
			return fmt.Errorf("signal store: %T is not a community signal", value)
		}
		sig.Community = v
	default:
		return fmt.Errorf("signal store: unknown signal type %q", signalType)
	}
	s.m[tripID] = sig
	return nil
}

func (s *MemorySignalStore) Weather(ctx context.Context, tripID string) (*domain.WeatherSignal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[tripID].Weather, nil
}

func (s *MemorySignalStore) Crowd(ctx context.Context, tripID string) (*domain.CrowdSignal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[tripID].Crowd, nil
}

func (s *MemorySignalStore) Transit(ctx context.Context, tripID string) (*domain.TransitSignal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[tripID].Transit, nil
}

func (s *MemorySignalStore) Community(ctx context.Context, tripID string) (*domain.CommunitySignal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[tripID].Community, nil
}
