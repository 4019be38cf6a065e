package services

import (
	"context"
	"fmt"

	"trip-itinerary-service/internal/domain"
	"trip-itinerary-service/internal/platform/logger"
	"trip-itinerary-service/internal/ports"
)

// Event names published through the EventSink.
const (
	EventItineraryUpdated  = "itinerary.updated"
	EventSuggestionCreated = "suggestion.created"
	EventSuggestionUpdated = "suggestion.updated"
)

// ReplanService coordinates itinerary generation and signal-triggered
// replanning: it feeds builder output through the impact scorer and the
// diff engine, deduplicates via the per-trip ledger, and publishes what
// survives.
type ReplanService struct {
	log      *logger.Logger
	repo     ports.TripRepository
	signals  ports.SignalSource
	sink     ports.EventSink
	planner  *Planner
	builders []SuggestionBuilder
	ledgers  *LedgerSet
}

func NewReplanService(
	log *logger.Logger,
	repo ports.TripRepository,
	signals ports.SignalSource,
	sink ports.EventSink,
	planner *Planner,
	builders []SuggestionBuilder,
) *ReplanService {
	return &ReplanService{
		log:      log,
		repo:     repo,
		signals:  signals,
		sink:     sink,
		planner:  planner,
		builders: builders,
		ledgers:  NewLedgerSet(),
	}
}

// Generate builds a fresh itinerary for the trip's current stops and
// appends it as a new version.
func (s *ReplanService) Generate(ctx context.Context, tripID string) (domain.Itinerary, []string, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, nil, fmt.Errorf("generate itinerary: %w", err)
	}
	stops, err := s.repo.GetStops(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, nil, fmt.Errorf("generate itinerary: %w", err)
	}

	res, err := s.planner.BuildItinerary(ctx, trip, stops)
	if err != nil {
		return domain.Itinerary{}, nil, fmt.Errorf("generate itinerary: %w", err)
	}

	stored, err := s.repo.AppendItineraryVersion(ctx, tripID, res.Itinerary)
	if err != nil {
		return domain.Itinerary{}, nil, fmt.Errorf("generate itinerary: append version: %w", err)
	}

	s.publish(ctx, tripID, EventItineraryUpdated, stored)
	return stored, res.Warnings, nil
}

// Refresh runs every builder against the latest itinerary and the current
// signals, returning the suggestions that survived deduplication.
func (s *ReplanService) Refresh(ctx context.Context, tripID string) ([]domain.Suggestion, error) {
	stops, err := s.repo.GetStops(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("refresh suggestions: %w", err)
	}
	latest, ok, err := s.repo.GetLatestItinerary(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("refresh suggestions: %w", err)
	}
	if !ok || len(latest.Items) == 0 {
		return nil, nil
	}

	signals := s.collectSignals(ctx, tripID)
	ledger := s.ledgers.ForTrip(tripID)

	var kept []domain.Suggestion
	for _, b := range s.builders {
		sug := b.Evaluate(stops, latest, signals)
		if sug == nil {
			continue
		}

		sug.TripID = tripID
		sug.Impact = ComputeImpact(sug.Before, sug.After, sug.Trigger)
		diff := ComputePlanDiff(sug.Before, sug.After)
		sug.Diff = &diff
		sug.Confidence = ComputeConfidence(sug.Impact, diff.Changes())

		if !ledger.Add(sug) {
			s.log.Debug("duplicate suggestion dropped",
				"trip_id", tripID, "trigger", sug.Trigger, "kind", sug.Kind)
			continue
		}

		kept = append(kept, *sug)
		s.publish(ctx, tripID, EventSuggestionCreated, *sug)
	}

	return kept, nil
}

// Suggestions lists the trip's stored suggestions, optionally filtered by
// status.
func (s *ReplanService) Suggestions(tripID string, status domain.SuggestionStatus) []domain.Suggestion {
	return s.ledgers.ForTrip(tripID).List(status)
}

// Weights returns the trip's current feedback weights.
func (s *ReplanService) Weights(tripID string) domain.Weights {
	return s.ledgers.ForTrip(tripID).Weights()
}

// Resolve records the traveler's accept/reject decision and adapts the
// trip's trigger weights accordingly.
func (s *ReplanService) Resolve(ctx context.Context, tripID, suggestionID string, accepted bool) (domain.Suggestion, error) {
	next := domain.StatusRejected
	if accepted {
		next = domain.StatusAccepted
	}

	ledger := s.ledgers.ForTrip(tripID)
	sug, err := ledger.SetStatus(suggestionID, next)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("resolve suggestion: %w", err)
	}
	ledger.UpdateWeights(sug.Trigger, accepted)

	s.publish(ctx, tripID, EventSuggestionUpdated, sug)
	return sug, nil
}

// Apply turns an accepted suggestion into a new itinerary version. The
// after-plan fixes the visiting order; times are recomputed by the planner.
func (s *ReplanService) Apply(ctx context.Context, tripID, suggestionID string) (domain.Itinerary, []string, error) {
	ledger := s.ledgers.ForTrip(tripID)
	sug, ok := ledger.Get(suggestionID)
	if !ok {
		return domain.Itinerary{}, nil, fmt.Errorf("apply suggestion: suggestion %q: %w", suggestionID, ErrSuggestionNotFound)
	}
	if sug.Status != domain.StatusAccepted {
		return domain.Itinerary{}, nil, fmt.Errorf(
			"apply suggestion: suggestion %q: %s -> %s: %w",
			suggestionID, sug.Status, domain.StatusApplied, domain.ErrInvalidStatusTransition,
		)
	}

	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, nil, fmt.Errorf("apply suggestion: %w", err)
	}
	stops, err := s.repo.GetStops(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, nil, fmt.Errorf("apply suggestion: %w", err)
	}
	ordered := orderStopsByPlan(stops, sug.After)

	res, err := s.planner.ScheduleOrdered(ctx, trip, ordered)
	if err != nil {
		return domain.Itinerary{}, nil, fmt.Errorf("apply suggestion: %w", err)
	}

	stored, err := s.repo.AppendItineraryVersion(ctx, tripID, res.Itinerary)
	if err != nil {
		return domain.Itinerary{}, nil, fmt.Errorf("apply suggestion: append version: %w", err)
	}

	if _, err := ledger.SetStatus(suggestionID, domain.StatusApplied); err != nil {
		return domain.Itinerary{}, nil, fmt.Errorf("apply suggestion: %w", err)
	}

	s.publish(ctx, tripID, EventItineraryUpdated, stored)
	return stored, res.Warnings, nil
}

// collectSignals pulls each source once. A failing source is logged and
// treated as absent so one provider outage doesn't block the others.
func (s *ReplanService) collectSignals(ctx context.Context, tripID string) domain.Signals {
	var sig domain.Signals
	var err error

	if sig.Weather, err = s.signals.Weather(ctx, tripID); err != nil {
		s.log.Warn("weather signal unavailable", "trip_id", tripID, "err", err)
		sig.Weather = nil
	}
	if sig.Crowd, err = s.signals.Crowd(ctx, tripID); err != nil {
		s.log.Warn("crowd signal unavailable", "trip_id", tripID, "err", err)
		sig.Crowd = nil
	}
	if sig.Transit, err = s.signals.Transit(ctx, tripID); err != nil {
		s.log.Warn("transit signal unavailable", "trip_id", tripID, "err", err)
		sig.Transit = nil
	}
	if sig.Community, err = s.signals.Community(ctx, tripID); err != nil {
		s.log.Warn("community signal unavailable", "trip_id", tripID, "err", err)
		sig.Community = nil
	}

	return sig
}

// publish is best-effort: delivery failures are logged, not surfaced.
func (s *ReplanService) publish(ctx context.Context, tripID, event string, payload any) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Publish(ctx, tripID, event, payload); err != nil {
		s.log.Warn("event publish failed", "trip_id", tripID, "event", event, "err", err)
	}
}

// orderStopsByPlan arranges stops to match a plan's item order. Stops the
// plan doesn't mention keep their relative position at the end.
func orderStopsByPlan(stops []domain.Stop, plan []domain.ItineraryItem) []domain.Stop {
	byID := stopsByID(stops)
	used := make(map[string]bool, len(plan))

	out := make([]domain.Stop, 0, len(stops))
	for _, item := range plan {
		if stop, ok := byID[item.StopID]; ok && !used[item.StopID] {
			out = append(out, stop)
			used[item.StopID] = true
		}
	}
	for _, stop := range stops {
		if !used[stop.ID] {
			out = append(out, stop)
		}
	}
	return out
}
