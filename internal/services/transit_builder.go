package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"trip-itinerary-service/internal/domain"
)

// DefaultTransitDelayThresholdMin is the delay below which transit alerts
// are ignored.
const DefaultTransitDelayThresholdMin = 10

// How many of the leading flexible stops get pushed to the end of the day
// when significant delays are active. A buffer-first heuristic rather than
// a targeted reorder: the traveler absorbs the delay on stops that were
// about to start.
const transitBufferStops = 2

// TransitBuilder reacts to line delay alerts by deferring the first
// flexible stops.
type TransitBuilder struct {
	ThresholdMin int
}

func NewTransitBuilder(thresholdMin int) TransitBuilder {
	if thresholdMin <= 0 {
		thresholdMin = DefaultTransitDelayThresholdMin
	}
	return TransitBuilder{ThresholdMin: thresholdMin}
}

func (b TransitBuilder) Trigger() domain.Trigger { return domain.TriggerTransit }

func (b TransitBuilder) Evaluate(stops []domain.Stop, itinerary domain.Itinerary, signals domain.Signals) *domain.Suggestion {
	transit := signals.Transit
	if transit == nil || len(transit.Alerts) == 0 || len(itinerary.Items) == 0 {
		return nil
	}

	var significant []domain.TransitAlert
	for _, a := range transit.Alerts {
		if a.DelayMin >= b.ThresholdMin {
			significant = append(significant, a)
		}
	}
	if len(significant) == 0 {
		return nil
	}

	locked := lockedSet(stops)
	flagged := make(map[string]bool, transitBufferStops)
	for _, item := range itinerary.Items {
		if locked[item.StopID] {
			continue
		}
		flagged[item.StopID] = true
		if len(flagged) == transitBufferStops {
			break
		}
	}
	if len(flagged) == 0 {
		return nil
	}

	before := copyItems(itinerary.Items)
	after := reorderFlagged(before, flagged, locked, true)
	if sameOrder(before, after) {
		return nil
	}
	after = resequence(after, planAnchor(before))

	worst := significant[0]
	for _, a := range significant[1:] {
		if a.DelayMin > worst.DelayMin {
			worst = a
		}
	}
	reasons := []string{
		fmt.Sprintf("%s delayed %d min", worst.Line, worst.DelayMin),
		fmt.Sprintf("Moved %d flexible stop(s) later to buffer transit delays", len(flagged)),
	}
	if worst.Message != "" {
		reasons = append(reasons, worst.Message)
	}

	return &domain.Suggestion{
		ID:        uuid.NewString(),
		TripID:    itinerary.TripID,
		Kind:      domain.KindReorder,
		Trigger:   domain.TriggerTransit,
		Reasons:   reasons,
		Before:    before,
		After:     after,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
