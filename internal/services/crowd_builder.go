package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-itinerary-service/internal/domain"
)

const (
	// Live busyness at or above this level flags a place on its own.
	crowdBusyThreshold = 85

	// Items within this many hours of a predicted peak are flagged.
	// Peak comparison is hour-granularity only.
	crowdPeakWindowHours = 1
)

// CrowdBuilder shifts visits to flagged-busy places ahead of the other
// flexible stops, before the crowds build.
type CrowdBuilder struct{}

func (CrowdBuilder) Trigger() domain.Trigger { return domain.TriggerCrowds }

func (CrowdBuilder) Evaluate(stops []domain.Stop, itinerary domain.Itinerary, signals domain.Signals) *domain.Suggestion {
	crowd := signals.Crowd
	if crowd == nil || len(crowd.Levels) == 0 || len(itinerary.Items) == 0 {
		return nil
	}

	levels := make(map[string]domain.CrowdLevel, len(crowd.Levels))
	for _, l := range crowd.Levels {
		levels[l.StopID] = l
	}

	flagged := make(map[string]bool)
	var crowdedNames []string
	for _, item := range itinerary.Items {
		level, ok := levels[item.StopID]
		if !ok {
			continue
		}
		if level.Busyness >= crowdBusyThreshold || itemNearPeak(item, level.PeakHours) {
			flagged[item.StopID] = true
			crowdedNames = append(crowdedNames, item.Name)
		}
	}
	if len(flagged) == 0 {
		return nil
	}

	before := copyItems(itinerary.Items)
	after := reorderFlagged(before, flagged, lockedSet(stops), false)
	if sameOrder(before, after) {
		return nil
	}
	after = resequence(after, planAnchor(before))

	reasons := []string{
		fmt.Sprintf("High crowding expected at %s", strings.Join(crowdedNames, ", ")),
		fmt.Sprintf("%d visit(s) shifted earlier to beat the crowds", len(flagged)),
	}

	return &domain.Suggestion{
		ID:        uuid.NewString(),
		TripID:    itinerary.TripID,
		Kind:      domain.KindShift,
		Trigger:   domain.TriggerCrowds,
		Reasons:   reasons,
		Before:    before,
		After:     after,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// itemNearPeak compares item hours against predicted peak hours, ignoring
// minutes on both sides.
func itemNearPeak(item domain.ItineraryItem, peakHours []string) bool {
	startMin, err1 := domain.ParseClock(item.Start)
	endMin, err2 := domain.ParseClock(item.End)
	if err1 != nil || err2 != nil {
		return false
	}
	startHour := startMin / 60
	endHour := endMin / 60

	for _, p := range peakHours {
		peakMin, err := domain.ParseClock(p)
		if err != nil {
			continue
		}
		peakHour := peakMin / 60
		if absInt(startHour-peakHour) <= crowdPeakWindowHours || absInt(endHour-peakHour) <= crowdPeakWindowHours {
			return true
		}
	}
	return false
}
