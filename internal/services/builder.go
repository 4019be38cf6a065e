package services

import (
	"trip-itinerary-service/internal/domain"
)

// SuggestionBuilder inspects the current itinerary plus one signal source
// and proposes an alternative stop order. Evaluate returns nil when the
// signal has no data, the itinerary is empty, or nothing is flagged:
// "nothing to suggest" is an expected outcome, not an error.
type SuggestionBuilder interface {
	Trigger() domain.Trigger
	Evaluate(stops []domain.Stop, itinerary domain.Itinerary, signals domain.Signals) *domain.Suggestion
}

func stopsByID(stops []domain.Stop) map[string]domain.Stop {
	m := make(map[string]domain.Stop, len(stops))
	for _, s := range stops {
		m[s.ID] = s
	}
	return m
}

func lockedSet(stops []domain.Stop) map[string]bool {
	m := make(map[string]bool, len(stops))
	for _, s := range stops {
		if s.Locked {
			m[s.ID] = true
		}
	}
	return m
}

// reorderFlagged rebuilds the item order with flagged unlocked items ahead
// of (or, with flaggedLast, behind) the other unlocked items. Locked items
// keep their absolute positions. Both partitions preserve their relative
// order.
func reorderFlagged(items []domain.ItineraryItem, flagged map[string]bool, locked map[string]bool, flaggedLast bool) []domain.ItineraryItem {
	var first, second []domain.ItineraryItem
	for _, item := range items {
		if locked[item.StopID] {
			continue
		}
		hit := flagged[item.StopID]
		if hit != flaggedLast {
			first = append(first, item)
		} else {
			second = append(second, item)
		}
	}
	unlocked := append(first, second...)

	out := make([]domain.ItineraryItem, 0, len(items))
	next := 0
	for _, item := range items {
		if locked[item.StopID] {
			out = append(out, item)
			continue
		}
		out = append(out, unlocked[next])
		next++
	}
	return out
}

func sameOrder(a, b []domain.ItineraryItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].StopID != b[i].StopID {
			return false
		}
	}
	return true
}

// resequence re-walks the clock over a reordered item list. Each item keeps
// its duration and the travel minutes it carried, which approximates the
// real travel legs without consulting the provider; applying the suggestion
// recomputes exact times. Items pushed past midnight clamp at 23:59, so a
// clamped End no longer encodes the item's full duration; the trip-end
// overflow has already been reported as a plan warning.
func resequence(items []domain.ItineraryItem, anchorMin int) []domain.ItineraryItem {
	out := make([]domain.ItineraryItem, len(items))
	clock := anchorMin

	for i, item := range items {
		startMin, err1 := domain.ParseClock(item.Start)
		endMin, err2 := domain.ParseClock(item.End)
		if err1 != nil || err2 != nil {
			out[i] = item
			continue
		}
		duration := endMin - startMin

		start := clock + item.TravelFromPrevMin
		end := start + duration

		item.Start = domain.FormatClock(start)
		item.End = domain.FormatClock(end)
		out[i] = item
		clock = end
	}
	return out
}

// planAnchor recovers the trip's running-clock origin from the first item.
func planAnchor(items []domain.ItineraryItem) int {
	if len(items) == 0 {
		return 0
	}
	startMin, err := domain.ParseClock(items[0].Start)
	if err != nil {
		return 0
	}
	return startMin - items[0].TravelFromPrevMin
}

func copyItems(items []domain.ItineraryItem) []domain.ItineraryItem {
	return append([]domain.ItineraryItem(nil), items...)
}
