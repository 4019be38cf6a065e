package services

import (
	"fmt"

	"trip-itinerary-service/internal/domain"
)

// ComputePlanDiff produces the human-readable delta between two itinerary
// versions: which stops moved in time and which adjacent stops swapped
// positions.
func ComputePlanDiff(before, after []domain.ItineraryItem) domain.PlanDiff {
	afterByID := make(map[string]domain.ItineraryItem, len(after))
	for _, item := range after {
		afterByID[item.StopID] = item
	}

	var diff domain.PlanDiff

	for _, b := range before {
		a, ok := afterByID[b.StopID]
		if !ok || a.Start == b.Start {
			continue
		}
		diff.Moved = append(diff.Moved, domain.MovedStop{
			Name: b.Name,
			From: b.Start,
			To:   a.Start,
		})
	}

	// Adjacent positions holding each other's counterpart are a swap.
	// Deduplicate by place-name pair so a swap is reported once.
	seenPairs := make(map[string]bool)
	limit := len(before)
	if len(after) < limit {
		limit = len(after)
	}
	for i := 0; i+1 < limit; i++ {
		if before[i].StopID == after[i+1].StopID && before[i+1].StopID == after[i].StopID {
			key := pairKey(before[i].Name, before[i+1].Name)
			if seenPairs[key] {
				continue
			}
			seenPairs[key] = true
			diff.Swapped = append(diff.Swapped, domain.SwappedPair{
				A: before[i].Name,
				B: before[i+1].Name,
			})
		}
	}

	diff.Summary = summarize(diff)
	return diff
}

// summarize prefers reporting swaps over moves when both are present.
func summarize(diff domain.PlanDiff) string {
	switch {
	case len(diff.Swapped) > 0:
		return fmt.Sprintf("%d stop pair(s) swapped", len(diff.Swapped))
	case len(diff.Moved) > 0:
		return fmt.Sprintf("%d stop(s) moved", len(diff.Moved))
	default:
		return "No changes"
	}
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
