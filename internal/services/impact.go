package services

import "trip-itinerary-service/internal/domain"

// Trigger-specific benefit magnitudes. These are heuristic scoring-policy
// placeholders, not physical calculations; tune per deployment.
const (
	weatherRiskReducedPct  = 40
	crowdReducedPct        = 35
	transitDelayAvoidedMin = 12
)

// Confidence scoring policy.
const (
	confidenceBase        = 0.55
	confidenceTravelBonus = 0.10
	confidenceDelayBonus  = 0.10
	confidenceChangeCost  = 0.05
	confidenceMin         = 0.30
	confidenceMax         = 0.95
)

// ComputeImpact quantifies the benefit of replacing the before plan with
// the after plan for the given trigger.
func ComputeImpact(before, after []domain.ItineraryItem, trigger domain.Trigger) domain.Impact {
	saved := totalTravelMin(before) - totalTravelMin(after)
	if saved < 0 {
		saved = 0
	}

	impact := domain.Impact{TravelSavedMin: saved}
	switch trigger {
	case domain.TriggerWeather:
		impact.RiskReducedPct = weatherRiskReducedPct
	case domain.TriggerCrowds:
		impact.CrowdReducedPct = crowdReducedPct
	case domain.TriggerTransit, domain.TriggerTraffic:
		impact.DelayAvoidedMin = transitDelayAvoidedMin
	}
	return impact
}

// ComputeConfidence derives a confidence score from the impact and the
// number of moved/swapped entries. More disruption lowers confidence;
// meaningful travel or delay savings raise it.
func ComputeConfidence(impact domain.Impact, numChanges int) float64 {
	c := confidenceBase
	if impact.TravelSavedMin >= 10 {
		c += confidenceTravelBonus
	}
	if impact.DelayAvoidedMin >= 10 {
		c += confidenceDelayBonus
	}
	c -= confidenceChangeCost * float64(numChanges)

	if c < confidenceMin {
		return confidenceMin
	}
	if c > confidenceMax {
		return confidenceMax
	}
	return c
}

func totalTravelMin(items []domain.ItineraryItem) int {
	total := 0
	for _, item := range items {
		total += item.TravelFromPrevMin
	}
	return total
}
