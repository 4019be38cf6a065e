package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"trip-itinerary-service/internal/domain"
)

// Outdoor items whose start or end falls within this window of a risk hour
// are considered exposed.
const weatherRiskWindowMin = 30

// WeatherBuilder moves outdoor activities that collide with forecast risk
// hours ahead of the other flexible stops, so they happen before the rain.
type WeatherBuilder struct{}

func (WeatherBuilder) Trigger() domain.Trigger { return domain.TriggerWeather }

func (WeatherBuilder) Evaluate(stops []domain.Stop, itinerary domain.Itinerary, signals domain.Signals) *domain.Suggestion {
	weather := signals.Weather
	if weather == nil || len(weather.RiskHours) == 0 || len(itinerary.Items) == 0 {
		return nil
	}

	riskMins := parseClockList(weather.RiskHours)
	if len(riskMins) == 0 {
		return nil
	}

	byID := stopsByID(stops)
	flagged := make(map[string]bool)
	for _, item := range itinerary.Items {
		stop, ok := byID[item.StopID]
		if !ok || stop.Place.Indoor {
			continue
		}
		if itemNearAny(item, riskMins, weatherRiskWindowMin) {
			flagged[item.StopID] = true
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
		fmt.Sprintf("Rain risk around %s", formatClockRange(riskMins)),
		fmt.Sprintf("%d outdoor activity(ies) moved before the rain window", len(flagged)),
	}
	if weather.Summary != "" {
		reasons = append(reasons, weather.Summary)
	}

	return &domain.Suggestion{
		ID:        uuid.NewString(),
		TripID:    itinerary.TripID,
		Kind:      domain.KindReorder,
		Trigger:   domain.TriggerWeather,
		Reasons:   reasons,
		Before:    before,
		After:     after,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// parseClockList drops malformed entries rather than failing the builder.
func parseClockList(clocks []string) []int {
	out := make([]int, 0, len(clocks))
	for _, c := range clocks {
		m, err := domain.ParseClock(c)
		if err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

func itemNearAny(item domain.ItineraryItem, targets []int, windowMin int) bool {
	startMin, err1 := domain.ParseClock(item.Start)
	endMin, err2 := domain.ParseClock(item.End)
	if err1 != nil || err2 != nil {
		return false
	}
	for _, t := range targets {
		if absInt(startMin-t) <= windowMin || absInt(endMin-t) <= windowMin {
			return true
		}
	}
	return false
}

func formatClockRange(mins []int) string {
	lo, hi := mins[0], mins[0]
	for _, m := range mins[1:] {
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}
	if lo == hi {
		return domain.FormatClock(lo)
	}
	return domain.FormatClock(lo) + "-" + domain.FormatClock(hi)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
