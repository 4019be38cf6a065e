package services

import (
	"testing"
	"time"

	"trip-itinerary-service/internal/domain"
)

func hazardBuilder(now time.Time) CommunityBuilder {
	b := NewCommunityBuilder(0)
	b.Now = func() time.Time { return now }
	return b
}

func TestCommunityBuilderDefersStopsNearHazard(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	a := outdoorStop("a")
	a.Place.Coordinates = domain.Coordinates{Lat: 40.00, Lng: -75.00}
	b := outdoorStop("b")
	b.Place.Coordinates = domain.Coordinates{Lat: 40.10, Lng: -75.00}
	stops := []domain.Stop{a, b}

	itinerary := domain.Itinerary{
		TripID: "t1",
		Items: []domain.ItineraryItem{
			item("a", "09:00", "10:00", 0),
			item("b", "10:05", "11:00", 5),
		},
	}

	// Hazard ~0.6 km from stop a, far from stop b.
	signals := domain.Signals{Community: &domain.CommunitySignal{Reports: []domain.HazardReport{
		{
			ID:       "r1",
			Location: domain.Coordinates{Lat: 40.005, Lng: -75.00},
			Severity: "high",
			Message:  "street closed for repairs",
		},
	}}}

	s := hazardBuilder(now).Evaluate(stops, itinerary, signals)
	if s == nil {
		t.Fatal("expected a suggestion")
	}

	if s.Trigger != domain.TriggerTraffic || s.Kind != domain.KindReorder {
		t.Errorf("kind/trigger = %s/%s", s.Kind, s.Trigger)
	}
	if s.After[0].StopID != "b" || s.After[1].StopID != "a" {
		t.Errorf("hazard-adjacent stop should defer: %s,%s", s.After[0].StopID, s.After[1].StopID)
	}
	if len(s.Reasons) == 0 {
		t.Error("expected reasons")
	}
}

func TestCommunityBuilderExpiredReportsIgnored(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	a := outdoorStop("a")
	a.Place.Coordinates = domain.Coordinates{Lat: 40.00, Lng: -75.00}
	b := outdoorStop("b")
	b.Place.Coordinates = domain.Coordinates{Lat: 40.10, Lng: -75.00}
	stops := []domain.Stop{a, b}

	itinerary := domain.Itinerary{
		TripID: "t1",
		Items: []domain.ItineraryItem{
			item("a", "09:00", "10:00", 0),
			item("b", "10:05", "11:00", 5),
		},
	}
	signals := domain.Signals{Community: &domain.CommunitySignal{Reports: []domain.HazardReport{
		{
			ID:        "r1",
			Location:  domain.Coordinates{Lat: 40.005, Lng: -75.00},
			Severity:  "high",
			Message:   "cleared hours ago",
			ExpiresAt: now.Add(-time.Hour),
		},
	}}}

	if s := hazardBuilder(now).Evaluate(stops, itinerary, signals); s != nil {
		t.Errorf("expired reports should be ignored, got %+v", s)
	}
}

func TestCommunityBuilderOutOfRadius(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	a := outdoorStop("a")
	a.Place.Coordinates = domain.Coordinates{Lat: 40.00, Lng: -75.00}
	stops := []domain.Stop{a, outdoorStop("b")}

	itinerary := domain.Itinerary{
		TripID: "t1",
		Items: []domain.ItineraryItem{
			item("a", "09:00", "10:00", 0),
			item("b", "10:05", "11:00", 5),
		},
	}

	// ~11 km away, well outside the default 1.5 km radius.
	signals := domain.Signals{Community: &domain.CommunitySignal{Reports: []domain.HazardReport{
		{ID: "r1", Location: domain.Coordinates{Lat: 40.10, Lng: -75.00}, Severity: "low", Message: "far away"},
	}}}

	if s := hazardBuilder(now).Evaluate(stops, itinerary, signals); s != nil {
		t.Errorf("hazard outside radius should be ignored, got %+v", s)
	}
}
