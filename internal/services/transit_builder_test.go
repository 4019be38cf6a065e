package services

import (
	"testing"

	"trip-itinerary-service/internal/domain"
)

func TestTransitBuilderDefersLeadingStops(t *testing.T) {
	stops := []domain.Stop{outdoorStop("a"), outdoorStop("b"), outdoorStop("c"), outdoorStop("d")}
	itinerary := domain.Itinerary{
		TripID: "t1",
		Items: []domain.ItineraryItem{
			item("a", "09:00", "10:00", 0),
			item("b", "10:05", "11:00", 5),
			item("c", "11:05", "12:00", 5),
			item("d", "12:05", "13:00", 5),
		},
	}
	signals := domain.Signals{Transit: &domain.TransitSignal{Alerts: []domain.TransitAlert{
		{Line: "Green", DelayMin: 25, Message: "signal failure"},
	}}}

	s := NewTransitBuilder(0).Evaluate(stops, itinerary, signals)
	if s == nil {
		t.Fatal("expected a suggestion")
	}

	if s.Trigger != domain.TriggerTransit || s.Kind != domain.KindReorder {
		t.Errorf("kind/trigger = %s/%s", s.Kind, s.Trigger)
	}

	// The first two flexible stops go to the back.
	wantOrder := []string{"c", "d", "a", "b"}
	for i, id := range wantOrder {
		if s.After[i].StopID != id {
			t.Fatalf("after order = %v, want %v", s.After, wantOrder)
		}
	}
}

func TestTransitBuilderBelowThreshold(t *testing.T) {
	stops := []domain.Stop{outdoorStop("a"), outdoorStop("b"), outdoorStop("c")}
	itinerary := domain.Itinerary{
		TripID: "t1",
		Items: []domain.ItineraryItem{
			item("a", "09:00", "10:00", 0),
			item("b", "10:05", "11:00", 5),
			item("c", "11:05", "12:00", 5),
		},
	}
	signals := domain.Signals{Transit: &domain.TransitSignal{Alerts: []domain.TransitAlert{
		{Line: "Green", DelayMin: 9},
	}}}

	if s := NewTransitBuilder(10).Evaluate(stops, itinerary, signals); s != nil {
		t.Errorf("9 min delay is below the 10 min threshold, got %+v", s)
	}
}

func TestTransitBuilderCustomThreshold(t *testing.T) {
	stops := []domain.Stop{outdoorStop("a"), outdoorStop("b"), outdoorStop("c")}
	itinerary := domain.Itinerary{
		TripID: "t1",
		Items: []domain.ItineraryItem{
			item("a", "09:00", "10:00", 0),
			item("b", "10:05", "11:00", 5),
			item("c", "11:05", "12:00", 5),
		},
	}
	signals := domain.Signals{Transit: &domain.TransitSignal{Alerts: []domain.TransitAlert{
		{Line: "Green", DelayMin: 6},
	}}}

	if s := NewTransitBuilder(5).Evaluate(stops, itinerary, signals); s == nil {
		t.Error("6 min delay should trip a 5 min threshold")
	}
}

func TestTransitBuilderSkipsLockedStops(t *testing.T) {
	lockedA := outdoorStop("a")
	lockedA.Locked = true
	stops := []domain.Stop{lockedA, outdoorStop("b"), outdoorStop("c"), outdoorStop("d")}

	itinerary := domain.Itinerary{
		TripID: "t1",
		Items: []domain.ItineraryItem{
			item("a", "09:00", "10:00", 0),
			item("b", "10:05", "11:00", 5),
			item("c", "11:05", "12:00", 5),
			item("d", "12:05", "13:00", 5),
		},
	}
	signals := domain.Signals{Transit: &domain.TransitSignal{Alerts: []domain.TransitAlert{
		{Line: "Blue", DelayMin: 15},
	}}}

	s := NewTransitBuilder(0).Evaluate(stops, itinerary, signals)
	if s == nil {
		t.Fatal("expected a suggestion")
	}

	// a is locked in place; b and c defer behind d.
	wantOrder := []string{"a", "d", "b", "c"}
	for i, id := range wantOrder {
		if s.After[i].StopID != id {
			t.Fatalf("after order = %v, want %v", s.After, wantOrder)
		}
	}
}

func TestTransitBuilderReasonsNameWorstAlert(t *testing.T) {
	stops := []domain.Stop{outdoorStop("a"), outdoorStop("b"), outdoorStop("c")}
	itinerary := domain.Itinerary{
		TripID: "t1",
		Items: []domain.ItineraryItem{
			item("a", "09:00", "10:00", 0),
			item("b", "10:05", "11:00", 5),
			item("c", "11:05", "12:00", 5),
		},
	}
	signals := domain.Signals{Transit: &domain.TransitSignal{Alerts: []domain.TransitAlert{
		{Line: "Green", DelayMin: 12},
		{Line: "Red", DelayMin: 30},
	}}}

	s := NewTransitBuilder(0).Evaluate(stops, itinerary, signals)
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if len(s.Reasons) == 0 || s.Reasons[0] != "Red delayed 30 min" {
		t.Errorf("reasons = %v, want the worst alert first", s.Reasons)
	}
}
