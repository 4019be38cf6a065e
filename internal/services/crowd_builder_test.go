package services

import (
	"testing"

	"trip-itinerary-service/internal/domain"
)

func crowdItinerary() domain.Itinerary {
	return domain.Itinerary{
		TripID: "t1",
		Items: []domain.ItineraryItem{
			item("a", "09:00", "10:00", 0),
			item("b", "10:05", "11:00", 5),
			item("c", "11:05", "12:00", 5),
		},
	}
}

func TestCrowdBuilderBusynessThreshold(t *testing.T) {
	stops := []domain.Stop{outdoorStop("a"), outdoorStop("b"), outdoorStop("c")}
	signals := domain.Signals{Crowd: &domain.CrowdSignal{Levels: []domain.CrowdLevel{
		{StopID: "c", Busyness: 90},
		{StopID: "b", Busyness: 40},
	}}}

	s := CrowdBuilder{}.Evaluate(stops, crowdItinerary(), signals)
	if s == nil {
		t.Fatal("expected a suggestion")
	}

	if s.Kind != domain.KindShift || s.Trigger != domain.TriggerCrowds {
		t.Errorf("kind/trigger = %s/%s", s.Kind, s.Trigger)
	}
	if s.After[0].StopID != "c" {
		t.Errorf("busy stop should move first, got %s", s.After[0].StopID)
	}
}

func TestCrowdBuilderBelowThreshold(t *testing.T) {
	stops := []domain.Stop{outdoorStop("a"), outdoorStop("b"), outdoorStop("c")}
	signals := domain.Signals{Crowd: &domain.CrowdSignal{Levels: []domain.CrowdLevel{
		{StopID: "c", Busyness: 84},
	}}}

	if s := (CrowdBuilder{}).Evaluate(stops, crowdItinerary(), signals); s != nil {
		t.Errorf("busyness 84 is below the threshold, got %+v", s)
	}
}

func TestCrowdBuilderPeakHours(t *testing.T) {
	stops := []domain.Stop{outdoorStop("a"), outdoorStop("b"), outdoorStop("c")}

	// c runs 11:05-12:00; a predicted 12:00 peak is within one hour.
	signals := domain.Signals{Crowd: &domain.CrowdSignal{Levels: []domain.CrowdLevel{
		{StopID: "c", Busyness: 10, PeakHours: []string{"12:00"}},
	}}}

	s := CrowdBuilder{}.Evaluate(stops, crowdItinerary(), signals)
	if s == nil {
		t.Fatal("expected a suggestion for peak-hour overlap")
	}
	if s.After[0].StopID != "c" {
		t.Errorf("peaking stop should move first, got %s", s.After[0].StopID)
	}
}

func TestCrowdBuilderUnknownStopIDsIgnored(t *testing.T) {
	stops := []domain.Stop{outdoorStop("a"), outdoorStop("b"), outdoorStop("c")}
	signals := domain.Signals{Crowd: &domain.CrowdSignal{Levels: []domain.CrowdLevel{
		{StopID: "not-in-plan", Busyness: 100},
	}}}

	if s := (CrowdBuilder{}).Evaluate(stops, crowdItinerary(), signals); s != nil {
		t.Errorf("levels for unknown stops should be ignored, got %+v", s)
	}
}

func TestCrowdBuilderNoSignal(t *testing.T) {
	stops := []domain.Stop{outdoorStop("a")}
	if s := (CrowdBuilder{}).Evaluate(stops, crowdItinerary(), domain.Signals{}); s != nil {
		t.Error("nil crowd signal should produce no suggestion")
	}
}
