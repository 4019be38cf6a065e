package services

import (
	"testing"

	"trip-itinerary-service/internal/domain"
)

func TestResequenceKeepsDurationsAndTravel(t *testing.T) {
	items := []domain.ItineraryItem{
		item("a", "09:00", "10:00", 0),
		item("b", "10:10", "10:40", 10),
	}

	out := resequence([]domain.ItineraryItem{items[1], items[0]}, 9*60)

	if out[0].Start != "09:10" || out[0].End != "09:40" {
		t.Errorf("b rescheduled to %s-%s, want 09:10-09:40", out[0].Start, out[0].End)
	}
	if out[1].Start != "09:40" || out[1].End != "10:40" {
		t.Errorf("a rescheduled to %s-%s, want 09:40-10:40", out[1].Start, out[1].End)
	}
}

// Rescheduled items that run past midnight clamp at 23:59. The clamped End
// no longer reflects the item's full duration; the running clock keeps the
// true minutes so later items still start in sequence.
func TestResequenceClampsPastMidnight(t *testing.T) {
	items := []domain.ItineraryItem{
		item("a", "09:00", "10:30", 0),
		item("b", "10:40", "11:40", 10),
		item("c", "11:40", "12:10", 0),
	}

	out := resequence(items, 22*60)

	if out[0].Start != "22:00" || out[0].End != "23:30" {
		t.Errorf("a rescheduled to %s-%s, want 22:00-23:30", out[0].Start, out[0].End)
	}
	if out[1].Start != "23:40" {
		t.Errorf("b starts at %s, want 23:40", out[1].Start)
	}
	if out[1].End != "23:59" {
		t.Errorf("b ends at %s, want clamp at 23:59", out[1].End)
	}
	if out[2].Start != "23:59" || out[2].End != "23:59" {
		t.Errorf("c rescheduled to %s-%s, want 23:59-23:59", out[2].Start, out[2].End)
	}
}
