package services

import (
	"errors"
	"math"
	"testing"

	"trip-itinerary-service/internal/domain"
)

func pendingSuggestion(id string, kind domain.SuggestionKind, beforeIDs ...string) *domain.Suggestion {
	before := make([]domain.ItineraryItem, 0, len(beforeIDs))
	for _, sid := range beforeIDs {
		before = append(before, domain.ItineraryItem{StopID: sid})
	}
	return &domain.Suggestion{
		ID:      id,
		TripID:  "t1",
		Kind:    kind,
		Trigger: domain.TriggerWeather,
		Before:  before,
		Status:  domain.StatusPending,
	}
}

func TestLedgerDeduplicates(t *testing.T) {
	l := NewSuggestionLedger()

	if !l.Add(pendingSuggestion("s1", domain.KindReorder, "a", "b", "c")) {
		t.Fatal("first add should succeed")
	}

	// Same kind and before-plan: a duplicate even with a new id.
	if l.Add(pendingSuggestion("s2", domain.KindReorder, "a", "b", "c")) {
		t.Error("duplicate fingerprint should be dropped")
	}

	// Different kind is not a duplicate.
	if !l.Add(pendingSuggestion("s3", domain.KindShift, "a", "b", "c")) {
		t.Error("different kind should be kept")
	}

	// Different before-plan is not a duplicate.
	if !l.Add(pendingSuggestion("s4", domain.KindReorder, "b", "a", "c")) {
		t.Error("different before order should be kept")
	}

	if got := len(l.List("")); got != 3 {
		t.Errorf("ledger holds %d suggestions, want 3", got)
	}
}

func TestLedgerListFiltersByStatus(t *testing.T) {
	l := NewSuggestionLedger()
	l.Add(pendingSuggestion("s1", domain.KindReorder, "a", "b"))
	l.Add(pendingSuggestion("s2", domain.KindShift, "a", "b"))

	if _, err := l.SetStatus("s1", domain.StatusAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if got := len(l.List(domain.StatusPending)); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}
	if got := len(l.List(domain.StatusAccepted)); got != 1 {
		t.Errorf("accepted = %d, want 1", got)
	}
	if got := len(l.List("")); got != 2 {
		t.Errorf("all = %d, want 2", got)
	}
}

func TestLedgerStatusTransitions(t *testing.T) {
	l := NewSuggestionLedger()
	l.Add(pendingSuggestion("s1", domain.KindReorder, "a", "b"))

	if _, err := l.SetStatus("s1", domain.StatusApplied); !errors.Is(err, domain.ErrInvalidStatusTransition) {
		t.Errorf("pending -> applied: got %v, want ErrInvalidStatusTransition", err)
	}

	s, err := l.SetStatus("s1", domain.StatusAccepted)
	if err != nil {
		t.Fatalf("pending -> accepted: %v", err)
	}
	if s.Status != domain.StatusAccepted {
		t.Errorf("status = %s, want accepted", s.Status)
	}

	if _, err := l.SetStatus("s1", domain.StatusRejected); !errors.Is(err, domain.ErrInvalidStatusTransition) {
		t.Errorf("accepted -> rejected: got %v, want ErrInvalidStatusTransition", err)
	}

	if _, err := l.SetStatus("s1", domain.StatusApplied); err != nil {
		t.Fatalf("accepted -> applied: %v", err)
	}

	if _, err := l.SetStatus("missing", domain.StatusAccepted); !errors.Is(err, ErrSuggestionNotFound) {
		t.Errorf("unknown id: got %v, want ErrSuggestionNotFound", err)
	}
}

func TestLedgerWeights(t *testing.T) {
	l := NewSuggestionLedger()

	w := l.Weights()
	if w != domain.DefaultWeights() {
		t.Errorf("initial weights = %+v, want defaults", w)
	}

	w = l.UpdateWeights(domain.TriggerWeather, true)
	if math.Abs(w.Weather-1.05) > 1e-9 {
		t.Errorf("weather = %f, want 1.05", w.Weather)
	}

	w = l.UpdateWeights(domain.TriggerWeather, false)
	if math.Abs(w.Weather-1.0) > 1e-9 {
		t.Errorf("weather = %f, want back at 1.0", w.Weather)
	}
}

func TestLedgerSetForTrip(t *testing.T) {
	set := NewLedgerSet()

	l1 := set.ForTrip("t1")
	if l1 != set.ForTrip("t1") {
		t.Error("same trip should reuse its ledger")
	}
	if l1 == set.ForTrip("t2") {
		t.Error("different trips should get different ledgers")
	}

	l1.Add(pendingSuggestion("s1", domain.KindReorder, "a"))
	if got := len(set.ForTrip("t2").List("")); got != 0 {
		t.Errorf("t2 ledger has %d suggestions, want 0", got)
	}
}
