package domain

import (
	"testing"
	"time"
)

func TestSuggestionFingerprint(t *testing.T) {
	before := []ItineraryItem{{StopID: "a"}, {StopID: "b"}, {StopID: "c"}}

	s1 := Suggestion{Kind: KindReorder, Trigger: TriggerWeather, Before: before}
	s2 := Suggestion{Kind: KindReorder, Trigger: TriggerCrowds, Before: before,
		Reasons: []string{"different reasons"}}

	if s1.Fingerprint() != s2.Fingerprint() {
		t.Errorf("fingerprint should ignore trigger and reasons: %q vs %q",
			s1.Fingerprint(), s2.Fingerprint())
	}

	s3 := Suggestion{Kind: KindSwap, Before: before}
	if s1.Fingerprint() == s3.Fingerprint() {
		t.Error("different kinds must not collide")
	}

	s4 := Suggestion{Kind: KindReorder, Before: []ItineraryItem{{StopID: "b"}, {StopID: "a"}, {StopID: "c"}}}
	if s1.Fingerprint() == s4.Fingerprint() {
		t.Error("different before orders must not collide")
	}
}

func TestSuggestionCanTransition(t *testing.T) {
	cases := []struct {
		from SuggestionStatus
		to   SuggestionStatus
		want bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusApplied, false},
		{StatusAccepted, StatusApplied, true},
		{StatusAccepted, StatusRejected, false},
		{StatusRejected, StatusAccepted, false},
		{StatusApplied, StatusAccepted, false},
	}

	for _, tc := range cases {
		s := Suggestion{Status: tc.from}
		if got := s.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestHazardReportActive(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	if !(HazardReport{}).Active(now) {
		t.Error("zero ExpiresAt should never expire")
	}
	if !(HazardReport{ExpiresAt: now.Add(time.Hour)}).Active(now) {
		t.Error("future expiry should be active")
	}
	if (HazardReport{ExpiresAt: now.Add(-time.Hour)}).Active(now) {
		t.Error("past expiry should be inactive")
	}
}
