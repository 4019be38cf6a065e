package domain

import (
	"errors"
	"strings"
	"time"
)

// SuggestionKind classifies the shape of a proposed change.
type SuggestionKind string

const (
	KindReorder SuggestionKind = "reorder"
	KindSwap    SuggestionKind = "swap"
	KindShift   SuggestionKind = "shift"
)

// Trigger names the signal category that caused a suggestion.
type Trigger string

const (
	TriggerWeather Trigger = "weather"
	TriggerCrowds  Trigger = "crowds"
	TriggerTransit Trigger = "transit"
	TriggerTraffic Trigger = "traffic"
	TriggerMixed   Trigger = "mixed"
)

// SuggestionStatus is the lifecycle state of a suggestion.
type SuggestionStatus string

const (
	StatusPending  SuggestionStatus = "pending"
	StatusAccepted SuggestionStatus = "accepted"
	StatusRejected SuggestionStatus = "rejected"
	StatusApplied  SuggestionStatus = "applied"
)

var ErrInvalidStatusTransition = errors.New("invalid suggestion status transition")

// Impact quantifies the expected benefit of applying a suggestion.
// The reduction figures are heuristic scoring-policy estimates, not
// physical measurements.
type Impact struct {
	TravelSavedMin  int `json:"travel_saved_min"`
	RiskReducedPct  int `json:"risk_reduced_pct,omitempty"`
	CrowdReducedPct int `json:"crowd_reduced_pct,omitempty"`
	DelayAvoidedMin int `json:"delay_avoided_min,omitempty"`
}

// MovedStop records one stop whose scheduled start changed.
type MovedStop struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// SwappedPair records two stops that exchanged positions.
type SwappedPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// PlanDiff is the human-readable delta between two itinerary versions.
type PlanDiff struct {
	Moved   []MovedStop   `json:"moved,omitempty"`
	Swapped []SwappedPair `json:"swapped,omitempty"`
	Summary string        `json:"summary"`
}

// Changes counts the moved and swapped entries.
func (d PlanDiff) Changes() int { return len(d.Moved) + len(d.Swapped) }

// Suggestion is a proposed change to the latest itinerary. Immutable once
// created except for Status.
type Suggestion struct {
	ID         string           `json:"id"`
	TripID     string           `json:"trip_id"`
	Kind       SuggestionKind   `json:"kind"`
	Trigger    Trigger          `json:"trigger"`
	Reasons    []string         `json:"reasons"`
	Impact     Impact           `json:"impact"`
	Confidence float64          `json:"confidence"`
	Before     []ItineraryItem  `json:"before"`
	After      []ItineraryItem  `json:"after"`
	Diff       *PlanDiff        `json:"diff,omitempty"`
	Status     SuggestionStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Fingerprint is the duplicate-detection key: the kind plus the ordered
// before-plan stop identifiers. Trigger and reasons deliberately do not
// participate.
func (s Suggestion) Fingerprint() string {
	ids := make([]string, 0, len(s.Before))
	for _, item := range s.Before {
		ids = append(ids, item.StopID)
	}
	return string(s.Kind) + "|" + strings.Join(ids, ",")
}

// CanTransition reports whether the status change is allowed:
// pending -> accepted/rejected, accepted -> applied.
func (s Suggestion) CanTransition(next SuggestionStatus) bool {
	switch s.Status {
	case StatusPending:
		return next == StatusAccepted || next == StatusRejected
	case StatusAccepted:
		return next == StatusApplied
	default:
		return false
	}
}
