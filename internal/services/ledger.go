package services

import (
	"errors"
	"fmt"
	"sync"

	"trip-itinerary-service/internal/domain"
)

// ErrSuggestionNotFound is returned when a suggestion id is unknown to the
// trip's ledger.
var ErrSuggestionNotFound = errors.New("suggestion not found")

// SuggestionLedger stores one trip's suggestions, deduplicates new ones,
// tracks lifecycle status and adapts per-trigger weights from feedback.
//
// The ledger serializes concurrent Add/SetStatus/UpdateWeights calls for
// its trip; different trips use different ledgers and need no shared lock.
type SuggestionLedger struct {
	mu      sync.Mutex
	order   []string
	byID    map[string]*domain.Suggestion
	seen    map[string]struct{}
	weights domain.Weights
	primed  bool
}

func NewSuggestionLedger() *SuggestionLedger {
	return &SuggestionLedger{
		byID: make(map[string]*domain.Suggestion),
		seen: make(map[string]struct{}),
	}
}

// Add stores the suggestion unless one with the same kind and before-plan
// stop sequence already exists. Duplicates are silently dropped; the
// return value reports whether the suggestion was kept.
func (l *SuggestionLedger) Add(s *domain.Suggestion) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	fp := s.Fingerprint()
	if _, dup := l.seen[fp]; dup {
		return false
	}

	l.seen[fp] = struct{}{}
	l.byID[s.ID] = s
	l.order = append(l.order, s.ID)
	return true
}

// Get returns a copy of the suggestion with the given id.
func (l *SuggestionLedger) Get(id string) (domain.Suggestion, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.byID[id]
	if !ok {
		return domain.Suggestion{}, false
	}
	return *s, true
}

// List returns suggestions in insertion order, optionally filtered by
// status (empty status matches all).
func (l *SuggestionLedger) List(status domain.SuggestionStatus) []domain.Suggestion {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Suggestion, 0, len(l.order))
	for _, id := range l.order {
		s := l.byID[id]
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, *s)
	}
	return out
}

// SetStatus advances a suggestion's lifecycle. Only pending->accepted,
// pending->rejected and accepted->applied are allowed.
func (l *SuggestionLedger) SetStatus(id string, next domain.SuggestionStatus) (domain.Suggestion, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.byID[id]
	if !ok {
		return domain.Suggestion{}, fmt.Errorf("set status: suggestion %q: %w", id, ErrSuggestionNotFound)
	}
	if !s.CanTransition(next) {
		return domain.Suggestion{}, fmt.Errorf(
			"set status: suggestion %q: %s -> %s: %w",
			id, s.Status, next, domain.ErrInvalidStatusTransition,
		)
	}

	s.Status = next
	return *s, nil
}

// Weights returns the trip's weights, created lazily with neutral defaults.
func (l *SuggestionLedger) Weights() domain.Weights {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.weightsLocked()
}

// UpdateWeights nudges the matching trigger weight from one accept/reject
// observation and returns the new weights.
func (l *SuggestionLedger) UpdateWeights(trigger domain.Trigger, accepted bool) domain.Weights {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.weights = domain.ApplyFeedback(l.weightsLocked(), trigger, accepted)
	return l.weights
}

func (l *SuggestionLedger) weightsLocked() domain.Weights {
	if !l.primed {
		l.weights = domain.DefaultWeights()
		l.primed = true
	}
	return l.weights
}

// LedgerSet keys ledgers by trip so the host can process independent trips
// in parallel without cross-trip locking.
type LedgerSet struct {
	mu sync.Mutex
	m  map[string]*SuggestionLedger
}

func NewLedgerSet() *LedgerSet {
	return &LedgerSet{m: make(map[string]*SuggestionLedger)}
}

// ForTrip returns the trip's ledger, creating it on first access.
func (s *LedgerSet) ForTrip(tripID string) *SuggestionLedger {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.m[tripID]
	if !ok {
		l = NewSuggestionLedger()
		s.m[tripID] = l
	}
	return l
}
