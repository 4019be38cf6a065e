package domain

import "time"

// Signal type identifiers used by the signal store and the ingest API.
const (
	SignalWeather   = "weather"
	SignalCrowd     = "crowd"
	SignalTransit   = "transit"
	SignalCommunity = "community"
)

// WeatherSignal lists the hours with elevated precipitation risk.
type WeatherSignal struct {
	RiskHours []string `json:"risk_hours"`
	Summary   string   `json:"summary,omitempty"`
}

// CrowdLevel reports live and predicted busyness for one stop's place.
// Busyness is a 0-100+ scale from the crowd provider.
type CrowdLevel struct {
	StopID    string   `json:"stop_id"`
	Busyness  int      `json:"busyness"`
	PeakHours []string `json:"peak_hours,omitempty"`
}

// CrowdSignal carries per-place busyness for a trip's stops.
type CrowdSignal struct {
	Levels []CrowdLevel `json:"levels"`
}

// TransitAlert reports a delay on one transit line.
type TransitAlert struct {
	Line     string `json:"line"`
	DelayMin int    `json:"delay_min"`
	Message  string `json:"message,omitempty"`
}

// TransitSignal carries the current set of transit delay alerts.
type TransitSignal struct {
	Alerts []TransitAlert `json:"alerts"`
}

// HazardReport is a geofenced community report. A zero ExpiresAt means the
// report does not expire.
type HazardReport struct {
	ID        string      `json:"id"`
	Location  Coordinates `json:"location"`
	Severity  string      `json:"severity"`
	Message   string      `json:"message"`
	ExpiresAt time.Time   `json:"expires_at,omitempty"`
}

// Active reports whether the hazard is still in effect at the given time.
func (r HazardReport) Active(now time.Time) bool {
	return r.ExpiresAt.IsZero() || r.ExpiresAt.After(now)
}

// CommunitySignal carries the active hazard reports near a trip.
type CommunitySignal struct {
	Reports []HazardReport `json:"reports"`
}

// Signals bundles the latest observation per source for one trip.
// Each field is nil when the source has no data (last-write-wins, no history).
type Signals struct {
	Weather   *WeatherSignal   `json:"weather,omitempty"`
	Crowd     *CrowdSignal     `json:"crowd,omitempty"`
	Transit   *TransitSignal   `json:"transit,omitempty"`
	Community *CommunitySignal `json:"community,omitempty"`
}
