package domain

// Place describes where a stop happens. Coordinates are always present;
// category, address and the indoor flag are optional metadata from the
// places provider.
type Place struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Category    string      `json:"category,omitempty"`
	Indoor      bool        `json:"indoor,omitempty"`
	Address     string      `json:"address,omitempty"`
}

// Stop is a single activity a traveler wants to visit. A locked stop is
// pinned to its current position in the visiting order.
type Stop struct {
	ID          string `json:"id"`
	Place       Place  `json:"place"`
	DurationMin int    `json:"duration_min"`
	Locked      bool   `json:"locked"`
}

// Trip holds the per-trip planning parameters. Stops and itinerary versions
// are stored separately by the repository.
type Trip struct {
	TripID        string        `json:"trip_id"`
	Name          string        `json:"name"`
	StartClock    string        `json:"start_clock"`
	EndClock      string        `json:"end_clock"`
	Mode          TransportMode `json:"mode"`
	StartLocation *Coordinates  `json:"start_location,omitempty"`
}
