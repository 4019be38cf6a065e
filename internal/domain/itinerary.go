package domain

import "time"

// ItineraryItem is one scheduled visit: when it starts and ends, and how
// many minutes of travel immediately precede it.
type ItineraryItem struct {
	StopID            string `json:"stop_id"`
	Name              string `json:"name"`
	Start             string `json:"start"`
	End               string `json:"end"`
	TravelFromPrevMin int    `json:"travel_from_prev_min"`
}

// Itinerary is one immutable version of a trip's time-assigned plan.
// Versions are assigned by the repository on append; the latest version is
// the most recently appended one.
type Itinerary struct {
	ID             string          `json:"id"`
	TripID         string          `json:"trip_id"`
	Version        int             `json:"version"`
	Items          []ItineraryItem `json:"items"`
	TotalTravelMin int             `json:"total_travel_min"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StopIDs returns the ordered stop identifiers of the itinerary.
func (it Itinerary) StopIDs() []string {
	ids := make([]string, 0, len(it.Items))
	for _, item := range it.Items {
		ids = append(ids, item.StopID)
	}
	return ids
}
