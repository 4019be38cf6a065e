package dto

import "trip-itinerary-service/internal/domain"

type CreateTripRequest struct {
	TripID        string              `json:"trip_id"`
	Name          string              `json:"name"`
	StartClock    string              `json:"start_clock"`
	EndClock      string              `json:"end_clock"`
	Mode          string              `json:"mode"`
	StartLocation *domain.Coordinates `json:"start_location"`
}

type StopRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Category    string  `json:"category"`
	Indoor      bool    `json:"indoor"`
	Address     string  `json:"address"`
	DurationMin int     `json:"duration_min"`
	Locked      bool    `json:"locked"`
}

type ReplaceStopsRequest struct {
	Stops []StopRequest `json:"stops"`
}

func (r StopRequest) ToDomain() domain.Stop {
	return domain.Stop{
		ID: r.ID,
		Place: domain.Place{
			Name:        r.Name,
			Coordinates: domain.Coordinates{Lat: r.Lat, Lng: r.Lng},
			Category:    r.Category,
			Indoor:      r.Indoor,
			Address:     r.Address,
		},
		DurationMin: r.DurationMin,
		Locked:      r.Locked,
	}
}
