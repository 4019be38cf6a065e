package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"trip-itinerary-service/internal/domain"
)

func marshalItems(items []domain.ItineraryItem) (string, error) {
	if items == nil {
		items = []domain.ItineraryItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal itinerary items: %w", err)
	}
	return string(raw), nil
}

func unmarshalItems(raw string) ([]domain.ItineraryItem, error) {
	var items []domain.ItineraryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("unmarshal itinerary items: %w", err)
	}
	return items, nil
}

func scanItinerary(tripID string, version int, itineraryID, items string, totalTravel int, createdAt string) (domain.Itinerary, error) {
	parsed, err := unmarshalItems(items)
	if err != nil {
		return domain.Itinerary{}, err
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("parse itinerary created_at: %w", err)
	}

	return domain.Itinerary{
		ID:             itineraryID,
		TripID:         tripID,
		Version:        version,
		Items:          parsed,
		TotalTravelMin: totalTravel,
		CreatedAt:      ts,
	}, nil
}

func tripStartLocation(lat, lng sql.NullFloat64) *domain.Coordinates {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
}

func tripLocationColumns(trip domain.Trip) (sql.NullFloat64, sql.NullFloat64) {
	if trip.StartLocation == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: trip.StartLocation.Lat, Valid: true},
		sql.NullFloat64{Float64: trip.StartLocation.Lng, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
