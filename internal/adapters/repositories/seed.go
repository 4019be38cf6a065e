package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"trip-itinerary-service/internal/domain"
	"trip-itinerary-service/internal/ports"
)

type seedTrip struct {
	domain.Trip
	Stops []domain.Stop `json:"stops"`
}

type seedFile struct {
	Trips []seedTrip `json:"trips"`
}

// SeedFromJSON loads demo trips and stops from a JSON file. A missing file
// is not an error so fresh checkouts start without seed data. Works
// against any TripRepository implementation.
func SeedFromJSON(ctx context.Context, repo ports.TripRepository, path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed from json: read %q: %w", path, err)
	}

	var file seedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("seed from json: parse %q: %w", path, err)
	}

	for _, t := range file.Trips {
		if t.TripID == "" {
			return fmt.Errorf("seed from json: trip with empty trip_id in %q", path)
		}
		if err := repo.SaveTrip(ctx, t.Trip); err != nil {
			return fmt.Errorf("seed from json: %w", err)
		}
		if err := repo.ReplaceStops(ctx, t.TripID, t.Stops); err != nil {
			return fmt.Errorf("seed from json: %w", err)
		}
	}

	return nil
}
