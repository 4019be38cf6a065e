package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trip-itinerary-service/internal/domain"
	"trip-itinerary-service/internal/ports"
)

// Postgres-backed implementation of the TripRepository port, used when
// DATABASE_URL is configured.
type SQLTripRepository struct{ DB *sql.DB }

func NewSQLTripRepository(db *sql.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db}
}

func (r *SQLTripRepository) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	query := `
	SELECT trip_id, name, start_clock, end_clock, mode, start_lat, start_lng
	FROM trips
	WHERE trip_id = $1;
	`

	var trip domain.Trip
	var lat, lng sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, tripID).Scan(
		&trip.TripID, &trip.Name, &trip.StartClock, &trip.EndClock, &trip.Mode, &lat, &lng,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trip{}, fmt.Errorf("get trip %q: %w", tripID, ports.ErrTripNotFound)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("get trip %q: %w", tripID, err)
	}

	trip.StartLocation = tripStartLocation(lat, lng)
	return trip, nil
}

func (r *SQLTripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	query := `
	INSERT INTO trips (trip_id, name, start_clock, end_clock, mode, start_lat, start_lng)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (trip_id) DO UPDATE SET
		name = excluded.name,
		start_clock = excluded.start_clock,
		end_clock = excluded.end_clock,
		mode = excluded.mode,
		start_lat = excluded.start_lat,
		start_lng = excluded.start_lng;
	`

	lat, lng := tripLocationColumns(trip)
	if _, err := r.DB.ExecContext(ctx, query, trip.TripID, trip.Name, trip.StartClock, trip.EndClock, string(trip.Mode), lat, lng); err != nil {
		return fmt.Errorf("save trip %q: %w", trip.TripID, err)
	}
	return nil
}

func (r *SQLTripRepository) GetStops(ctx context.Context, tripID string) ([]domain.Stop, error) {
	query := `
	SELECT stop_id, name, lat, lng, category, indoor, address, duration_min, locked
	FROM stops
	WHERE trip_id = $1
	ORDER BY position;
	`

	rows, err := r.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("get stops for trip %q: %w", tripID, err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 16)
	for rows.Next() {
		var s domain.Stop
		var indoor, locked int
		err := rows.Scan(
			&s.ID, &s.Place.Name, &s.Place.Coordinates.Lat, &s.Place.Coordinates.Lng,
			&s.Place.Category, &indoor, &s.Place.Address, &s.DurationMin, &locked,
		)
		if err != nil {
			return nil, fmt.Errorf("get stops for trip %q: scan row: %w", tripID, err)
		}
		s.Place.Indoor = indoor != 0
		s.Locked = locked != 0
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get stops for trip %q: row iteration: %w", tripID, err)
	}

	return stops, nil
}

func (r *SQLTripRepository) ReplaceStops(ctx context.Context, tripID string, stops []domain.Stop) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace stops for trip %q: begin tx: %w", tripID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stops WHERE trip_id = $1;`, tripID); err != nil {
		return fmt.Errorf("replace stops for trip %q: clear: %w", tripID, err)
	}

	insert := `
	INSERT INTO stops (trip_id, position, stop_id, name, lat, lng, category, indoor, address, duration_min, locked)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for i, s := range stops {
		_, err := tx.ExecContext(ctx, insert,
			tripID, i, s.ID, s.Place.Name, s.Place.Coordinates.Lat, s.Place.Coordinates.Lng,
			s.Place.Category, boolToInt(s.Place.Indoor), s.Place.Address, s.DurationMin, boolToInt(s.Locked),
		)
		if err != nil {
			return fmt.Errorf("replace stops for trip %q: insert stop %q: %w", tripID, s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace stops for trip %q: commit: %w", tripID, err)
	}
	return nil
}

func (r *SQLTripRepository) GetLatestItinerary(ctx context.Context, tripID string) (domain.Itinerary, bool, error) {
	query := `
	SELECT version, itinerary_id, items, total_travel_min, created_at
	FROM itinerary_versions
	WHERE trip_id = $1
	ORDER BY version DESC
	LIMIT 1;
	`

	var version, totalTravel int
	var itineraryID, items, createdAt string
	err := r.DB.QueryRowContext(ctx, query, tripID).Scan(&version, &itineraryID, &items, &totalTravel, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Itinerary{}, false, nil
	}
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("get latest itinerary for trip %q: %w", tripID, err)
	}

	it, err := scanItinerary(tripID, version, itineraryID, items, totalTravel, createdAt)
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("get latest itinerary for trip %q: %w", tripID, err)
	}
	return it, true, nil
}

func (r *SQLTripRepository) AppendItineraryVersion(ctx context.Context, tripID string, it domain.Itinerary) (domain.Itinerary, error) {
	items, err := marshalItems(it.Items)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("append itinerary for trip %q: %w", tripID, err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("append itinerary for trip %q: begin tx: %w", tripID, err)
	}
	defer tx.Rollback()

	var next int
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) + 1 FROM itinerary_versions WHERE trip_id = $1;`, tripID)
	if err := row.Scan(&next); err != nil {
		return domain.Itinerary{}, fmt.Errorf("append itinerary for trip %q: next version: %w", tripID, err)
	}

	insert := `
	INSERT INTO itinerary_versions (trip_id, version, itinerary_id, items, total_travel_min, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.ExecContext(ctx, insert, tripID, next, it.ID, items, it.TotalTravelMin, it.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("append itinerary for trip %q: insert: %w", tripID, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Itinerary{}, fmt.Errorf("append itinerary for trip %q: commit: %w", tripID, err)
	}

	it.TripID = tripID
	it.Version = next
	return it, nil
}

func (r *SQLTripRepository) ListItineraryVersions(ctx context.Context, tripID string) ([]domain.Itinerary, error) {
	query := `
	SELECT version, itinerary_id, items, total_travel_min, created_at
	FROM itinerary_versions
	WHERE trip_id = $1
	ORDER BY version;
	`

	rows, err := r.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("list itineraries for trip %q: %w", tripID, err)
	}
	defer rows.Close()

	out := make([]domain.Itinerary, 0, 8)
	for rows.Next() {
		var version, totalTravel int
		var itineraryID, items, createdAt string
		if err := rows.Scan(&version, &itineraryID, &items, &totalTravel, &createdAt); err != nil {
			return nil, fmt.Errorf("list itineraries for trip %q: scan row: %w", tripID, err)
		}
		it, err := scanItinerary(tripID, version, itineraryID, items, totalTravel, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list itineraries for trip %q: %w", tripID, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list itineraries for trip %q: row iteration: %w", tripID, err)
	}

	return out, nil
}
