package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"trip-itinerary-service/internal/domain"
	"trip-itinerary-service/internal/platform/logger"
	"trip-itinerary-service/internal/ports"
)

// ScheduleResult is a freshly built itinerary plus any non-fatal warnings
// (e.g. the plan running past the trip's end time).
type ScheduleResult struct {
	Itinerary domain.Itinerary
	Warnings  []string
}

// Planner builds time-assigned itineraries. It optimizes the stop order
// with the external distance matrix when one can be fetched; when the
// provider is missing, unreachable, or returns malformed data, planning
// degrades to haversine estimates over the original order instead of
// failing.
type Planner struct {
	log      *logger.Logger
	provider ports.DistanceMatrixProvider
}

func NewPlanner(log *logger.Logger, provider ports.DistanceMatrixProvider) *Planner {
	return &Planner{log: log, provider: provider}
}

// BuildItinerary optimizes the visiting order and assigns start/end times.
func (p *Planner) BuildItinerary(ctx context.Context, trip domain.Trip, stops []domain.Stop) (ScheduleResult, error) {
	matrix, offset := p.fetchMatrix(ctx, trip, stops)

	perm := OptimizeOrder(stops, matrix, offset)
	ordered := ApplyOrder(stops, perm)

	return p.schedule(trip, ordered, matrix, perm, offset)
}

// ScheduleOrdered assigns times to the stops exactly in the order given,
// without route optimization. Used when applying an accepted suggestion,
// whose after-plan already fixes the order.
func (p *Planner) ScheduleOrdered(ctx context.Context, trip domain.Trip, stops []domain.Stop) (ScheduleResult, error) {
	matrix, offset := p.fetchMatrix(ctx, trip, stops)
	return p.schedule(trip, stops, matrix, identityOrder(len(stops)), offset)
}

// fetchMatrix returns the pairwise duration matrix for the trip's stops, or
// nil when no provider is configured or the call fails. Provider failure is
// a degraded-quality condition, never an error to the caller.
func (p *Planner) fetchMatrix(ctx context.Context, trip domain.Trip, stops []domain.Stop) ([][]int, int) {
	offset := 0
	if trip.StartLocation != nil {
		offset = 1
	}

	if p.provider == nil || len(stops) == 0 {
		return nil, offset
	}

	coords := make([]domain.Coordinates, 0, len(stops)+offset)
	if trip.StartLocation != nil {
		coords = append(coords, *trip.StartLocation)
	}
	for _, s := range stops {
		coords = append(coords, s.Place.Coordinates)
	}

	matrix, err := p.provider.Matrix(ctx, coords, trip.Mode)
	if err != nil {
		p.log.Warn("distance matrix unavailable, falling back to haversine estimates",
			"trip_id", trip.TripID, "err", err)
		return nil, offset
	}
	if len(matrix) != len(coords) {
		p.log.Warn("distance matrix has unexpected shape, falling back to haversine estimates",
			"trip_id", trip.TripID, "rows", len(matrix), "coords", len(coords))
		return nil, offset
	}

	return matrix, offset
}

// schedule walks the ordered stops, maintaining a running clock and the
// previous location. perm maps each position to the stop's original list
// index so matrix lookups stay valid after reordering.
func (p *Planner) schedule(trip domain.Trip, ordered []domain.Stop, matrix [][]int, perm []int, offset int) (ScheduleResult, error) {
	itinerary := domain.Itinerary{
		ID:        uuid.NewString(),
		TripID:    trip.TripID,
		Items:     []domain.ItineraryItem{},
		CreatedAt: time.Now().UTC(),
	}

	// Zero stops yields an empty itinerary, not an error.
	if len(ordered) == 0 {
		return ScheduleResult{Itinerary: itinerary}, nil
	}

	startMin, err := domain.ParseClock(trip.StartClock)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("schedule trip %s: start time: %w", trip.TripID, err)
	}
	endMin, err := domain.ParseClock(trip.EndClock)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("schedule trip %s: end time: %w", trip.TripID, err)
	}

	clock := startMin
	prevMatrixIdx := -1
	var prevCoord *domain.Coordinates
	if trip.StartLocation != nil {
		prevMatrixIdx = 0
		prevCoord = trip.StartLocation
	}

	var warnings []string
	totalTravel := 0

	for pos, stop := range ordered {
		travel := 0
		if prevCoord != nil {
			travel = p.travelMinutes(matrix, prevMatrixIdx, perm[pos]+offset, *prevCoord, stop.Place.Coordinates, trip.Mode)
		}

		start := clock + travel
		end := start + stop.DurationMin

		itinerary.Items = append(itinerary.Items, domain.ItineraryItem{
			StopID:            stop.ID,
			Name:              stop.Place.Name,
			Start:             domain.FormatClock(start),
			End:               domain.FormatClock(end),
			TravelFromPrevMin: travel,
		})

		// Overflow past the trip end is tolerated so a complete plan is
		// always produced; the condition is surfaced for optional alerting.
		if end > endMin {
			warnings = append(warnings, fmt.Sprintf(
				"%s ends at %s, after the trip end %s",
				stop.Place.Name, domain.FormatClock(end), trip.EndClock,
			))
		}

		totalTravel += travel
		clock = end
		prevMatrixIdx = perm[pos] + offset
		coord := stop.Place.Coordinates
		prevCoord = &coord
	}

	itinerary.TotalTravelMin = totalTravel
	return ScheduleResult{Itinerary: itinerary, Warnings: warnings}, nil
}

func (p *Planner) travelMinutes(matrix [][]int, fromIdx, toIdx int, from, to domain.Coordinates, mode domain.TransportMode) int {
	if seconds, ok := durationAt(matrix, fromIdx, toIdx); ok {
		return int(math.Round(float64(seconds) / 60))
	}
	return domain.EstimateTravelMin(domain.DistanceKm(from, to), mode)
}
