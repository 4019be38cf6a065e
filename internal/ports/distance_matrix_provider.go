package ports

import (
	"context"

	"trip-itinerary-service/internal/domain"
)

// Contract for retrieving pairwise travel durations between coordinates.
type DistanceMatrixProvider interface {
	// Matrix returns travel durations in seconds between every pair of the
	// given coordinates, row-indexed by source and column-indexed by
	// destination in input order. Callers treat any error as a degraded
	// condition and fall back to local estimation.
	Matrix(ctx context.Context, coords []domain.Coordinates, mode domain.TransportMode) ([][]int, error)
}
