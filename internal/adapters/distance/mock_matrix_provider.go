package distance

import (
	"context"
	"errors"

	"trip-itinerary-service/internal/domain"
)

// MockMatrixProvider returns a fixed matrix, or fails every call when
// configured to. Intended for tests and offline runs.
type MockMatrixProvider struct {
	MatrixResult [][]int
	Fail         bool
}

func (p *MockMatrixProvider) Matrix(ctx context.Context, coords []domain.Coordinates, mode domain.TransportMode) ([][]int, error) {
	if p.Fail {
		return nil, errors.New("mock matrix provider: forced failure")
	}
	return p.MatrixResult, nil
}
