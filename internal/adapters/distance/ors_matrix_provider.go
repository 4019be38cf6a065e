package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"trip-itinerary-service/internal/adapters/cache"
	"trip-itinerary-service/internal/domain"
	"trip-itinerary-service/internal/platform/logger"
	"trip-itinerary-service/internal/platform/obs"
)

// ORSMatrixProvider implements DistanceMatrixProvider using the
// OpenRouteService matrix endpoint.
//
// It coordinates:
//   - Transport-mode to ORS profile mapping
//   - Pairwise duration caching in Redis
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSMatrixProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   *cache.RedisMatrixCache
	log     *logger.Logger
}

func NewORSMatrixProvider(apiKey string, matrixCache *cache.RedisMatrixCache, log *logger.Logger) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSMatrixProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		cache:   matrixCache,
		log:     log,
	}, nil
}

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
}

// Matrix returns pairwise travel durations in seconds between all the
// given coordinates, in input order.
func (o *ORSMatrixProvider) Matrix(ctx context.Context, coords []domain.Coordinates, mode domain.TransportMode) (_ [][]int, err error) {
	defer obs.Time(o.log, "ors.Matrix")(&err)

	n := len(coords)
	if n < 2 {
		return emptyMatrix(n), nil
	}

	profile := orsProfile(mode)

	// Check the pairwise cache before issuing an external call.
	if cached, ok := o.fromCache(ctx, coords, profile); ok {
		return cached, nil
	}

	fetched, err := o.fetchMatrix(ctx, coords, profile)
	if err != nil {
		return nil, fmt.Errorf("fetch ORS matrix: %w", err)
	}

	o.storeCache(ctx, coords, profile, fetched)
	return fetched, nil
}

func (o *ORSMatrixProvider) fetchMatrix(ctx context.Context, coords []domain.Coordinates, profile string) ([][]int, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, profile)

	locations := make([][]float64, 0, len(coords))
	for _, c := range coords {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{"duration"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Durations) != len(coords) {
		return nil, fmt.Errorf(
			"expected %d duration rows, got %d",
			len(coords), len(mr.Durations),
		)
	}

	out := make([][]int, len(coords))
	for i, row := range mr.Durations {
		if len(row) != len(coords) {
			return nil, fmt.Errorf(
				"duration row %d length %d does not match %d locations",
				i, len(row), len(coords),
			)
		}
		out[i] = make([]int, len(coords))
		for j, secondsPtr := range row {
			if secondsPtr == nil {
				return nil, fmt.Errorf("matrix returned no duration for pair %d -> %d", i, j)
			}
			// ORS returns float metrics; round for domain consistency.
			out[i][j] = int(math.Round(*secondsPtr))
		}
	}

	return out, nil
}

// fromCache assembles the full matrix from cached pairs; any miss aborts
// assembly.
func (o *ORSMatrixProvider) fromCache(ctx context.Context, coords []domain.Coordinates, profile string) ([][]int, bool) {
	if o.cache == nil {
		return nil, false
	}

	n := len(coords)
	keys := make([]string, 0, n*n-n)
	for i := range coords {
		for j := range coords {
			if i != j {
				keys = append(keys, pairKey(profile, coords[i], coords[j]))
			}
		}
	}

	hits, err := o.cache.GetMany(ctx, keys)
	if err != nil {
		o.log.Warn("matrix cache read failed", "err", err)
		return nil, false
	}
	if len(hits) != len(keys) {
		return nil, false
	}

	out := emptyMatrix(n)
	for i := range coords {
		for j := range coords {
			if i == j {
				continue
			}
			out[i][j] = hits[pairKey(profile, coords[i], coords[j])]
		}
	}
	return out, true
}

// storeCache is best-effort; a failed write only costs a future API call.
func (o *ORSMatrixProvider) storeCache(ctx context.Context, coords []domain.Coordinates, profile string, matrix [][]int) {
	if o.cache == nil {
		return
	}

	entries := make(map[string]int, len(coords)*len(coords))
	for i := range coords {
		for j := range coords {
			if i != j {
				entries[pairKey(profile, coords[i], coords[j])] = matrix[i][j]
			}
		}
	}

	if err := o.cache.PutMany(ctx, entries); err != nil {
		o.log.Warn("matrix cache write failed", "err", err)
	}
}

// orsProfile maps a transport mode to an ORS routing profile. ORS has no
// public-transit profile, so transit falls back to driving durations.
func orsProfile(mode domain.TransportMode) string {
	switch mode {
	case domain.ModeWalking:
		return "foot-walking"
	default:
		return "driving-car"
	}
}

func pairKey(profile string, from, to domain.Coordinates) string {
	return fmt.Sprintf("%s:%.5f,%.5f|%.5f,%.5f", profile, from.Lat, from.Lng, to.Lat, to.Lng)
}

func emptyMatrix(n int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = make([]int, n)
	}
	return out
}
