package distance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"trip-itinerary-service/internal/adapters/cache"
	"trip-itinerary-service/internal/domain"
	"trip-itinerary-service/internal/platform/logger"
)

func matrixJSON(durations [][]float64) []byte {
	raw, _ := json.Marshal(map[string]any{"durations": durations})
	return raw
}

func testProvider(t *testing.T, handler http.Handler, matrixCache *cache.RedisMatrixCache) *ORSMatrixProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewORSMatrixProvider("test-key", matrixCache, logger.NewNop())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	p.baseURL = srv.URL
	return p
}

func TestORSMatrixProviderFetch(t *testing.T) {
	var gotPath string
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var req matrixRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Locations) != 2 {
			t.Errorf("locations = %d, want 2", len(req.Locations))
		}
		// Locations go over the wire as [lng, lat].
		if req.Locations[0][0] != -75.0 || req.Locations[0][1] != 40.0 {
			t.Errorf("first location = %v, want [-75, 40]", req.Locations[0])
		}

		w.Write(matrixJSON([][]float64{{0, 300.4}, {310.6, 0}}))
	})

	p := testProvider(t, handler, nil)

	coords := []domain.Coordinates{
		{Lat: 40.0, Lng: -75.0},
		{Lat: 40.1, Lng: -75.0},
	}
	matrix, err := p.Matrix(context.Background(), coords, domain.ModeWalking)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}

	if gotPath != "/v2/matrix/foot-walking" {
		t.Errorf("path = %q, want the walking profile", gotPath)
	}
	if gotAuth != "test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}

	if matrix[0][1] != 300 || matrix[1][0] != 311 {
		t.Errorf("matrix = %v, want rounded seconds", matrix)
	}
}

func TestORSMatrixProviderSinglePoint(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no API call expected for fewer than two coordinates")
	})
	p := testProvider(t, handler, nil)

	matrix, err := p.Matrix(context.Background(), []domain.Coordinates{{Lat: 40, Lng: -75}}, domain.ModeDriving)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if len(matrix) != 1 || matrix[0][0] != 0 {
		t.Errorf("matrix = %v, want 1x1 zero", matrix)
	}
}

func TestORSMatrixProviderRetriesRateLimit(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(matrixJSON([][]float64{{0, 120}, {120, 0}}))
	})
	p := testProvider(t, handler, nil)

	coords := []domain.Coordinates{{Lat: 40, Lng: -75}, {Lat: 40.1, Lng: -75}}
	matrix, err := p.Matrix(context.Background(), coords, domain.ModeDriving)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if matrix[0][1] != 120 {
		t.Errorf("matrix = %v", matrix)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want a retry after 429", calls)
	}
}

func TestORSMatrixProviderMalformedResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// One row short.
		w.Write(matrixJSON([][]float64{{0, 100}}))
	})
	p := testProvider(t, handler, nil)

	coords := []domain.Coordinates{{Lat: 40, Lng: -75}, {Lat: 40.1, Lng: -75}}
	if _, err := p.Matrix(context.Background(), coords, domain.ModeDriving); err == nil {
		t.Error("expected error for truncated matrix")
	}
}

func TestORSMatrixProviderCacheHitSkipsAPI(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	matrixCache := cache.NewRedisMatrixCache(rdb, time.Hour)

	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write(matrixJSON([][]float64{{0, 240}, {250, 0}}))
	})
	p := testProvider(t, handler, matrixCache)

	coords := []domain.Coordinates{{Lat: 40, Lng: -75}, {Lat: 40.1, Lng: -75}}

	first, err := p.Matrix(context.Background(), coords, domain.ModeDriving)
	if err != nil {
		t.Fatalf("first matrix: %v", err)
	}
	second, err := p.Matrix(context.Background(), coords, domain.ModeDriving)
	if err != nil {
		t.Fatalf("second matrix: %v", err)
	}

	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("calls = %d, want 1 (second served from cache)", calls)
	}
	if first[0][1] != second[0][1] || first[1][0] != second[1][0] {
		t.Errorf("cache returned different durations: %v vs %v", first, second)
	}
}
