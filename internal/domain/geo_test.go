package domain

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	// Paris -> London, roughly 344 km great-circle.
	paris := Coordinates{Lat: 48.8566, Lng: 2.3522}
	london := Coordinates{Lat: 51.5074, Lng: -0.1278}

	got := DistanceKm(paris, london)
	if math.Abs(got-344) > 5 {
		t.Errorf("DistanceKm(paris, london) = %.1f, want ~344", got)
	}

	if d := DistanceKm(paris, paris); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}

	if a, b := DistanceKm(paris, london), DistanceKm(london, paris); math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestEstimateTravelMin(t *testing.T) {
	cases := []struct {
		name string
		km   float64
		mode TransportMode
		want int
	}{
		{"driving short hop clamps to floor", 0.2, ModeDriving, 5},
		{"driving mid distance", 10, ModeDriving, 24},
		{"walking", 3, ModeWalking, 40},
		{"transit", 9, ModeTransit, 30},
		{"long haul clamps to ceiling", 500, ModeDriving, 90},
		{"unknown mode falls back to driving", 10, TransportMode("hoverboard"), 24},
	}

	for _, tc := range cases {
		if got := EstimateTravelMin(tc.km, tc.mode); got != tc.want {
			t.Errorf("%s: EstimateTravelMin(%.1f, %s) = %d, want %d", tc.name, tc.km, tc.mode, got, tc.want)
		}
	}
}
