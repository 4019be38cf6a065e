package domain

import "math"

// TransportMode selects the assumed travel speed for fallback estimates.
type TransportMode string

const (
	ModeDriving TransportMode = "driving"
	ModeWalking TransportMode = "walking"
	ModeTransit TransportMode = "transit"
)

const earthRadiusKm = 6371.0

// Fallback speeds in km/h per transport mode.
var modeSpeedKmh = map[TransportMode]float64{
	ModeDriving: 25.0,
	ModeWalking: 4.5,
	ModeTransit: 18.0,
}

const (
	minTravelEstimateMin = 5
	maxTravelEstimateMin = 90
)

// DistanceKm computes the haversine great-circle distance between two points.
func DistanceKm(a, b Coordinates) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// EstimateTravelMin converts a distance to whole minutes of travel at the
// mode's assumed speed. The result is clamped to [5, 90] so degenerate
// near-zero or very long hops don't distort scheduling.
func EstimateTravelMin(distanceKm float64, mode TransportMode) int {
	speed, ok := modeSpeedKmh[mode]
	if !ok {
		speed = modeSpeedKmh[ModeDriving]
	}

	minutes := int(math.Ceil(distanceKm / speed * 60))
	if minutes < minTravelEstimateMin {
		minutes = minTravelEstimateMin
	}
	if minutes > maxTravelEstimateMin {
		minutes = maxTravelEstimateMin
	}

	return minutes
}
