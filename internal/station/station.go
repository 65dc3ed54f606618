// Package station matches coordinates against the fixed set of
// forecast-capable stations using great-circle distance.
package station

import (
	"errors"
	"math"
)

// ErrEmptyList is returned when Nearest is called with no stations.
var ErrEmptyList = errors.New("station: empty station list")

const earthRadiusKm = 6371.0

// Station is a forecast point with known coordinates.
type Station struct {
	Code      string
	Name      string
	Latitude  float64
	Longitude float64
}

// HaversineKm calculates the great-circle distance in kilometers between two
// lat/lon points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Nearest returns the station closest to the given coordinates. Every entry
// is considered; ties go to the first encountered, so results are
// deterministic for a fixed list order.
func Nearest(lat, lon float64, stations []Station) (Station, error) {
	if len(stations) == 0 {
		return Station{}, ErrEmptyList
	}

	best := stations[0]
	bestDist := HaversineKm(lat, lon, best.Latitude, best.Longitude)
	for _, s := range stations[1:] {
		d := HaversineKm(lat, lon, s.Latitude, s.Longitude)
		if d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best, nil
}
