package geocoder

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a place name cannot be resolved. Network
// failures and malformed responses are reported as ordinary errors; callers
// treat both uniformly as "could not resolve" and never retry here.
var ErrNotFound = errors.New("geocoder: place not found")

// Result is a resolved place.
type Result struct {
	Latitude      float64
	Longitude     float64
	CanonicalName string
}

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, placeName string) (Result, error)
}
