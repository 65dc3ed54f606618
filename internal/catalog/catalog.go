package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested area or prefecture does not exist
// in the catalog.
var ErrNotFound = errors.New("catalog: not found")

// ErrUnavailable is returned when the catalog could not be loaded. A failed
// load invalidates the whole catalog for that attempt; callers must not
// proceed with partial data.
var ErrUnavailable = errors.New("catalog: unavailable")

// City is a selectable forecast point with its station code.
type City struct {
	Name string
	Code string
}

// Catalog exposes the area → prefecture → city hierarchy used for
// menu-driven location selection. Implementations are immutable once loaded
// and safe for concurrent use.
type Catalog interface {
	// Load fetches and parses the hierarchy. It is idempotent; once any
	// call succeeds, subsequent calls are no-ops.
	Load(ctx context.Context) error

	// Areas returns area names in stable presentation order.
	Areas() ([]string, error)

	// PrefecturesOf returns the prefecture names under an area.
	PrefecturesOf(area string) ([]string, error)

	// CitiesOf returns the cities under a prefecture of an area.
	CitiesOf(area, prefecture string) ([]City, error)
}
