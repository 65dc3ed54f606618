package catalog

import (
	"context"
	"fmt"
)

// StaticCatalog serves the hierarchy embedded at compile time. Load never
// fails and performs no I/O.
type StaticCatalog struct {
	entries []areaEntry
	byArea  map[string]map[string][]City
}

// NewStatic creates a catalog backed by the embedded place table.
func NewStatic() *StaticCatalog {
	return newStaticFrom(areaTable)
}

func newStaticFrom(entries []areaEntry) *StaticCatalog {
	byArea := make(map[string]map[string][]City, len(entries))
	for _, a := range entries {
		prefs := make(map[string][]City, len(a.Prefectures))
		for _, p := range a.Prefectures {
			prefs[p.Name] = p.Cities
		}
		byArea[a.Name] = prefs
	}
	return &StaticCatalog{entries: entries, byArea: byArea}
}

// Load implements Catalog. The embedded table is always available.
func (c *StaticCatalog) Load(_ context.Context) error {
	return nil
}

// Areas implements Catalog.
func (c *StaticCatalog) Areas() ([]string, error) {
	names := make([]string, len(c.entries))
	for i, a := range c.entries {
		names[i] = a.Name
	}
	return names, nil
}

// PrefecturesOf implements Catalog.
func (c *StaticCatalog) PrefecturesOf(area string) ([]string, error) {
	for _, a := range c.entries {
		if a.Name == area {
			names := make([]string, len(a.Prefectures))
			for i, p := range a.Prefectures {
				names[i] = p.Name
			}
			return names, nil
		}
	}
	return nil, fmt.Errorf("catalog: unknown area %q: %w", area, ErrNotFound)
}

// CitiesOf implements Catalog.
func (c *StaticCatalog) CitiesOf(area, prefecture string) ([]City, error) {
	prefs, ok := c.byArea[area]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown area %q: %w", area, ErrNotFound)
	}
	cities, ok := prefs[prefecture]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown prefecture %q in area %q: %w", prefecture, area, ErrNotFound)
	}
	return cities, nil
}
