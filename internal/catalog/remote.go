package catalog

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RemoteCatalog fetches the hierarchy from a structured XML document once
// and serves it from memory for the process lifetime. There is no TTL or
// refresh; staleness is an accepted trade-off.
type RemoteCatalog struct {
	url        string
	httpClient *http.Client
	logger     zerolog.Logger

	mu     sync.Mutex
	loaded *StaticCatalog
}

// NewRemote creates a catalog backed by a remote XML document.
func NewRemote(url string, timeout time.Duration, logger zerolog.Logger) *RemoteCatalog {
	return &RemoteCatalog{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type xmlCity struct {
	Name string `xml:"name,attr"`
	Code string `xml:"code,attr"`
}

type xmlPrefecture struct {
	Name   string    `xml:"name,attr"`
	Cities []xmlCity `xml:"city"`
}

type xmlArea struct {
	Name        string          `xml:"name,attr"`
	Prefectures []xmlPrefecture `xml:"prefecture"`
}

type xmlCatalog struct {
	XMLName xml.Name  `xml:"catalog"`
	Areas   []xmlArea `xml:"area"`
}

// Load implements Catalog. The fetch happens at most once: concurrent callers
// block on the same guard and every caller after the first success is a no-op.
func (c *RemoteCatalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded != nil {
		return nil
	}

	entries, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", c.url).Msg("catalog load failed")
		return fmt.Errorf("catalog: load %s: %w", c.url, ErrUnavailable)
	}

	c.loaded = newStaticFrom(entries)
	c.logger.Info().Int("areas", len(entries)).Msg("catalog loaded")
	return nil
}

func (c *RemoteCatalog) fetch(ctx context.Context) ([]areaEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document source returned status %d", resp.StatusCode)
	}

	var doc xmlCatalog
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	return entriesFromXML(doc)
}

// entriesFromXML validates the parsed document as a whole. Any structural
// problem rejects the entire catalog so callers never see partial data.
func entriesFromXML(doc xmlCatalog) ([]areaEntry, error) {
	if len(doc.Areas) == 0 {
		return nil, fmt.Errorf("document contains no areas")
	}

	seenCodes := make(map[string]string)
	entries := make([]areaEntry, 0, len(doc.Areas))
	for _, a := range doc.Areas {
		if a.Name == "" || len(a.Prefectures) == 0 {
			return nil, fmt.Errorf("area %q is empty", a.Name)
		}
		prefs := make([]prefectureEntry, 0, len(a.Prefectures))
		for _, p := range a.Prefectures {
			if p.Name == "" || len(p.Cities) == 0 {
				return nil, fmt.Errorf("prefecture %q in area %q is empty", p.Name, a.Name)
			}
			cities := make([]City, 0, len(p.Cities))
			for _, city := range p.Cities {
				if city.Name == "" || city.Code == "" {
					return nil, fmt.Errorf("city %q in prefecture %q is incomplete", city.Name, p.Name)
				}
				if prev, dup := seenCodes[city.Code]; dup {
					return nil, fmt.Errorf("station code %s assigned to both %q and %q", city.Code, prev, city.Name)
				}
				seenCodes[city.Code] = city.Name
				cities = append(cities, City{Name: city.Name, Code: city.Code})
			}
			prefs = append(prefs, prefectureEntry{Name: p.Name, Cities: cities})
		}
		entries = append(entries, areaEntry{Name: a.Name, Prefectures: prefs})
	}
	return entries, nil
}

func (c *RemoteCatalog) snapshot() (*StaticCatalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded == nil {
		return nil, fmt.Errorf("catalog: not loaded: %w", ErrUnavailable)
	}
	return c.loaded, nil
}

// Areas implements Catalog.
func (c *RemoteCatalog) Areas() ([]string, error) {
	loaded, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return loaded.Areas()
}

// PrefecturesOf implements Catalog.
func (c *RemoteCatalog) PrefecturesOf(area string) ([]string, error) {
	loaded, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return loaded.PrefecturesOf(area)
}

// CitiesOf implements Catalog.
func (c *RemoteCatalog) CitiesOf(area, prefecture string) ([]City, error) {
	loaded, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return loaded.CitiesOf(area, prefecture)
}
