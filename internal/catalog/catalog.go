// Package catalog provides the read-only reference list of known peaks.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/starford/peaklog/internal/models"
)

//go:embed peaks.json
var embeddedPeaks []byte

// record mirrors one element of the catalog input format. Numeric
// attributes arrive as strings.
type record struct {
	Type       string `json:"type"`
	ID         int    `json:"id"`
	Attributes struct {
		Name      string `json:"peak_name"`
		Range     string `json:"range"`
		Rank      string `json:"rank"`
		Elevation string `json:"elevation"`
		Towns     string `json:"towns"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
		ImgSrc    string `json:"imgSrc"`
	} `json:"attributes"`
	Links string `json:"links"`
}

// Catalog is an immutable set of peaks keyed by name.
type Catalog struct {
	peaks  []models.CatalogPeak
	byName map[string]int
	names  []string
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedPeaks))
}

// Open loads a catalog file, or the compiled-in catalog when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a catalog in the input record format.
func Load(r io.Reader) (*Catalog, error) {
	var recs []record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	c := &Catalog{
		peaks:  make([]models.CatalogPeak, 0, len(recs)),
		byName: make(map[string]int, len(recs)),
		names:  make([]string, 0, len(recs)),
	}
	for _, rec := range recs {
		p, err := rec.peak()
		if err != nil {
			return nil, fmt.Errorf("catalog: record %d: %w", rec.ID, err)
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate peak name %q", p.Name)
		}
		c.byName[p.Name] = len(c.peaks)
		c.peaks = append(c.peaks, p)
		c.names = append(c.names, p.Name)
	}
	slices.Sort(c.names)
	return c, nil
}

func (rec record) peak() (models.CatalogPeak, error) {
	a := rec.Attributes
	if strings.TrimSpace(a.Name) == "" {
		return models.CatalogPeak{}, fmt.Errorf("empty peak name")
	}
	elev, err := strconv.Atoi(strings.TrimSpace(a.Elevation))
	if err != nil {
		return models.CatalogPeak{}, fmt.Errorf("elevation of %s: %w", a.Name, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(a.Latitude), 64)
	if err != nil {
		return models.CatalogPeak{}, fmt.Errorf("latitude of %s: %w", a.Name, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(a.Longitude), 64)
	if err != nil {
		return models.CatalogPeak{}, fmt.Errorf("longitude of %s: %w", a.Name, err)
	}
	return models.CatalogPeak{
		ID:            rec.ID,
		Name:          a.Name,
		Range:         a.Range,
		Rank:          a.Rank,
		ElevationFeet: elev,
		Towns:         a.Towns,
		Latitude:      lat,
		Longitude:     lng,
		ImageRef:      a.ImgSrc,
	}, nil
}

// FindByName looks a peak up by its exact name.
func (c *Catalog) FindByName(name string) (models.CatalogPeak, bool) {
	i, ok := c.byName[name]
	if !ok {
		return models.CatalogPeak{}, false
	}
	return c.peaks[i], true
}

// AllNames returns every peak name in ascending byte order.
func (c *Catalog) AllNames() []string {
	return slices.Clone(c.names)
}

// All returns the peaks in catalog order.
func (c *Catalog) All() []models.CatalogPeak {
	return slices.Clone(c.peaks)
}

// TotalCount is the number of peaks in the catalog.
func (c *Catalog) TotalCount() int {
	return len(c.peaks)
}
