// Package testutil provides shared test helpers for building catalogs,
// stores and services.
package testutil

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/starford/peaklog/internal/catalog"
	"github.com/starford/peaklog/internal/climbservice"
	"github.com/starford/peaklog/internal/peaklog"
	"github.com/starford/peaklog/internal/storage"
	"github.com/starford/peaklog/internal/validate"
)

// Today is the fixed "now" used by TestValidator.
var Today = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

// FixtureJSON is a small catalog with one unranked peak.
const FixtureJSON = `[
 {"type":"peak","id":1,"attributes":{"peak_name":"Mt. Elbert","range":"Sawatch Range","rank":"1","elevation":"14433","towns":"Leadville","latitude":"39.1178","longitude":"-106.4454","imgSrc":"elbert.jpg"}},
 {"type":"peak","id":2,"attributes":{"peak_name":"Mt. Massive","range":"Sawatch Range","rank":"2","elevation":"14421","towns":"Leadville","latitude":"39.1875","longitude":"-106.4757","imgSrc":"massive.jpg"}},
 {"type":"peak","id":3,"attributes":{"peak_name":"Longs Peak","range":"Front Range","rank":"15","elevation":"14255","towns":"Estes Park","latitude":"40.2548","longitude":"-105.6160","imgSrc":"longs.jpg"}},
 {"type":"peak","id":4,"attributes":{"peak_name":"Mt. Cameron","range":"Mosquito Range","rank":"N/A","elevation":"14238","towns":"Alma","latitude":"39.3469","longitude":"-106.1186","imgSrc":"cameron.jpg"}}
]`

// TestCatalog returns the embedded 58-peak catalog.
func TestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// FixtureCatalog returns the four-peak FixtureJSON catalog.
func FixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(strings.NewReader(FixtureJSON))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// TestValidator returns a validator pinned to Today in UTC.
func TestValidator(cat *catalog.Catalog) *validate.Validator {
	return validate.New(cat,
		validate.WithClock(func() time.Time { return Today }),
		validate.WithLocation(time.UTC))
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestService builds a loaded service over an in-memory KV and the embedded
// catalog. notifier may be nil.
func TestService(t *testing.T, notifier climbservice.Notifier) (*climbservice.Service, *storage.Memory) {
	t.Helper()
	cat := TestCatalog(t)
	kv := storage.NewMemory()
	store := peaklog.New(kv, cat, DiscardLogger())
	svc := climbservice.NewService(cat, TestValidator(cat), store, notifier)
	svc.Load(t.Context())
	return svc, kv
}
