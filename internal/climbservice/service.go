// Package climbservice coordinates the catalog, validator and peak log for
// every outer surface (HTTP, MCP, CLI).
package climbservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/starford/peaklog/internal/aggregate"
	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/catalog"
	"github.com/starford/peaklog/internal/models"
	"github.com/starford/peaklog/internal/peaklog"
	"github.com/starford/peaklog/internal/sorter"
	"github.com/starford/peaklog/internal/validate"
)

// Notifier receives log change notifications. *sse.Broker satisfies it.
type Notifier interface {
	ClimbAdded(e models.LogEntry)
	ClimbRemoved(name string, date models.Date, n int)
	LogReloaded(entries int)
}

type nopNotifier struct{}

func (nopNotifier) ClimbAdded(models.LogEntry)             {}
func (nopNotifier) ClimbRemoved(string, models.Date, int) {}
func (nopNotifier) LogReloaded(int)                       {}

// Service serialises access to the peak log.
type Service struct {
	mu        sync.Mutex
	catalog   *catalog.Catalog
	validator *validate.Validator
	store     *peaklog.Store
	notifier  Notifier
}

// NewService creates a climb service. notifier may be nil.
func NewService(cat *catalog.Catalog, v *validate.Validator, store *peaklog.Store, notifier Notifier) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Service{catalog: cat, validator: v, store: store, notifier: notifier}
}

// Load re-reads the persisted log and orders it newest first.
func (s *Service) Load(_ context.Context) []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Load()
	_ = s.store.Sort(sorter.ByDate)
	entries := s.store.Entries()
	s.notifier.LogReloaded(len(entries))
	return entries
}

// Peaks returns the catalog in its original order.
func (s *Service) Peaks(_ context.Context) []models.CatalogPeak {
	return s.catalog.All()
}

// PeakNames returns the catalog names sorted ascending.
func (s *Service) PeakNames(_ context.Context) []string {
	return s.catalog.AllNames()
}

// Log validates and records a climb of name on date.
func (s *Service) Log(_ context.Context, name, date, notes string) (models.LogEntry, error) {
	if err := s.validator.Validate(name, date); err != nil {
		return models.LogEntry{}, err
	}
	d, err := models.ParseDate(date)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("climbservice: log: %v: %w", err, apperr.ErrDateOutOfRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.store.Add(name, d, notes)
	if err != nil {
		return models.LogEntry{}, err
	}
	if err := s.store.Sort(sorter.ByDate); err != nil {
		return models.LogEntry{}, err
	}
	s.notifier.ClimbAdded(entry)
	return entry, nil
}

// Remove deletes every climb of name on date and returns how many went.
func (s *Service) Remove(_ context.Context, name, date string) (int, error) {
	d, err := models.ParseDate(date)
	if err != nil {
		return 0, fmt.Errorf("climbservice: remove: %v: %w", err, apperr.ErrDateOutOfRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.store.Remove(name, d)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if err := s.store.Sort(sorter.ByDate); err != nil {
		return 0, err
	}
	s.notifier.ClimbRemoved(name, d, n)
	return n, nil
}

// List reorders the log by order and returns a copy. The order sticks for
// later reads until the next mutation.
func (s *Service) List(_ context.Context, order string) ([]models.LogEntry, error) {
	o, err := sorter.ParseOrder(order)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Sort(o); err != nil {
		return nil, err
	}
	return s.store.Entries(), nil
}

// Progress reports distinct peaks climbed against the catalog size.
func (s *Service) Progress(_ context.Context) models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return aggregate.Progress(s.store.Entries(), s.catalog.TotalCount())
}

// MapMarkers returns one marker per distinct climbed peak.
func (s *Service) MapMarkers(_ context.Context) []models.MapMarker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return aggregate.ConsolidateForMap(s.store.Entries())
}

// Window returns the accepted date range for new climbs.
func (s *Service) Window() (lo, hi models.Date) {
	return s.validator.Window()
}
