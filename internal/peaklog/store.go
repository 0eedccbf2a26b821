// Package peaklog owns the user's log of climbed peaks and keeps it in sync
// with a key-value store.
package peaklog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/catalog"
	"github.com/starford/peaklog/internal/models"
	"github.com/starford/peaklog/internal/sorter"
	"github.com/starford/peaklog/internal/storage"
)

// StorageKey is the key the serialized log lives under.
const StorageKey = "userPeakLog"

// Store holds the ordered log. Every successful mutation rewrites the full
// log to the KV before returning, so memory and storage never diverge.
//
// Store is not safe for concurrent use.
type Store struct {
	kv      storage.KV
	catalog *catalog.Catalog
	logger  *slog.Logger
	entries []models.LogEntry
}

// New creates an empty Store. Call Load to restore persisted entries.
func New(kv storage.KV, cat *catalog.Catalog, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, catalog: cat, logger: logger}
}

// Load replaces the in-memory log with the persisted one. A missing key,
// a read failure or malformed data all yield an empty log; the latter two
// are logged as data loss.
func (s *Store) Load() []models.LogEntry {
	s.entries = nil

	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Warn("peaklog: persisted log unreadable, starting empty",
			slog.String("key", StorageKey),
			slog.String("error", err.Error()))
		return s.Entries()
	}
	if !ok {
		return s.Entries()
	}

	var entries []models.LogEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("peaklog: persisted log malformed, starting empty",
			slog.String("key", StorageKey),
			slog.Int("bytes", len(raw)),
			slog.String("error", err.Error()))
		return s.Entries()
	}
	s.entries = entries
	s.logger.Debug("peaklog: loaded", slog.Int("entries", len(entries)))
	return s.Entries()
}

// Add appends a climb of name on date. The name must resolve in the catalog;
// callers are expected to have validated it already.
func (s *Store) Add(name string, date models.Date, notes string) (models.LogEntry, error) {
	peak, ok := s.catalog.FindByName(name)
	if !ok {
		return models.LogEntry{}, fmt.Errorf("peaklog: add %q: %w", name, apperr.ErrUnknownPeak)
	}
	entry := models.NewLogEntry(peak, date, notes)

	prev := s.entries
	s.entries = append(slices.Clip(prev), entry)
	if err := s.persist(); err != nil {
		s.entries = prev
		return models.LogEntry{}, err
	}
	return entry, nil
}

// Remove deletes every entry for name climbed on date and returns how many
// were removed. Two climbs of the same peak on the same day cannot be told
// apart, so both go. No match is not an error and writes nothing.
func (s *Store) Remove(name string, date models.Date) (int, error) {
	kept := slices.DeleteFunc(slices.Clone(s.entries), func(e models.LogEntry) bool {
		return e.Matches(name, date)
	})
	removed := len(s.entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	prev := s.entries
	s.entries = kept
	if err := s.persist(); err != nil {
		s.entries = prev
		return 0, err
	}
	return removed, nil
}

// Sort reorders the in-memory log. The new order is not persisted.
func (s *Store) Sort(order sorter.Order) error {
	return sorter.Apply(s.entries, order)
}

// Entries returns a copy of the log in its current order.
func (s *Store) Entries() []models.LogEntry {
	out := slices.Clone(s.entries)
	if out == nil {
		out = []models.LogEntry{}
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) persist() error {
	entries := s.entries
	if entries == nil {
		entries = []models.LogEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("peaklog: encode: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("peaklog: persist: %w", err)
	}
	return nil
}
