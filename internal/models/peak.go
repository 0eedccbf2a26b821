// Package models defines the domain types for peaklog.
package models

// RankNotRanked is the catalog sentinel for peaks without an official rank.
const RankNotRanked = "N/A"

// CatalogPeak is one entry of the read-only reference catalog.
type CatalogPeak struct {
	ID            int     `json:"id"`
	Name          string  `json:"peak_name"`
	Range         string  `json:"range"`
	Rank          string  `json:"rank"`
	ElevationFeet int     `json:"elevation"`
	Towns         string  `json:"towns"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ImageRef      string  `json:"imgSrc"`
}

// LogEntry records one climb of a peak. The catalog fields are copied at the
// time the climb is logged so the entry stays readable if the catalog changes.
type LogEntry struct {
	PeakName      string  `json:"peak_name"`
	Range         string  `json:"range"`
	Rank          string  `json:"rank"`
	ElevationFeet int     `json:"elevation"`
	Towns         string  `json:"towns"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ImageRef      string  `json:"imgSrc"`
	DateClimbed   Date    `json:"dateClimbed"`
	Notes         string  `json:"notes"`
}

// NewLogEntry builds an entry for peak climbed on date.
func NewLogEntry(peak CatalogPeak, date Date, notes string) LogEntry {
	return LogEntry{
		PeakName:      peak.Name,
		Range:         peak.Range,
		Rank:          peak.Rank,
		ElevationFeet: peak.ElevationFeet,
		Towns:         peak.Towns,
		Latitude:      peak.Latitude,
		Longitude:     peak.Longitude,
		ImageRef:      peak.ImageRef,
		DateClimbed:   date,
		Notes:         notes,
	}
}

// Matches reports whether e is the climb identified by name and date.
func (e LogEntry) Matches(name string, date Date) bool {
	return e.PeakName == name && e.DateClimbed == date
}

// MapMarker consolidates every climb of one peak into a single map pin.
type MapMarker struct {
	PeakName      string  `json:"peak_name"`
	ElevationFeet int     `json:"elevation"`
	Rank          string  `json:"rank"`
	DatesClimbed  []Date  `json:"dates_climbed"`
	DatesLabel    string  `json:"dates_label"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ImageRef      string  `json:"imgSrc"`
}

// Progress summarises how much of the catalog has been climbed.
type Progress struct {
	ClimbedCount int `json:"climbed_count"`
	TotalCount   int `json:"total_count"`
	Percent      int `json:"percent"`
}
