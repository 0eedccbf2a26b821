// Package aggregate derives progress and map markers from a peak log.
package aggregate

import (
	"slices"

	"github.com/starford/peaklog/internal/models"
)

// Marker date labels. A marker with one date uses the singular form.
const (
	LabelSingle = "Date climbed"
	LabelPlural = "Dates climbed"
)

// DistinctPeaks returns each climbed peak name once, in first-seen order.
func DistinctPeaks(entries []models.LogEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	var out []string
	for _, e := range entries {
		if _, ok := seen[e.PeakName]; ok {
			continue
		}
		seen[e.PeakName] = struct{}{}
		out = append(out, e.PeakName)
	}
	return out
}

// Progress counts distinct climbed peaks against totalCount. Percent is the
// ceiling of the ratio so a single climb never reports 0%.
func Progress(entries []models.LogEntry, totalCount int) models.Progress {
	climbed := len(DistinctPeaks(entries))
	p := models.Progress{ClimbedCount: climbed, TotalCount: totalCount}
	if totalCount > 0 {
		p.Percent = (climbed*100 + totalCount - 1) / totalCount
	}
	return p
}

// ConsolidateForMap folds repeat climbs into one marker per peak. Markers
// appear in first-seen order; each marker's dates are ascending.
func ConsolidateForMap(entries []models.LogEntry) []models.MapMarker {
	index := make(map[string]int)
	markers := []models.MapMarker{}
	for _, e := range entries {
		if i, ok := index[e.PeakName]; ok {
			markers[i].DatesClimbed = append(markers[i].DatesClimbed, e.DateClimbed)
			continue
		}
		index[e.PeakName] = len(markers)
		markers = append(markers, models.MapMarker{
			PeakName:      e.PeakName,
			ElevationFeet: e.ElevationFeet,
			Rank:          e.Rank,
			DatesClimbed:  []models.Date{e.DateClimbed},
			Latitude:      e.Latitude,
			Longitude:     e.Longitude,
			ImageRef:      e.ImageRef,
		})
	}
	for i := range markers {
		slices.SortFunc(markers[i].DatesClimbed, models.Date.Compare)
		markers[i].DatesLabel = DatesLabel(len(markers[i].DatesClimbed))
	}
	return markers
}

// DatesLabel returns the caption for a marker with n climb dates.
func DatesLabel(n int) string {
	if n == 1 {
		return LabelSingle
	}
	return LabelPlural
}
