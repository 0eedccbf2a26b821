// Package sorter orders a peak log. Every order is a stable sort: entries
// that compare equal keep their previous relative order.
package sorter

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/models"
)

// Order names one of the supported orderings.
type Order string

const (
	ByDate Order = "date-climbed" // most recent first
	ByName Order = "peak-name"
	ByRank Order = "peak-rank"
)

// Orders lists the supported orderings, default first.
var Orders = []Order{ByDate, ByName, ByRank}

// ParseOrder maps a sort selector value to an Order. Empty selects ByDate.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.TrimSpace(s)); o {
	case "":
		return ByDate, nil
	case ByDate, ByName, ByRank:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", apperr.ErrUnknownSortOrder, s)
}

// Apply sorts entries in place by order.
func Apply(entries []models.LogEntry, order Order) error {
	switch order {
	case ByDate, "":
		ByDateDesc(entries)
	case ByName:
		ByPeakName(entries)
	case ByRank:
		ByPeakRank(entries)
	default:
		return fmt.Errorf("%w: %q", apperr.ErrUnknownSortOrder, order)
	}
	return nil
}

// ByDateDesc puts the most recent climb first.
func ByDateDesc(entries []models.LogEntry) {
	slices.SortStableFunc(entries, func(a, b models.LogEntry) int {
		return b.DateClimbed.Compare(a.DateClimbed)
	})
}

// ByPeakName orders by name, byte-wise and case-sensitive.
func ByPeakName(entries []models.LogEntry) {
	slices.SortStableFunc(entries, func(a, b models.LogEntry) int {
		return strings.Compare(a.PeakName, b.PeakName)
	})
}

// ByPeakRank orders by numeric rank ascending. Entries whose rank is not a
// number (the "N/A" sentinel) always sort after every ranked entry.
func ByPeakRank(entries []models.LogEntry) {
	slices.SortStableFunc(entries, func(a, b models.LogEntry) int {
		ra, okA := numericRank(a.Rank)
		rb, okB := numericRank(b.Rank)
		switch {
		case okA && okB:
			return cmp.Compare(ra, rb)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
}

func numericRank(rank string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(rank))
	if err != nil {
		return 0, false
	}
	return n, true
}
