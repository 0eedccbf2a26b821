package sorter

import (
	"errors"
	"slices"
	"testing"

	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/models"
)

func entry(name, rank, date, notes string) models.LogEntry {
	return models.LogEntry{PeakName: name, Rank: rank, DateClimbed: models.MustParseDate(date), Notes: notes}
}

func names(entries []models.LogEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.PeakName
	}
	return out
}

func TestByDateDesc(t *testing.T) {
	log := []models.LogEntry{
		entry("Mt. Elbert", "1", "2022-08-01", ""),
		entry("Longs Peak", "15", "2024-07-04", ""),
		entry("Mt. Massive", "2", "2023-06-01", ""),
		entry("Pikes Peak", "31", "2024-07-04", ""),
	}
	ByDateDesc(log)

	for i := 0; i+1 < len(log); i++ {
		if log[i].DateClimbed.Before(log[i+1].DateClimbed) {
			t.Fatalf("entry %d (%s) earlier than entry %d (%s)", i, log[i].DateClimbed, i+1, log[i+1].DateClimbed)
		}
	}
	// Equal dates keep insertion order.
	if got := names(log)[:2]; !slices.Equal(got, []string{"Longs Peak", "Pikes Peak"}) {
		t.Errorf("ties = %v", got)
	}

	again := slices.Clone(log)
	ByDateDesc(again)
	if !slices.Equal(again, log) {
		t.Error("sorting twice changed the order")
	}
}

func TestByPeakName_StableAndCaseSensitive(t *testing.T) {
	log := []models.LogEntry{
		entry("Mt. Massive", "2", "2023-06-01", "first"),
		entry("Longs Peak", "15", "2024-07-04", ""),
		entry("Mt. Massive", "2", "2021-06-01", "second"),
		entry("blanca", "4", "2020-01-01", ""),
		entry("Blanca Peak", "4", "2020-01-01", ""),
	}
	ByPeakName(log)

	want := []string{"Blanca Peak", "Longs Peak", "Mt. Massive", "Mt. Massive", "blanca"}
	if got := names(log); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if log[2].Notes != "first" || log[3].Notes != "second" {
		t.Error("equal names did not keep prior relative order")
	}
}

func TestByPeakRank_UnrankedLast(t *testing.T) {
	log := []models.LogEntry{
		entry("North Maroon Peak", "N/A", "2020-01-01", ""),
		entry("Longs Peak", "15", "2024-07-04", ""),
		entry("Mt. Elbert", "1", "2022-08-01", ""),
		entry("Mt. Cameron", "N/A", "2021-01-01", ""),
		entry("Mt. Massive", "2", "2023-06-01", ""),
		entry("Pikes Peak", "31", "2019-01-01", ""),
	}
	ByPeakRank(log)

	want := []string{"Mt. Elbert", "Mt. Massive", "Longs Peak", "Pikes Peak", "North Maroon Peak", "Mt. Cameron"}
	if got := names(log); !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestByPeakRank_NumericNotLexical(t *testing.T) {
	log := []models.LogEntry{
		entry("Ten", "10", "2020-01-01", ""),
		entry("Nine", "9", "2020-01-01", ""),
	}
	ByPeakRank(log)
	if log[0].PeakName != "Nine" {
		t.Errorf("rank 9 should precede rank 10, got %v", names(log))
	}
}

func TestSortingKeepsEntries(t *testing.T) {
	log := []models.LogEntry{
		entry("A", "3", "2020-01-01", ""),
		entry("B", "N/A", "2021-01-01", ""),
		entry("C", "1", "2022-01-01", ""),
	}
	for _, o := range Orders {
		cp := slices.Clone(log)
		if err := Apply(cp, o); err != nil {
			t.Fatalf("Apply(%s): %v", o, err)
		}
		if len(cp) != len(log) {
			t.Fatalf("Apply(%s) changed length", o)
		}
		got := names(cp)
		slices.Sort(got)
		if !slices.Equal(got, []string{"A", "B", "C"}) {
			t.Errorf("Apply(%s) lost entries: %v", o, got)
		}
	}
}

func TestParseOrder(t *testing.T) {
	cases := map[string]Order{
		"":             ByDate,
		"date-climbed": ByDate,
		"peak-name":    ByName,
		" peak-rank ":  ByRank,
	}
	for in, want := range cases {
		got, err := ParseOrder(in)
		if err != nil || got != want {
			t.Errorf("ParseOrder(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseOrder("elevation"); !errors.Is(err, apperr.ErrUnknownSortOrder) {
		t.Errorf("unknown order err = %v", err)
	}
	if err := Apply(nil, Order("bogus")); !errors.Is(err, apperr.ErrUnknownSortOrder) {
		t.Errorf("Apply bogus err = %v", err)
	}
}
