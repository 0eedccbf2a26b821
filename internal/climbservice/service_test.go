package climbservice_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/climbservice"
	"github.com/starford/peaklog/internal/models"
	"github.com/starford/peaklog/internal/peaklog"
	"github.com/starford/peaklog/internal/storage"
	"github.com/starford/peaklog/internal/testutil"
)

type recorder struct {
	events []string
}

func (r *recorder) ClimbAdded(e models.LogEntry) {
	r.events = append(r.events, "added:"+e.PeakName+"@"+e.DateClimbed.String())
}

func (r *recorder) ClimbRemoved(name string, date models.Date, n int) {
	r.events = append(r.events, "removed:"+name+"@"+date.String())
}

func (r *recorder) LogReloaded(int) {
	r.events = append(r.events, "reloaded")
}

func TestLog_ValidatesAndNotifies(t *testing.T) {
	rec := &recorder{}
	svc, kv := testutil.TestService(t, rec)
	ctx := t.Context()

	e, err := svc.Log(ctx, "Longs Peak", "2024-07-04", "windy")
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if e.Rank != "15" || e.ElevationFeet != 14255 || e.Notes != "windy" {
		t.Errorf("entry = %+v", e)
	}
	raw, ok, _ := kv.Get(peaklog.StorageKey)
	if !ok || !strings.Contains(raw, `"dateClimbed":"2024-07-04"`) {
		t.Errorf("persisted = %q", raw)
	}
	want := []string{"reloaded", "added:Longs Peak@2024-07-04"}
	if strings.Join(rec.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestLog_Rejections(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	ctx := t.Context()

	cases := []struct {
		name, date string
		want       error
	}{
		{"", "2024-01-01", apperr.ErrMissingSelection},
		{"Mount Nowhere", "2024-01-01", apperr.ErrNotInCatalog},
		{"Mt. Elbert", "", apperr.ErrMissingDate},
		{"Mt. Elbert", "2025-03-16", apperr.ErrDateOutOfRange},
		{"Mt. Elbert", "1925-03-14", apperr.ErrDateOutOfRange},
		{"Mt. Elbert", "03/01/2024", apperr.ErrDateOutOfRange},
	}
	for _, tc := range cases {
		_, err := svc.Log(ctx, tc.name, tc.date, "")
		if !errors.Is(err, tc.want) {
			t.Errorf("Log(%q, %q) = %v, want %v", tc.name, tc.date, err, tc.want)
		}
		if !apperr.IsValidation(err) {
			t.Errorf("Log(%q, %q) not a validation error", tc.name, tc.date)
		}
	}
	if got := svc.Progress(ctx); got.ClimbedCount != 0 {
		t.Errorf("rejected climbs were stored: %+v", got)
	}
}

func TestLog_KeepsNewestFirst(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	ctx := t.Context()

	for _, d := range []string{"2021-08-01", "2024-07-04", "2023-06-01"} {
		if _, err := svc.Log(ctx, "Mt. Elbert", d, ""); err != nil {
			t.Fatal(err)
		}
	}
	got, err := svc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	var dates []string
	for _, e := range got {
		dates = append(dates, e.DateClimbed.String())
	}
	if strings.Join(dates, ",") != "2024-07-04,2023-06-01,2021-08-01" {
		t.Errorf("dates = %v", dates)
	}
}

func TestRemove(t *testing.T) {
	rec := &recorder{}
	svc, _ := testutil.TestService(t, rec)
	ctx := t.Context()

	_, _ = svc.Log(ctx, "Mt. Elbert", "2024-07-04", "")
	_, _ = svc.Log(ctx, "Mt. Elbert", "2024-07-04", "second lap")
	_, _ = svc.Log(ctx, "Mt. Massive", "2024-07-05", "")

	n, err := svc.Remove(ctx, "Mt. Elbert", "2024-07-04")
	if err != nil || n != 2 {
		t.Fatalf("Remove = %d, %v; want 2", n, err)
	}
	n, err = svc.Remove(ctx, "Mt. Elbert", "2024-07-04")
	if err != nil || n != 0 {
		t.Fatalf("second Remove = %d, %v; want 0", n, err)
	}
	if _, err := svc.Remove(ctx, "Mt. Elbert", "July 4"); !errors.Is(err, apperr.ErrDateOutOfRange) {
		t.Errorf("bad date err = %v", err)
	}

	removed := 0
	for _, ev := range rec.events {
		if strings.HasPrefix(ev, "removed:") {
			removed++
		}
	}
	if removed != 1 {
		t.Errorf("removed events = %d, want 1 (no-op removals are silent)", removed)
	}
	if p := svc.Progress(ctx); p.ClimbedCount != 1 {
		t.Errorf("progress = %+v", p)
	}
}

func TestList_SortOrders(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	ctx := t.Context()

	_, _ = svc.Log(ctx, "Mt. Massive", "2024-07-01", "")
	_, _ = svc.Log(ctx, "Mt. Cameron", "2024-07-02", "")
	_, _ = svc.Log(ctx, "Mt. Elbert", "2024-07-03", "")

	byRank, err := svc.List(ctx, "peak-rank")
	if err != nil {
		t.Fatal(err)
	}
	if byRank[0].PeakName != "Mt. Elbert" || byRank[2].PeakName != "Mt. Cameron" {
		t.Errorf("rank order = %v, %v, %v", byRank[0].PeakName, byRank[1].PeakName, byRank[2].PeakName)
	}

	byName, _ := svc.List(ctx, "peak-name")
	if byName[0].PeakName != "Mt. Cameron" || byName[2].PeakName != "Mt. Massive" {
		t.Errorf("name order = %v, %v, %v", byName[0].PeakName, byName[1].PeakName, byName[2].PeakName)
	}

	if _, err := svc.List(ctx, "elevation"); !errors.Is(err, apperr.ErrUnknownSortOrder) {
		t.Errorf("unknown order err = %v", err)
	}
}

func TestProgressAndMap(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	ctx := t.Context()

	_, _ = svc.Log(ctx, "Mt. Elbert", "2024-07-01", "")
	_, _ = svc.Log(ctx, "Mt. Massive", "2024-07-02", "")
	if p := svc.Progress(ctx); p != (models.Progress{ClimbedCount: 2, TotalCount: 58, Percent: 4}) {
		t.Errorf("Progress = %+v", p)
	}

	svc2, _ := testutil.TestService(t, nil)
	_, _ = svc2.Log(ctx, "Longs Peak", "2024-07-04", "")
	_, _ = svc2.Log(ctx, "Longs Peak", "2023-06-01", "")
	markers := svc2.MapMarkers(ctx)
	if len(markers) != 1 {
		t.Fatalf("markers = %d, want 1", len(markers))
	}
	m := markers[0]
	if len(m.DatesClimbed) != 2 || m.DatesClimbed[0].String() != "2023-06-01" || m.DatesClimbed[1].String() != "2024-07-04" {
		t.Errorf("dates = %v", m.DatesClimbed)
	}
	if m.DatesLabel != "Dates climbed" {
		t.Errorf("label = %q", m.DatesLabel)
	}
}

func TestLoad_RestoresPersistedLog(t *testing.T) {
	cat := testutil.TestCatalog(t)
	kv := storage.NewMemory()
	ctx := t.Context()

	first := climbservice.NewService(cat, testutil.TestValidator(cat), peaklog.New(kv, cat, testutil.DiscardLogger()), nil)
	first.Load(ctx)
	_, _ = first.Log(ctx, "Mt. Elbert", "2020-01-01", "")
	_, _ = first.Log(ctx, "Mt. Massive", "2022-01-01", "")

	second := climbservice.NewService(cat, testutil.TestValidator(cat), peaklog.New(kv, cat, testutil.DiscardLogger()), nil)
	got := second.Load(ctx)
	if len(got) != 2 || got[0].PeakName != "Mt. Massive" {
		t.Errorf("Load = %+v", got)
	}
}

func TestPeaks(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	ctx := t.Context()
	if n := len(svc.Peaks(ctx)); n != 58 {
		t.Errorf("Peaks = %d", n)
	}
	if names := svc.PeakNames(ctx); names[0] != "Blanca Peak" {
		t.Errorf("first name = %q", names[0])
	}
}
