package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-07-04 ")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d != (Date{Year: 2024, Month: time.July, Day: 4}) {
		t.Errorf("date = %+v", d)
	}
	if d.String() != "2024-07-04" {
		t.Errorf("String() = %q", d.String())
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "07/04/2024", "2024-13-01", "2024-02-30"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) should fail", s)
		}
	}
}

func TestDateCompare(t *testing.T) {
	a := MustParseDate("2023-06-01")
	b := MustParseDate("2024-07-04")
	if !a.Before(b) || !b.After(a) {
		t.Error("2023-06-01 should be before 2024-07-04")
	}
	if a.Compare(a) != 0 {
		t.Error("date should equal itself")
	}
	if MustParseDate("2024-01-31").Compare(MustParseDate("2024-02-01")) != -1 {
		t.Error("month boundary compare wrong")
	}
}

func TestDateAddYears(t *testing.T) {
	if got := MustParseDate("2024-05-10").AddYears(-100); got.String() != "1924-05-10" {
		t.Errorf("AddYears(-100) = %s", got)
	}
	if got := MustParseDate("2024-02-29").AddYears(-1); got.String() != "2023-03-01" {
		t.Errorf("leap day AddYears(-1) = %s, want 2023-03-01", got)
	}
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 7, 4, 23, 59, 59, 0, time.UTC)
	if DateOf(late) != MustParseDate("2024-07-04") {
		t.Errorf("DateOf(%v) = %s", late, DateOf(late))
	}
}

func TestLogEntryJSON(t *testing.T) {
	e := LogEntry{PeakName: "Longs Peak", Rank: "15", ElevationFeet: 14255, DateClimbed: MustParseDate("2024-07-04"), Notes: "windy"}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if m["dateClimbed"] != "2024-07-04" {
		t.Errorf("dateClimbed = %v", m["dateClimbed"])
	}
	if m["peak_name"] != "Longs Peak" {
		t.Errorf("peak_name = %v", m["peak_name"])
	}

	var back LogEntry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != e {
		t.Errorf("round trip = %+v, want %+v", back, e)
	}
}

func TestDateUnmarshalEmpty(t *testing.T) {
	var e LogEntry
	if err := json.Unmarshal([]byte(`{"peak_name":"x","dateClimbed":""}`), &e); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !e.DateClimbed.IsZero() {
		t.Errorf("expected zero date, got %s", e.DateClimbed)
	}
}
