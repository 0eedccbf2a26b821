package storage

import (
	"path/filepath"
	"testing"
)

// exerciseKV runs the same contract against every backend.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()

	if _, ok, err := kv.Get("userPeakLog"); err != nil || ok {
		t.Fatalf("fresh store Get = ok %v, err %v", ok, err)
	}
	if err := kv.Set("userPeakLog", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("userPeakLog", `[{"peak_name":"Longs Peak"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get("userPeakLog")
	if err != nil || !ok {
		t.Fatalf("Get: ok %v, err %v", ok, err)
	}
	if v != `[{"peak_name":"Longs Peak"}]` {
		t.Errorf("value = %q", v)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestFSKV(t *testing.T) {
	exerciseKV(t, tempStore(t))
}

func TestSQLiteKV(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "peaklog.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	exerciseKV(t, db)
}

func TestSQLiteKV_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peaklog.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	_ = db.Set("userPeakLog", "persisted")
	db.Close()

	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	v, ok, _ := db.Get("userPeakLog")
	if !ok || v != "persisted" {
		t.Errorf("after reopen = (%q, %v)", v, ok)
	}
}
