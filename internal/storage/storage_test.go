package storage

import (
	"os"
	"testing"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProbeRoundTrip(t *testing.T) {
	s := openMemory(t)

	if _, found, err := s.GetProbe(0xABCDEF, true); err != nil || found {
		t.Fatalf("empty store: found=%v err=%v", found, err)
	}

	want := ProbeRecord{WDL: 2, DTZ: 13}
	if err := s.PutProbe(0xABCDEF, true, want); err != nil {
		t.Fatalf("PutProbe: %v", err)
	}
	got, found, err := s.GetProbe(0xABCDEF, true)
	if err != nil || !found {
		t.Fatalf("GetProbe: found=%v err=%v", found, err)
	}
	if got.WDL != want.WDL || got.DTZ != want.DTZ {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.Stored.IsZero() {
		t.Error("PutProbe should stamp the record")
	}

	// The 50-move flag is part of the key.
	if _, found, _ := s.GetProbe(0xABCDEF, false); found {
		t.Error("record stored with use50 should not answer use50=false")
	}
}

func TestCountAndDrop(t *testing.T) {
	s := openMemory(t)
	for i := uint64(1); i <= 5; i++ {
		if err := s.PutProbe(i, false, ProbeRecord{WDL: 0}); err != nil {
			t.Fatal(err)
		}
	}
	n, err := s.CountProbes()
	if err != nil || n != 5 {
		t.Fatalf("CountProbes = %d, %v; want 5", n, err)
	}
	if err := s.DropProbes(); err != nil {
		t.Fatalf("DropProbes: %v", err)
	}
	if n, _ := s.CountProbes(); n != 0 {
		t.Errorf("after drop: %d records", n)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.PutProbe(42, true, ProbeRecord{WDL: -2, DTZ: 7}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	rec, found, err := s.GetProbe(42, true)
	if err != nil || !found || rec.WDL != -2 || rec.DTZ != 7 {
		t.Errorf("after reopen: %+v found=%v err=%v", rec, found, err)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("APPDATA", os.Getenv("XDG_DATA_HOME"))

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("database directory missing: %v", err)
	}
}
