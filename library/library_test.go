package library

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"vbagx/saves"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", DefaultFile), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordPlayAndRecent(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	plays := []struct {
		rom string
		at  time.Time
	}{
		{"Metroid Fusion", base},
		{"Golden Sun", base.Add(time.Hour)},
		{"Metroid Fusion", base.Add(2 * time.Hour)},
		{"Advance Wars", base.Add(30 * time.Minute)},
	}
	for _, p := range plays {
		if err := s.RecordPlay(p.rom, p.at); err != nil {
			t.Fatalf("RecordPlay(%s): %v", p.rom, err)
		}
	}

	at, ok, err := s.LastPlayed("Metroid Fusion")
	if err != nil || !ok || !at.Equal(base.Add(2*time.Hour)) {
		t.Errorf("LastPlayed = %v, %v, %v", at, ok, err)
	}
	if _, ok, err := s.LastPlayed("Zelda"); ok || err != nil {
		t.Errorf("LastPlayed(unknown) = %v, %v", ok, err)
	}

	recent, err := s.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].ROM != "Metroid Fusion" || recent[0].Count != 2 || recent[1].ROM != "Golden Sun" {
		t.Errorf("Recent = %+v", recent)
	}
}

func TestRecordSaveKeepsLatest(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, ok, _ := s.LastSlot("Golden Sun"); ok {
		t.Fatal("slot recorded before any save")
	}
	if err := s.RecordSave("Golden Sun", saves.KindSRAM, 3, now); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordSave("Golden Sun", saves.KindSnapshot, 7, now.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	slot, ok, err := s.LastSlot("Golden Sun")
	if err != nil || !ok {
		t.Fatalf("LastSlot = %v, %v", ok, err)
	}
	if slot.Kind != saves.KindSnapshot || slot.Slot != 7 {
		t.Errorf("LastSlot = %+v, want snapshot 7", slot)
	}
}

func TestClosedStore(t *testing.T) {
	s := openTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.RecordPlay("x", time.Now()); !errors.Is(err, ErrClosed) {
		t.Errorf("RecordPlay after close err = %v", err)
	}
}
