package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type recordingReporter struct {
	calls int
	done  int64
	total int64
}

func (r *recordingReporter) ShowProgress(_ string, done, total int64) {
	r.calls++
	r.done, r.total = done, total
}

func TestResolveAutoProbesInOrder(t *testing.T) {
	sd := t.TempDir()
	usb := t.TempDir()

	tests := []struct {
		name    string
		roots   map[Method]string
		resolve func(*Mounts, Method) (Method, error)
		method  Method
		want    Method
		wantErr bool
	}{
		{"load prefers sd", map[Method]string{MethodSD: sd, MethodUSB: usb}, (*Mounts).ResolveLoad, MethodAuto, MethodSD, false},
		{"load falls back to usb", map[Method]string{MethodSD: filepath.Join(sd, "missing"), MethodUSB: usb}, (*Mounts).ResolveLoad, MethodAuto, MethodUSB, false},
		{"save probes memory card", map[Method]string{MethodMCSlotB: usb}, (*Mounts).ResolveSave, MethodAuto, MethodMCSlotB, false},
		{"load skips memory card", map[Method]string{MethodMCSlotA: usb}, (*Mounts).ResolveLoad, MethodAuto, MethodAuto, true},
		{"explicit unavailable", map[Method]string{MethodSD: sd}, (*Mounts).ResolveLoad, MethodUSB, MethodUSB, true},
		{"explicit available", map[Method]string{MethodSMB: sd}, (*Mounts).ResolveSave, MethodSMB, MethodSMB, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.resolve(NewMounts(tt.roots, nil), tt.method)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnavailable) {
				t.Fatalf("err = %v, want ErrUnavailable", err)
			}
			if got != tt.want {
				t.Errorf("resolved %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathRefusesEscapes(t *testing.T) {
	m := NewMounts(map[Method]string{MethodSD: t.TempDir()}, nil)

	for _, rel := range []string{"../etc/passwd", "roms/../../x"} {
		if _, err := m.Path(MethodSD, rel); !errors.Is(err, ErrOutsideRoot) {
			t.Errorf("Path(%q) err = %v, want ErrOutsideRoot", rel, err)
		}
	}
	if _, err := m.Path(MethodSD, "/vbagx/roms/../saves"); err != nil {
		t.Errorf("unexpected error for contained path: %v", err)
	}
}

func TestReadDirSortsAndHides(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.gba", "A.gba", ".hidden"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(root, "zfolder"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := NewMounts(map[Method]string{MethodSD: root}, nil).ReadDir(MethodSD, "")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"zfolder", "A.gba", "b.gba"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Name, name)
		}
	}
	if !entries[0].IsDir {
		t.Error("expected folder flag on first entry")
	}
}

func TestWriteThenReadReportsProgress(t *testing.T) {
	m := NewMounts(map[Method]string{MethodSD: t.TempDir()}, nil)
	data := make([]byte, 300*1024)
	for i := range data {
		data[i] = byte(i)
	}

	w := &recordingReporter{}
	if err := m.WriteFile(MethodSD, "saves/game 1.sav", data, w, "Saving"); err != nil {
		t.Fatal(err)
	}
	if w.calls != 3 || w.done != int64(len(data)) || w.total != int64(len(data)) {
		t.Errorf("write progress = %d calls, %d/%d", w.calls, w.done, w.total)
	}

	r := &recordingReporter{}
	got, err := m.ReadFile(MethodSD, "saves/game 1.sav", r, "Loading")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(data) || got[1234] != data[1234] {
		t.Error("read back different contents")
	}
	if r.done != int64(len(data)) {
		t.Errorf("read progress done = %d, want %d", r.done, len(data))
	}

	if _, err := m.ReadFile(MethodSD, "saves/missing.sav", nil, ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
}
