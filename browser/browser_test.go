package browser

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vbagx/storage"
)

type fakeLoader struct {
	name string
	rom  []byte
}

func (l *fakeLoader) Load(name string, rom []byte) error {
	l.name, l.rom = name, rom
	return nil
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestBrowser(t *testing.T) *Browser {
	t.Helper()
	root := t.TempDir()
	games := filepath.Join(root, "vbagx", "roms")
	writeFile(t, filepath.Join(games, "Metroid.gba"), []byte("metroid"))
	writeFile(t, filepath.Join(games, "notes.txt"), []byte("x"))
	writeFile(t, filepath.Join(games, "RPG", "Golden Sun.gba"), []byte("djinn"))
	writeZip(t, filepath.Join(games, "Pack.zip"), map[string]string{
		"inner/Advance Wars.gba": "wars",
		"readme.txt":             "x",
	})

	mounts := storage.NewMounts(map[storage.Method]string{storage.MethodSD: root}, nil)
	return New(mounts, nil, nil)
}

func TestBrowserListsAndNavigates(t *testing.T) {
	b := newTestBrowser(t)

	n, err := b.Open(storage.MethodAuto, "/vbagx/roms")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if want := []string{"RPG", "Metroid.gba", "Pack.zip"}; n != 3 || !equal(names(b.Entries()), want) {
		t.Fatalf("entries = %v, want %v", names(b.Entries()), want)
	}

	if _, err := b.Change(0); err != nil {
		t.Fatalf("Change into folder: %v", err)
	}
	if want := []string{ParentName, "Golden Sun.gba"}; !equal(names(b.Entries()), want) {
		t.Fatalf("subfolder entries = %v", names(b.Entries()))
	}

	// reopening keeps the subfolder
	if _, err := b.Open(storage.MethodAuto, "/vbagx/roms"); err != nil {
		t.Fatal(err)
	}
	if dir, _ := b.Dir(); dir != "/vbagx/roms/RPG" {
		t.Errorf("dir after reopen = %q", dir)
	}

	if _, err := b.Change(0); err != nil {
		t.Fatalf("Change to parent: %v", err)
	}
	if dir, _ := b.Dir(); dir != "/vbagx/roms" {
		t.Errorf("dir after parent = %q", dir)
	}

	if _, err := b.Change(1); !errors.Is(err, ErrNotROM) {
		t.Errorf("Change on a ROM err = %v, want ErrNotROM", err)
	}
}

func TestBrowserLoadsFromArchive(t *testing.T) {
	b := newTestBrowser(t)
	if _, err := b.Open(storage.MethodSD, "/vbagx/roms"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Change(2); err != nil {
		t.Fatalf("Change into archive: %v", err)
	}
	if want := []string{ParentName, "Advance Wars.gba"}; !equal(names(b.Entries()), want) {
		t.Fatalf("archive entries = %v", names(b.Entries()))
	}

	core := &fakeLoader{}
	if err := b.Load(1, core); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if core.name != "Advance Wars.gba" || string(core.rom) != "wars" {
		t.Errorf("loaded %q = %q", core.name, core.rom)
	}
	if b.ROMName() != "Advance Wars" {
		t.Errorf("ROMName = %q", b.ROMName())
	}

	if _, err := b.Change(0); err != nil {
		t.Fatal(err)
	}
	if _, archive := b.Dir(); archive != "" {
		t.Errorf("still inside archive %q", archive)
	}
}

func TestBrowserLoadsPlainFile(t *testing.T) {
	b := newTestBrowser(t)
	if _, err := b.Open(storage.MethodSD, "vbagx/roms"); err != nil {
		t.Fatal(err)
	}
	core := &fakeLoader{}
	if err := b.Load(1, core); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(core.rom) != "metroid" || b.Selected() != 1 {
		t.Errorf("rom = %q, selected = %d", core.rom, b.Selected())
	}
}

func TestBrowserInaccessible(t *testing.T) {
	b := newTestBrowser(t)
	if _, err := b.Open(storage.MethodSD, "/missing"); !errors.Is(err, ErrInaccessible) {
		t.Errorf("missing folder err = %v", err)
	}
	if _, err := b.Open(storage.MethodUSB, "/vbagx/roms"); !errors.Is(err, ErrInaccessible) {
		t.Errorf("unavailable device err = %v", err)
	}
}
