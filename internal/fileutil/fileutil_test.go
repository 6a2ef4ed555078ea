package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saves", "Golden Sun 1.sav")
	data := bytes.Repeat([]byte{0xab}, DefaultBufferSize+10)

	var calls int
	var last int64
	err := WriteFileAtomic(path, bytes.NewReader(data), int64(len(data)), func(done, total int64) {
		calls++
		last = done
		if total != int64(len(data)) {
			t.Errorf("total = %d", total)
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("written content differs")
	}
	if calls < 2 || last != int64(len(data)) {
		t.Errorf("progress reported %d times, last %d", calls, last)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestCopyWithProgressChunks(t *testing.T) {
	tests := []struct {
		name string
		size int
		want []int64
	}{
		{"one chunk", 100, []int64{100}},
		{"exact chunks", 2 * DefaultBufferSize, []int64{DefaultBufferSize, 2 * DefaultBufferSize}},
		{"partial last chunk", 2*DefaultBufferSize + 500, []int64{DefaultBufferSize, 2 * DefaultBufferSize, 2*DefaultBufferSize + 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// bytes.Reader is an io.WriterTo and must still be chunked
			src := bytes.NewReader(make([]byte, tt.size))
			var dst bytes.Buffer
			var got []int64
			n, err := CopyWithProgress(&dst, src, int64(tt.size), func(done, _ int64) {
				got = append(got, done)
			})
			if err != nil {
				t.Fatal(err)
			}
			if n != int64(tt.size) || dst.Len() != tt.size {
				t.Errorf("copied %d bytes, buffer holds %d", n, dst.Len())
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("progress = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterHidden(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".hidden", "game.gba", ".trash"} {
		os.WriteFile(filepath.Join(dir, name), nil, 0644)
	}
	os.Mkdir(filepath.Join(dir, "roms"), 0755)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	visible := FilterHidden(entries)
	if len(visible) != 2 {
		t.Fatalf("got %d visible entries", len(visible))
	}
	if visible[0].Name() != "game.gba" || visible[1].Name() != "roms" {
		t.Errorf("visible = %s, %s", visible[0].Name(), visible[1].Name())
	}
}

func TestStripExtension(t *testing.T) {
	tests := map[string]string{
		"Golden Sun.gba": "Golden Sun",
		"archive.tar.gz": "archive.tar",
		"no extension":   "no extension",
		"Boktai (U).zip": "Boktai (U)",
	}
	for in, want := range tests {
		if got := StripExtension(in); got != want {
			t.Errorf("StripExtension(%q) = %q, want %q", in, got, want)
		}
	}
}
