// Package browser keeps the game list: the folder being shown, the archive
// being looked into, and the ROM that was loaded from it.
package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"vbagx/internal/fileutil"
	"vbagx/locale"
	"vbagx/storage"
)

// MaxROMSize is the largest GBA cartridge image.
const MaxROMSize = 32 * 1024 * 1024

const ParentName = ".."

var (
	ErrInaccessible = errors.New("games directory is inaccessible")
	ErrTooLarge     = errors.New("file exceeds maximum ROM size")
	ErrNotROM       = errors.New("entry is not a ROM")
)

var romExtensions = []string{".gba", ".agb", ".gbc", ".gb", ".bin"}

func isROM(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range romExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Loader receives a ROM image. menu.Core implements it.
type Loader interface {
	Load(name string, rom []byte) error
}

type Entry struct {
	Name    string
	IsDir   bool
	Archive bool
	Size    int64

	member string
}

type Browser struct {
	mounts   *storage.Mounts
	reporter storage.Reporter
	logger   *slog.Logger

	mu       sync.Mutex
	method   storage.Method
	root     string
	dir      string
	archive  string
	entries  []Entry
	selected int
	rom      string
}

func New(mounts *storage.Mounts, reporter storage.Reporter, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{mounts: mounts, reporter: reporter, logger: logger}
}

// Open lists folder on the load device. Reopening the same folder keeps the
// subfolder and selection the user left off at.
func (b *Browser) Open(method storage.Method, folder string) (int, error) {
	resolved, err := b.mounts.ResolveLoad(method)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInaccessible, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	folder = path.Clean("/" + folder)
	if resolved != b.method || folder != b.root || !within(b.dir, folder) {
		b.method = resolved
		b.root = folder
		b.dir = folder
		b.archive = ""
		b.selected = 0
	}
	if err := b.refresh(); err != nil {
		return 0, err
	}
	return len(b.entries), nil
}

func within(dir, root string) bool {
	return dir == root || strings.HasPrefix(dir, strings.TrimSuffix(root, "/")+"/")
}

// Change enters the folder or archive at index, or goes up for the parent
// entry. It returns the new entry count.
func (b *Browser) Change(index int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.entries) {
		return len(b.entries), fmt.Errorf("entry %d out of range", index)
	}
	e := b.entries[index]

	prevDir, prevArchive := b.dir, b.archive
	switch {
	case e.Name == ParentName && b.archive != "":
		b.archive = ""
	case e.Name == ParentName:
		b.dir = path.Dir(b.dir)
	case e.Archive:
		b.archive = path.Join(b.dir, e.Name)
	case e.IsDir:
		b.dir = path.Join(b.dir, e.Name)
	default:
		return len(b.entries), fmt.Errorf("%s: %w", e.Name, ErrNotROM)
	}
	b.selected = 0

	if err := b.refresh(); err != nil {
		b.dir, b.archive = prevDir, prevArchive
		return len(b.entries), err
	}
	b.logger.Debug("Changed folder", "dir", b.dir, "archive", b.archive)
	return len(b.entries), nil
}

func (b *Browser) refresh() error {
	var entries []Entry
	if b.archive != "" || b.dir != b.root {
		entries = append(entries, Entry{Name: ParentName, IsDir: true})
	}

	if b.archive != "" {
		full, err := b.mounts.Path(b.method, b.archive)
		if err != nil {
			return err
		}
		members, err := listArchive(full)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInaccessible, err)
		}
		for _, m := range members {
			entries = append(entries, Entry{Name: path.Base(m.name), Size: m.size, member: m.name})
		}
		b.entries = entries
		return nil
	}

	list, err := b.mounts.ReadDir(b.method, b.dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInaccessible, err)
	}
	for _, e := range list {
		switch {
		case e.IsDir:
			entries = append(entries, Entry{Name: e.Name, IsDir: true})
		case archiveFormat(e.Name) != formatNone:
			entries = append(entries, Entry{Name: e.Name, Archive: true, Size: e.Size})
		case isROM(e.Name):
			entries = append(entries, Entry{Name: e.Name, Size: e.Size})
		}
	}
	b.entries = entries
	return nil
}

// Load reads the ROM at index and hands it to core.
func (b *Browser) Load(index int, core Loader) error {
	b.mu.Lock()
	if index < 0 || index >= len(b.entries) {
		b.mu.Unlock()
		return fmt.Errorf("entry %d out of range", index)
	}
	e := b.entries[index]
	method, dir, archive := b.method, b.dir, b.archive
	b.selected = index
	b.mu.Unlock()

	if e.IsDir || e.Archive {
		return fmt.Errorf("%s: %w", e.Name, ErrNotROM)
	}

	msg := locale.Get("loading_game", "Loading...")
	var data []byte
	var err error
	if archive != "" {
		var full string
		if full, err = b.mounts.Path(method, archive); err == nil {
			data, err = readMember(full, member{name: e.member, size: e.Size}, b.report(msg))
		}
	} else {
		if e.Size > MaxROMSize {
			return fmt.Errorf("%s: %w", e.Name, ErrTooLarge)
		}
		data, err = b.mounts.ReadFile(method, path.Join(dir, e.Name), b.reporter, msg)
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", e.Name, err)
	}

	if err := core.Load(e.Name, data); err != nil {
		return fmt.Errorf("loading %s: %w", e.Name, err)
	}

	b.mu.Lock()
	b.rom = fileutil.StripExtension(e.Name)
	b.mu.Unlock()
	b.logger.Info("Loaded ROM", "name", e.Name, "bytes", len(data), "archive", archive)
	return nil
}

func (b *Browser) report(msg string) fileutil.ProgressFunc {
	if b.reporter == nil {
		return nil
	}
	return func(done, total int64) {
		b.reporter.ShowProgress(msg, done, total)
	}
}

func (b *Browser) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Browser) Selected() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

func (b *Browser) SetSelected(i int) {
	b.mu.Lock()
	b.selected = i
	b.mu.Unlock()
}

// ROMName is the loaded ROM's file name without its extension. Save files
// are named after it.
func (b *Browser) ROMName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rom
}

// Dir is the folder currently listed, and the archive inside it if one is open.
func (b *Browser) Dir() (dir, archive string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir, b.archive
}
