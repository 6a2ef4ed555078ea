package storage

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"vbagx/internal/fileutil"
)

var (
	ErrUnavailable = errors.New("storage device unavailable")
	ErrOutsideRoot = errors.New("path escapes device root")
)

// Reporter receives transfer progress. progress.Notifier implements it.
type Reporter interface {
	ShowProgress(msg string, done, total int64)
}

type Entry struct {
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// Mounts maps each load/save method to a directory on the host. A method
// without a root, or whose root does not exist, is unavailable.
type Mounts struct {
	roots  map[Method]string
	logger *slog.Logger
}

func NewMounts(roots map[Method]string, logger *slog.Logger) *Mounts {
	if logger == nil {
		logger = slog.Default()
	}
	clean := make(map[Method]string, len(roots))
	for m, root := range roots {
		if root != "" && m != MethodAuto {
			clean[m] = filepath.Clean(root)
		}
	}
	return &Mounts{roots: clean, logger: logger}
}

func (m *Mounts) Available(method Method) bool {
	root, ok := m.roots[method]
	return ok && fileutil.DirExists(root)
}

// ResolveLoad maps Auto to the first available load device.
func (m *Mounts) ResolveLoad(method Method) (Method, error) {
	return m.resolve(method, loadProbeOrder)
}

// ResolveSave maps Auto to the first available save device.
func (m *Mounts) ResolveSave(method Method) (Method, error) {
	return m.resolve(method, saveProbeOrder)
}

func (m *Mounts) resolve(method Method, order []Method) (Method, error) {
	if method != MethodAuto {
		if !m.Available(method) {
			return method, fmt.Errorf("%s: %w", method, ErrUnavailable)
		}
		return method, nil
	}
	for _, candidate := range order {
		if m.Available(candidate) {
			m.logger.Debug("Auto-detected device", "method", candidate)
			return candidate, nil
		}
	}
	return MethodAuto, fmt.Errorf("auto-detect: %w", ErrUnavailable)
}

// Path joins rel onto the root of method, refusing paths that leave it.
func (m *Mounts) Path(method Method, rel string) (string, error) {
	root, ok := m.roots[method]
	if !ok {
		return "", fmt.Errorf("%s: %w", method, ErrUnavailable)
	}
	full := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	inside, err := filepath.Rel(root, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", rel, ErrOutsideRoot)
	}
	return full, nil
}

// ReadDir lists dir without hidden entries, directories first, then by name.
func (m *Mounts) ReadDir(method Method, dir string) ([]Entry, error) {
	path, err := m.Path(method, dir)
	if err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range fileutil.FilterHidden(dirEntries) {
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			IsDir:   de.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

func (m *Mounts) Stat(method Method, rel string) (Entry, error) {
	path, err := m.Path(method, rel)
	if err != nil {
		return Entry{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: info.Name(), IsDir: info.IsDir(), Size: info.Size(), ModTime: info.ModTime()}, nil
}

// ReadFile reads rel, reporting progress under msg when r is not nil.
func (m *Mounts) ReadFile(method Method, rel string, r Reporter, msg string) ([]byte, error) {
	path, err := m.Path(method, rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", rel, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", rel, err)
	}

	var buf bytes.Buffer
	buf.Grow(int(info.Size()))
	if _, err := fileutil.CopyWithProgress(&buf, f, info.Size(), report(r, msg)); err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	return buf.Bytes(), nil
}

func (m *Mounts) WriteFile(method Method, rel string, data []byte, r Reporter, msg string) error {
	path, err := m.Path(method, rel)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, bytes.NewReader(data), int64(len(data)), report(r, msg)); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	m.logger.Debug("Wrote file", "method", method, "path", rel, "bytes", len(data))
	return nil
}

// Open returns a reader for archive access. The caller closes it.
func (m *Mounts) Open(method Method, rel string) (*os.File, error) {
	path, err := m.Path(method, rel)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func report(r Reporter, msg string) fileutil.ProgressFunc {
	if r == nil {
		return nil
	}
	return func(done, total int64) {
		r.ShowProgress(msg, done, total)
	}
}
