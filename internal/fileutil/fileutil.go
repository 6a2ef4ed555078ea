package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const DefaultBufferSize = 128 * 1024 // 128KB

// ProgressFunc receives the bytes copied so far and the expected total.
type ProgressFunc func(done, total int64)

type progressWriter struct {
	writer  io.Writer
	total   int64
	written int64
	report  ProgressFunc
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	if n > 0 && pw.report != nil {
		pw.written += int64(n)
		pw.report(pw.written, pw.total)
	}
	return n, err
}

// CopyWithProgress copies src into dst in DefaultBufferSize chunks,
// reporting after every chunk. src is wrapped so a WriterTo cannot bypass
// the buffer in one call.
func CopyWithProgress(dst io.Writer, src io.Reader, total int64, report ProgressFunc) (int64, error) {
	pw := &progressWriter{writer: dst, total: total, report: report}
	buf := make([]byte, DefaultBufferSize)
	return io.CopyBuffer(pw, struct{ io.Reader }{src}, buf)
}

// WriteFileAtomic writes through a temp file in the same directory and
// renames it over path, so readers never see a partial file.
func WriteFileAtomic(path string, r io.Reader, total int64, report ProgressFunc) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := CopyWithProgress(tmp, r, total, report); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write file contents: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func StripExtension(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// FilterHidden drops dot-files and dot-directories.
func FilterHidden(entries []os.DirEntry) []os.DirEntry {
	result := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), ".") {
			result = append(result, entry)
		}
	}
	return result
}
