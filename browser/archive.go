package browser

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"vbagx/internal/fileutil"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

type format int

const (
	formatNone format = iota
	format7z
	formatRAR
	formatZIP
)

var archiveExtensions = map[string]format{
	".7z":  format7z,
	".rar": formatRAR,
	".zip": formatZIP,
}

func archiveFormat(name string) format {
	return archiveExtensions[strings.ToLower(path.Ext(name))]
}

type member struct {
	name string
	size int64
}

func listArchive(file string) ([]member, error) {
	var members []member
	add := func(name string, size int64, dir bool) {
		if !dir && isROM(name) {
			members = append(members, member{name: name, size: size})
		}
	}

	switch archiveFormat(file) {
	case format7z:
		r, err := sevenzip.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open 7z: %w", err)
		}
		defer r.Close()
		for _, f := range r.File {
			add(f.Name, int64(f.UncompressedSize), f.FileInfo().IsDir())
		}

	case formatRAR:
		r, err := rardecode.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open rar: %w", err)
		}
		defer r.Close()
		for {
			header, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read rar entry: %w", err)
			}
			add(header.Name, header.UnPackedSize, header.IsDir)
		}

	case formatZIP:
		r, err := zip.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open zip: %w", err)
		}
		defer r.Close()
		for _, f := range r.File {
			add(f.Name, int64(f.UncompressedSize64), f.FileInfo().IsDir())
		}

	default:
		return nil, fmt.Errorf("%s: not an archive", path.Base(file))
	}
	return members, nil
}

var errMemberNotFound = errors.New("file not found in archive")

// readMember extracts one file, reporting progress against its unpacked size.
func readMember(file string, m member, report fileutil.ProgressFunc) ([]byte, error) {
	if m.size > MaxROMSize {
		return nil, ErrTooLarge
	}

	var rc io.Reader
	switch archiveFormat(file) {
	case format7z:
		r, err := sevenzip.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open 7z: %w", err)
		}
		defer r.Close()
		for _, f := range r.File {
			if f.Name != m.name {
				continue
			}
			frc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
			}
			defer frc.Close()
			rc = frc
			break
		}

	case formatRAR:
		r, err := rardecode.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open rar: %w", err)
		}
		defer r.Close()
		for {
			header, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read rar entry: %w", err)
			}
			if header.Name == m.name {
				rc = r
				break
			}
		}

	case formatZIP:
		r, err := zip.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open zip: %w", err)
		}
		defer r.Close()
		for _, f := range r.File {
			if f.Name != m.name {
				continue
			}
			frc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
			}
			defer frc.Close()
			rc = frc
			break
		}
	}

	if rc == nil {
		return nil, fmt.Errorf("%s: %w", m.name, errMemberNotFound)
	}

	var buf bytes.Buffer
	buf.Grow(int(m.size))
	if _, err := fileutil.CopyWithProgress(&buf, io.LimitReader(rc, MaxROMSize+1), m.size, report); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", m.name, err)
	}
	if buf.Len() > MaxROMSize {
		return nil, ErrTooLarge
	}
	return buf.Bytes(), nil
}
