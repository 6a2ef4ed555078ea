// Package saves finds, names and transfers battery saves and snapshots.
package saves

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"vbagx/storage"
)

type Kind int

const (
	KindSRAM Kind = iota
	KindSnapshot
	kindCount
)

// MaxSaves bounds slot numbers; valid numbered slots are 1 to MaxSaves-1.
const MaxSaves = 100

// CardNameLimit is how much of a ROM name fits in a memory card file name.
const CardNameLimit = 26

func (k Kind) String() string {
	switch k {
	case KindSRAM:
		return "SRAM"
	case KindSnapshot:
		return "Snapshot"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Ext() string {
	if k == KindSnapshot {
		return ".sgm"
	}
	return ".sav"
}

// Base returns the prefix save files for rom start with.
func Base(rom string, memoryCard bool) string {
	if memoryCard && len(rom) > CardNameLimit {
		return rom[:CardNameLimit]
	}
	return rom
}

// Name builds the file name of slot. Slot 0 is the automatic save.
func Name(base string, kind Kind, slot int) string {
	if slot <= 0 {
		return base + " Auto" + kind.Ext()
	}
	return fmt.Sprintf("%s %d%s", base, slot, kind.Ext())
}

type File struct {
	Name    string
	Kind    Kind
	Slot    int
	ModTime time.Time
}

// Stem is the file name without its extension.
func (f File) Stem() string {
	return strings.TrimSuffix(f.Name, f.Kind.Ext())
}

type List struct {
	Files []File
	used  [kindCount][MaxSaves]bool
}

// Search collects the saves of base among entries. On memory cards base
// is cut to what fits in a card file name.
func Search(base string, entries []storage.Entry, memoryCard bool) List {
	base = Base(base, memoryCard)

	var l List
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		name := e.Name
		if len(name) <= 5 || !strings.HasPrefix(name, base) {
			continue
		}

		var kind Kind
		switch {
		case strings.HasSuffix(name, ".sav"):
			kind = KindSRAM
		case strings.HasSuffix(name, ".sgm"):
			kind = KindSnapshot
		default:
			continue
		}

		slot := parseSlot(name[len(base) : len(name)-4])
		if slot > 0 {
			l.used[kind][slot] = true
		}
		l.Files = append(l.Files, File{Name: name, Kind: kind, Slot: slot, ModTime: e.ModTime})
	}
	return l
}

// parseSlot reads " N" or " NN". Anything else is slot 0.
func parseSlot(suffix string) int {
	if len(suffix) < 2 || len(suffix) > 3 || suffix[0] != ' ' {
		return 0
	}
	n, err := strconv.Atoi(suffix[1:])
	if err != nil || n < 1 || n >= MaxSaves {
		return 0
	}
	return n
}

// FirstFree returns the lowest numbered slot of kind with no file.
func (l *List) FirstFree(kind Kind) (int, bool) {
	if kind < 0 || kind >= kindCount {
		return 0, false
	}
	for i := 1; i < MaxSaves; i++ {
		if !l.Used(kind, i) {
			return i, true
		}
	}
	return 0, false
}

func (l *List) Used(kind Kind, slot int) bool {
	if kind < 0 || kind >= kindCount || slot < 1 || slot >= MaxSaves {
		return false
	}
	return l.used[kind][slot]
}

func (l *List) Len() int {
	return len(l.Files)
}
