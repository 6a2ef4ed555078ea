package saves

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
	"os"
	"path"

	"vbagx/internal/imageutil"
	"vbagx/locale"
	"vbagx/storage"

	"go.uber.org/atomic"
)

// Preview images are stored at the native GBA resolution.
const (
	PreviewWidth  = 240
	PreviewHeight = 160
)

// Core is the part of the emulator saves are read from and written to.
type Core interface {
	BatteryData() ([]byte, error)
	RestoreBattery(data []byte) error
	Snapshot() ([]byte, error)
	RestoreSnapshot(data []byte) error
	Screen() image.Image
}

// Notifier shows transfer feedback. progress.Notifier implements it.
type Notifier interface {
	storage.Reporter
	ShowAction(msg string)
	CancelAction()
}

type Manager struct {
	core   Core
	mounts *storage.Mounts
	notify Notifier
	logger *slog.Logger
	verify atomic.Bool
}

func NewManager(core Core, mounts *storage.Mounts, notify Notifier, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{core: core, mounts: mounts, notify: notify, logger: logger}
}

// SetVerify makes every save read its file back and compare it.
func (m *Manager) SetVerify(v bool) {
	m.verify.Store(v)
}

// List searches folder on method for the saves of rom. A missing folder is
// an empty list.
func (m *Manager) List(method storage.Method, folder, rom string) (List, error) {
	entries, err := m.mounts.ReadDir(method, folder)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return List{}, nil
		}
		return List{}, err
	}
	return Search(rom, entries, method.MemoryCard()), nil
}

// Preview loads the screenshot stored next to a snapshot. Memory cards do
// not keep previews, so nil is returned for them.
func (m *Manager) Preview(method storage.Method, folder string, f File) (image.Image, error) {
	if f.Kind != KindSnapshot || method.MemoryCard() {
		return nil, nil
	}
	data, err := m.mounts.ReadFile(method, path.Join(folder, f.Stem()+".png"), nil, "")
	if err != nil {
		return nil, err
	}
	return imageutil.Decode(data)
}

func (m *Manager) Load(method storage.Method, file string, kind Kind, silent bool) error {
	msg := locale.Get("loading", "Loading...")
	reporter := m.begin(msg, silent)
	defer m.end(silent)

	data, err := m.mounts.ReadFile(method, file, reporter, msg)
	if err != nil {
		return newError("load", kind, file, err)
	}

	switch kind {
	case KindSRAM:
		err = m.core.RestoreBattery(data)
	case KindSnapshot:
		err = m.core.RestoreSnapshot(data)
	default:
		err = ErrUnsupported
	}
	if err != nil {
		return newError("load", kind, file, err)
	}
	m.logger.Info("Loaded save", "kind", kind, "method", method, "path", file, "bytes", len(data))
	return nil
}

func (m *Manager) Save(method storage.Method, file string, kind Kind, silent bool) error {
	msg := locale.Get("saving", "Saving...")
	reporter := m.begin(msg, silent)
	defer m.end(silent)

	var data []byte
	var err error
	switch kind {
	case KindSRAM:
		data, err = m.core.BatteryData()
	case KindSnapshot:
		data, err = m.core.Snapshot()
	default:
		err = ErrUnsupported
	}
	if err != nil {
		return newError("save", kind, file, err)
	}
	if len(data) == 0 {
		return newError("save", kind, file, ErrNoData)
	}

	if err := m.mounts.WriteFile(method, file, data, reporter, msg); err != nil {
		return newError("save", kind, file, err)
	}

	if m.verify.Load() {
		written, err := m.mounts.ReadFile(method, file, nil, "")
		if err != nil {
			return newError("save", kind, file, err)
		}
		if !bytes.Equal(written, data) {
			return newError("save", kind, file, ErrVerify)
		}
	}

	if kind == KindSnapshot && !method.MemoryCard() {
		if err := m.savePreview(method, file); err != nil {
			m.logger.Warn("Could not write snapshot preview", "path", file, "error", err)
		}
	}

	m.logger.Info("Saved game", "kind", kind, "method", method, "path", file, "bytes", len(data))
	return nil
}

func (m *Manager) savePreview(method storage.Method, file string) error {
	screen := m.core.Screen()
	if screen == nil {
		return nil
	}
	data, err := imageutil.EncodePNG(imageutil.Fit(screen, PreviewWidth, PreviewHeight))
	if err != nil {
		return err
	}
	ext := path.Ext(file)
	return m.mounts.WriteFile(method, file[:len(file)-len(ext)]+".png", data, nil, "")
}

// SaveNew writes kind into the first free slot of l and returns the path.
func (m *Manager) SaveNew(method storage.Method, folder, rom string, l *List, kind Kind, silent bool) (string, error) {
	slot, ok := l.FirstFree(kind)
	if !ok {
		return "", newError("save", kind, folder, ErrNoSlot)
	}
	file := path.Join(folder, Name(Base(rom, method.MemoryCard()), kind, slot))
	return file, m.Save(method, file, kind, silent)
}

// SaveAuto writes the automatic slot of rom.
func (m *Manager) SaveAuto(method storage.Method, folder, rom string, kind Kind, silent bool) error {
	return m.Save(method, AutoPath(method, folder, rom, kind), kind, silent)
}

// LoadAuto reads the automatic slot of rom.
func (m *Manager) LoadAuto(method storage.Method, folder, rom string, kind Kind, silent bool) error {
	return m.Load(method, AutoPath(method, folder, rom, kind), kind, silent)
}

func AutoPath(method storage.Method, folder, rom string, kind Kind) string {
	return path.Join(folder, Name(Base(rom, method.MemoryCard()), kind, 0))
}

func (m *Manager) begin(msg string, silent bool) storage.Reporter {
	if silent || m.notify == nil {
		return nil
	}
	m.notify.ShowAction(msg)
	return m.notify
}

func (m *Manager) end(silent bool) {
	if !silent && m.notify != nil {
		m.notify.CancelAction()
	}
}
