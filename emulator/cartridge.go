// Package emulator holds the cartridge side of the emulator: the loaded ROM,
// its battery backed save memory and snapshots of both.
package emulator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	ScreenWidth  = 240
	ScreenHeight = 160

	MaxSunLevel = 10

	stateMagic      = "VBAGX-STATE\x00"
	stateVersion    = 1
	stateHeaderSize = 22
)

var (
	ErrNotLoaded    = errors.New("no ROM loaded")
	ErrStateInvalid = errors.New("invalid snapshot")
	ErrStateROM     = errors.New("snapshot is for a different ROM")
)

// Cartridge is a ROM with its save memory. It satisfies the menu's Core
// interface on its own; a CPU core drives it through SRAM and SetSunLevel.
type Cartridge struct {
	logger *slog.Logger

	mu       sync.Mutex
	name     string
	rom      []byte
	crc      uint32
	header   Header
	saveType SaveType
	sram     []byte
	sun      int
	resets   int
	frame    *image.RGBA
}

func NewCartridge(logger *slog.Logger) *Cartridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cartridge{logger: logger}
}

func (c *Cartridge) Load(name string, rom []byte) error {
	h, err := ParseHeader(rom)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !ChecksumOK(rom) {
		c.logger.Warn("Cartridge header checksum mismatch", "name", name, "code", h.Code)
	}
	st := DetectSaveType(rom)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.name, c.rom, c.header, c.saveType = name, rom, h, st
	c.crc = crc32.ChecksumIEEE(rom)
	c.sram = blank(st.Size())
	c.sun, c.resets = 0, 0
	c.frame = titleCard(h)
	c.logger.Info("Cartridge loaded", "name", name, "title", h.Title, "code", h.Code, "save", st, "bytes", len(rom))
	return nil
}

// blank is erased save memory, which reads back as 0xFF.
func blank(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xff
	}
	return b
}

func (c *Cartridge) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rom != nil
}

func (c *Cartridge) Header() Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header
}

func (c *Cartridge) SaveType() SaveType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveType
}

// Reset restarts the game. Save memory survives.
func (c *Cartridge) Reset() {
	c.mu.Lock()
	c.resets++
	name := c.name
	c.mu.Unlock()
	c.logger.Debug("Cartridge reset", "name", name)
}

func (c *Cartridge) Resets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets
}

func (c *Cartridge) ROMCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header.Code
}

func (c *Cartridge) SunLevel() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sun
}

func (c *Cartridge) SetSunLevel(level int) {
	c.mu.Lock()
	c.sun = max(0, min(MaxSunLevel, level))
	c.mu.Unlock()
}

// SRAM is the live save memory. A CPU core reads and writes it directly.
func (c *Cartridge) SRAM() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sram
}

// BatteryData returns a copy of the save memory, or nothing for carts
// without a save chip.
func (c *Cartridge) BatteryData() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rom == nil {
		return nil, ErrNotLoaded
	}
	if len(c.sram) == 0 {
		return nil, nil
	}
	out := make([]byte, len(c.sram))
	copy(out, c.sram)
	return out, nil
}

// RestoreBattery loads a save file. Files for carts whose chip was not
// detected set the size; shorter files fill the start of memory.
func (c *Cartridge) RestoreBattery(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rom == nil {
		return ErrNotLoaded
	}
	if len(data) > len(c.sram) {
		c.logger.Debug("Save file larger than detected chip", "bytes", len(data), "chip", c.saveType)
		c.sram = blank(len(data))
	}
	copy(c.sram, data)
	return nil
}

// Snapshot serializes the cartridge state: a header with the ROM and data
// CRCs, then the sun level, reset count and save memory.
func (c *Cartridge) Snapshot() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rom == nil {
		return nil, ErrNotLoaded
	}

	data := make([]byte, stateHeaderSize+12+len(c.sram))
	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	binary.LittleEndian.PutUint32(data[14:18], c.crc)

	body := data[stateHeaderSize:]
	binary.LittleEndian.PutUint32(body[0:4], uint32(c.sun))
	binary.LittleEndian.PutUint32(body[4:8], uint32(c.resets))
	binary.LittleEndian.PutUint32(body[8:12], uint32(len(c.sram)))
	copy(body[12:], c.sram)

	binary.LittleEndian.PutUint32(data[18:22], crc32.ChecksumIEEE(body))
	return data, nil
}

func (c *Cartridge) RestoreSnapshot(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rom == nil {
		return ErrNotLoaded
	}
	if err := c.verify(data); err != nil {
		return err
	}

	body := data[stateHeaderSize:]
	sun := int(binary.LittleEndian.Uint32(body[0:4]))
	resets := int(binary.LittleEndian.Uint32(body[4:8]))
	n := int(binary.LittleEndian.Uint32(body[8:12]))
	if n != len(body)-12 {
		return fmt.Errorf("%w: save memory length %d", ErrStateInvalid, n)
	}

	c.sun = max(0, min(MaxSunLevel, sun))
	c.resets = resets
	c.sram = append([]byte(nil), body[12:]...)
	return nil
}

func (c *Cartridge) verify(data []byte) error {
	if len(data) < stateHeaderSize+12 {
		return fmt.Errorf("%w: too short", ErrStateInvalid)
	}
	if string(data[0:12]) != stateMagic {
		return fmt.Errorf("%w: bad magic", ErrStateInvalid)
	}
	if v := binary.LittleEndian.Uint16(data[12:14]); v > stateVersion {
		return fmt.Errorf("%w: version %d", ErrStateInvalid, v)
	}
	if binary.LittleEndian.Uint32(data[14:18]) != c.crc {
		return ErrStateROM
	}
	if binary.LittleEndian.Uint32(data[18:22]) != crc32.ChecksumIEEE(data[stateHeaderSize:]) {
		return fmt.Errorf("%w: data is corrupted", ErrStateInvalid)
	}
	return nil
}

// Screen is the last frame. Until a CPU core draws one it is a title card.
func (c *Cartridge) Screen() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	}
	return c.frame
}

// SetFrame replaces the current frame.
func (c *Cartridge) SetFrame(img *image.RGBA) {
	c.mu.Lock()
	c.frame = img
	c.mu.Unlock()
}

func titleCard(h Header) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 24, G: 24, B: 48, A: 255}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 240, G: 240, B: 240, A: 255}), Face: face}
	for i, line := range []string{h.Title, h.Code} {
		if line == "" {
			continue
		}
		w := d.MeasureString(line)
		d.Dot = fixed.Point26_6{
			X: (fixed.I(ScreenWidth) - w) / 2,
			Y: fixed.I(ScreenHeight/2 + i*18),
		}
		d.DrawString(line)
	}
	return img
}
