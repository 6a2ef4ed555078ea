package emulator

import (
	"bytes"
	"errors"
	"strings"
)

const (
	headerSize    = 0xc0
	titleOffset   = 0xa0
	codeOffset    = 0xac
	makerOffset   = 0xb0
	fixedOffset   = 0xb2
	versionOffset = 0xbc
	checkOffset   = 0xbd

	fixedValue = 0x96
)

var ErrNoHeader = errors.New("ROM too small to contain a cartridge header")

type Header struct {
	Title    string // 0xA0-0xAB, trimmed ASCII
	Code     string // 0xAC-0xAF, e.g. "U3IE"
	Maker    string // 0xB0-0xB1
	Version  byte   // 0xBC
	Checksum byte   // 0xBD
}

func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < headerSize {
		return Header{}, ErrNoHeader
	}
	return Header{
		Title:    trimASCII(rom[titleOffset:codeOffset]),
		Code:     trimASCII(rom[codeOffset:makerOffset]),
		Maker:    trimASCII(rom[makerOffset:fixedOffset]),
		Version:  rom[versionOffset],
		Checksum: rom[checkOffset],
	}, nil
}

// ChecksumOK verifies the header complement check and the fixed 0x96 byte.
func ChecksumOK(rom []byte) bool {
	if len(rom) < headerSize || rom[fixedOffset] != fixedValue {
		return false
	}
	return complement(rom) == rom[checkOffset]
}

func complement(rom []byte) byte {
	var sum byte
	for _, b := range rom[titleOffset:checkOffset] {
		sum -= b
	}
	return sum - 0x19
}

func trimASCII(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}

type SaveType int

const (
	SaveNone SaveType = iota
	SaveEEPROM
	SaveSRAM
	SaveFlash64K
	SaveFlash128K
)

func (t SaveType) String() string {
	switch t {
	case SaveEEPROM:
		return "EEPROM"
	case SaveSRAM:
		return "SRAM"
	case SaveFlash64K:
		return "Flash 64K"
	case SaveFlash128K:
		return "Flash 128K"
	}
	return "none"
}

// Size is the battery backed memory size of t. EEPROM carts may be 512
// bytes; the larger size holds both.
func (t SaveType) Size() int {
	switch t {
	case SaveEEPROM:
		return 8 * 1024
	case SaveSRAM:
		return 32 * 1024
	case SaveFlash64K:
		return 64 * 1024
	case SaveFlash128K:
		return 128 * 1024
	}
	return 0
}

// Library ID strings the SDK links into carts with each kind of save chip.
// The longer Flash IDs come first since "FLASH_V" is not a prefix of them.
var saveIDs = []struct {
	id   []byte
	kind SaveType
}{
	{[]byte("FLASH1M_V"), SaveFlash128K},
	{[]byte("FLASH512_V"), SaveFlash64K},
	{[]byte("FLASH_V"), SaveFlash64K},
	{[]byte("SRAM_V"), SaveSRAM},
	{[]byte("SRAM_F_V"), SaveSRAM},
	{[]byte("EEPROM_V"), SaveEEPROM},
}

func DetectSaveType(rom []byte) SaveType {
	for _, s := range saveIDs {
		if bytes.Contains(rom, s.id) {
			return s.kind
		}
	}
	return SaveNone
}
