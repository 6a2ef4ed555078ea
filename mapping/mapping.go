// Package mapping describes the controllers the menu can remap and the GBA
// buttons they drive.
package mapping

import "fmt"

type Kind int

const (
	KindGCPad Kind = iota
	KindWiimote
	KindNunchuk
	KindClassic
	KindKeyboard
	KindCount
)

var kindNames = [KindCount]string{
	KindGCPad:    "GameCube Controller",
	KindWiimote:  "Wiimote",
	KindNunchuk:  "Wiimote + Nunchuk",
	KindClassic:  "Classic Controller",
	KindKeyboard: "Keyboard",
}

var kindKeys = [KindCount]string{
	KindGCPad:    "gcpad",
	KindWiimote:  "wiimote",
	KindNunchuk:  "nunchuk",
	KindClassic:  "classic",
	KindKeyboard: "keyboard",
}

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Key is the identifier used in the preferences file.
func (k Kind) Key() string {
	if k < 0 || k >= KindCount {
		return ""
	}
	return kindKeys[k]
}

func ParseKind(key string) (Kind, bool) {
	for k, v := range kindKeys {
		if v == key {
			return Kind(k), true
		}
	}
	return KindGCPad, false
}

// GBA buttons in the order they are listed on the mapping page.
const (
	GBAB = iota
	GBAA
	GBASelect
	GBAStart
	GBAUp
	GBADown
	GBALeft
	GBARight
	GBAL
	GBAR
	GBAButtonCount
)

var GBAButtonNames = [GBAButtonCount]string{
	"B", "A", "Select", "Start", "Up", "Down", "Left", "Right", "L", "R",
}

// Map binds each GBA button to a raw controller code. Zero is unbound.
type Map [GBAButtonCount]uint32

// Maps holds one Map per controller kind.
type Maps [KindCount]Map

func DefaultMaps() Maps {
	var m Maps
	for k := Kind(0); k < KindCount; k++ {
		m[k] = Default(k)
	}
	return m
}

func Default(kind Kind) Map {
	switch kind {
	case KindGCPad:
		return Map{PadB, PadA, PadZ, PadStart, PadUp, PadDown, PadLeft, PadRight, PadL, PadR}
	case KindWiimote:
		// held sideways: the d-pad rotates a quarter turn
		return Map{WPad1, WPad2, WPadMinus, WPadPlus, WPadRight, WPadLeft, WPadUp, WPadDown, WPadB, WPadA}
	case KindNunchuk:
		return Map{WPadB, WPadA, WPadMinus, WPadPlus, WPadUp, WPadDown, WPadLeft, WPadRight, NunchukZ, NunchukC}
	case KindClassic:
		return Map{ClassicB, ClassicA, ClassicMinus, ClassicPlus, ClassicUp, ClassicDown, ClassicLeft, ClassicRight, ClassicL, ClassicR}
	case KindKeyboard:
		return Map{KeyZ, KeyX, KeyBackspace, KeyEnter, KeyUp, KeyDown, KeyLeft, KeyRight, KeyA, KeyS}
	}
	return Map{}
}
