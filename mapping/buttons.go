package mapping

import "fmt"

// Wiimote codes. Extension codes share the upper half.
const (
	WPad2     uint32 = 0x0001
	WPad1     uint32 = 0x0002
	WPadB     uint32 = 0x0004
	WPadA     uint32 = 0x0008
	WPadMinus uint32 = 0x0010
	WPadHome  uint32 = 0x0080
	WPadLeft  uint32 = 0x0100
	WPadRight uint32 = 0x0200
	WPadDown  uint32 = 0x0400
	WPadUp    uint32 = 0x0800
	WPadPlus  uint32 = 0x1000

	NunchukZ uint32 = 0x0001 << 16
	NunchukC uint32 = 0x0002 << 16
)

const (
	ClassicUp    uint32 = 0x0001 << 16
	ClassicLeft  uint32 = 0x0002 << 16
	ClassicZR    uint32 = 0x0004 << 16
	ClassicX     uint32 = 0x0008 << 16
	ClassicA     uint32 = 0x0010 << 16
	ClassicY     uint32 = 0x0020 << 16
	ClassicB     uint32 = 0x0040 << 16
	ClassicZL    uint32 = 0x0080 << 16
	ClassicR     uint32 = 0x0200 << 16
	ClassicPlus  uint32 = 0x0400 << 16
	ClassicHome  uint32 = 0x0800 << 16
	ClassicMinus uint32 = 0x1000 << 16
	ClassicL     uint32 = 0x2000 << 16
	ClassicDown  uint32 = 0x4000 << 16
	ClassicRight uint32 = 0x8000 << 16
)

// GameCube pad codes.
const (
	PadLeft  uint32 = 0x0001
	PadRight uint32 = 0x0002
	PadDown  uint32 = 0x0004
	PadUp    uint32 = 0x0008
	PadZ     uint32 = 0x0010
	PadR     uint32 = 0x0020
	PadL     uint32 = 0x0040
	PadA     uint32 = 0x0100
	PadB     uint32 = 0x0200
	PadX     uint32 = 0x0400
	PadY     uint32 = 0x0800
	PadStart uint32 = 0x1000
)

// USB HID keyboard scancodes.
const (
	KeyA         uint32 = 4
	KeyS         uint32 = 22
	KeyX         uint32 = 27
	KeyZ         uint32 = 29
	KeyEnter     uint32 = 40
	KeyEsc       uint32 = 41
	KeyBackspace uint32 = 42
	KeyTab       uint32 = 43
	KeySpace     uint32 = 44
	KeyRight     uint32 = 79
	KeyLeft      uint32 = 80
	KeyDown      uint32 = 81
	KeyUp        uint32 = 82

	firstKey = 4
	lastKey  = 234
)

// Button is one physical control.
type Button struct {
	Code uint32
	Name string
}

var wiimoteButtons = []Button{
	{WPad2, "2"}, {WPad1, "1"}, {WPadB, "B"}, {WPadA, "A"},
	{WPadMinus, "Minus"}, {WPadHome, "Home"}, {WPadLeft, "Left"},
	{WPadRight, "Right"}, {WPadDown, "Down"}, {WPadUp, "Up"}, {WPadPlus, "Plus"},
}

var nunchukButtons = append([]Button{{NunchukZ, "Z"}, {NunchukC, "C"}}, wiimoteButtons...)

var classicButtons = []Button{
	{ClassicUp, "Up"}, {ClassicLeft, "Left"}, {ClassicZR, "ZR"}, {ClassicX, "X"},
	{ClassicA, "A"}, {ClassicY, "Y"}, {ClassicB, "B"}, {ClassicZL, "ZL"},
	{ClassicR, "R"}, {ClassicPlus, "Plus"}, {ClassicHome, "Home"},
	{ClassicMinus, "Minus"}, {ClassicL, "L"}, {ClassicDown, "Down"}, {ClassicRight, "Right"},
}

var padButtons = []Button{
	{PadLeft, "Left"}, {PadRight, "Right"}, {PadDown, "Down"}, {PadUp, "Up"},
	{PadZ, "Z"}, {PadR, "R"}, {PadL, "L"}, {PadA, "A"}, {PadB, "B"},
	{PadX, "X"}, {PadY, "Y"}, {PadStart, "Start"},
}

var keyNames = map[uint32]string{
	KeyEnter: "Enter", KeyEsc: "Esc", KeyBackspace: "Backspace", KeyTab: "Tab",
	KeySpace: "Space", KeyRight: "Right", KeyLeft: "Left", KeyDown: "Down", KeyUp: "Up",
	45: "-", 46: "=", 47: "[", 48: "]", 49: "\\", 51: ";", 52: "'", 53: "`",
	54: ",", 55: ".", 56: "/", 57: "Caps Lock",
	224: "Left Ctrl", 225: "Left Shift", 226: "Left Alt",
	228: "Right Ctrl", 229: "Right Shift", 230: "Right Alt",
}

// Buttons returns the physical controls of kind. Keyboards are not listed.
func Buttons(kind Kind) []Button {
	switch kind {
	case KindGCPad:
		return padButtons
	case KindWiimote:
		return wiimoteButtons
	case KindNunchuk:
		return nunchukButtons
	case KindClassic:
		return classicButtons
	}
	return nil
}

// Name returns the label of code on kind, or "" when it is unknown.
func Name(kind Kind, code uint32) string {
	if code == 0 {
		return ""
	}
	if kind == KindKeyboard {
		return keyName(code)
	}
	for _, b := range Buttons(kind) {
		if b.Code == code {
			return b.Name
		}
	}
	return ""
}

func keyName(code uint32) string {
	switch {
	case code >= KeyA && code <= KeyZ:
		return string(rune('A' + code - KeyA))
	case code >= 30 && code <= 38:
		return string(rune('1' + code - 30))
	case code == 39:
		return "0"
	case code >= 58 && code <= 69:
		return fmt.Sprintf("F%d", code-57)
	}
	if n, ok := keyNames[code]; ok {
		return n
	}
	if code >= firstKey && code <= lastKey {
		return fmt.Sprintf("Key %d", code)
	}
	return ""
}
