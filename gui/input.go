package gui

const Players = 4

type Buttons uint32

const (
	ButtonA Buttons = 1 << iota
	ButtonB
	ButtonX
	ButtonY
	ButtonL
	ButtonR
	ButtonStart
	ButtonSelect
	ButtonHome
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

const ButtonAny = ButtonA | ButtonB | ButtonX | ButtonY | ButtonL | ButtonR |
	ButtonStart | ButtonSelect | ButtonHome

type Expansion int

const (
	ExpansionNone Expansion = iota
	ExpansionNunchuk
	ExpansionClassic
)

type Pointer struct {
	Valid bool
	Moved bool
	X, Y  int
	Angle float64
}

// Input is one player's state for a single tick. Pressed, WPad, Pad and Key
// only carry presses that happened since the previous tick.
type Input struct {
	Player    int
	Connected bool
	Held      Buttons
	Pressed   Buttons

	// WPad holds Wiimote bits in the low half and Classic bits in the high half.
	WPad      uint32
	Pad       uint32
	Expansion Expansion
	SubStickX int
	SubStickY int
	Key       int

	Pointer Pointer

	consumed bool
	rumble   bool
}

// Consume marks the navigation part of the input as handled so enclosing
// windows do not move focus as well.
func (in *Input) Consume() {
	in.consumed = true
}

func (in *Input) Consumed() bool {
	return in.consumed
}

func (in *Input) RequestRumble() {
	in.rumble = true
}

func (in *Input) Any() bool {
	return in.Pressed&ButtonAny != 0 || in.WPad != 0 || in.Pad != 0 || in.Key != 0
}

func (in *Input) merge(next Input) {
	in.Player = next.Player
	in.Connected = next.Connected
	in.Held = next.Held
	in.Pressed |= next.Pressed
	in.WPad |= next.WPad
	in.Pad |= next.Pad
	in.Expansion = next.Expansion
	in.SubStickX = next.SubStickX
	in.SubStickY = next.SubStickY
	if next.Key != 0 {
		in.Key = next.Key
	}
	in.Pointer = next.Pointer
}
