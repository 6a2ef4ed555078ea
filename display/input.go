package display

import (
	"log/slog"
	"sync"

	"vbagx/gui"
	"vbagx/mapping"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

const (
	stickThreshold = 16000
	rumbleStrength = 0xc000
	rumbleMillis   = 250
)

type padButton struct {
	button sdl.GameControllerButton
	nav    gui.Buttons
	raw    uint32
}

// Controller buttons as menu buttons and as GameCube pad codes. The guide
// button stands in for the Wiimote Home button.
var padButtons = []padButton{
	{sdl.CONTROLLER_BUTTON_A, gui.ButtonA, mapping.PadA},
	{sdl.CONTROLLER_BUTTON_B, gui.ButtonB, mapping.PadB},
	{sdl.CONTROLLER_BUTTON_X, gui.ButtonX, mapping.PadX},
	{sdl.CONTROLLER_BUTTON_Y, gui.ButtonY, mapping.PadY},
	{sdl.CONTROLLER_BUTTON_LEFTSHOULDER, gui.ButtonL, mapping.PadL},
	{sdl.CONTROLLER_BUTTON_RIGHTSHOULDER, gui.ButtonR, mapping.PadR},
	{sdl.CONTROLLER_BUTTON_START, gui.ButtonStart, mapping.PadStart},
	{sdl.CONTROLLER_BUTTON_BACK, gui.ButtonSelect, mapping.PadZ},
	{sdl.CONTROLLER_BUTTON_DPAD_UP, gui.ButtonUp, mapping.PadUp},
	{sdl.CONTROLLER_BUTTON_DPAD_DOWN, gui.ButtonDown, mapping.PadDown},
	{sdl.CONTROLLER_BUTTON_DPAD_LEFT, gui.ButtonLeft, mapping.PadLeft},
	{sdl.CONTROLLER_BUTTON_DPAD_RIGHT, gui.ButtonRight, mapping.PadRight},
	{sdl.CONTROLLER_BUTTON_GUIDE, gui.ButtonHome, 0},
}

type keyButton struct {
	scancode sdl.Scancode
	nav      gui.Buttons
}

// Keyboard navigation for the first player.
var keyButtons = []keyButton{
	{sdl.SCANCODE_RETURN, gui.ButtonA},
	{sdl.SCANCODE_Z, gui.ButtonA},
	{sdl.SCANCODE_X, gui.ButtonB},
	{sdl.SCANCODE_BACKSPACE, gui.ButtonB},
	{sdl.SCANCODE_C, gui.ButtonX},
	{sdl.SCANCODE_V, gui.ButtonY},
	{sdl.SCANCODE_Q, gui.ButtonL},
	{sdl.SCANCODE_W, gui.ButtonR},
	{sdl.SCANCODE_SPACE, gui.ButtonStart},
	{sdl.SCANCODE_TAB, gui.ButtonSelect},
	{sdl.SCANCODE_ESCAPE, gui.ButtonHome},
	{sdl.SCANCODE_UP, gui.ButtonUp},
	{sdl.SCANCODE_DOWN, gui.ButtonDown},
	{sdl.SCANCODE_LEFT, gui.ButtonLeft},
	{sdl.SCANCODE_RIGHT, gui.ButtonRight},
}

// Input reads game controllers, the keyboard and the mouse. The keyboard
// and mouse belong to the first player.
type Input struct {
	logger *slog.Logger
	quit   atomic.Bool

	mu       sync.Mutex
	pads     [gui.Players]*sdl.GameController
	held     [gui.Players]gui.Buttons
	raw      [gui.Players]uint32
	rumbling [gui.Players]bool
	key      int
	pointer  gui.Pointer
	mouse    bool
}

func NewInput(logger *slog.Logger) *Input {
	if logger == nil {
		logger = slog.Default()
	}
	in := &Input{logger: logger}
	sdl.Do(func() {
		for i := 0; i < sdl.NumJoysticks(); i++ {
			in.openPad(i)
		}
	})
	return in
}

// Quit reports whether the window was closed.
func (in *Input) Quit() bool {
	return in.quit.Load()
}

func (in *Input) Poll() []gui.Input {
	out := make([]gui.Input, gui.Players)
	sdl.Do(func() {
		in.mu.Lock()
		defer in.mu.Unlock()
		in.key = 0
		in.pointer.Moved = false
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			in.handle(ev)
		}
		keys := sdl.GetKeyboardState()
		for p := range out {
			out[p] = in.read(p, keys)
		}
	})
	return out
}

func (in *Input) handle(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		in.quit.Store(true)
	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			in.openPad(int(e.Which))
		case sdl.CONTROLLERDEVICEREMOVED:
			in.closePad(e.Which)
		}
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			in.key = int(e.Keysym.Scancode)
		}
	case *sdl.MouseMotionEvent:
		in.pointer = gui.Pointer{Valid: true, Moved: true, X: int(e.X), Y: int(e.Y)}
	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_LEFT {
			in.mouse = e.State == sdl.PRESSED
		}
	}
}

func (in *Input) openPad(index int) {
	if !sdl.IsGameController(index) {
		return
	}
	for p, pad := range in.pads {
		if pad != nil {
			continue
		}
		pad = sdl.GameControllerOpen(index)
		if pad == nil {
			in.logger.Warn("Could not open controller", "index", index, "error", sdl.GetError())
			return
		}
		in.pads[p] = pad
		in.logger.Info("Controller connected", "player", p+1, "name", pad.Name())
		return
	}
}

func (in *Input) closePad(id sdl.JoystickID) {
	for p, pad := range in.pads {
		if pad != nil && pad.Joystick().InstanceID() == id {
			pad.Close()
			in.pads[p] = nil
			in.held[p], in.raw[p] = 0, 0
			in.logger.Info("Controller disconnected", "player", p+1)
		}
	}
}

func (in *Input) read(player int, keys []uint8) gui.Input {
	res := gui.Input{Player: player}
	var held gui.Buttons
	var raw uint32
	var home bool

	if pad := in.pads[player]; pad != nil {
		res.Connected = true
		for _, b := range padButtons {
			if pad.Button(b.button) == 0 {
				continue
			}
			held |= b.nav
			raw |= b.raw
			if b.nav == gui.ButtonHome {
				home = true
			}
		}
		held |= stickButtons(pad.Axis(sdl.CONTROLLER_AXIS_LEFTX), pad.Axis(sdl.CONTROLLER_AXIS_LEFTY))
		res.SubStickX = int(pad.Axis(sdl.CONTROLLER_AXIS_RIGHTX)) / 256
		res.SubStickY = -int(pad.Axis(sdl.CONTROLLER_AXIS_RIGHTY)) / 256
	}

	if player == 0 {
		res.Connected = true
		for _, k := range keyButtons {
			if int(k.scancode) < len(keys) && keys[k.scancode] != 0 {
				held |= k.nav
			}
		}
		if in.mouse {
			held |= gui.ButtonA
		}
		res.Key = in.key
		res.Pointer = in.pointer
	}

	res.Held = held
	res.Pressed = held &^ in.held[player]
	res.Pad = raw &^ in.raw[player]
	if home && in.held[player]&gui.ButtonHome == 0 {
		res.WPad = mapping.WPadHome
	}
	in.held[player], in.raw[player] = held, raw
	return res
}

// stickButtons turns a stick deflection into d-pad buttons.
func stickButtons(x, y int16) gui.Buttons {
	var b gui.Buttons
	switch {
	case x < -stickThreshold:
		b |= gui.ButtonLeft
	case x > stickThreshold:
		b |= gui.ButtonRight
	}
	switch {
	case y < -stickThreshold:
		b |= gui.ButtonUp
	case y > stickThreshold:
		b |= gui.ButtonDown
	}
	return b
}

// Rumble implements gui.Haptics. The render loop calls it every tick, so
// only changes reach the controller.
func (in *Input) Rumble(player int, on bool) {
	if player < 0 || player >= gui.Players {
		return
	}
	in.mu.Lock()
	pad := in.pads[player]
	changed := in.rumbling[player] != on
	in.rumbling[player] = on
	in.mu.Unlock()
	if pad == nil || !changed {
		return
	}
	sdl.Do(func() {
		var err error
		if on {
			err = pad.Rumble(rumbleStrength, rumbleStrength, rumbleMillis)
		} else {
			err = pad.Rumble(0, 0, 0)
		}
		if err != nil {
			in.logger.Debug("Rumble not supported", "player", player+1, "error", err)
		}
	})
}

// battery reads the charge of player's controller as 0..4.
func (in *Input) battery(player int) (int, bool) {
	if player < 0 || player >= gui.Players {
		return 0, false
	}
	var level sdl.JoystickPowerLevel
	var ok bool
	sdl.Do(func() {
		in.mu.Lock()
		defer in.mu.Unlock()
		if pad := in.pads[player]; pad != nil {
			level, ok = pad.Joystick().CurrentPowerLevel(), true
		}
	})
	if !ok {
		return 0, false
	}
	return powerBars(level)
}

func powerBars(level sdl.JoystickPowerLevel) (int, bool) {
	switch level {
	case sdl.JOYSTICK_POWER_EMPTY:
		return 0, true
	case sdl.JOYSTICK_POWER_LOW:
		return 1, true
	case sdl.JOYSTICK_POWER_MEDIUM:
		return 3, true
	case sdl.JOYSTICK_POWER_FULL, sdl.JOYSTICK_POWER_WIRED:
		return 4, true
	}
	return 0, false
}
