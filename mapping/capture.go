package mapping

import "vbagx/gui"

// stickCancel is how far the GameCube C-stick must travel to cancel a capture.
const stickCancel = 70

// Capture inspects one tick of input while waiting for a new binding on kind.
// done is false until something relevant was pressed. A done capture with a
// zero code was cancelled and the old binding should be kept.
func Capture(kind Kind, in gui.Input) (code uint32, done bool) {
	var pressed uint32

	switch kind {
	case KindGCPad:
		pressed = in.Pad
		if in.SubStickX < -stickCancel || in.SubStickX > stickCancel ||
			in.SubStickY < -stickCancel || in.SubStickY > stickCancel {
			pressed = WPadHome
		}
		if in.WPad == WPadHome {
			pressed = WPadHome
		}

	case KindKeyboard:
		if in.Key >= firstKey && in.Key <= lastKey {
			pressed = uint32(in.Key)
		}
		if in.WPad == WPadHome {
			pressed = KeyEsc
		}
		if pressed == 0 {
			return 0, false
		}
		if pressed == KeyEsc {
			return 0, true
		}
		return pressed, true

	default:
		pressed = in.WPad
		if pressed != WPadHome {
			switch kind {
			case KindWiimote:
				if pressed > WPadPlus {
					pressed = 0
				}
			case KindClassic:
				if in.Expansion != gui.ExpansionClassic || pressed <= WPadPlus {
					pressed = 0
				}
			case KindNunchuk:
				if in.Expansion != gui.ExpansionNunchuk {
					pressed = 0
				}
			}
		}
	}

	if pressed == 0 {
		return 0, false
	}
	if pressed == WPadHome || pressed == ClassicHome {
		return 0, true
	}
	return pressed, true
}

// Prompt is the instruction shown while capturing for kind.
func Prompt(kind Kind) (id, text string) {
	switch kind {
	case KindGCPad:
		return "capture_gcpad", "Press any button on the GameCube Controller now. Press Home or the C-Stick in any direction to cancel."
	case KindKeyboard:
		return "capture_keyboard", "Press any key now. Press Esc or Home to cancel."
	case KindWiimote:
		return "capture_wiimote", "Press any button on the Wiimote now. Press Home to cancel."
	case KindClassic:
		return "capture_classic", "Press any button on the Classic Controller now. Press Home to cancel."
	case KindNunchuk:
		return "capture_nunchuk", "Press any button on the Wiimote or Nunchuk now. Press Home to cancel."
	}
	return "capture_any", "Press any button now. Press Home to cancel."
}
