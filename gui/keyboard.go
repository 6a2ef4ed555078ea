package gui

import (
	"strings"
	"sync"
	"unicode"
)

var keyRows = []string{
	"1234567890",
	"qwertyuiop",
	"asdfghjkl-",
	"zxcvbnm./_",
}

const (
	keyShift = iota
	keyCaps
	keySpace
	keyBack
	numSpecialKeys
)

var specialLabels = [numSpecialKeys]string{"Shift", "Caps", "Space", "Back"}

// USB HID scancodes as reported by physical keyboards.
const (
	scanA         = 4
	scanZ         = 29
	scanOne       = 30
	scanZero      = 39
	scanBackspace = 42
	scanSpace     = 44
	scanMinus     = 45
	scanPeriod    = 55
	scanSlash     = 56
)

// Keyboard is an on-screen keyboard editing a single line of text.
type Keyboard struct {
	Base

	mu     sync.Mutex
	text   []rune
	maxLen int
	shift  bool
	caps   bool
	row    int
	col    int
}

func NewKeyboard(name, value string, maxLen int) *Keyboard {
	k := &Keyboard{maxLen: maxLen}
	k.init(name, 560, 300)
	k.text = []rune(value)
	if maxLen > 0 && len(k.text) > maxLen {
		k.text = k.text[:maxLen]
	}
	return k
}

func (k *Keyboard) Text() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return string(k.text)
}

// Type feeds characters as if each key was pressed.
func (k *Keyboard) Type(s string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, r := range s {
		k.insert(r)
	}
}

func (k *Keyboard) insert(r rune) {
	if k.maxLen > 0 && len(k.text) >= k.maxLen {
		return
	}
	if k.shift != k.caps {
		r = unicode.ToUpper(r)
	}
	k.text = append(k.text, r)
	k.shift = false
}

func (k *Keyboard) backspace() {
	if len(k.text) > 0 {
		k.text = k.text[:len(k.text)-1]
	}
}

func (k *Keyboard) press(row, col int) {
	if row < len(keyRows) {
		keys := []rune(keyRows[row])
		if col < len(keys) {
			k.insert(keys[col])
		}
		return
	}
	switch col {
	case keyShift:
		k.shift = !k.shift
	case keyCaps:
		k.caps = !k.caps
	case keySpace:
		k.insert(' ')
	case keyBack:
		k.backspace()
	}
}

func (k *Keyboard) rowLen(row int) int {
	if row < len(keyRows) {
		return len(keyRows[row])
	}
	return numSpecialKeys
}

func (k *Keyboard) layout() (field Rect, key func(row, col int) Rect) {
	bounds := k.Bounds()
	field = Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: 40}
	keyW := bounds.W / 10
	keyH := (bounds.H - 50) / (len(keyRows) + 1)
	key = func(row, col int) Rect {
		y := bounds.Y + 50 + row*keyH
		if row < len(keyRows) {
			return Rect{X: bounds.X + col*keyW, Y: y, W: keyW - 4, H: keyH - 4}
		}
		w := bounds.W / numSpecialKeys
		return Rect{X: bounds.X + col*w, Y: y, W: w - 4, H: keyH - 4}
	}
	return field, key
}

func (k *Keyboard) Draw(r Renderer) {
	if !k.Visible() {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	field, key := k.layout()
	r.FillRect(field, ColorBackground)
	r.StrokeRect(field, ColorBorder)
	r.Text(string(k.text)+"_", field.X+10, field.Y+10, 20, ColorText, AlignLeft)

	upper := k.shift != k.caps
	for row := 0; row <= len(keyRows); row++ {
		for col := 0; col < k.rowLen(row); col++ {
			rect := key(row, col)
			fill := ColorButton
			if row == k.row && col == k.col {
				fill = ColorSelected
			}
			r.FillRect(rect, fill)
			label := ""
			if row < len(keyRows) {
				label = string([]rune(keyRows[row])[col])
				if upper {
					label = strings.ToUpper(label)
				}
			} else {
				label = specialLabels[col]
				if (col == keyShift && k.shift) || (col == keyCaps && k.caps) {
					r.StrokeRect(rect, ColorTitle)
				}
			}
			r.Text(label, rect.X+rect.W/2, rect.Y+(rect.H-18)/2, 18, ColorText, AlignCenter)
		}
	}
}

func (k *Keyboard) Update(in *Input) {
	if !k.Visible() || k.State() == StateDisabled {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	if in.Key != 0 {
		k.scancode(in.Key)
	}

	_, key := k.layout()
	if in.Pointer.Valid && in.Pointer.Moved {
		for row := 0; row <= len(keyRows); row++ {
			for col := 0; col < k.rowLen(row); col++ {
				if key(row, col).Contains(in.Pointer.X, in.Pointer.Y) {
					k.row, k.col = row, col
				}
			}
		}
	}

	switch {
	case in.Pressed&ButtonUp != 0:
		k.row = (k.row + len(keyRows)) % (len(keyRows) + 1)
	case in.Pressed&ButtonDown != 0:
		k.row = (k.row + 1) % (len(keyRows) + 1)
	case in.Pressed&ButtonLeft != 0:
		k.col--
	case in.Pressed&ButtonRight != 0:
		k.col++
	case in.Pressed&ButtonA != 0:
		if in.Pointer.Valid && !key(k.row, k.col).Contains(in.Pointer.X, in.Pointer.Y) {
			return
		}
		k.press(k.row, k.col)
	case in.Pressed&ButtonB != 0:
		k.backspace()
	default:
		return
	}
	n := k.rowLen(k.row)
	k.col = (k.col%n + n) % n
	in.Consume()
}

func (k *Keyboard) scancode(code int) {
	switch {
	case code >= scanA && code <= scanZ:
		k.insert(rune('a' + code - scanA))
	case code >= scanOne && code < scanZero:
		k.insert(rune('1' + code - scanOne))
	case code == scanZero:
		k.insert('0')
	case code == scanSpace:
		k.insert(' ')
	case code == scanMinus:
		k.insert('-')
	case code == scanPeriod:
		k.insert('.')
	case code == scanSlash:
		k.insert('/')
	case code == scanBackspace:
		k.backspace()
	}
}
