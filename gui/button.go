package gui

import (
	"image/color"
	"sync"
)

type Button struct {
	Base

	mu       sync.Mutex
	label    string
	sublabel string
	alpha    uint8
	fontSize int
	onClick  func(b *Button)
}

func NewButton(name, label string, w, h int) *Button {
	b := &Button{
		label:    label,
		alpha:    255,
		fontSize: 20,
	}
	b.init(name, w, h)
	b.selectable = true
	return b
}

func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// SetSublabel sets a second, smaller line under the label.
func (b *Button) SetSublabel(s string) {
	b.mu.Lock()
	b.sublabel = s
	b.mu.Unlock()
}

func (b *Button) SetAlpha(a uint8) {
	b.mu.Lock()
	b.alpha = a
	b.mu.Unlock()
}

func (b *Button) SetFontSize(size int) {
	b.fontSize = size
}

// OnClick registers a callback run on the render goroutine when the button
// is clicked. The callback usually ends with ResetState so the button can
// be clicked again.
func (b *Button) OnClick(fn func(b *Button)) {
	b.onClick = fn
}

func (b *Button) Clicked() bool {
	return b.State() == StateClicked
}

func (b *Button) Draw(r Renderer) {
	if !b.Visible() {
		return
	}
	bounds := b.Bounds()

	b.mu.Lock()
	label, sublabel, alpha := b.label, b.sublabel, b.alpha
	b.mu.Unlock()

	fill := ColorButton
	switch b.State() {
	case StateSelected:
		fill = ColorSelected
	case StateClicked:
		fill = ColorClicked
	case StateDisabled:
		fill = ColorDisabled
	}
	fill.A = scaleAlpha(fill.A, alpha)
	r.FillRect(bounds, fill)
	r.StrokeRect(bounds, withAlpha(ColorBorder, alpha))

	textColor := withAlpha(ColorText, alpha)
	if b.State() == StateDisabled {
		textColor = withAlpha(ColorTextDim, alpha)
	}
	cx := bounds.X + bounds.W/2
	if sublabel == "" {
		r.Text(label, cx, bounds.Y+(bounds.H-b.fontSize)/2, b.fontSize, textColor, AlignCenter)
		return
	}
	small := b.fontSize * 3 / 4
	top := bounds.Y + (bounds.H-b.fontSize-small-4)/2
	r.Text(label, cx, top, b.fontSize, textColor, AlignCenter)
	r.Text(sublabel, cx, top+b.fontSize+4, small, withAlpha(ColorTextDim, alpha), AlignCenter)
}

func (b *Button) Update(in *Input) {
	state := b.State()
	if !b.Visible() || state == StateDisabled || state == StateClicked {
		return
	}

	if b.hotkey != 0 && in.Pressed&b.hotkey != 0 {
		b.click(in)
		return
	}

	if in.Pointer.Valid {
		over := b.Bounds().Contains(in.Pointer.X, in.Pointer.Y)
		switch {
		case over && state == StateDefault:
			b.SetState(StateSelected)
			state = StateSelected
			in.RequestRumble()
		case !over && state == StateSelected && in.Pointer.Moved:
			b.SetState(StateDefault)
			state = StateDefault
		}
	}

	if state == StateSelected && in.Pressed&ButtonA != 0 && !in.Consumed() {
		b.click(in)
	}
}

func (b *Button) click(in *Input) {
	b.SetState(StateClicked)
	in.Consume()
	if b.onClick != nil {
		b.onClick(b)
	}
}

func scaleAlpha(a, by uint8) uint8 {
	return uint8(int(a) * int(by) / 255)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = scaleAlpha(c.A, a)
	return c
}
