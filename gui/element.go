package gui

import "go.uber.org/atomic"

type State int32

const (
	StateDefault State = iota
	StateSelected
	StateClicked
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateSelected:
		return "selected"
	case StateClicked:
		return "clicked"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

type Effect int32

const (
	EffectNone Effect = iota
	EffectSlideIn
	EffectSlideOut
)

// Element is a node of the widget tree. Draw and Update run on the render
// goroutine only; State, SetState, Visible and Animating may be called from
// any goroutine.
type Element interface {
	Draw(r Renderer)
	Update(in *Input)
	Name() string
	State() State
	SetState(s State)
	ResetState()
	Visible() bool
	SetVisible(v bool)
	Bounds() Rect
	Animating() bool
	base() *Base
}

// Base carries what every element shares: geometry relative to the parent,
// alignment, state and the current effect.
type Base struct {
	name   string
	x, y   int
	w, h   int
	alignH Align
	alignV Align
	parent *Window

	selectable bool
	hotkey     Buttons

	state       atomic.Int32
	hidden      atomic.Bool
	effect      atomic.Int32
	effectKind  atomic.Int32
	effectSpeed atomic.Int32
}

func (b *Base) base() *Base { return b }

func (b *Base) Name() string { return b.name }

func (b *Base) SetPosition(x, y int) {
	b.x, b.y = x, y
}

func (b *Base) SetAlignment(h, v Align) {
	b.alignH, b.alignV = h, v
}

func (b *Base) State() State { return State(b.state.Load()) }

func (b *Base) SetState(s State) { b.state.Store(int32(s)) }

// ResetState returns the element to default unless it is disabled.
func (b *Base) ResetState() {
	if b.State() != StateDisabled {
		b.SetState(StateDefault)
	}
}

func (b *Base) Visible() bool { return !b.hidden.Load() }

func (b *Base) SetVisible(v bool) { b.hidden.Store(!v) }

// SetHotkey makes the element react to the given buttons regardless of
// where the selection is.
func (b *Base) SetHotkey(buttons Buttons) { b.hotkey = buttons }

func (b *Base) SetEffect(e Effect, speed int) {
	if speed <= 0 {
		speed = 100
	}
	b.effectKind.Store(int32(e))
	b.effectSpeed.Store(int32(speed))
	b.effect.Store(100)
}

func (b *Base) Animating() bool { return b.effect.Load() > 0 }

func (b *Base) stepEffect() {
	left := b.effect.Load()
	if left <= 0 {
		return
	}
	left -= b.effectSpeed.Load()
	if left < 0 {
		left = 0
	}
	b.effect.Store(left)
}

func (b *Base) slideOffset() int {
	left := int(b.effect.Load())
	switch Effect(b.effectKind.Load()) {
	case EffectSlideIn:
		return -ScreenHeight * left / 100
	case EffectSlideOut:
		return -ScreenHeight * (100 - left) / 100
	default:
		return 0
	}
}

func (b *Base) Bounds() Rect {
	parent := Rect{W: ScreenWidth, H: ScreenHeight}
	if b.parent != nil {
		parent = b.parent.Bounds()
	}

	r := Rect{W: b.w, H: b.h}
	switch b.alignH {
	case AlignCenter:
		r.X = parent.X + (parent.W-b.w)/2 + b.x
	case AlignRight:
		r.X = parent.X + parent.W - b.w + b.x
	default:
		r.X = parent.X + b.x
	}
	switch b.alignV {
	case AlignMiddle:
		r.Y = parent.Y + (parent.H-b.h)/2 + b.y
	case AlignBottom:
		r.Y = parent.Y + parent.H - b.h + b.y
	default:
		r.Y = parent.Y + b.y
	}
	r.Y += b.slideOffset()
	return r
}

func (b *Base) init(name string, w, h int) {
	b.name = name
	b.w, b.h = w, h
}
