package gui

import (
	"image/color"
	"slices"
)

// Window is a container. Its children list is only changed between Halt and
// Resume once the window is reachable from the render goroutine.
type Window struct {
	Base
	children []Element
	focused  Element
	fill     color.RGBA
	border   bool
}

func NewWindow(name string, w, h int) *Window {
	win := &Window{}
	win.init(name, w, h)
	return win
}

// SetBackground gives the window a filled panel. A zero alpha leaves it transparent.
func (w *Window) SetBackground(c color.RGBA, border bool) {
	w.fill = c
	w.border = border
}

func (w *Window) Append(e Element) {
	if e == nil {
		return
	}
	b := e.base()
	if b.parent != nil && b.parent != w {
		b.parent.Remove(e)
	}
	b.parent = w
	w.children = slices.DeleteFunc(w.children, func(c Element) bool { return c == e })
	w.children = append(w.children, e)
}

func (w *Window) Remove(e Element) {
	idx := slices.Index(w.children, e)
	if idx < 0 {
		return
	}
	w.children = slices.Delete(w.children, idx, idx+1)
	e.base().parent = nil
	if w.focused == e {
		w.focused = nil
	}
}

func (w *Window) RemoveAll() {
	for _, c := range w.children {
		c.base().parent = nil
	}
	w.children = nil
	w.focused = nil
}

func (w *Window) Contains(e Element) bool {
	return slices.Contains(w.children, e)
}

// ChangeFocus routes input to e while the window itself is disabled.
func (w *Window) ChangeFocus(e Element) {
	if e == nil || slices.Contains(w.children, e) {
		w.focused = e
	}
}

// Find looks up an element by name, depth first.
func (w *Window) Find(name string) Element {
	for _, c := range w.children {
		if c.Name() == name {
			return c
		}
		if sub, ok := c.(*Window); ok {
			if found := sub.Find(name); found != nil {
				return found
			}
		}
	}
	return nil
}

func (w *Window) Draw(r Renderer) {
	if !w.Visible() {
		return
	}
	w.stepEffect()
	if w.fill.A > 0 {
		bounds := w.Bounds()
		r.FillRect(bounds, w.fill)
		if w.border {
			r.StrokeRect(bounds, ColorBorder)
		}
	}
	for _, c := range w.children {
		c.Draw(r)
	}
}

func (w *Window) Update(in *Input) {
	if !w.Visible() || w.Animating() {
		return
	}
	if w.State() == StateDisabled {
		if w.focused != nil {
			w.focused.Update(in)
		}
		return
	}
	for i := len(w.children) - 1; i >= 0; i-- {
		w.children[i].Update(in)
	}
	if !in.Consumed() {
		w.navigate(in)
	}
}

func (w *Window) navigate(in *Input) {
	var step int
	switch {
	case in.Pressed&(ButtonDown|ButtonRight) != 0:
		step = 1
	case in.Pressed&(ButtonUp|ButtonLeft) != 0:
		step = -1
	default:
		return
	}

	var candidates []Element
	current := -1
	for _, c := range w.children {
		b := c.base()
		if !b.selectable || !c.Visible() || c.State() == StateDisabled {
			continue
		}
		if c.State() == StateSelected {
			current = len(candidates)
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return
	}

	next := 0
	if current >= 0 {
		candidates[current].ResetState()
		next = (current + step + len(candidates)) % len(candidates)
	}
	candidates[next].SetState(StateSelected)
	in.Consume()
	in.RequestRumble()
}
