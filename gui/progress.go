package gui

import (
	"math"

	"go.uber.org/atomic"
)

type ProgressBar struct {
	Base
	percent atomic.Int32
}

func NewProgressBar(name string, w, h int) *ProgressBar {
	p := &ProgressBar{}
	p.init(name, w, h)
	return p
}

// SetPercent clamps to 0..100.
func (p *ProgressBar) SetPercent(v int) {
	v = max(0, min(100, v))
	p.percent.Store(int32(v))
}

func (p *ProgressBar) Percent() int {
	return int(p.percent.Load())
}

func (p *ProgressBar) Draw(r Renderer) {
	if !p.Visible() {
		return
	}
	bounds := p.Bounds()
	r.FillRect(bounds, ColorDisabled)
	filled := bounds.Inset(2)
	filled.W = filled.W * p.Percent() / 100
	if filled.W > 0 {
		r.FillRect(filled, ColorFill)
	}
	r.StrokeRect(bounds, ColorBorder)
}

func (p *ProgressBar) Update(*Input) {}

// Spinner is the indeterminate throbber: eight spokes, the brightest one
// pointing at the current angle.
type Spinner struct {
	Base
	angle atomic.Int32
}

func NewSpinner(name string, size int) *Spinner {
	s := &Spinner{}
	s.init(name, size, size)
	return s
}

func (s *Spinner) SetAngle(deg int) {
	s.angle.Store(int32(deg % 360))
}

func (s *Spinner) Angle() int {
	return int(s.angle.Load())
}

func (s *Spinner) Draw(r Renderer) {
	if !s.Visible() {
		return
	}
	bounds := s.Bounds()
	cx, cy := bounds.X+bounds.W/2, bounds.Y+bounds.H/2
	outer := float64(bounds.W) / 2
	inner := outer / 2
	base := float64(s.Angle())
	for i := 0; i < 8; i++ {
		deg := base - float64(i*45)
		rad := deg * math.Pi / 180
		sin, cos := math.Sincos(rad)
		c := ColorText
		c.A = uint8(255 - i*28)
		r.Line(
			cx+int(cos*inner), cy+int(sin*inner),
			cx+int(cos*outer), cy+int(sin*outer),
			c,
		)
	}
}

func (s *Spinner) Update(*Input) {}
