package gui

import "image/color"

const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Vertical alignment reuses the horizontal values: Left is top, Right is bottom.
const (
	AlignTop    = AlignLeft
	AlignMiddle = AlignCenter
	AlignBottom = AlignRight
)

var (
	ColorBackground = color.RGBA{R: 28, G: 32, B: 44, A: 255}
	ColorPanel      = color.RGBA{R: 46, G: 52, B: 70, A: 240}
	ColorButton     = color.RGBA{R: 70, G: 80, B: 110, A: 255}
	ColorSelected   = color.RGBA{R: 110, G: 140, B: 200, A: 255}
	ColorClicked    = color.RGBA{R: 150, G: 180, B: 230, A: 255}
	ColorDisabled   = color.RGBA{R: 60, G: 60, B: 66, A: 255}
	ColorBorder     = color.RGBA{R: 200, G: 205, B: 215, A: 255}
	ColorText       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	ColorTextDim    = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	ColorTitle      = color.RGBA{R: 255, G: 220, B: 120, A: 255}
	ColorFill       = color.RGBA{R: 90, G: 200, B: 120, A: 255}
	ColorShade      = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

var pointerColors = [Players]color.RGBA{
	{R: 80, G: 160, B: 255, A: 255},
	{R: 255, G: 90, B: 90, A: 255},
	{R: 90, G: 230, B: 110, A: 255},
	{R: 250, G: 210, B: 70, A: 255},
}
