package gui

import "image/color"

// Renderer draws primitives in screen coordinates (ScreenWidth x ScreenHeight).
type Renderer interface {
	FillRect(r Rect, c color.RGBA)
	StrokeRect(r Rect, c color.RGBA)
	Line(x1, y1, x2, y2 int, c color.RGBA)
	// Text draws a single line anchored at x according to align, with y as the top edge.
	Text(s string, x, y, size int, c color.RGBA, align Align)
	Image(img *ImageData, dst Rect, angle float64, alpha uint8)
	Present()
}

// InputSource returns one snapshot per player slot, Players entries long.
type InputSource interface {
	Poll() []Input
}

type Haptics interface {
	Rumble(player int, on bool)
}
