package gui

import (
	"image/color"
	"strings"
	"sync"
)

type Text struct {
	Base

	mu       sync.Mutex
	text     string
	size     int
	color    color.RGBA
	maxWidth int
}

func NewText(name, text string, size int, c color.RGBA) *Text {
	t := &Text{text: text, size: size, color: c}
	t.init(name, 0, size)
	return t
}

func (t *Text) SetText(s string) {
	t.mu.Lock()
	t.text = s
	t.mu.Unlock()
}

func (t *Text) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// SetMaxWidth enables word wrapping at roughly width pixels.
func (t *Text) SetMaxWidth(width int) {
	t.maxWidth = width
}

func (t *Text) Draw(r Renderer) {
	if !t.Visible() {
		return
	}
	t.mu.Lock()
	text, c := t.text, t.color
	t.mu.Unlock()

	bounds := t.Bounds()
	x := bounds.X
	switch t.alignH {
	case AlignCenter:
		x = bounds.X + bounds.W/2
	case AlignRight:
		x = bounds.X + bounds.W
	}
	for i, line := range wrap(text, t.maxWidth, t.size) {
		r.Text(line, x, bounds.Y+i*(t.size+4), t.size, c, t.alignH)
	}
}

func (t *Text) Update(*Input) {}

// wrap splits on explicit newlines and on spaces once a line passes the
// width, estimating glyphs at a little over half the font size.
func wrap(text string, width, size int) []string {
	var lines []string
	perLine := 0
	if width > 0 && size > 0 {
		perLine = width * 100 / (size * 55)
	}
	for _, para := range strings.Split(text, "\n") {
		if perLine <= 0 || len(para) <= perLine {
			lines = append(lines, para)
			continue
		}
		var line strings.Builder
		for _, word := range strings.Fields(para) {
			if line.Len() > 0 && line.Len()+1+len(word) > perLine {
				lines = append(lines, line.String())
				line.Reset()
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(word)
		}
		lines = append(lines, line.String())
	}
	return lines
}
