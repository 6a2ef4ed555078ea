package gui

import (
	"sync"
)

type Option struct {
	Name  string
	Value string
}

// OptionBrowser lists name/value rows. Rows with an empty name are hidden.
type OptionBrowser struct {
	Base

	mu      sync.Mutex
	options []Option
	shown   []int
	list    list
}

func NewOptionBrowser(name string, w, h int) *OptionBrowser {
	o := &OptionBrowser{}
	o.init(name, w, h)
	o.list.rowH = h / PageSize
	o.list.clicked.Store(-1)
	return o
}

func (o *OptionBrowser) SetOptions(names ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.options = make([]Option, len(names))
	for i, n := range names {
		o.options[i].Name = n
	}
	o.reindex()
}

func (o *OptionBrowser) SetName(i int, name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i >= 0 && i < len(o.options) {
		o.options[i].Name = name
		o.reindex()
	}
}

func (o *OptionBrowser) SetValue(i int, value string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i >= 0 && i < len(o.options) {
		o.options[i].Value = value
	}
}

func (o *OptionBrowser) Options() []Option {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Option, len(o.options))
	copy(out, o.options)
	return out
}

func (o *OptionBrowser) reindex() {
	o.shown = o.shown[:0]
	for i, opt := range o.options {
		if opt.Name != "" {
			o.shown = append(o.shown, i)
		}
	}
	o.list.reset(len(o.shown))
}

// Clicked returns the option index clicked since the last call, or -1.
func (o *OptionBrowser) Clicked() int {
	row := o.list.take()
	if row < 0 {
		return -1
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if row >= len(o.shown) {
		return -1
	}
	return o.shown[row]
}

// Click simulates a press on option i, as if the render goroutine saw it.
func (o *OptionBrowser) Click(i int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for row, idx := range o.shown {
		if idx == i {
			o.list.clicked.Store(int32(row))
			return
		}
	}
}

func (o *OptionBrowser) Draw(r Renderer) {
	if !o.Visible() {
		return
	}
	bounds := o.Bounds()
	r.FillRect(bounds, ColorPanel)
	r.StrokeRect(bounds, ColorBorder)

	o.mu.Lock()
	defer o.mu.Unlock()
	from, to := o.list.visible()
	rowH := o.list.rowH
	for row := from; row < to; row++ {
		opt := o.options[o.shown[row]]
		rowRect := Rect{X: bounds.X, Y: bounds.Y + (row-from)*rowH, W: bounds.W, H: rowH}
		if row == o.list.selected && o.State() != StateDisabled {
			r.FillRect(rowRect.Inset(2), ColorSelected)
		}
		ty := rowRect.Y + (rowH-20)/2
		r.Text(opt.Name, rowRect.X+16, ty, 20, ColorText, AlignLeft)
		r.Text(opt.Value, rowRect.X+rowRect.W-16, ty, 20, ColorTitle, AlignRight)
	}
	drawScrollMarks(r, bounds, from, to, o.list.count)
}

func (o *OptionBrowser) Update(in *Input) {
	if !o.Visible() || o.State() == StateDisabled {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.list.update(in, o.Bounds())
}

type FileEntry struct {
	Name  string
	IsDir bool
}

type FileBrowser struct {
	Base

	mu      sync.Mutex
	entries []FileEntry
	list    list
}

func NewFileBrowser(name string, w, h int) *FileBrowser {
	f := &FileBrowser{}
	f.init(name, w, h)
	f.list.rowH = h / PageSize
	f.list.clicked.Store(-1)
	return f
}

func (f *FileBrowser) SetEntries(entries []FileEntry, selected int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = entries
	f.list.selected = 0
	f.list.offset = 0
	f.list.reset(len(entries))
	f.list.selectIndex(selected)
}

// Clicked returns the entry index clicked since the last call, or -1.
func (f *FileBrowser) Clicked() int {
	return f.list.take()
}

func (f *FileBrowser) Click(i int) {
	f.list.clicked.Store(int32(i))
}

func (f *FileBrowser) Selected() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list.selected
}

func (f *FileBrowser) Draw(r Renderer) {
	if !f.Visible() {
		return
	}
	bounds := f.Bounds()
	r.FillRect(bounds, ColorPanel)
	r.StrokeRect(bounds, ColorBorder)

	f.mu.Lock()
	defer f.mu.Unlock()
	from, to := f.list.visible()
	rowH := f.list.rowH
	for row := from; row < to; row++ {
		e := f.entries[row]
		rowRect := Rect{X: bounds.X, Y: bounds.Y + (row-from)*rowH, W: bounds.W, H: rowH}
		if row == f.list.selected && f.State() != StateDisabled {
			r.FillRect(rowRect.Inset(2), ColorSelected)
		}
		name := e.Name
		if e.IsDir {
			name = "[" + name + "]"
		}
		r.Text(name, rowRect.X+16, rowRect.Y+(rowH-20)/2, 20, ColorText, AlignLeft)
	}
	drawScrollMarks(r, bounds, from, to, f.list.count)
}

func (f *FileBrowser) Update(in *Input) {
	if !f.Visible() || f.State() == StateDisabled {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list.update(in, f.Bounds())
}

const (
	SaveNone        = -3
	SaveNewSRAM     = -2
	SaveNewSnapshot = -1
)

type SaveEntry struct {
	Label   string
	Date    string
	Time    string
	Preview *ImageData
	// Tag is returned by Clicked. Use an index into the caller's list or
	// one of SaveNewSRAM and SaveNewSnapshot.
	Tag int
}

type SaveBrowser struct {
	Base

	mu      sync.Mutex
	entries []SaveEntry
	list    list
}

func NewSaveBrowser(name string, w, h int) *SaveBrowser {
	s := &SaveBrowser{}
	s.init(name, w, h)
	s.list.rowH = h / PageSize
	s.list.clicked.Store(-1)
	return s
}

func (s *SaveBrowser) SetEntries(entries []SaveEntry, selected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.list.selected = 0
	s.list.offset = 0
	s.list.reset(len(entries))
	s.list.selectIndex(selected)
}

func (s *SaveBrowser) Entries() []SaveEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SaveEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clicked returns the Tag of the entry clicked since the last call, or SaveNone.
func (s *SaveBrowser) Clicked() int {
	row := s.list.take()
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 0 || row >= len(s.entries) {
		return SaveNone
	}
	return s.entries[row].Tag
}

func (s *SaveBrowser) Click(row int) {
	s.list.clicked.Store(int32(row))
}

func (s *SaveBrowser) Draw(r Renderer) {
	if !s.Visible() {
		return
	}
	bounds := s.Bounds()
	r.FillRect(bounds, ColorPanel)
	r.StrokeRect(bounds, ColorBorder)

	s.mu.Lock()
	defer s.mu.Unlock()
	from, to := s.list.visible()
	rowH := s.list.rowH
	for row := from; row < to; row++ {
		e := s.entries[row]
		rowRect := Rect{X: bounds.X, Y: bounds.Y + (row-from)*rowH, W: bounds.W, H: rowH}
		if row == s.list.selected && s.State() != StateDisabled {
			r.FillRect(rowRect.Inset(2), ColorSelected)
		}
		textX := rowRect.X + 16
		if e.Preview != nil {
			thumb := Rect{X: rowRect.X + 8, Y: rowRect.Y + 3, W: (rowH - 6) * 3 / 2, H: rowH - 6}
			r.Image(e.Preview, thumb, 0, 255)
			textX = thumb.X + thumb.W + 12
		}
		ty := rowRect.Y + (rowH-18)/2
		r.Text(e.Label, textX, ty, 18, ColorText, AlignLeft)
		if e.Date != "" {
			r.Text(e.Date+"  "+e.Time, rowRect.X+rowRect.W-16, ty, 16, ColorTextDim, AlignRight)
		}
	}
	drawScrollMarks(r, bounds, from, to, s.list.count)
}

func (s *SaveBrowser) Update(in *Input) {
	if !s.Visible() || s.State() == StateDisabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.update(in, s.Bounds())
}

func drawScrollMarks(r Renderer, bounds Rect, from, to, count int) {
	x := bounds.X + bounds.W - 8
	if from > 0 {
		r.Line(x-4, bounds.Y+10, x, bounds.Y+4, ColorBorder)
		r.Line(x, bounds.Y+4, x+4, bounds.Y+10, ColorBorder)
	}
	if to < count {
		y := bounds.Y + bounds.H
		r.Line(x-4, y-10, x, y-4, ColorBorder)
		r.Line(x, y-4, x+4, y-10, ColorBorder)
	}
}
