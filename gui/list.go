package gui

import "go.uber.org/atomic"

const PageSize = 8

// list is the scrolling selection shared by the browsers. It is touched by
// the render goroutine only, except clicked which screens drain.
type list struct {
	count    int
	selected int
	offset   int
	rowH     int
	clicked  atomic.Int32
}

func (l *list) reset(count int) {
	l.count = count
	if l.selected >= count {
		l.selected = max(0, count-1)
	}
	if l.offset > l.selected {
		l.offset = l.selected
	}
	l.clicked.Store(-1)
}

func (l *list) selectIndex(i int) {
	if l.count == 0 {
		return
	}
	l.selected = max(0, min(l.count-1, i))
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+PageSize {
		l.offset = l.selected - PageSize + 1
	}
}

// update moves or clicks the selection. It returns false when nothing was handled.
func (l *list) update(in *Input, bounds Rect) bool {
	if l.count == 0 {
		return false
	}
	if in.Pointer.Valid && in.Pointer.Moved && bounds.Contains(in.Pointer.X, in.Pointer.Y) && l.rowH > 0 {
		row := (in.Pointer.Y - bounds.Y) / l.rowH
		if idx := l.offset + row; row < PageSize && idx < l.count && idx != l.selected {
			l.selected = idx
			in.RequestRumble()
		}
	}
	switch {
	case in.Pressed&ButtonDown != 0:
		if l.selected+1 >= l.count {
			return false
		}
		l.selectIndex(l.selected + 1)
	case in.Pressed&ButtonUp != 0:
		if l.selected == 0 {
			return false
		}
		l.selectIndex(l.selected - 1)
	case in.Pressed&ButtonRight != 0 && l.count > PageSize:
		l.selectIndex(l.selected + PageSize)
	case in.Pressed&ButtonLeft != 0 && l.count > PageSize:
		l.selectIndex(l.selected - PageSize)
	case in.Pressed&ButtonA != 0:
		if in.Pointer.Valid && !bounds.Contains(in.Pointer.X, in.Pointer.Y) {
			return false
		}
		l.clicked.Store(int32(l.selected))
	default:
		return false
	}
	in.Consume()
	return true
}

func (l *list) take() int {
	return int(l.clicked.Swap(-1))
}

func (l *list) visible() (from, to int) {
	return l.offset, min(l.count, l.offset+PageSize)
}
