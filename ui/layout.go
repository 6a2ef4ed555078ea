// Package ui holds the menu screens. Each screen builds its widgets,
// attaches them to the shared tree, polls them once per tick and returns
// the screen to show next.
package ui

import (
	"vbagx/gui"
	"vbagx/locale"
	"vbagx/menu"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

const (
	bigButtonW = 220
	bigButtonH = 90
	backW      = 180
	backH      = 56
	closeW     = 110
	closeH     = 42
	listW      = 552
	listH      = 248
)

// page is the frame most screens share: a full screen window with a title
// and the optional back and close buttons.
type page struct {
	name  string
	win   *gui.Window
	title *gui.Text
	back  *gui.Button
	close *gui.Button
}

func newPage(name, title string) *page {
	p := &page{name: name, win: gui.NewWindow(name, gui.ScreenWidth, gui.ScreenHeight)}
	p.title = gui.NewText(name+".title", title, 28, gui.ColorTitle)
	p.title.SetAlignment(gui.AlignLeft, gui.AlignTop)
	p.title.SetPosition(50, 28)
	p.title.SetMaxWidth(420)
	p.win.Append(p.title)
	return p
}

func (p *page) withBack() *page {
	p.back = gui.NewButton(p.name+".back", tr("go_back", "Go Back"), backW, backH)
	p.back.SetAlignment(gui.AlignLeft, gui.AlignBottom)
	p.back.SetPosition(50, -35)
	p.back.SetHotkey(gui.ButtonB)
	p.win.Append(p.back)
	return p
}

func (p *page) withClose() *page {
	p.close = gui.NewButton(p.name+".close", tr("close", "Close"), closeW, closeH)
	p.close.SetAlignment(gui.AlignRight, gui.AlignTop)
	p.close.SetPosition(-30, 30)
	p.close.SetHotkey(gui.ButtonHome)
	p.win.Append(p.close)
	return p
}

func (p *page) add(elems ...gui.Element) {
	for _, e := range elems {
		p.win.Append(e)
	}
}

// show slides the page in and attaches it.
func (p *page) show(s *menu.Session) *gui.Attachment {
	p.win.SetEffect(gui.EffectSlideIn, 25)
	return gui.Attach(s.GUI, p.win)
}

func (p *page) backClicked() bool {
	return p.back != nil && p.back.Clicked()
}

func (p *page) closeClicked() bool {
	return p.close != nil && p.close.Clicked()
}

// newList places an option browser where every page keeps its list.
func newList(name string) *gui.OptionBrowser {
	o := gui.NewOptionBrowser(name, listW, listH)
	o.SetAlignment(gui.AlignCenter, gui.AlignTop)
	o.SetPosition(0, 108)
	return o
}

// poll calls step once per tick until it reports a screen.
func poll(s *menu.Session, step func() (menu.Screen, bool)) menu.Screen {
	for !s.Exiting() {
		if next, done := step(); done {
			return next
		}
		s.Sleep()
	}
	return menu.ScreenExit
}

func tr(id, other string) string {
	return locale.Localize(&goi18n.Message{ID: id, Other: other}, nil)
}

func onOff(v bool) string {
	if v {
		return tr("on", "On")
	}
	return tr("off", "Off")
}
