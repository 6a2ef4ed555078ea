package ui

import (
	"vbagx/gui"
	"vbagx/menu"
	"vbagx/settings"
)

// option is a row of a settings list. click edits the preferences; value
// renders the current setting.
type option struct {
	name  string
	value func(p settings.Preferences) string
	click func(s *menu.Session)
	shown func(caps settings.Capabilities) bool
}

type optionsPage struct {
	*page
	list *gui.OptionBrowser
	rows []option
}

func newOptionsPage(s *menu.Session, name, title string, rows []option) *optionsPage {
	o := &optionsPage{page: newPage(name, title).withBack(), list: newList(name + ".options"), rows: rows}
	caps := s.Capabilities()
	names := make([]string, len(rows))
	for i, r := range rows {
		if r.shown == nil || r.shown(caps) {
			names[i] = r.name
		}
	}
	o.list.SetOptions(names...)
	o.refresh(s)
	o.add(o.list)
	return o
}

func (o *optionsPage) refresh(s *menu.Session) {
	p := s.Prefs()
	for i, r := range o.rows {
		if r.value != nil {
			o.list.SetValue(i, r.value(p))
		}
	}
}

// run shows the page until back is clicked and returns back. When save is
// set the preferences are written on the way out.
func (o *optionsPage) run(s *menu.Session, back menu.Screen, save bool) menu.Screen {
	att := o.show(s)
	defer att.Release()

	return poll(s, func() (menu.Screen, bool) {
		if i := o.list.Clicked(); i >= 0 && o.rows[i].click != nil {
			o.rows[i].click(s)
			o.refresh(s)
		}
		if o.backClicked() {
			if save {
				s.SavePreferences(false)
			}
			return back, true
		}
		return menu.ScreenNone, false
	})
}

// keyboardEdit returns a click that edits one string preference on the
// on-screen keyboard.
func keyboardEdit(field func(p *settings.Preferences) *string, maxLen int) func(s *menu.Session) {
	return func(s *menu.Session) {
		current := *field(ptr(s.Prefs()))
		value, ok := s.Prompt.Keyboard(current, maxLen)
		if !ok {
			return
		}
		s.UpdatePrefs(func(p *settings.Preferences) { *field(p) = value })
	}
}

func ptr[T any](v T) *T { return &v }
