package ui

import (
	"vbagx/gui"
	"vbagx/mapping"
	"vbagx/menu"
	"vbagx/settings"
)

type MappingsScreen struct{}

func NewMappingsScreen() *MappingsScreen {
	return &MappingsScreen{}
}

// Controllers offered on the mapping page, left to right and top to bottom.
var mappingKinds = []struct {
	kind    mapping.Kind
	wiiOnly bool
}{
	{mapping.KindGCPad, false},
	{mapping.KindWiimote, true},
	{mapping.KindClassic, true},
	{mapping.KindNunchuk, true},
	{mapping.KindKeyboard, true},
}

func (sc *MappingsScreen) Draw(s *menu.Session) menu.Screen {
	p := newPage("mappings", tr("mappings_title", "Game Settings - Button Mappings")).withBack()
	wii := s.Capabilities().Wii

	buttons := make([]*gui.Button, len(mappingKinds))
	col := 0
	for i, mk := range mappingKinds {
		b := gui.NewButton("mappings."+mk.kind.Key(), tr("controller_"+mk.kind.Key(), mk.kind.String()), 170, 80)
		b.SetAlignment(gui.AlignLeft, gui.AlignTop)
		b.SetPosition(45+(col%3)*190, 110+(col/3)*110)
		if mk.wiiOnly && !wii {
			b.SetVisible(false)
		} else {
			col++
		}
		buttons[i] = b
		p.add(b)
	}

	att := p.show(s)
	defer att.Release()

	return poll(s, func() (menu.Screen, bool) {
		for i, b := range buttons {
			if b.Clicked() {
				s.SetMapKind(mappingKinds[i].kind)
				return menu.ScreenGameSettingsMappingsMap, true
			}
		}
		if p.backClicked() {
			return menu.ScreenGameSettings, true
		}
		return menu.ScreenNone, false
	})
}

type MappingsMapScreen struct{}

func NewMappingsMapScreen() *MappingsMapScreen {
	return &MappingsMapScreen{}
}

func (sc *MappingsMapScreen) Draw(s *menu.Session) menu.Screen {
	kind := s.MapKind()
	p := newPage("mappings.map", tr("mappings_title", "Game Settings - Button Mappings")).withBack()

	subtitle := gui.NewText("mappings.map.subtitle", kind.String(), 22, gui.ColorText)
	subtitle.SetAlignment(gui.AlignLeft, gui.AlignTop)
	subtitle.SetPosition(50, 68)

	list := newList("mappings.map.options")
	list.SetOptions(mapping.GBAButtonNames[:]...)

	reset := gui.NewButton("mappings.map.reset", tr("reset_mappings", "Reset Mappings"), backW, backH)
	reset.SetAlignment(gui.AlignRight, gui.AlignBottom)
	reset.SetPosition(-50, -35)

	refresh := func() {
		m := s.Prefs().Buttons[kind]
		for i, code := range m {
			list.SetValue(i, mapping.Name(kind, code))
		}
	}
	refresh()

	p.add(subtitle, list, reset)
	att := p.show(s)
	defer att.Release()

	return poll(s, func() (menu.Screen, bool) {
		if i := list.Clicked(); i >= 0 {
			if code, ok := captureButton(s, kind); ok {
				s.UpdatePrefs(func(p *settings.Preferences) { p.Buttons[kind][i] = code })
				s.Log().Debug("Button mapped", "controller", kind.Key(), "button", mapping.GBAButtonNames[i], "code", code)
			}
			refresh()
		}
		if reset.Clicked() {
			reset.ResetState()
			s.UpdatePrefs(func(p *settings.Preferences) { p.Buttons[kind] = mapping.Default(kind) })
			refresh()
		}
		if p.backClicked() {
			return menu.ScreenGameSettingsMappings, true
		}
		return menu.ScreenNone, false
	})
}

// captureButton shows the mapping window until the first player presses
// something kind accepts. ok is false when the capture was cancelled.
func captureButton(s *menu.Session, kind mapping.Kind) (uint32, bool) {
	win := gui.NewWindow("mappings.capture", 448, 288)
	win.SetAlignment(gui.AlignCenter, gui.AlignMiddle)
	win.SetBackground(gui.ColorPanel, true)

	title := gui.NewText("mappings.capture.title", tr("button_mapping", "Button Mapping"), 26, gui.ColorTitle)
	title.SetAlignment(gui.AlignCenter, gui.AlignTop)
	title.SetPosition(0, 14)
	id, text := mapping.Prompt(kind)
	msg := gui.NewText("mappings.capture.message", tr(id, text), 22, gui.ColorText)
	msg.SetAlignment(gui.AlignCenter, gui.AlignMiddle)
	msg.SetMaxWidth(420)
	win.Append(title)
	win.Append(msg)

	// presses from before the window opened do not count
	s.GUI.TakePressed(0)
	gui.Mutate(s.GUI, func(root *gui.Window) {
		root.SetState(gui.StateDisabled)
		root.Append(win)
		root.ChangeFocus(win)
	})
	defer gui.Mutate(s.GUI, func(root *gui.Window) {
		root.Remove(win)
		root.SetState(gui.StateDefault)
	})

	for !s.Exiting() {
		if code, done := mapping.Capture(kind, s.GUI.TakePressed(0)); done {
			return code, code != 0
		}
		s.Sleep()
	}
	return 0, false
}
