package ui

import (
	"vbagx/gui"
	"vbagx/menu"
	"vbagx/settings"
)

type GameSettingsScreen struct{}

func NewGameSettingsScreen() *GameSettingsScreen {
	return &GameSettingsScreen{}
}

func (sc *GameSettingsScreen) Draw(s *menu.Session) menu.Screen {
	p := newPage("gamesettings", tr("game_settings_title", "Game Settings")).withBack().withClose()

	mappings := gui.NewButton("gamesettings.mappings", tr("button_mappings", "Button Mappings"), bigButtonW, bigButtonH)
	mappings.SetAlignment(gui.AlignLeft, gui.AlignTop)
	mappings.SetPosition(90, 120)

	video := gui.NewButton("gamesettings.video", tr("video", "Video"), bigButtonW, bigButtonH)
	video.SetAlignment(gui.AlignRight, gui.AlignTop)
	video.SetPosition(-90, 120)

	match := tr("match_gc_controls", "Match GC Controls")
	if s.Capabilities().Wii {
		match = tr("match_wii_controls", "Match Wii Controls")
	}
	controls := gui.NewButton("gamesettings.wiicontrols", match, bigButtonW, bigButtonH)
	controls.SetAlignment(gui.AlignLeft, gui.AlignTop)
	controls.SetPosition(90, 250)
	controls.SetSublabel(onOff(s.Prefs().WiiControls))

	p.add(mappings, video, controls)
	att := p.show(s)
	defer att.Release()

	return poll(s, func() (menu.Screen, bool) {
		switch {
		case mappings.Clicked():
			return menu.ScreenGameSettingsMappings, true
		case video.Clicked():
			return menu.ScreenGameSettingsVideo, true
		case controls.Clicked():
			prefs := s.UpdatePrefs(func(p *settings.Preferences) { p.WiiControls = !p.WiiControls })
			controls.SetSublabel(onOff(prefs.WiiControls))
			controls.ResetState()
		case p.closeClicked():
			s.SavePreferences(false)
			return menu.ScreenExit, true
		case p.backClicked():
			s.SavePreferences(false)
			return menu.ScreenGame, true
		}
		return menu.ScreenNone, false
	})
}
