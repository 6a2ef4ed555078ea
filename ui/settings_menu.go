package ui

import (
	"vbagx/menu"
	"vbagx/settings"
)

type SettingsMenuScreen struct{}

func NewSettingsMenuScreen() *SettingsMenuScreen {
	return &SettingsMenuScreen{}
}

func (sc *SettingsMenuScreen) Draw(s *menu.Session) menu.Screen {
	caps := s.Capabilities()
	wiiOnly := func(c settings.Capabilities) bool { return c.Wii }

	rows := []option{
		{
			name:  tr("exit_action", "Exit Action"),
			value: func(p settings.Preferences) string { return exitActionLabel(p.ExitAction, caps) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.ExitAction = settings.NextExitAction(p.ExitAction, caps) })
			},
		},
		{
			name:  tr("wiimote_orientation", "Wiimote Orientation"),
			value: func(p settings.Preferences) string {
				if p.WiimoteOrientation {
					return tr("horizontal", "Horizontal")
				}
				return tr("vertical", "Vertical")
			},
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.WiimoteOrientation = !p.WiimoteOrientation })
			},
			shown: wiiOnly,
		},
		{
			name:  tr("music_volume", "Music Volume"),
			value: func(p settings.Preferences) string { return volumeLabel(p.MusicVolume) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.MusicVolume = settings.NextVolume(p.MusicVolume) })
			},
		},
		{
			name:  tr("sfx_volume", "Sound Effects Volume"),
			value: func(p settings.Preferences) string { return volumeLabel(p.SFXVolume) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.SFXVolume = settings.NextVolume(p.SFXVolume) })
			},
		},
		{
			name:  tr("rumble", "Rumble"),
			value: func(p settings.Preferences) string { return enabledLabel(p.Rumble) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.Rumble = !p.Rumble })
			},
		},
	}

	page := newOptionsPage(s, "settings.menu", tr("settings_menu_title", "Settings - Menu"), rows)
	return page.run(s, menu.ScreenSettings, true)
}
