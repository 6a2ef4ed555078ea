package ui

import (
	"vbagx/gui"
	"vbagx/menu"
	"vbagx/settings"
)

type SettingsScreen struct{}

func NewSettingsScreen() *SettingsScreen {
	return &SettingsScreen{}
}

func (sc *SettingsScreen) Draw(s *menu.Session) menu.Screen {
	p := newPage("settings", tr("settings_title", "Settings")).withBack()

	file := gui.NewButton("settings.file", tr("saving_loading", "Saving & Loading"), bigButtonW, bigButtonH)
	file.SetAlignment(gui.AlignLeft, gui.AlignTop)
	file.SetPosition(90, 120)

	menuBtn := gui.NewButton("settings.menu", tr("menu", "Menu"), bigButtonW, bigButtonH)
	menuBtn.SetAlignment(gui.AlignRight, gui.AlignTop)
	menuBtn.SetPosition(-90, 120)

	network := gui.NewButton("settings.network", tr("network", "Network"), bigButtonW, bigButtonH)
	network.SetAlignment(gui.AlignLeft, gui.AlignTop)
	network.SetPosition(90, 250)
	network.SetVisible(s.Capabilities().Network)

	reset := gui.NewButton("settings.reset", tr("reset_settings", "Reset Settings"), backW, backH)
	reset.SetAlignment(gui.AlignRight, gui.AlignBottom)
	reset.SetPosition(-50, -35)

	p.add(file, menuBtn, network, reset)
	att := p.show(s)
	defer att.Release()

	return poll(s, func() (menu.Screen, bool) {
		switch {
		case file.Clicked():
			return menu.ScreenSettingsFile, true
		case menuBtn.Clicked():
			return menu.ScreenSettingsMenu, true
		case network.Clicked():
			return menu.ScreenSettingsNetwork, true
		case p.backClicked():
			s.SavePreferences(false)
			return menu.ScreenGameSelection, true
		case reset.Clicked():
			reset.ResetState()
			choice := s.Prompt.Window(
				tr("reset_settings", "Reset Settings"),
				tr("reset_settings_confirm", "Are you sure that you want to reset your settings?"),
				tr("yes", "Yes"),
				tr("no", "No"))
			if choice == 1 {
				defaults := settings.Defaults()
				settings.Normalize(&defaults, s.Capabilities())
				s.SetPrefs(defaults)
				s.Log().Info("Settings reset to defaults")
			}
		}
		return menu.ScreenNone, false
	})
}
