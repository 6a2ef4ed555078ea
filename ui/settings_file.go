package ui

import (
	"vbagx/menu"
	"vbagx/settings"
	"vbagx/storage"
)

type SettingsFileScreen struct{}

func NewSettingsFileScreen() *SettingsFileScreen {
	return &SettingsFileScreen{}
}

func (sc *SettingsFileScreen) Draw(s *menu.Session) menu.Screen {
	rows := []option{
		{
			name:  tr("load_device", "Load Device"),
			value: func(p settings.Preferences) string { return methodLabel(p.LoadMethod) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) {
					p.LoadMethod++
					normalize(p, s.Capabilities())
				})
			},
		},
		{
			name:  tr("save_device", "Save Device"),
			value: func(p settings.Preferences) string { return methodLabel(p.SaveMethod) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) {
					p.SaveMethod++
					normalize(p, s.Capabilities())
				})
			},
		},
		{
			name:  tr("load_folder", "Load Folder"),
			value: func(p settings.Preferences) string { return p.LoadFolder },
			click: keyboardEdit(func(p *settings.Preferences) *string { return &p.LoadFolder }, settings.FolderMaxLen),
		},
		{
			name:  tr("save_folder", "Save Folder"),
			value: func(p settings.Preferences) string { return p.SaveFolder },
			click: keyboardEdit(func(p *settings.Preferences) *string { return &p.SaveFolder }, settings.FolderMaxLen),
		},
		{
			name:  tr("cheats_folder", "Cheats Folder"),
			value: func(p settings.Preferences) string { return p.CheatFolder },
			click: keyboardEdit(func(p *settings.Preferences) *string { return &p.CheatFolder }, settings.FolderMaxLen),
		},
		{
			name:  tr("auto_load", "Auto Load"),
			value: func(p settings.Preferences) string { return autoLoadLabel(p.AutoLoad) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.AutoLoad = settings.NextAutoLoad(p.AutoLoad) })
			},
		},
		{
			name:  tr("auto_save", "Auto Save"),
			value: func(p settings.Preferences) string { return autoSaveLabel(p.AutoSave) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.AutoSave = settings.NextAutoSave(p.AutoSave) })
			},
		},
		{
			name:  tr("verify_saves", "Verify MC Saves"),
			value: func(p settings.Preferences) string { return onOff(p.VerifySaves) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.VerifySaves = !p.VerifySaves })
			},
			shown: func(caps settings.Capabilities) bool { return caps.MemoryCardSave },
		},
	}

	page := newOptionsPage(s, "settings.file", tr("settings_file_title", "Settings - Saving & Loading"), rows)
	return page.run(s, menu.ScreenSettings, true)
}

// normalize applies settings.Normalize until the methods stop moving, so a
// single click skips every device the platform lacks.
func normalize(p *settings.Preferences, caps settings.Capabilities) {
	for range int(storage.LastSaveMethod) + 1 {
		load, save := p.LoadMethod, p.SaveMethod
		settings.Normalize(p, caps)
		if p.LoadMethod == load && p.SaveMethod == save {
			return
		}
	}
}
