package menu

// Screen identifies a menu page.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenExit
	ScreenGameSelection
	ScreenGame
	ScreenGameLoad
	ScreenGameSave
	ScreenGameSettings
	ScreenGameSettingsMappings
	ScreenGameSettingsMappingsMap
	ScreenGameSettingsVideo
	ScreenSettings
	ScreenSettingsFile
	ScreenSettingsMenu
	ScreenSettingsNetwork
)

var screenNames = map[Screen]string{
	ScreenNone:                    "none",
	ScreenExit:                    "exit",
	ScreenGameSelection:           "game_selection",
	ScreenGame:                    "game",
	ScreenGameLoad:                "game_load",
	ScreenGameSave:                "game_save",
	ScreenGameSettings:            "game_settings",
	ScreenGameSettingsMappings:    "game_settings_mappings",
	ScreenGameSettingsMappingsMap: "game_settings_mappings_map",
	ScreenGameSettingsVideo:       "game_settings_video",
	ScreenSettings:                "settings",
	ScreenSettingsFile:            "settings_file",
	ScreenSettingsMenu:            "settings_menu",
	ScreenSettingsNetwork:         "settings_network",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "unknown"
}
