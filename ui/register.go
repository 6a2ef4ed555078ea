package ui

import "vbagx/menu"

// Register installs a handler for every screen of the menu.
func Register(d *menu.Dispatcher) {
	d.Register(menu.ScreenGameSelection, NewGameSelectionScreen().Draw)
	d.Register(menu.ScreenGame, NewGameScreen().Draw)
	d.Register(menu.ScreenGameLoad, NewGameLoadScreen().Draw)
	d.Register(menu.ScreenGameSave, NewGameSaveScreen().Draw)
	d.Register(menu.ScreenGameSettings, NewGameSettingsScreen().Draw)
	d.Register(menu.ScreenGameSettingsMappings, NewMappingsScreen().Draw)
	d.Register(menu.ScreenGameSettingsMappingsMap, NewMappingsMapScreen().Draw)
	d.Register(menu.ScreenGameSettingsVideo, NewVideoScreen().Draw)
	d.Register(menu.ScreenSettings, NewSettingsScreen().Draw)
	d.Register(menu.ScreenSettingsFile, NewSettingsFileScreen().Draw)
	d.Register(menu.ScreenSettingsMenu, NewSettingsMenuScreen().Draw)
	d.Register(menu.ScreenSettingsNetwork, NewSettingsNetworkScreen().Draw)
}
