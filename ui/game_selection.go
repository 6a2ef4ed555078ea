package ui

import (
	"errors"

	"vbagx/browser"
	"vbagx/gui"
	"vbagx/menu"
	"vbagx/version"
)

type GameSelectionScreen struct{}

func NewGameSelectionScreen() *GameSelectionScreen {
	return &GameSelectionScreen{}
}

func (sc *GameSelectionScreen) Draw(s *menu.Session) menu.Screen {
	for {
		prefs := s.Prefs()
		_, err := s.Browser.Open(prefs.LoadMethod, prefs.LoadFolder)
		if err == nil {
			break
		}
		s.Log().Warn("Game list unavailable", "method", prefs.LoadMethod, "folder", prefs.LoadFolder, "error", err)
		choice := s.Prompt.Window(
			tr("error", "Error"),
			tr("games_inaccessible", "Games directory is inaccessible on selected load device."),
			tr("retry", "Retry"),
			tr("check_settings", "Check Settings"))
		if choice != 1 {
			return menu.ScreenSettingsFile
		}
		if s.Exiting() {
			return menu.ScreenExit
		}
	}

	p := newPage("games", tr("choose_game", "Choose Game"))

	files := gui.NewFileBrowser("games.list", listW, listH+40)
	files.SetAlignment(gui.AlignCenter, gui.AlignTop)
	files.SetPosition(0, 100)
	files.SetEntries(fileEntries(s.Browser.Entries()), s.Browser.Selected())

	settingsBtn := gui.NewButton("games.settings", tr("settings", "Settings"), backW, backH)
	settingsBtn.SetAlignment(gui.AlignLeft, gui.AlignBottom)
	settingsBtn.SetPosition(50, -35)

	exitBtn := gui.NewButton("games.exit", tr("exit", "Exit"), backW, backH)
	exitBtn.SetAlignment(gui.AlignRight, gui.AlignBottom)
	exitBtn.SetPosition(-50, -35)
	exitBtn.SetHotkey(gui.ButtonHome)

	logo := gui.NewButton("games.credits", "VBA GX "+version.Get().Short(), 150, 40)
	logo.SetAlignment(gui.AlignRight, gui.AlignTop)
	logo.SetPosition(-40, 24)
	logo.SetFontSize(16)

	p.add(files, settingsBtn, exitBtn, logo)
	att := p.show(s)
	defer att.Release()

	return poll(s, func() (menu.Screen, bool) {
		switch {
		case settingsBtn.Clicked():
			return menu.ScreenSettings, true
		case exitBtn.Clicked():
			s.RequestExit(gui.ExitApp)
			return menu.ScreenExit, true
		case logo.Clicked():
			showCredits(s)
			logo.ResetState()
			return menu.ScreenNone, false
		}

		i := files.Clicked()
		if i < 0 {
			return menu.ScreenNone, false
		}
		entries := s.Browser.Entries()
		if i >= len(entries) {
			return menu.ScreenNone, false
		}

		if e := entries[i]; e.IsDir || e.Archive {
			if _, err := s.Browser.Change(i); err != nil {
				s.Log().Error("Could not open folder", "name", e.Name, "error", err)
				s.Prompt.Error(tr("folder_inaccessible", "Unable to open the folder."))
			}
			files.SetEntries(fileEntries(s.Browser.Entries()), s.Browser.Selected())
			return menu.ScreenNone, false
		}

		p.win.SetState(gui.StateDisabled)
		err := s.Browser.Load(i, s.Core)
		p.win.SetState(gui.StateDefault)
		if err != nil {
			s.Log().Error("Could not load game", "error", err)
			if errors.Is(err, browser.ErrTooLarge) {
				s.Prompt.Error(tr("rom_too_large", "ROM file is too large!"))
			} else {
				s.Prompt.Error(tr("rom_load_failed", "Error loading game!"))
			}
			return menu.ScreenNone, false
		}

		rom := s.Browser.ROMName()
		if s.Library != nil {
			if err := s.Library.RecordPlay(rom, s.Platform.Now()); err != nil {
				s.Log().Warn("Could not record play", "rom", rom, "error", err)
			}
		}
		autoLoad(s)
		return menu.ScreenExit, true
	})
}

func fileEntries(entries []browser.Entry) []gui.FileEntry {
	out := make([]gui.FileEntry, len(entries))
	for i, e := range entries {
		out[i] = gui.FileEntry{Name: e.Name, IsDir: e.IsDir || e.Archive}
	}
	return out
}
