package ui

import (
	"errors"
	"fmt"
	"strings"

	"vbagx/gui"
	"vbagx/locale"
	"vbagx/menu"
	"vbagx/saves"
	"vbagx/settings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

// MaxSunLevel is the brightest setting of the Boktai solar sensor.
const MaxSunLevel = 10

type GameScreen struct{}

func NewGameScreen() *GameScreen {
	return &GameScreen{}
}

func (sc *GameScreen) Draw(s *menu.Session) menu.Screen {
	p := newPage("game", s.Browser.ROMName()).withClose()

	save := gameButton("game.save", tr("save", "Save"), 0)
	load := gameButton("game.load", tr("load", "Load"), 1)
	reset := gameButton("game.reset", tr("reset", "Reset"), 2)
	gameSettings := gameButton("game.settings", tr("game_settings", "Game Settings"), 3)
	p.add(save, load, reset, gameSettings)

	var sun *gui.Button
	if boktai(s.Core.ROMCode()) {
		sun = gui.NewButton("game.sun", sunLabel(s), bigButtonW, 60)
		sun.SetAlignment(gui.AlignCenter, gui.AlignTop)
		sun.SetPosition(0, 330)
		p.add(sun)
	}

	mainMenu := gui.NewButton("game.mainmenu", tr("main_menu", "Main Menu"), backW, backH)
	mainMenu.SetAlignment(gui.AlignCenter, gui.AlignBottom)
	mainMenu.SetPosition(0, -35)
	p.add(mainMenu)

	meters := make([]*batteryMeter, gui.Players)
	if s.Capabilities().Wii {
		for i := range meters {
			meters[i] = newBatteryMeter(i)
			p.add(meters[i].win)
		}
	}

	att := p.show(s)
	defer att.Release()

	if s.LastMenu() == menu.ScreenNone {
		autoSave(s)
	}

	return poll(s, func() (menu.Screen, bool) {
		for i, m := range meters {
			if m != nil {
				m.set(s.Platform.Battery(i))
			}
		}

		switch {
		case sun != nil && sun.Clicked():
			s.Core.SetSunLevel((s.Core.SunLevel() + 1) % (MaxSunLevel + 1))
			return menu.ScreenGame, true
		case save.Clicked():
			return menu.ScreenGameSave, true
		case load.Clicked():
			return menu.ScreenGameLoad, true
		case reset.Clicked():
			reset.ResetState()
			choice := s.Prompt.Window(
				tr("reset_game", "Reset Game"),
				tr("reset_game_confirm", "Reset this game? Any unsaved progress will be lost."),
				tr("ok", "OK"),
				tr("cancel", "Cancel"))
			if choice == 1 {
				s.Core.Reset()
				return menu.ScreenExit, true
			}
		case gameSettings.Clicked():
			return menu.ScreenGameSettings, true
		case mainMenu.Clicked():
			mainMenu.ResetState()
			choice := s.Prompt.Window(
				tr("quit_game", "Quit Game"),
				tr("quit_game_confirm", "Quit this game? Any unsaved progress will be lost."),
				tr("ok", "OK"),
				tr("cancel", "Cancel"))
			if choice == 1 {
				return menu.ScreenGameSelection, true
			}
		case p.closeClicked():
			return menu.ScreenExit, true
		}
		return menu.ScreenNone, false
	})
}

// gameButton lays the four large buttons of the game page out in a row.
func gameButton(name, label string, slot int) *gui.Button {
	b := gui.NewButton(name, label, 130, 130)
	b.SetAlignment(gui.AlignLeft, gui.AlignTop)
	b.SetPosition(20+slot*155, 150)
	return b
}

// boktai reports whether code belongs to a cartridge with a solar sensor.
// Those game codes end in U.
func boktai(code string) bool {
	return strings.HasSuffix(code, "U")
}

func sunLabel(s *menu.Session) string {
	hour := s.Platform.Now().Hour()
	if hour > 21 || hour < 5 {
		return tr("weather_night", "Weather: Night Time")
	}
	return locale.Localize(&goi18n.Message{ID: "weather_sun", Other: "Weather: {{.Percent}}% sun"},
		map[string]any{"Percent": s.Core.SunLevel() * 10})
}

// autoSave runs the save configured for leaving a game, once per menu visit.
func autoSave(s *menu.Session) {
	prefs := s.Prefs()
	if prefs.AutoSave == settings.AutoSaveOff {
		return
	}
	method, err := s.Mounts.ResolveSave(prefs.SaveMethod)
	if err != nil {
		s.Log().Warn("Auto save skipped, no save device", "error", err)
		return
	}
	rom := s.Browser.ROMName()

	var kinds []saves.Kind
	silent := false
	switch prefs.AutoSave {
	case settings.AutoSaveSRAM:
		kinds, silent = []saves.Kind{saves.KindSRAM}, true
	case settings.AutoSaveSnapshot:
		if s.Prompt.Window(tr("save", "Save"), tr("save_snapshot_prompt", "Save Snapshot?"), tr("save", "Save"), tr("dont_save", "Don't Save")) == 1 {
			kinds = []saves.Kind{saves.KindSnapshot}
		}
	case settings.AutoSaveBoth:
		if s.Prompt.Window(tr("save", "Save"), tr("save_both_prompt", "Save SRAM and Snapshot?"), tr("save", "Save"), tr("dont_save", "Don't Save")) == 1 {
			kinds = []saves.Kind{saves.KindSRAM, saves.KindSnapshot}
		}
	}

	for _, kind := range kinds {
		err := s.Saves.SaveAuto(method, prefs.SaveFolder, rom, kind, silent)
		switch {
		case err == nil:
			recordSave(s, rom, kind, 0)
		case silent && errors.Is(err, saves.ErrNoData):
			s.Log().Debug("Nothing to auto save", "kind", kind)
		default:
			s.Log().Error("Auto save failed", "kind", kind, "error", err)
			if !silent {
				s.Prompt.Error(saveFailed(kind))
			}
		}
	}
}

// autoLoad restores the save configured for starting a game. Missing files
// are not an error.
func autoLoad(s *menu.Session) {
	prefs := s.Prefs()
	var kind saves.Kind
	switch prefs.AutoLoad {
	case settings.AutoLoadSRAM:
		kind = saves.KindSRAM
	case settings.AutoLoadSnapshot:
		kind = saves.KindSnapshot
	default:
		return
	}
	method, err := s.Mounts.ResolveSave(prefs.SaveMethod)
	if err != nil {
		s.Log().Debug("Auto load skipped, no save device", "error", err)
		return
	}
	if err := s.Saves.LoadAuto(method, prefs.SaveFolder, s.Browser.ROMName(), kind, true); err != nil {
		s.Log().Debug("Auto load found nothing", "kind", kind, "error", err)
	}
}

func recordSave(s *menu.Session, rom string, kind saves.Kind, slot int) {
	if s.Library == nil {
		return
	}
	if err := s.Library.RecordSave(rom, kind, slot, s.Platform.Now()); err != nil {
		s.Log().Warn("Could not record save", "rom", rom, "error", err)
	}
}

func saveFailed(kind saves.Kind) string {
	if kind == saves.KindSnapshot {
		return tr("save_snapshot_failed", "Save failed!")
	}
	return tr("save_sram_failed", "Failed to save SRAM.")
}

// batteryMeter is a player's "P1" label with four charge bars.
type batteryMeter struct {
	win  *gui.Window
	bars [4]*gui.Image
}

func newBatteryMeter(player int) *batteryMeter {
	m := &batteryMeter{win: gui.NewWindow(fmt.Sprintf("game.battery.%d", player), 96, 24)}
	m.win.SetAlignment(gui.AlignLeft, gui.AlignBottom)
	m.win.SetPosition(45+player*140, -110)

	label := gui.NewText(fmt.Sprintf("game.battery.%d.label", player), fmt.Sprintf("P%d", player+1), 18, gui.ColorText)
	m.win.Append(label)
	for i := range m.bars {
		m.bars[i] = gui.NewRect(fmt.Sprintf("game.battery.%d.bar%d", player, i), gui.ColorFill, 10, 16)
		m.bars[i].SetPosition(36+i*14, 4)
		m.win.Append(m.bars[i])
	}
	m.set(0, false)
	return m
}

// set shows level bars, dimming the meter when the controller is gone.
func (m *batteryMeter) set(level int, connected bool) {
	level = max(0, min(len(m.bars), level))
	for i, b := range m.bars {
		b.SetVisible(i < level)
		if connected {
			b.SetAlpha(255)
		} else {
			b.SetAlpha(150)
		}
	}
}
