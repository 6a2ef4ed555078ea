package ui_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"vbagx/gui"
	"vbagx/library"
	"vbagx/mapping"
	"vbagx/menu"
	"vbagx/menu/menutest"
	"vbagx/saves"
	"vbagx/settings"
	"vbagx/storage"
	"vbagx/ui"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

// start runs draw on its own goroutine, as the dispatcher would.
func start(f *menutest.Fixture, draw func(*menu.Session) menu.Screen) <-chan menu.Screen {
	done := make(chan menu.Screen, 1)
	go func() { done <- draw(f.Session) }()
	return done
}

func await(t *testing.T, done <-chan menu.Screen) menu.Screen {
	t.Helper()
	select {
	case next := <-done:
		return next
	case <-time.After(3 * time.Second):
		t.Fatal("screen did not return")
		return menu.ScreenNone
	}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(100 * time.Microsecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// loadGame puts a ROM on the SD card and loads it through the browser.
func loadGame(t *testing.T, f *menutest.Fixture, name string) {
	t.Helper()
	writeFile(t, filepath.Join(f.SDRoot, "vbagx", "roms", name), []byte{0x2e, 0x00, 0x00, 0xea})
	if _, err := f.Session.Browser.Open(storage.MethodAuto, "/vbagx/roms"); err != nil {
		t.Fatal(err)
	}
	if err := f.Session.Browser.Load(0, f.Core); err != nil {
		t.Fatal(err)
	}
}

func TestGameSelectionLoadsClickedGame(t *testing.T) {
	f := menutest.NewFixture(t)
	writeFile(t, filepath.Join(f.SDRoot, "vbagx", "roms", "Metroid Fusion.gba"), []byte{1, 2, 3})
	writeFile(t, filepath.Join(f.SDRoot, "vbagx", "saves", "Metroid Fusion Auto.sav"), []byte{9, 9})

	done := start(f, ui.NewGameSelectionScreen().Draw)
	list, ok := f.Tree.Wait(t, "games.list").(*gui.FileBrowser)
	if !ok {
		t.Fatal("games.list is not a file browser")
	}
	if f.Core.Loaded() {
		t.Fatal("game loaded before a click")
	}
	list.Click(0)

	if next := await(t, done); next != menu.ScreenExit {
		t.Errorf("next = %v, want %v", next, menu.ScreenExit)
	}
	if f.Core.Name != "Metroid Fusion.gba" {
		t.Errorf("loaded %q", f.Core.Name)
	}
	if !slices.Equal(f.Core.Restored, []string{"sram"}) {
		t.Errorf("restored = %v, want the auto SRAM", f.Core.Restored)
	}
	if f.Tree.Find("games") != nil {
		t.Error("page still attached")
	}
}

func TestGameSelectionInaccessibleFolder(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		want    menu.Screen
	}{
		{"check settings", []int{0}, menu.ScreenSettingsFile},
		{"retry then check settings", []int{1, 0}, menu.ScreenSettingsFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := menutest.NewFixture(t)
			f.Prompt.Answers = tt.answers

			if next := ui.NewGameSelectionScreen().Draw(f.Session); next != tt.want {
				t.Errorf("next = %v, want %v", next, tt.want)
			}
			titles, _, _ := f.Prompt.Snapshot()
			if len(titles) != len(tt.answers) {
				t.Errorf("prompted %d times, want %d", len(titles), len(tt.answers))
			}
		})
	}
}

func TestGameSelectionExitRequestsAppExit(t *testing.T) {
	f := menutest.NewFixture(t)
	writeFile(t, filepath.Join(f.SDRoot, "vbagx", "roms", "a.gba"), []byte{1})

	done := start(f, ui.NewGameSelectionScreen().Draw)
	f.Tree.ClickButton(t, "games.exit")

	if next := await(t, done); next != menu.ScreenExit {
		t.Errorf("next = %v", next)
	}
	if f.Session.PendingExit() != gui.ExitApp {
		t.Errorf("pending exit = %v", f.Session.PendingExit())
	}
	if f.Core.Loaded() {
		t.Error("exit loaded a game")
	}
}

func TestGameResetAsksFirst(t *testing.T) {
	tests := []struct {
		name       string
		answer     int
		wantResets int
	}{
		{"confirmed", 1, 1},
		{"cancelled", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := menutest.NewFixture(t)
			loadGame(t, f, "Golden Sun.gba")
			f.Prompt.Answers = []int{tt.answer}

			done := start(f, ui.NewGameScreen().Draw)
			f.Tree.ClickButton(t, "game.reset")
			if tt.answer == 0 {
				eventually(t, "reset prompt", func() bool {
					titles, _, _ := f.Prompt.Snapshot()
					return len(titles) == 1
				})
				f.Tree.ClickButton(t, "game.close")
			}

			if next := await(t, done); next != menu.ScreenExit {
				t.Errorf("next = %v", next)
			}
			if got := f.Core.ResetCount(); got != tt.wantResets {
				t.Errorf("resets = %d, want %d", got, tt.wantResets)
			}
		})
	}
}

func TestGameShowsSunOnlyForSolarCarts(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"U3IE", false},
		{"U3IU", true},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			f := menutest.NewFixture(t)
			f.Core.Code = tt.code
			f.Session.UpdatePrefs(func(p *settings.Preferences) { p.AutoSave = settings.AutoSaveOff })

			done := start(f, ui.NewGameScreen().Draw)
			f.Tree.Wait(t, "game.close")
			got := f.Tree.Find("game.sun") != nil
			f.Tree.ClickButton(t, "game.close")
			await(t, done)

			if got != tt.want {
				t.Errorf("sun button shown = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGameSunCyclesAndWraps(t *testing.T) {
	f := menutest.NewFixture(t)
	f.Core.Code = "U3IU"
	f.Core.Sun = ui.MaxSunLevel

	done := start(f, ui.NewGameScreen().Draw)
	f.Tree.ClickButton(t, "game.sun")
	if next := await(t, done); next != menu.ScreenGame {
		t.Errorf("next = %v", next)
	}
	if f.Core.SunLevel() != 0 {
		t.Errorf("sun = %d, want 0", f.Core.SunLevel())
	}
}

func TestGameSaveWritesFirstFreeSlot(t *testing.T) {
	f := menutest.NewFixture(t)
	loadGame(t, f, "Golden Sun.gba")
	f.Core.Battery = []byte("battery")
	saveDir := filepath.Join(f.SDRoot, "vbagx", "saves")
	writeFile(t, filepath.Join(saveDir, "Golden Sun 1.sav"), []byte("old"))

	done := start(f, ui.NewGameSaveScreen().Draw)
	list, ok := f.Tree.Wait(t, "saves.list").(*gui.SaveBrowser)
	if !ok {
		t.Fatal("saves.list is not a save browser")
	}
	if entries := list.Entries(); len(entries) != 3 || entries[0].Tag != gui.SaveNewSRAM {
		t.Fatalf("entries = %+v", entries)
	}
	list.Click(0)

	if next := await(t, done); next != menu.ScreenGameSave {
		t.Errorf("next = %v", next)
	}
	data, err := os.ReadFile(filepath.Join(saveDir, "Golden Sun 2.sav"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "battery" {
		t.Errorf("slot 2 holds %q", data)
	}
}

func TestGameLoadWithoutSaves(t *testing.T) {
	f := menutest.NewFixture(t)
	loadGame(t, f, "Golden Sun.gba")

	if next := ui.NewGameLoadScreen().Draw(f.Session); next != menu.ScreenGame {
		t.Errorf("next = %v", next)
	}
	_, _, infos := f.Prompt.Snapshot()
	if !slices.Equal(infos, []string{"No game saves found."}) {
		t.Errorf("infos = %v", infos)
	}
}

func TestGameLoadSRAMResetsCore(t *testing.T) {
	f := menutest.NewFixture(t)
	loadGame(t, f, "Golden Sun.gba")
	writeFile(t, filepath.Join(f.SDRoot, "vbagx", "saves", "Golden Sun 4.sav"), []byte("sram"))

	done := start(f, ui.NewGameLoadScreen().Draw)
	list := f.Tree.Wait(t, "saves.list").(*gui.SaveBrowser)
	list.Click(0)

	if next := await(t, done); next != menu.ScreenExit {
		t.Errorf("next = %v", next)
	}
	if string(f.Core.Battery) != "sram" || f.Core.ResetCount() != 1 {
		t.Errorf("battery = %q, resets = %d", f.Core.Battery, f.Core.ResetCount())
	}
}

func TestGameLoadSelectsLastSavedSlot(t *testing.T) {
	f := menutest.NewFixture(t)
	loadGame(t, f, "Golden Sun.gba")
	saveDir := filepath.Join(f.SDRoot, "vbagx", "saves")
	writeFile(t, filepath.Join(saveDir, "Golden Sun 1.sav"), []byte("one"))
	writeFile(t, filepath.Join(saveDir, "Golden Sun 4.sav"), []byte("four"))

	lib, err := library.Open(filepath.Join(t.TempDir(), "library.db"), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { lib.Close() })
	if err := lib.RecordSave(f.Session.Browser.ROMName(), saves.KindSRAM, 4, time.Now()); err != nil {
		t.Fatal(err)
	}
	f.Session.Library = lib

	done := start(f, ui.NewGameLoadScreen().Draw)
	list := f.Tree.Wait(t, "saves.list").(*gui.SaveBrowser)
	list.Update(&gui.Input{Pressed: gui.ButtonA})

	if next := await(t, done); next != menu.ScreenExit {
		t.Errorf("next = %v", next)
	}
	if string(f.Core.Battery) != "four" {
		t.Errorf("loaded %q, want the last saved slot", f.Core.Battery)
	}
}

func TestMappingsMapCapturesButton(t *testing.T) {
	f := menutest.NewFixture(t)
	f.Session.SetMapKind(mapping.KindGCPad)

	done := start(f, ui.NewMappingsMapScreen().Draw)
	list := f.Tree.Wait(t, "mappings.map.options").(*gui.OptionBrowser)
	if got := list.Options()[mapping.GBAB].Value; got != "B" {
		t.Errorf("B is bound to %q", got)
	}

	list.Click(mapping.GBAB)
	f.Tree.Wait(t, "mappings.capture")
	f.Tree.Press(0, gui.Input{Pad: mapping.PadX})
	eventually(t, "capture window to close", func() bool { return f.Tree.Find("mappings.capture") == nil })

	list.Click(mapping.GBAA)
	f.Tree.Wait(t, "mappings.capture")
	f.Tree.Press(0, gui.Input{WPad: mapping.WPadHome})
	eventually(t, "capture window to close", func() bool { return f.Tree.Find("mappings.capture") == nil })

	f.Tree.ClickButton(t, "mappings.map.back")
	if next := await(t, done); next != menu.ScreenGameSettingsMappings {
		t.Errorf("next = %v", next)
	}

	m := f.Session.Prefs().Buttons[mapping.KindGCPad]
	if m[mapping.GBAB] != mapping.PadX {
		t.Errorf("B = %#x, want X", m[mapping.GBAB])
	}
	if m[mapping.GBAA] != mapping.PadA {
		t.Errorf("cancelled capture changed A to %#x", m[mapping.GBAA])
	}
}

func TestSettingsFileSkipsMissingDevices(t *testing.T) {
	f := menutest.NewFixture(t)

	done := start(f, ui.NewSettingsFileScreen().Draw)
	list := f.Tree.Wait(t, "settings.file.options").(*gui.OptionBrowser)

	// the fixture has USB and SMB but no DVD drive
	for _, want := range []storage.Method{storage.MethodSD, storage.MethodUSB, storage.MethodSMB, storage.MethodAuto} {
		list.Click(0)
		eventually(t, "load method "+want.String(), func() bool { return f.Session.Prefs().LoadMethod == want })
	}

	f.Tree.ClickButton(t, "settings.file.back")
	if next := await(t, done); next != menu.ScreenSettings {
		t.Errorf("next = %v", next)
	}
	if _, err := os.Stat(f.Session.Store.Path()); err != nil {
		t.Errorf("preferences not saved: %v", err)
	}
}

func TestSettingsResetRestoresDefaults(t *testing.T) {
	f := menutest.NewFixture(t)
	f.Session.UpdatePrefs(func(p *settings.Preferences) { p.MusicVolume = 0 })
	f.Prompt.Answers = []int{1}

	done := start(f, ui.NewSettingsScreen().Draw)
	f.Tree.ClickButton(t, "settings.reset")
	eventually(t, "defaults", func() bool { return f.Session.Prefs().MusicVolume == settings.Defaults().MusicVolume })
	f.Tree.ClickButton(t, "settings.back")

	if next := await(t, done); next != menu.ScreenGameSelection {
		t.Errorf("next = %v", next)
	}
}
