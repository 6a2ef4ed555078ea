package menu_test

import (
	"errors"
	"os"
	"testing"

	"vbagx/gui"
	"vbagx/menu"
	"vbagx/menu/menutest"
)

func TestResolveFallsBackToGameSelection(t *testing.T) {
	d := menu.NewDispatcher(nil)
	var called menu.Screen
	d.Register(menu.ScreenGameSelection, func(*menu.Session) menu.Screen {
		called = menu.ScreenGameSelection
		return menu.ScreenExit
	})
	d.Register(menu.ScreenGame, func(*menu.Session) menu.Screen {
		called = menu.ScreenGame
		return menu.ScreenExit
	})

	tests := []struct {
		in   menu.Screen
		want menu.Screen
	}{
		{menu.ScreenGame, menu.ScreenGame},
		{menu.ScreenGameSelection, menu.ScreenGameSelection},
		{menu.ScreenNone, menu.ScreenGameSelection},
		{menu.ScreenExit, menu.ScreenGameSelection},
		{menu.ScreenSettingsNetwork, menu.ScreenGameSelection},
		{menu.Screen(99), menu.ScreenGameSelection},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			called = menu.ScreenNone
			d.Resolve(tt.in)(nil)
			if called != tt.want {
				t.Errorf("Resolve(%v) ran %v, want %v", tt.in, called, tt.want)
			}
		})
	}
}

func TestRunExitsOnlyWithGameLoaded(t *testing.T) {
	f := menutest.NewFixture(t)
	d := menu.NewDispatcher(nil)

	calls := 0
	d.Register(menu.ScreenGameSelection, func(s *menu.Session) menu.Screen {
		calls++
		if calls == 3 {
			f.Core.Load("Metroid Fusion.gba", []byte{1})
		}
		return menu.ScreenExit
	})

	if err := d.Run(f.Session, menu.ScreenGameSelection); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("game selection ran %d times, want 3", calls)
	}
	if f.Progress.Cancels == 0 {
		t.Error("overlay not cancelled on close")
	}
	if f.Session.LastMenu() != menu.ScreenExit {
		t.Errorf("LastMenu = %v", f.Session.LastMenu())
	}
}

func TestRunTracksLastMenu(t *testing.T) {
	f := menutest.NewFixture(t)
	f.Core.Load("Golden Sun.gba", []byte{1})
	d := menu.NewDispatcher(nil)

	var seen []menu.Screen
	d.Register(menu.ScreenGameSelection, func(s *menu.Session) menu.Screen { return menu.ScreenExit })
	d.Register(menu.ScreenGame, func(s *menu.Session) menu.Screen {
		seen = append(seen, s.LastMenu())
		if len(seen) == 1 {
			return menu.ScreenGameSettings
		}
		return menu.ScreenExit
	})
	d.Register(menu.ScreenGameSettings, func(s *menu.Session) menu.Screen {
		seen = append(seen, s.LastMenu())
		return menu.ScreenGame
	})

	if err := d.Run(f.Session, menu.ScreenGame); err != nil {
		t.Fatal(err)
	}
	want := []menu.Screen{menu.ScreenNone, menu.ScreenGameSettings, menu.ScreenGame}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestRunStopsWhenExitRequested(t *testing.T) {
	f := menutest.NewFixture(t)
	d := menu.NewDispatcher(nil)

	calls := 0
	d.Register(menu.ScreenGameSelection, func(s *menu.Session) menu.Screen {
		calls++
		s.RequestExit(gui.ExitApp)
		return menu.ScreenGameSelection
	})
	if err := d.Run(f.Session, menu.ScreenGameSelection); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || f.Session.PendingExit() != gui.ExitApp {
		t.Errorf("calls = %d, pending = %v", calls, f.Session.PendingExit())
	}
}

func TestRunWritesDefaultPreferences(t *testing.T) {
	f := menutest.NewFixture(t)
	f.Core.Load("x.gba", []byte{1})
	d := menu.NewDispatcher(nil)
	d.Register(menu.ScreenGameSelection, func(*menu.Session) menu.Screen { return menu.ScreenExit })

	path := f.Session.Store.Path()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("settings exist before run: %v", err)
	}
	if err := d.Run(f.Session, menu.ScreenNone); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults not written: %v", err)
	}
}

func TestRunWithoutGameSelection(t *testing.T) {
	f := menutest.NewFixture(t)
	if err := menu.NewDispatcher(nil).Run(f.Session, menu.ScreenGame); !errors.Is(err, menu.ErrNoGameSelection) {
		t.Errorf("err = %v", err)
	}
}
