package menu

import (
	"log/slog"
	"sync"
	"time"

	"vbagx/browser"
	"vbagx/gui"
	"vbagx/library"
	"vbagx/locale"
	"vbagx/mapping"
	"vbagx/saves"
	"vbagx/settings"
	"vbagx/storage"
	"vbagx/update"

	"go.uber.org/atomic"
)

// Session is what every screen handler works with: the shared GUI, the
// collaborators, the preferences being edited, and the navigation state
// that outlives a single screen.
type Session struct {
	GUI      GUI
	Progress Progress
	Prompt   Prompter
	Core     Core
	Platform Platform

	Store   *settings.Store
	Mounts  *storage.Mounts
	Browser *browser.Browser
	Saves   *saves.Manager
	Library *library.Store
	Updater *update.AutoUpdate
	Logger  *slog.Logger

	// OnUpdate installs a found update. Unset means updates are not offered.
	OnUpdate func(info *update.Info) error

	prefsMu sync.Mutex
	prefs   settings.Preferences

	lastMenu atomic.Int32
	mapKind  atomic.Int32
	exit     atomic.Int32
}

// Log is the session logger, or the default logger when none is set.
func (s *Session) Log() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Session) Capabilities() settings.Capabilities {
	return s.Platform.Capabilities()
}

func (s *Session) Prefs() settings.Preferences {
	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()
	return s.prefs
}

func (s *Session) SetPrefs(p settings.Preferences) {
	s.prefsMu.Lock()
	s.prefs = p
	s.prefsMu.Unlock()
	if s.Saves != nil {
		s.Saves.SetVerify(p.VerifySaves)
	}
}

// UpdatePrefs applies fn to the preferences under the lock.
func (s *Session) UpdatePrefs(fn func(p *settings.Preferences)) settings.Preferences {
	s.prefsMu.Lock()
	fn(&s.prefs)
	p := s.prefs
	s.prefsMu.Unlock()
	if s.Saves != nil {
		s.Saves.SetVerify(p.VerifySaves)
	}
	return p
}

// LoadPreferences reads the preferences file. When it cannot be read the
// defaults are kept and written back.
func (s *Session) LoadPreferences() {
	p, err := s.Store.Load()
	if err != nil {
		s.Log().Info("Preferences not loaded, using defaults", "path", s.Store.Path(), "error", err)
		p = settings.Defaults()
		settings.Normalize(&p, s.Capabilities())
		s.SetPrefs(p)
		s.SavePreferences(true)
		return
	}
	settings.Normalize(&p, s.Capabilities())
	s.SetPrefs(p)
}

// SavePreferences writes the preferences. Unless silent, progress and
// failures are shown to the user.
func (s *Session) SavePreferences(silent bool) bool {
	p := s.Prefs()
	if !silent {
		s.Progress.ShowAction(locale.Get("saving_preferences", "Saving preferences..."))
	}
	err := s.Store.Save(p)
	if !silent {
		s.Progress.CancelAction()
	}
	if err != nil {
		s.Log().Error("Unable to save preferences", "path", s.Store.Path(), "error", err)
		if !silent {
			s.Prompt.Error(locale.Get("preferences_save_failed", "Unable to save preferences."))
		}
		return false
	}
	return true
}

// LastMenu is the screen the dispatcher moved to most recently. It is
// ScreenNone while the first screen of a session runs.
func (s *Session) LastMenu() Screen {
	return Screen(s.lastMenu.Load())
}

func (s *Session) setLastMenu(screen Screen) {
	s.lastMenu.Store(int32(screen))
}

// MapKind is the controller whose buttons the mapping screen edits.
func (s *Session) MapKind() mapping.Kind {
	return mapping.Kind(s.mapKind.Load())
}

func (s *Session) SetMapKind(k mapping.Kind) {
	s.mapKind.Store(int32(k))
}

// RequestExit asks the render loop to fade out and leave the application.
func (s *Session) RequestExit(kind gui.ExitKind) {
	s.exit.CompareAndSwap(int32(gui.ExitNone), int32(kind))
}

// PendingExit is polled by the render loop. It matches gui.Options.PendingExit.
func (s *Session) PendingExit() gui.ExitKind {
	return gui.ExitKind(s.exit.Load())
}

func (s *Session) Exiting() bool {
	return s.PendingExit() != gui.ExitNone
}

// Sleep waits one tick. Screen loops call it between polls.
func (s *Session) Sleep() {
	time.Sleep(s.GUI.Tick())
}
