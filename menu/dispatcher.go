// Package menu runs the menu: it moves between screens until a game is
// ready to play, and holds what the screens share.
package menu

import (
	"errors"
	"log/slog"
)

var ErrNoGameSelection = errors.New("no game selection screen registered")

// Handler shows one screen and returns the screen to go to next.
type Handler func(s *Session) Screen

type Dispatcher struct {
	handlers map[Screen]Handler
	logger   *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{handlers: make(map[Screen]Handler), logger: logger}
}

func (d *Dispatcher) Register(screen Screen, h Handler) {
	d.handlers[screen] = h
}

// Resolve returns the handler for screen. Screens without a handler,
// ScreenNone and ScreenExit among them, fall back to game selection.
func (d *Dispatcher) Resolve(screen Screen) Handler {
	if screen != ScreenNone && screen != ScreenExit {
		if h, ok := d.handlers[screen]; ok {
			return h
		}
	}
	return d.handlers[ScreenGameSelection]
}

// Run shows screens starting at start until one returns ScreenExit with a
// game loaded, or the application is leaving. The GUI is halted on return
// so the emulator can take over the display.
func (d *Dispatcher) Run(s *Session, start Screen) error {
	if d.handlers[ScreenGameSelection] == nil {
		return ErrNoGameSelection
	}

	s.LoadPreferences()

	s.GUI.Resume()
	s.setLastMenu(ScreenNone)
	d.logger.Debug("Menu opened", "start", start, "loaded", s.Core.Loaded())

	current := start
	for (current != ScreenExit || !s.Core.Loaded()) && !s.Exiting() {
		next := d.Resolve(current)(s)
		d.logger.Debug("Screen transition", "from", current, "to", next)
		current = next
		s.setLastMenu(current)
		s.Sleep()
	}

	s.Progress.CancelAction()
	s.GUI.Halt()
	d.logger.Debug("Menu closed", "exiting", s.Exiting())
	return nil
}
