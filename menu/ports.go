package menu

import (
	"time"

	"vbagx/browser"
	"vbagx/gui"
	"vbagx/saves"
	"vbagx/settings"
	"vbagx/storage"
)

// Core is the emulator as seen from the menu.
type Core interface {
	saves.Core
	browser.Loader
	Loaded() bool
	Reset()
	// ROMCode is the four character game code from the cartridge header.
	ROMCode() string
	SunLevel() int
	SetSunLevel(level int)
}

// Platform is the host device.
type Platform interface {
	Capabilities() settings.Capabilities
	// Battery returns the charge of player's controller in 0..4.
	Battery(player int) (level int, ok bool)
	Now() time.Time
	Exit(action settings.ExitAction)
	Shutdown()
}

// GUI is the render controller the screens attach to. gui.Controller
// implements it.
type GUI interface {
	gui.Tree
	Tick() time.Duration
	TakePressed(player int) gui.Input
}

// Progress is the overlay notifier. progress.Notifier implements it.
type Progress interface {
	storage.Reporter
	ShowAction(msg string)
	CancelAction()
}

// Prompter shows modal dialogs. prompt.Prompter implements it.
type Prompter interface {
	Window(title, msg, btn1, btn2 string) int
	Error(msg string)
	ErrorRetry(msg string) bool
	Info(msg string)
	Keyboard(value string, maxLen int) (string, bool)
	Setting(title string, body *gui.Window) bool
}
