package display

import (
	"log/slog"
	"time"

	"vbagx/internal/constants"
	"vbagx/settings"

	"go.uber.org/atomic"
)

// Platform is the host as the menu sees it. Exit and Shutdown only record
// the process exit code; the launcher script acts on it.
type Platform struct {
	input  *Input
	caps   settings.Capabilities
	logger *slog.Logger
	code   atomic.Int32
}

func NewPlatform(input *Input, caps settings.Capabilities, logger *slog.Logger) *Platform {
	if logger == nil {
		logger = slog.Default()
	}
	return &Platform{input: input, caps: caps, logger: logger}
}

func (p *Platform) Capabilities() settings.Capabilities {
	return p.caps
}

func (p *Platform) Battery(player int) (int, bool) {
	if p.input == nil {
		return 0, false
	}
	return p.input.battery(player)
}

func (p *Platform) Now() time.Time {
	return time.Now()
}

func (p *Platform) Exit(action settings.ExitAction) {
	code := ExitCode(action, p.caps.Wii)
	p.logger.Info("Exit requested", "action", action, "code", code)
	p.code.Store(int32(code))
}

func (p *Platform) Shutdown() {
	p.logger.Info("Shutdown requested")
	p.code.Store(constants.ExitCodePowerOff)
}

// ExitCode is the process exit code recorded by the last Exit or Shutdown.
func (p *Platform) ExitCode() int {
	return int(p.code.Load())
}

// ExitCode maps an exit action to the code the launcher expects. The GameCube
// actions share values with the Wii ones, so wii picks the table.
func ExitCode(action settings.ExitAction, wii bool) int {
	if !wii {
		if action == settings.ExitGCReboot {
			return constants.ExitCodeReboot
		}
		return constants.ExitCodeLoader
	}
	switch action {
	case settings.ExitSystemMenu:
		return constants.ExitCodeSystemMenu
	case settings.ExitPowerOff:
		return constants.ExitCodePowerOff
	case settings.ExitLoader:
		return constants.ExitCodeLoader
	}
	return constants.ExitCodeOK
}
