package ui

import (
	"time"

	"vbagx/gui"
	"vbagx/internal/constants"
	"vbagx/menu"
)

// UpdatePrompt offers a release found by the background check. Check runs
// on the render goroutine every tick and must not block.
type UpdatePrompt struct {
	s     *menu.Session
	delay time.Duration
}

func NewUpdatePrompt(s *menu.Session) *UpdatePrompt {
	return &UpdatePrompt{s: s, delay: constants.UpdatePromptDelay}
}

func (u *UpdatePrompt) Check() {
	s := u.s
	if s.Updater == nil || s.OnUpdate == nil || !s.Updater.UpdateAvailable() || !s.Updater.Claim() {
		return
	}
	go u.ask()
}

func (u *UpdatePrompt) ask() {
	s := u.s
	time.Sleep(u.delay)
	if s.Exiting() {
		return
	}

	info := s.Updater.UpdateInfo()
	choice := s.Prompt.Window(
		tr("update_available", "Update Available"),
		tr("update_available_message", "An update is available!"),
		tr("update_now", "Update now"),
		tr("update_later", "Update later"))
	if choice != 1 {
		s.Log().Info("Update postponed", "version", info.LatestVersion)
		return
	}

	if err := s.OnUpdate(info); err != nil {
		s.Log().Error("Update failed", "version", info.LatestVersion, "error", err)
		s.Prompt.Error(tr("update_failed", "Update failed!"))
		return
	}
	s.Log().Info("Update installed", "version", info.LatestVersion)
	s.RequestExit(gui.ExitApp)
}
