package main

import (
	"time"

	"vbagx/emulator"
	"vbagx/gui"
	"vbagx/settings"
)

const frameInterval = time.Second / 60

// play shows the running game until a player presses Home or the window
// closes.
func (a *App) play() {
	prefs := a.session.Prefs()
	dst := FrameRect(prefs, a.platform.Capabilities())
	smooth := prefs.Render == settings.RenderFiltered
	a.logger.Debug("Game running", "rect", dst, "smooth", smooth)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for range ticker.C {
		if err := a.display.Frame(a.core.Screen(), dst, smooth); err != nil {
			a.logger.Error("Failed to draw frame", "error", err)
			return
		}
		if a.input.Quit() {
			a.session.RequestExit(gui.ExitApp)
			return
		}
		for _, in := range a.input.Poll() {
			if in.Pressed&gui.ButtonHome != 0 {
				return
			}
		}
	}
}

// FrameRect is where the emulator screen goes on the 640x480 display for
// the video preferences.
func FrameRect(p settings.Preferences, caps settings.Capabilities) gui.Rect {
	const sw, sh = gui.ScreenWidth, gui.ScreenHeight
	aspectH := sw * emulator.ScreenHeight / emulator.ScreenWidth

	var w, h int
	switch {
	case p.Render == settings.RenderOriginal:
		w, h = emulator.ScreenWidth*2, emulator.ScreenHeight*2
	case p.Scaling == settings.ScalingStretch:
		w, h = sw, sh
	case p.Scaling == settings.ScalingPartial:
		w, h = sw, (aspectH+sh)/2
	default:
		w, h = sw, aspectH
	}
	if p.Scaling == settings.ScalingWidescreen && caps.Widescreen {
		w = w * 3 / 4
	}

	zoom := p.ZoomLevel
	if zoom < settings.MinZoom || zoom > settings.MaxZoom {
		zoom = 1
	}
	w = int(float64(w) * zoom)
	h = int(float64(h) * zoom)

	return gui.Rect{
		X: (sw-w)/2 + p.XShift,
		Y: (sh-h)/2 + p.YShift,
		W: w,
		H: h,
	}
}
