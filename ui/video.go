package ui

import (
	"vbagx/gui"
	"vbagx/menu"
	"vbagx/settings"
)

type VideoScreen struct{}

func NewVideoScreen() *VideoScreen {
	return &VideoScreen{}
}

func (sc *VideoScreen) Draw(s *menu.Session) menu.Screen {
	caps := s.Capabilities()
	rows := []option{
		{
			name:  tr("rendering", "Rendering"),
			value: func(p settings.Preferences) string { return renderLabel(p.Render) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.Render = settings.NextRender(p.Render) })
			},
		},
		{
			name:  tr("scaling", "Scaling"),
			value: func(p settings.Preferences) string { return scalingLabel(p.Scaling) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.Scaling = settings.NextScaling(p.Scaling, caps) })
			},
		},
		{
			name:  tr("screen_zoom", "Screen Zoom"),
			value: func(p settings.Preferences) string { return zoomLabel(p.ZoomLevel) },
			click: editZoom,
		},
		{
			name:  tr("screen_position", "Screen Position"),
			value: func(p settings.Preferences) string { return shiftLabel(p.XShift, p.YShift) },
			click: editPosition,
		},
		{
			name:  tr("video_mode", "Video Mode"),
			value: func(p settings.Preferences) string { return videoModeLabel(p.VideoMode) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.VideoMode = settings.NextVideoMode(p.VideoMode) })
			},
		},
		{
			name:  tr("colorize", "Colorize Mono GB"),
			value: func(p settings.Preferences) string { return onOff(p.Colorize) },
			click: func(s *menu.Session) {
				s.UpdatePrefs(func(p *settings.Preferences) { p.Colorize = !p.Colorize })
			},
		},
	}

	page := newOptionsPage(s, "video", tr("video_title", "Game Settings - Video"), rows)
	return page.run(s, menu.ScreenGameSettings, false)
}

// stepButton is a small editor button whose clicks run on the render
// goroutine and rearm themselves.
func stepButton(name, label string, hotkey gui.Buttons, fn func()) *gui.Button {
	b := gui.NewButton(name, label, 56, 56)
	b.SetFontSize(26)
	if hotkey != 0 {
		b.SetHotkey(hotkey)
	}
	b.OnClick(func(b *gui.Button) {
		fn()
		b.ResetState()
	})
	return b
}

func editZoom(s *menu.Session) {
	before := s.Prefs().ZoomLevel

	body := gui.NewWindow("video.zoom", 250, 160)
	value := gui.NewText("video.zoom.value", zoomLabel(before), 22, gui.ColorText)
	value.SetAlignment(gui.AlignCenter, gui.AlignMiddle)

	step := func(delta float64) func() {
		return func() {
			p := s.UpdatePrefs(func(p *settings.Preferences) { p.ZoomLevel = settings.StepZoom(p.ZoomLevel, delta) })
			value.SetText(zoomLabel(p.ZoomLevel))
		}
	}
	less := stepButton("video.zoom.less", "-", gui.ButtonL, step(-settings.ZoomStep))
	less.SetAlignment(gui.AlignLeft, gui.AlignMiddle)
	more := stepButton("video.zoom.more", "+", gui.ButtonR, step(settings.ZoomStep))
	more.SetAlignment(gui.AlignRight, gui.AlignMiddle)
	body.Append(less)
	body.Append(value)
	body.Append(more)

	if !s.Prompt.Setting(tr("screen_zoom", "Screen Zoom"), body) {
		s.UpdatePrefs(func(p *settings.Preferences) { p.ZoomLevel = before })
	}
}

func editPosition(s *menu.Session) {
	start := s.Prefs()
	x0, y0 := start.XShift, start.YShift

	body := gui.NewWindow("video.position", 220, 220)
	value := gui.NewText("video.position.value", shiftLabel(x0, y0), 22, gui.ColorText)
	value.SetAlignment(gui.AlignCenter, gui.AlignMiddle)

	shift := func(dx, dy int) func() {
		return func() {
			p := s.UpdatePrefs(func(p *settings.Preferences) {
				p.XShift += dx
				p.YShift += dy
			})
			value.SetText(shiftLabel(p.XShift, p.YShift))
		}
	}
	reset := func() {
		s.UpdatePrefs(func(p *settings.Preferences) { p.XShift, p.YShift = 0, 0 })
		value.SetText(shiftLabel(0, 0))
	}

	up := stepButton("video.position.up", "^", 0, shift(0, -1))
	up.SetAlignment(gui.AlignCenter, gui.AlignTop)
	down := stepButton("video.position.down", "v", 0, shift(0, 1))
	down.SetAlignment(gui.AlignCenter, gui.AlignBottom)
	left := stepButton("video.position.left", "<", gui.ButtonL, shift(-1, 0))
	left.SetAlignment(gui.AlignLeft, gui.AlignMiddle)
	right := stepButton("video.position.right", ">", gui.ButtonR, shift(1, 0))
	right.SetAlignment(gui.AlignRight, gui.AlignMiddle)
	zero := gui.NewButton("video.position.reset", tr("reset", "Reset"), 90, 36)
	zero.SetAlignment(gui.AlignRight, gui.AlignBottom)
	zero.SetHotkey(gui.ButtonX)
	zero.OnClick(func(b *gui.Button) {
		reset()
		b.ResetState()
	})

	for _, e := range []gui.Element{up, down, left, right, value, zero} {
		body.Append(e)
	}

	if !s.Prompt.Setting(tr("screen_position", "Screen Position"), body) {
		s.UpdatePrefs(func(p *settings.Preferences) { p.XShift, p.YShift = x0, y0 })
	}
}
