package ui

import (
	"fmt"

	"vbagx/gui"
	"vbagx/internal/imageutil"
	"vbagx/menu"
	"vbagx/version"
)

const ProjectURL = "https://github.com/dborth/vbagx"

var credits = [][2]string{
	{"Coding & menu design", "Tantric"},
	{"Additional coding", "Carl Kenner"},
	{"Menu artwork", "the3seashells"},
	{"Menu sound", "Peter de Man"},
	{"VBA GameCube", "SoftDev, emukidid"},
	{"Visual Boy Advance - M", "VBA-M Team"},
	{"Visual Boy Advance", "Forgotten"},
	{"libogc / devkitPPC", "shagkur & wintermute"},
	{"FreeTypeGX", "Armin Tamzarian"},
}

// showCredits opens the credits over the current page and closes them on
// the next button press.
func showCredits(s *menu.Session) {
	win := gui.NewWindow("credits", 580, 420)
	win.SetAlignment(gui.AlignCenter, gui.AlignMiddle)
	win.SetBackground(gui.ColorPanel, true)

	title := gui.NewText("credits.title", tr("credits", "Credits"), 30, gui.ColorTitle)
	title.SetAlignment(gui.AlignCenter, gui.AlignTop)
	title.SetPosition(0, 16)
	win.Append(title)

	y := 64
	for i, c := range credits {
		role := gui.NewText(fmt.Sprintf("credits.role.%d", i), c[0], 18, gui.ColorText)
		role.SetPosition(30, y)
		who := gui.NewText(fmt.Sprintf("credits.name.%d", i), c[1], 18, gui.ColorTextDim)
		who.SetPosition(250, y)
		win.Append(role)
		win.Append(who)
		y += 24
	}

	if img, err := imageutil.QRCode(ProjectURL, 3, 2); err != nil {
		s.Log().Warn("Could not render project QR code", "error", err)
	} else {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		qr := gui.NewImage("credits.qr", gui.NewImageData(img), w, h)
		qr.SetAlignment(gui.AlignRight, gui.AlignBottom)
		qr.SetPosition(-20, -20)
		win.Append(qr)
	}

	site := gui.NewText("credits.site", tr("official_site", "Official Site:")+" "+ProjectURL, 16, gui.ColorText)
	site.SetAlignment(gui.AlignLeft, gui.AlignBottom)
	site.SetPosition(30, -24)
	win.Append(site)

	build := gui.NewText("credits.version", version.Get().String(), 14, gui.ColorTextDim)
	build.SetAlignment(gui.AlignLeft, gui.AlignBottom)
	build.SetPosition(30, -48)
	win.Append(build)

	for p := range gui.Players {
		s.GUI.TakePressed(p)
	}
	gui.Mutate(s.GUI, func(root *gui.Window) {
		root.SetState(gui.StateDisabled)
		root.Append(win)
		root.ChangeFocus(win)
	})
	defer gui.Mutate(s.GUI, func(root *gui.Window) {
		root.Remove(win)
		root.SetState(gui.StateDefault)
	})

	for !s.Exiting() {
		for p := range gui.Players {
			if in := s.GUI.TakePressed(p); in.Any() {
				return
			}
		}
		s.Sleep()
	}
}
