// Package prompt holds the modal dialogs. Every dialog closes any progress
// overlay, takes focus from the root window until the user picks a button,
// and hands the root back in its default state.
package prompt

import (
	"log/slog"
	"time"

	"vbagx/gui"
	"vbagx/locale"
)

const (
	windowName = "prompt"
	slideSpeed = 35
)

// Canceler closes whatever progress overlay is open. progress.Notifier
// implements it.
type Canceler interface {
	CancelAction()
}

type Options struct {
	Tick   time.Duration
	Logger *slog.Logger
}

type Prompter struct {
	tree   gui.Tree
	cancel Canceler
	tick   time.Duration
	logger *slog.Logger
}

func New(tree gui.Tree, cancel Canceler, opts Options) *Prompter {
	if opts.Tick <= 0 {
		opts.Tick = gui.DefaultTick
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Prompter{tree: tree, cancel: cancel, tick: opts.Tick, logger: opts.Logger}
}

// dialog is a panel with a title and one or two buttons along the bottom.
type dialog struct {
	win  *gui.Window
	btn1 *gui.Button
	btn2 *gui.Button
}

func newDialog(title string, w, h int, btn1, btn2 string) *dialog {
	win := gui.NewWindow(windowName, w, h)
	win.SetAlignment(gui.AlignCenter, gui.AlignMiddle)
	win.SetBackground(gui.ColorPanel, true)

	titleTxt := gui.NewText(windowName+".title", title, 26, gui.ColorTitle)
	titleTxt.SetAlignment(gui.AlignCenter, gui.AlignTop)
	titleTxt.SetPosition(0, 24)
	win.Append(titleTxt)

	d := &dialog{win: win}
	d.btn1 = gui.NewButton(windowName+".btn1", btn1, 160, 48)
	if btn2 == "" {
		d.btn1.SetAlignment(gui.AlignCenter, gui.AlignBottom)
		d.btn1.SetPosition(0, -24)
	} else {
		d.btn1.SetAlignment(gui.AlignLeft, gui.AlignBottom)
		d.btn1.SetPosition(40, -24)
		d.btn2 = gui.NewButton(windowName+".btn2", btn2, 160, 48)
		d.btn2.SetAlignment(gui.AlignRight, gui.AlignBottom)
		d.btn2.SetPosition(-40, -24)
		d.btn2.SetHotkey(gui.ButtonB)
	}
	d.btn1.SetState(gui.StateSelected)
	return d
}

func (d *dialog) add(e gui.Element) {
	d.win.Append(e)
}

func (d *dialog) finish() {
	d.win.Append(d.btn1)
	if d.btn2 != nil {
		d.win.Append(d.btn2)
	}
}

// run shows d and blocks until one of its buttons is clicked. It returns 1
// for the first button and 0 for the second.
func (p *Prompter) run(d *dialog) int {
	p.cancel.CancelAction()
	d.finish()
	d.win.SetEffect(gui.EffectSlideIn, slideSpeed)

	gui.Mutate(p.tree, func(root *gui.Window) {
		root.SetState(gui.StateDisabled)
		root.Append(d.win)
		root.ChangeFocus(d.win)
	})

	choice := -1
	for choice < 0 {
		time.Sleep(p.tick)
		switch {
		case d.btn1.Clicked():
			choice = 1
		case d.btn2 != nil && d.btn2.Clicked():
			choice = 0
		}
	}

	d.win.SetEffect(gui.EffectSlideOut, slideSpeed)
	for d.win.Animating() {
		time.Sleep(p.tick)
	}

	gui.Mutate(p.tree, func(root *gui.Window) {
		root.Remove(d.win)
		root.SetState(gui.StateDefault)
	})
	return choice
}

// Window asks msg under title. With btn2 empty only one button is shown.
func (p *Prompter) Window(title, msg, btn1, btn2 string) int {
	d := newDialog(title, 448, 288, btn1, btn2)

	msgTxt := gui.NewText(windowName+".message", msg, 22, gui.ColorText)
	msgTxt.SetAlignment(gui.AlignCenter, gui.AlignTop)
	msgTxt.SetPosition(0, 90)
	msgTxt.SetMaxWidth(400)
	d.add(msgTxt)

	choice := p.run(d)
	p.logger.Debug("Prompt answered", "title", title, "choice", choice)
	return choice
}

func (p *Prompter) Error(msg string) {
	p.Window(locale.Get("error", "Error"), msg, locale.Get("ok", "OK"), "")
}

// ErrorRetry reports whether the user chose to retry.
func (p *Prompter) ErrorRetry(msg string) bool {
	return p.Window(locale.Get("error", "Error"), msg,
		locale.Get("retry", "Retry"), locale.Get("cancel", "Cancel")) == 1
}

func (p *Prompter) Info(msg string) {
	p.Window(locale.Get("information", "Information"), msg, locale.Get("ok", "OK"), "")
}

// Keyboard edits value on the on-screen keyboard. The text is returned
// only when the user confirms, cut to maxLen characters.
func (p *Prompter) Keyboard(value string, maxLen int) (string, bool) {
	d := newDialog("", 600, 440, locale.Get("ok", "OK"), locale.Get("cancel", "Cancel"))
	d.btn1.SetHotkey(gui.ButtonStart)
	d.btn1.ResetState()
	d.btn2.SetHotkey(gui.ButtonHome)

	kb := gui.NewKeyboard(windowName+".keyboard", value, maxLen)
	kb.SetAlignment(gui.AlignCenter, gui.AlignTop)
	kb.SetPosition(0, 20)
	d.add(kb)

	if p.run(d) != 1 {
		return value, false
	}
	text := []rune(kb.Text())
	if maxLen > 0 && len(text) > maxLen {
		text = text[:maxLen]
	}
	return string(text), true
}

// Setting wraps an editor body in an OK/Cancel dialog and reports whether
// the user chose to keep the edit. The body's own buttons act through
// their OnClick callbacks while the dialog is open.
func (p *Prompter) Setting(title string, body *gui.Window) bool {
	d := newDialog(title, 520, 340, locale.Get("ok", "OK"), locale.Get("cancel", "Cancel"))
	body.SetAlignment(gui.AlignCenter, gui.AlignMiddle)
	body.SetPosition(0, -10)
	d.add(body)
	return p.run(d) == 1
}
