package progress

import (
	"log/slog"
	"sync"
	"time"

	"vbagx/gui"

	"go.uber.org/atomic"
)

type Mode int32

const (
	ModeOff Mode = iota
	ModeDeterminate
	ModeIndeterminate
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeDeterminate:
		return "determinate"
	case ModeIndeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

const (
	// MinTotal is the smallest transfer worth showing a bar for.
	MinTotal = 256 * 1024

	DefaultGrace  = 400 * time.Millisecond
	DefaultRedraw = 20 * time.Millisecond

	spinStep  = 45
	spinEvery = 5

	windowName = "progress"
)

type Options struct {
	Grace  time.Duration
	Redraw time.Duration
	// Localize maps a message ID and fallback to display text.
	Localize func(id, fallback string) string
	Logger   *slog.Logger
}

// Notifier shows a modal overlay with a bar or a spinner from its own
// goroutine. Producers call ShowProgress or ShowAction from anywhere;
// CancelAction closes the overlay and waits until the goroutine is parked.
type Notifier struct {
	tree     gui.Tree
	grace    time.Duration
	redraw   time.Duration
	localize func(id, fallback string) string
	logger   *slog.Logger

	mode  atomic.Int32
	done  atomic.Int64
	total atomic.Int64

	textMu  sync.Mutex
	title   string
	message string

	mu        sync.Mutex
	cond      *sync.Cond
	suspended bool
	stopped   bool
	started   atomic.Bool
	exited    chan struct{}

	open   atomic.Bool
	opened atomic.Int64
}

func New(tree gui.Tree, opts Options) *Notifier {
	if opts.Grace <= 0 {
		opts.Grace = DefaultGrace
	}
	if opts.Redraw <= 0 {
		opts.Redraw = DefaultRedraw
	}
	if opts.Localize == nil {
		opts.Localize = func(_, fallback string) string { return fallback }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	n := &Notifier{
		tree:      tree,
		grace:     opts.Grace,
		redraw:    opts.Redraw,
		localize:  opts.Localize,
		logger:    opts.Logger,
		suspended: true,
		exited:    make(chan struct{}),
	}
	n.cond = sync.NewCond(&n.mu)
	return n
}

func (n *Notifier) Start() {
	if n.started.Swap(true) {
		return
	}
	go n.run()
}

// Stop closes any overlay and ends the goroutine.
func (n *Notifier) Stop() {
	n.CancelAction()
	n.mu.Lock()
	n.stopped = true
	n.cond.Broadcast()
	n.mu.Unlock()
	if n.started.Load() {
		<-n.exited
	}
}

func (n *Notifier) Mode() Mode {
	return Mode(n.mode.Load())
}

func (n *Notifier) Progress() (done, total int64) {
	return n.done.Load(), n.total.Load()
}

// Open reports whether the overlay is on screen.
func (n *Notifier) Open() bool {
	return n.open.Load()
}

// Opened counts overlays shown since creation.
func (n *Notifier) Opened() int64 {
	return n.opened.Load()
}

func (n *Notifier) Text() (title, message string) {
	n.textMu.Lock()
	defer n.textMu.Unlock()
	return n.title, n.message
}

// ShowProgress reports a determinate transfer. Totals under MinTotal are ignored.
func (n *Notifier) ShowProgress(msg string, done, total int64) {
	if total < MinTotal {
		return
	}
	if done > total {
		done = total
	}
	// Integer division: this only snaps once done has reached total.
	if float64(done/total) > 0.99 {
		done = total
	}

	if n.Mode() != ModeDeterminate {
		n.CancelAction()
	}

	n.setText(n.localize("progress_title", "Please Wait"), msg)
	n.done.Store(done)
	n.total.Store(total)
	n.mode.Store(int32(ModeDeterminate))
	n.wake()
}

// ShowAction reports an operation of unknown length.
func (n *Notifier) ShowAction(msg string) {
	if n.Mode() != ModeIndeterminate {
		n.CancelAction()
	}

	n.setText(n.localize("progress_title", "Please Wait"), msg)
	n.done.Store(0)
	n.total.Store(0)
	n.mode.Store(int32(ModeIndeterminate))
	n.wake()
}

// CancelAction closes the overlay and returns once the goroutine is parked.
func (n *Notifier) CancelAction() {
	n.mode.Store(int32(ModeOff))
	n.mu.Lock()
	for !n.suspended {
		n.cond.Wait()
	}
	n.mu.Unlock()
}

func (n *Notifier) setText(title, message string) {
	n.textMu.Lock()
	n.title, n.message = title, message
	n.textMu.Unlock()
}

func (n *Notifier) wake() {
	n.mu.Lock()
	n.cond.Broadcast()
	n.mu.Unlock()
}

func (n *Notifier) run() {
	defer close(n.exited)
	for {
		n.mu.Lock()
		for n.Mode() == ModeOff && !n.stopped {
			if !n.suspended {
				n.suspended = true
				n.cond.Broadcast()
			}
			n.cond.Wait()
		}
		if n.stopped {
			n.suspended = true
			n.cond.Broadcast()
			n.mu.Unlock()
			return
		}
		n.suspended = false
		n.mu.Unlock()

		n.window()
	}
}

func (n *Notifier) window() {
	mode := n.Mode()
	title, message := n.Text()

	win := gui.NewWindow(windowName, 440, 200)
	win.SetAlignment(gui.AlignCenter, gui.AlignMiddle)
	win.SetBackground(gui.ColorPanel, true)

	titleTxt := gui.NewText(windowName+".title", title, 24, gui.ColorTitle)
	titleTxt.SetAlignment(gui.AlignCenter, gui.AlignTop)
	titleTxt.SetPosition(0, 20)
	win.Append(titleTxt)

	msgTxt := gui.NewText(windowName+".message", message, 20, gui.ColorText)
	msgTxt.SetAlignment(gui.AlignCenter, gui.AlignTop)
	msgTxt.SetPosition(0, 70)
	msgTxt.SetMaxWidth(400)

	bar := gui.NewProgressBar(windowName+".bar", 360, 24)
	bar.SetAlignment(gui.AlignCenter, gui.AlignBottom)
	bar.SetPosition(0, -40)

	spinner := gui.NewSpinner(windowName+".spinner", 48)
	spinner.SetAlignment(gui.AlignCenter, gui.AlignBottom)
	spinner.SetPosition(0, -40)

	win.Append(msgTxt)
	if mode == ModeDeterminate {
		win.Append(bar)
	} else {
		win.Append(spinner)
	}

	time.Sleep(n.grace)
	if n.Mode() == ModeOff {
		return
	}

	var prev gui.State
	gui.Mutate(n.tree, func(root *gui.Window) {
		prev = root.State()
		root.SetState(gui.StateDisabled)
		root.Append(win)
		root.ChangeFocus(win)
	})
	n.open.Store(true)
	n.opened.Inc()
	n.logger.Debug("Progress overlay opened", "mode", mode, "title", title)

	ticks, angle := 0, 0
	for {
		current := n.Mode()
		if current == ModeOff {
			break
		}
		switch current {
		case ModeDeterminate:
			done, total := n.Progress()
			if total > 0 {
				bar.SetPercent(int(100 * done / total))
			}
			_, msg := n.Text()
			msgTxt.SetText(msg)
		case ModeIndeterminate:
			ticks++
			if ticks%spinEvery == 0 {
				angle += spinStep
				if angle >= 360 {
					angle = 0
				}
				spinner.SetAngle(angle)
			}
		}
		time.Sleep(n.redraw)
	}

	n.open.Store(false)
	gui.Mutate(n.tree, func(root *gui.Window) {
		root.Remove(win)
		root.SetState(prev)
	})
	n.logger.Debug("Progress overlay closed", "mode", mode)
}
