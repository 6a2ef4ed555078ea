package gui

import (
	"log/slog"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type ExitKind int

const (
	ExitNone ExitKind = iota
	ExitApp
	ExitShutdown
)

const (
	DefaultTick = 100 * time.Microsecond
	rumbleTicks = 4
	fadeStep    = 15
)

type Options struct {
	Tick    time.Duration
	Haptics Haptics
	// Rumble reports whether haptic feedback is enabled.
	Rumble func() bool
	// PendingExit is polled once per tick. A value other than ExitNone
	// fades the screen out and hands over to OnExit; the loop ends there.
	PendingExit func() ExitKind
	OnExit      func(kind ExitKind)
	// OnTick runs on the render goroutine after input delivery.
	OnTick func()
	Logger *slog.Logger
}

// Controller owns the render/update goroutine. The goroutine draws and
// updates the tree only while running. Halt blocks until it is parked,
// and Resume lets it continue.
type Controller struct {
	root     *Window
	renderer Renderer
	input    InputSource
	opts     Options
	logger   *slog.Logger

	bracket sync.Mutex

	mu            sync.Mutex
	cond          *sync.Cond
	haltRequested bool
	suspended     bool
	holding       bool
	stopped       bool
	halted        atomic.Bool
	started       atomic.Bool
	done          chan struct{}

	pressMu sync.Mutex
	pressed [Players]Input

	rumble [Players]int
}

// NewController returns a controller whose goroutine starts out halted.
func NewController(root *Window, r Renderer, in InputSource, opts Options) *Controller {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		root:          root,
		renderer:      r,
		input:         in,
		opts:          opts,
		logger:        logger,
		haltRequested: true,
		suspended:     true,
		done:          make(chan struct{}),
	}
	c.cond = sync.NewCond(&c.mu)
	c.halted.Store(true)
	return c
}

func (c *Controller) Root() *Window {
	return c.root
}

func (c *Controller) Tick() time.Duration {
	return c.opts.Tick
}

func (c *Controller) Start() {
	if c.started.Swap(true) {
		return
	}
	go c.run()
}

// Halt requests suspension and waits until the render goroutine has parked.
// The caller owns the tree until it calls Resume. Halt must not be nested.
func (c *Controller) Halt() {
	c.bracket.Lock()
	c.mu.Lock()
	c.holding = true
	c.haltRequested = true
	for !c.suspended {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

func (c *Controller) Resume() {
	c.mu.Lock()
	c.haltRequested = false
	held := c.holding
	c.holding = false
	c.cond.Broadcast()
	c.mu.Unlock()
	if held {
		c.bracket.Unlock()
	}
}

// Suspended reports whether the render goroutine is parked.
func (c *Controller) Suspended() bool {
	return c.halted.Load()
}

// Stop ends the render goroutine and waits for it.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.cond.Broadcast()
	c.mu.Unlock()
	if c.started.Load() {
		<-c.done
	}
}

// Done is closed once the render goroutine has returned, after OnExit.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) Attach(elems ...Element) *Attachment {
	return Attach(c, elems...)
}

func (c *Controller) Mutate(fn func(root *Window)) {
	Mutate(c, fn)
}

// TakePressed returns what player pressed since the previous call.
func (c *Controller) TakePressed(player int) Input {
	if player < 0 || player >= Players {
		return Input{}
	}
	c.pressMu.Lock()
	defer c.pressMu.Unlock()
	in := c.pressed[player]
	c.pressed[player] = Input{Player: player}
	return in
}

func (c *Controller) run() {
	defer close(c.done)
	for {
		c.mu.Lock()
		for c.haltRequested && !c.stopped {
			if !c.suspended {
				c.suspended = true
				c.halted.Store(true)
				c.cond.Broadcast()
			}
			c.cond.Wait()
		}
		if c.stopped {
			c.park()
			c.mu.Unlock()
			return
		}
		c.suspended = false
		c.halted.Store(false)
		c.mu.Unlock()

		if kind := c.tick(); kind != ExitNone {
			c.mu.Lock()
			c.stopped = true
			c.park()
			c.mu.Unlock()
			c.logger.Info("Leaving menu", "kind", kind)
			if c.opts.OnExit != nil {
				c.opts.OnExit(kind)
			}
			return
		}
		time.Sleep(c.opts.Tick)
	}
}

func (c *Controller) park() {
	c.suspended = true
	c.halted.Store(true)
	c.cond.Broadcast()
}

func (c *Controller) tick() ExitKind {
	c.root.Draw(c.renderer)

	inputs := c.input.Poll()
	if len(inputs) > Players {
		inputs = inputs[:Players]
	}
	for i := len(inputs) - 1; i >= 0; i-- {
		if inputs[i].Pointer.Valid {
			drawPointer(c.renderer, i, inputs[i].Pointer)
		}
		c.doRumble(i)
	}
	c.renderer.Present()

	for i := len(inputs) - 1; i >= 0; i-- {
		inputs[i].Player = i
		c.root.Update(&inputs[i])
		if inputs[i].rumble {
			c.rumble[i] = rumbleTicks
		}
	}
	c.record(inputs)

	if c.opts.OnTick != nil {
		c.opts.OnTick()
	}

	if c.opts.PendingExit == nil {
		return ExitNone
	}
	kind := c.opts.PendingExit()
	if kind != ExitNone {
		c.fadeOut()
	}
	return kind
}

func (c *Controller) doRumble(player int) {
	if c.opts.Haptics == nil {
		return
	}
	enabled := c.opts.Rumble == nil || c.opts.Rumble()
	if enabled && c.rumble[player] > 0 {
		c.rumble[player]--
		c.opts.Haptics.Rumble(player, true)
		return
	}
	c.opts.Haptics.Rumble(player, false)
}

func (c *Controller) record(inputs []Input) {
	c.pressMu.Lock()
	defer c.pressMu.Unlock()
	for i := range inputs {
		c.pressed[i].merge(inputs[i])
	}
}

func (c *Controller) fadeOut() {
	for a := 0; a <= 255; a += fadeStep {
		c.root.Draw(c.renderer)
		shade := ColorShade
		shade.A = uint8(a)
		c.renderer.FillRect(Rect{W: ScreenWidth, H: ScreenHeight}, shade)
		c.renderer.Present()
		time.Sleep(c.opts.Tick)
	}
	if c.opts.Haptics != nil {
		for i := 0; i < Players; i++ {
			c.opts.Haptics.Rumble(i, false)
		}
	}
}

func drawPointer(r Renderer, player int, p Pointer) {
	col := pointerColors[player]
	r.Line(p.X, p.Y, p.X+12, p.Y+16, col)
	r.Line(p.X, p.Y, p.X, p.Y+20, col)
	r.Line(p.X, p.Y+20, p.X+12, p.Y+16, col)
}
