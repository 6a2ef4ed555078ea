package gui

import (
	"image/color"
	"sync"
	"testing"
	"time"
)

type recordingRenderer struct {
	mu       sync.Mutex
	presents int
	fills    int
	texts    []string
}

func (r *recordingRenderer) FillRect(Rect, color.RGBA) {
	r.mu.Lock()
	r.fills++
	r.mu.Unlock()
}
func (r *recordingRenderer) StrokeRect(Rect, color.RGBA)            {}
func (r *recordingRenderer) Line(int, int, int, int, color.RGBA)    {}
func (r *recordingRenderer) Image(*ImageData, Rect, float64, uint8) {}
func (r *recordingRenderer) Text(s string, _, _, _ int, _ color.RGBA, _ Align) {
	r.mu.Lock()
	r.texts = append(r.texts, s)
	r.mu.Unlock()
}
func (r *recordingRenderer) Present() {
	r.mu.Lock()
	r.presents++
	r.mu.Unlock()
}

func (r *recordingRenderer) Presents() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presents
}

type scriptedInput struct {
	mu     sync.Mutex
	queued [][]Input
}

func (s *scriptedInput) Push(inputs ...Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := make([]Input, Players)
	for _, in := range inputs {
		frame[in.Player] = in
	}
	s.queued = append(s.queued, frame)
}

func (s *scriptedInput) Poll() []Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queued) == 0 {
		return make([]Input, Players)
	}
	frame := s.queued[0]
	s.queued = s.queued[1:]
	return frame
}

type orderProbe struct {
	Base
	mu    sync.Mutex
	order []int
}

func (p *orderProbe) Draw(Renderer) {}
func (p *orderProbe) Update(in *Input) {
	if in.Pressed == 0 {
		return
	}
	p.mu.Lock()
	p.order = append(p.order, in.Player)
	p.mu.Unlock()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestController(t *testing.T, opts Options) (*Controller, *recordingRenderer, *scriptedInput) {
	t.Helper()
	r := &recordingRenderer{}
	in := &scriptedInput{}
	root := NewWindow("root", ScreenWidth, ScreenHeight)
	c := NewController(root, r, in, opts)
	c.Start()
	t.Cleanup(c.Stop)
	return c, r, in
}

func TestControllerStartsHalted(t *testing.T) {
	c, r, _ := newTestController(t, Options{})

	time.Sleep(5 * time.Millisecond)
	if !c.Suspended() {
		t.Fatal("expected controller to start suspended")
	}
	if got := r.Presents(); got != 0 {
		t.Fatalf("expected no frames while halted, got %d", got)
	}

	c.Resume()
	waitFor(t, "first frame", func() bool { return r.Presents() > 0 })
}

func TestHaltParksBeforeMutation(t *testing.T) {
	c, r, _ := newTestController(t, Options{})
	c.Resume()
	waitFor(t, "frames", func() bool { return r.Presents() > 3 })

	for i := 0; i < 20; i++ {
		c.Mutate(func(root *Window) {
			if !c.Suspended() {
				t.Fatal("tree mutated while render goroutine was running")
			}
			before := r.Presents()
			root.Append(NewText("t", "x", 10, ColorText))
			time.Sleep(200 * time.Microsecond)
			root.RemoveAll()
			if after := r.Presents(); after != before {
				t.Fatalf("frames rendered inside bracket: %d -> %d", before, after)
			}
		})
	}

	before := r.Presents()
	waitFor(t, "resumed frames", func() bool { return r.Presents() > before })
}

func TestConcurrentBracketsAreSerialized(t *testing.T) {
	c, _, _ := newTestController(t, Options{})
	c.Resume()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		inside int
	)
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				c.Mutate(func(root *Window) {
					mu.Lock()
					inside++
					if inside != 1 {
						t.Errorf("overlapping brackets: %d", inside)
					}
					mu.Unlock()
					root.Append(NewRect("r", ColorPanel, 1, 1))
					mu.Lock()
					inside--
					mu.Unlock()
				})
			}
		}()
	}
	wg.Wait()

	if got := len(c.Root().children); got != 100 {
		t.Fatalf("expected 100 children, got %d", got)
	}
}

func TestAttachmentReleaseIsIdempotent(t *testing.T) {
	c, _, _ := newTestController(t, Options{})
	c.Resume()

	btn := NewButton("ok", "OK", 100, 40)
	a := c.Attach(btn)
	if !c.Root().Contains(btn) {
		t.Fatal("button was not attached")
	}
	a.Release()
	a.Release()
	if c.Root().Contains(btn) {
		t.Fatal("button still attached after release")
	}
	if !a.Released() {
		t.Fatal("expected attachment to report released")
	}
}

func TestInputDeliveredInReversePlayerOrder(t *testing.T) {
	c, _, in := newTestController(t, Options{})
	probe := &orderProbe{}
	probe.init("probe", 0, 0)
	c.Root().Append(probe)

	in.Push(
		Input{Player: 0, Pressed: ButtonA},
		Input{Player: 1, Pressed: ButtonA},
		Input{Player: 2, Pressed: ButtonA},
		Input{Player: 3, Pressed: ButtonA},
	)
	c.Resume()

	waitFor(t, "input delivery", func() bool {
		probe.mu.Lock()
		defer probe.mu.Unlock()
		return len(probe.order) == 4
	})

	probe.mu.Lock()
	defer probe.mu.Unlock()
	want := []int{3, 2, 1, 0}
	for i := range want {
		if probe.order[i] != want[i] {
			t.Fatalf("delivery order = %v, want %v", probe.order, want)
		}
	}
}

func TestPendingExitFadesAndCallsOnExit(t *testing.T) {
	var (
		mu    sync.Mutex
		exits []ExitKind
	)
	pending := ExitNone
	c, r, _ := newTestController(t, Options{
		PendingExit: func() ExitKind {
			mu.Lock()
			defer mu.Unlock()
			return pending
		},
		OnExit: func(kind ExitKind) {
			mu.Lock()
			exits = append(exits, kind)
			mu.Unlock()
		},
	})
	c.Resume()
	waitFor(t, "frames", func() bool { return r.Presents() > 0 })

	mu.Lock()
	pending = ExitShutdown
	mu.Unlock()

	waitFor(t, "exit", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(exits) == 1
	})

	c.Halt()
	c.Resume()

	mu.Lock()
	defer mu.Unlock()
	if exits[0] != ExitShutdown {
		t.Fatalf("exit kind = %v, want %v", exits[0], ExitShutdown)
	}
	if r.Presents() < 255/fadeStep {
		t.Fatalf("expected fade frames, got %d presents", r.Presents())
	}
}

func TestTakePressedAccumulatesBetweenReads(t *testing.T) {
	c, r, in := newTestController(t, Options{})
	in.Push(Input{Player: 0, Pressed: ButtonA, WPad: 0x0008})
	in.Push(Input{Player: 0, Pressed: ButtonB, Key: 41})
	c.Resume()
	waitFor(t, "frames", func() bool { return r.Presents() > 3 })

	got := c.TakePressed(0)
	if got.Pressed&ButtonA == 0 || got.Pressed&ButtonB == 0 {
		t.Errorf("pressed = %b, want A and B", got.Pressed)
	}
	if got.WPad != 0x0008 {
		t.Errorf("wpad = %#x, want 0x8", got.WPad)
	}
	if got.Key != 41 {
		t.Errorf("key = %d, want 41", got.Key)
	}

	if again := c.TakePressed(0); again.Any() {
		t.Errorf("expected presses to be drained, got %+v", again)
	}
}
