package prompt

import (
	"image/color"
	"sync"
	"testing"
	"time"

	"vbagx/gui"
)

type nopRenderer struct{}

func (nopRenderer) FillRect(gui.Rect, color.RGBA)                     {}
func (nopRenderer) StrokeRect(gui.Rect, color.RGBA)                   {}
func (nopRenderer) Line(int, int, int, int, color.RGBA)               {}
func (nopRenderer) Text(string, int, int, int, color.RGBA, gui.Align) {}
func (nopRenderer) Image(*gui.ImageData, gui.Rect, float64, uint8)    {}
func (nopRenderer) Present()                                          {}

// script delivers queued presses to player 0, one per poll.
type script struct {
	mu    sync.Mutex
	queue []gui.Input
}

func (s *script) push(in ...gui.Input) {
	s.mu.Lock()
	s.queue = append(s.queue, in...)
	s.mu.Unlock()
}

func (s *script) Poll() []gui.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gui.Input, gui.Players)
	if len(s.queue) > 0 {
		out[0] = s.queue[0]
		s.queue = s.queue[1:]
	}
	return out
}

type countingCanceler struct {
	mu    sync.Mutex
	calls int
}

func (c *countingCanceler) CancelAction() {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func press(b gui.Buttons) gui.Input {
	return gui.Input{Connected: true, Pressed: b}
}

func newTestPrompter(t *testing.T) (*Prompter, *gui.Controller, *script, *countingCanceler) {
	t.Helper()
	root := gui.NewWindow("root", gui.ScreenWidth, gui.ScreenHeight)
	in := &script{}
	ctrl := gui.NewController(root, nopRenderer{}, in, gui.Options{Tick: 50 * time.Microsecond})
	ctrl.Start()
	ctrl.Resume()
	t.Cleanup(ctrl.Stop)

	cancel := &countingCanceler{}
	return New(ctrl, cancel, Options{Tick: 50 * time.Microsecond}), ctrl, in, cancel
}

// whenShown waits until the dialog is attached and has finished sliding in,
// so presses are not dropped by the animation.
func whenShown(t *testing.T, ctrl *gui.Controller) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var ready bool
		ctrl.Mutate(func(root *gui.Window) {
			if e := root.Find(windowName); e != nil {
				ready = !e.Animating()
			}
		})
		if ready {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("prompt never appeared")
}

func TestWindowChoices(t *testing.T) {
	tests := []struct {
		name    string
		btn2    string
		presses []gui.Input
		want    int
	}{
		{"first button", "No", []gui.Input{press(gui.ButtonA)}, 1},
		{"move to second", "No", []gui.Input{press(gui.ButtonRight), press(gui.ButtonA)}, 0},
		{"back on second", "No", []gui.Input{press(gui.ButtonB)}, 0},
		{"single button", "", []gui.Input{press(gui.ButtonRight), press(gui.ButtonA)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ctrl, in, cancel := newTestPrompter(t)

			got := make(chan int, 1)
			go func() { got <- p.Window("Title", "Message", "Yes", tt.btn2) }()

			whenShown(t, ctrl)
			in.push(tt.presses...)

			select {
			case choice := <-got:
				if choice != tt.want {
					t.Errorf("choice = %d, want %d", choice, tt.want)
				}
			case <-time.After(3 * time.Second):
				t.Fatal("prompt did not return")
			}

			ctrl.Mutate(func(root *gui.Window) {
				if root.Find(windowName) != nil {
					t.Error("prompt still attached")
				}
				if root.State() != gui.StateDefault {
					t.Errorf("root state = %v", root.State())
				}
			})
			if cancel.calls != 1 {
				t.Errorf("CancelAction calls = %d", cancel.calls)
			}
		})
	}
}

func TestKeyboardTruncatesAndCancels(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		maxLen  int
		typed   []gui.Input
		confirm gui.Buttons
		want    string
		ok      bool
	}{
		{"typed and confirmed", "rom", 5, []gui.Input{{Key: 22}, {Key: 4}, {Key: 26}}, gui.ButtonStart, "romsa", true},
		{"cancel keeps value", "roms", 10, []gui.Input{{Key: 42}}, gui.ButtonHome, "roms", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ctrl, in, _ := newTestPrompter(t)

			type result struct {
				s  string
				ok bool
			}
			got := make(chan result, 1)
			go func() {
				s, ok := p.Keyboard(tt.value, tt.maxLen)
				got <- result{s, ok}
			}()

			whenShown(t, ctrl)
			in.push(tt.typed...)
			in.push(press(tt.confirm))

			select {
			case r := <-got:
				if r.s != tt.want || r.ok != tt.ok {
					t.Errorf("Keyboard = %q, %v, want %q, %v", r.s, r.ok, tt.want, tt.ok)
				}
			case <-time.After(3 * time.Second):
				t.Fatal("keyboard did not return")
			}
		})
	}
}

func TestSettingRunsBodyCallbacks(t *testing.T) {
	p, ctrl, in, _ := newTestPrompter(t)

	var mu sync.Mutex
	value := 0
	body := gui.NewWindow("editor", 200, 80)
	plus := gui.NewButton("plus", "+", 60, 40)
	plus.SetHotkey(gui.ButtonR)
	plus.OnClick(func(b *gui.Button) {
		mu.Lock()
		value++
		mu.Unlock()
		b.ResetState()
	})
	body.Append(plus)

	got := make(chan bool, 1)
	go func() { got <- p.Setting("Zoom", body) }()

	whenShown(t, ctrl)
	in.push(press(gui.ButtonR), press(gui.ButtonR), press(gui.ButtonA))

	select {
	case ok := <-got:
		if !ok {
			t.Error("Setting returned false for OK")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("setting did not return")
	}
	mu.Lock()
	defer mu.Unlock()
	if value != 2 {
		t.Errorf("value = %d, want 2", value)
	}
}
