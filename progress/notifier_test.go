package progress

import (
	"sync"
	"testing"
	"time"

	"vbagx/gui"
)

// lockTree stands in for the render controller: the bracket is a plain
// mutex, and every Resume records how many overlays the root holds.
type lockTree struct {
	mu       sync.Mutex
	root     *gui.Window
	statsMu  sync.Mutex
	maxOpen  int
	brackets int
}

func newLockTree() *lockTree {
	return &lockTree{root: gui.NewWindow("root", gui.ScreenWidth, gui.ScreenHeight)}
}

func (l *lockTree) Halt()             { l.mu.Lock() }
func (l *lockTree) Root() *gui.Window { return l.root }
func (l *lockTree) Resume() {
	open := 0
	if l.root.Find(windowName) != nil {
		open = 1
	}
	l.statsMu.Lock()
	l.brackets++
	if open > l.maxOpen {
		l.maxOpen = open
	}
	l.statsMu.Unlock()
	l.mu.Unlock()
}

func (l *lockTree) stats() (maxOpen, brackets int) {
	l.statsMu.Lock()
	defer l.statsMu.Unlock()
	return l.maxOpen, l.brackets
}

func (l *lockTree) find(name string) gui.Element {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.root.Find(name)
}

func newTestNotifier(t *testing.T) (*Notifier, *lockTree) {
	t.Helper()
	tree := newLockTree()
	n := New(tree, Options{Grace: 30 * time.Millisecond, Redraw: time.Millisecond})
	n.Start()
	t.Cleanup(n.Stop)
	return n, tree
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

func TestShowProgressBelowThresholdNeverOpens(t *testing.T) {
	n, _ := newTestNotifier(t)

	for _, total := range []int64{0, 1, 1024, MinTotal - 1} {
		n.ShowProgress("Loading", total/2, total)
	}
	time.Sleep(50 * time.Millisecond)

	if got := n.Opened(); got != 0 {
		t.Fatalf("Opened() = %d, want 0", got)
	}
	if n.Mode() != ModeOff {
		t.Fatalf("Mode() = %v, want off", n.Mode())
	}
}

func TestFastActionIsSuppressedByGracePeriod(t *testing.T) {
	tree := newLockTree()
	n := New(tree, Options{Grace: 200 * time.Millisecond, Redraw: time.Millisecond})
	n.Start()
	t.Cleanup(n.Stop)

	n.ShowAction("Saving...")
	time.Sleep(10 * time.Millisecond)
	n.CancelAction()

	if got := n.Opened(); got != 0 {
		t.Fatalf("Opened() = %d, want 0", got)
	}
	if _, brackets := tree.stats(); brackets != 0 {
		t.Fatalf("tree was touched %d times", brackets)
	}
}

func TestSuccessiveProgressKeepsOneOverlay(t *testing.T) {
	n, tree := newTestNotifier(t)

	n.ShowProgress("Loading", 0, MinTotal)
	waitFor(t, "overlay", n.Open)
	n.ShowProgress("Loading", 3*MinTotal/4, 2*MinTotal)

	waitFor(t, "bar update", func() bool {
		bar, ok := tree.find(windowName + ".bar").(*gui.ProgressBar)
		return ok && bar.Percent() == 37
	})
	n.CancelAction()

	if got := n.Opened(); got != 1 {
		t.Errorf("Opened() = %d, want 1", got)
	}
	if maxOpen, _ := tree.stats(); maxOpen != 1 {
		t.Errorf("max overlays open at once = %d, want 1", maxOpen)
	}
}

func TestSwitchingModesClosesPreviousOverlayFirst(t *testing.T) {
	n, tree := newTestNotifier(t)

	n.ShowProgress("Loading", MinTotal/2, MinTotal)
	waitFor(t, "progress overlay", n.Open)

	n.ShowAction("Saving...")
	if n.Open() {
		t.Fatal("previous overlay still open after ShowAction returned")
	}
	if tree.find(windowName) != nil {
		t.Fatal("previous overlay still attached after ShowAction returned")
	}

	waitFor(t, "action overlay", n.Open)
	if tree.find(windowName+".spinner") == nil {
		t.Fatal("action overlay has no spinner")
	}
	n.CancelAction()

	if got := n.Opened(); got != 2 {
		t.Errorf("Opened() = %d, want 2", got)
	}
	if maxOpen, _ := tree.stats(); maxOpen != 1 {
		t.Errorf("max overlays open at once = %d, want 1", maxOpen)
	}
}

func TestShowProgressClampsDone(t *testing.T) {
	n, _ := newTestNotifier(t)

	n.ShowProgress("Loading", 3*MinTotal, MinTotal)
	done, total := n.Progress()
	if done != total || total != MinTotal {
		t.Fatalf("Progress() = %d/%d, want %d/%d", done, total, MinTotal, MinTotal)
	}
	n.CancelAction()
}

func TestOverlayRestoresRootState(t *testing.T) {
	n, tree := newTestNotifier(t)

	n.ShowAction("Working")
	waitFor(t, "overlay", n.Open)
	if got := tree.Root().State(); got != gui.StateDisabled {
		t.Fatalf("root state while open = %v, want disabled", got)
	}
	n.CancelAction()
	if got := tree.Root().State(); got != gui.StateDefault {
		t.Fatalf("root state after close = %v, want default", got)
	}
}

func TestSpinnerAdvances(t *testing.T) {
	n, tree := newTestNotifier(t)

	n.ShowAction("Working")
	waitFor(t, "spinner rotation", func() bool {
		s, ok := tree.find(windowName + ".spinner").(*gui.Spinner)
		return ok && s.Angle() > 0 && s.Angle()%spinStep == 0
	})
	n.CancelAction()
}
