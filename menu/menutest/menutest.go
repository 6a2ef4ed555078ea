// Package menutest provides in-memory collaborators for driving screens in
// tests without a display or an emulator core.
package menutest

import (
	"image"
	"image/color"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"vbagx/browser"
	"vbagx/gui"
	"vbagx/menu"
	"vbagx/saves"
	"vbagx/settings"
	"vbagx/storage"

	"go.uber.org/atomic"
)

// Tree is a GUI whose bracket is a plain mutex. Nothing renders, so screens
// see their clicks only through Click helpers.
type Tree struct {
	mu      sync.Mutex
	holding atomic.Bool
	root    *gui.Window
	tick    time.Duration

	statsMu sync.Mutex
	resumes int
	presses [gui.Players][]gui.Input
}

func NewTree() *Tree {
	return &Tree{
		root: gui.NewWindow("root", gui.ScreenWidth, gui.ScreenHeight),
		tick: 50 * time.Microsecond,
	}
}

func (t *Tree) Root() *gui.Window   { return t.root }
func (t *Tree) Tick() time.Duration { return t.tick }

// Press queues in for player. Each TakePressed returns one queued input.
func (t *Tree) Press(player int, in gui.Input) {
	in.Player = player
	t.statsMu.Lock()
	t.presses[player] = append(t.presses[player], in)
	t.statsMu.Unlock()
}

func (t *Tree) TakePressed(player int) gui.Input {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	if player < 0 || player >= gui.Players || len(t.presses[player]) == 0 {
		return gui.Input{Player: player}
	}
	in := t.presses[player][0]
	t.presses[player] = t.presses[player][1:]
	return in
}

func (t *Tree) Halt() {
	t.mu.Lock()
	t.holding.Store(true)
}

// Resume without a matching Halt is a no-op, as on gui.Controller.
func (t *Tree) Resume() {
	t.statsMu.Lock()
	t.resumes++
	t.statsMu.Unlock()
	if t.holding.Swap(false) {
		t.mu.Unlock()
	}
}

func (t *Tree) Resumes() int {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	return t.resumes
}

// Find looks name up under the bracket.
func (t *Tree) Find(name string) gui.Element {
	t.Halt()
	defer t.Resume()
	return t.root.Find(name)
}

// Wait polls until name is attached.
func (t *Tree) Wait(tb testing.TB, name string) gui.Element {
	tb.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if e := t.Find(name); e != nil {
			return e
		}
		time.Sleep(100 * time.Microsecond)
	}
	tb.Fatalf("%s never attached", name)
	return nil
}

// ClickButton waits for the named button and clicks it.
func (t *Tree) ClickButton(tb testing.TB, name string) {
	tb.Helper()
	b, ok := t.Wait(tb, name).(*gui.Button)
	if !ok {
		tb.Fatalf("%s is not a button", name)
	}
	b.SetState(gui.StateClicked)
}

type Progress struct {
	mu       sync.Mutex
	Actions  []string
	Cancels  int
	Progress int
}

func (p *Progress) ShowProgress(string, int64, int64) {
	p.mu.Lock()
	p.Progress++
	p.mu.Unlock()
}

func (p *Progress) ShowAction(msg string) {
	p.mu.Lock()
	p.Actions = append(p.Actions, msg)
	p.mu.Unlock()
}

func (p *Progress) CancelAction() {
	p.mu.Lock()
	p.Cancels++
	p.mu.Unlock()
}

// Prompter answers Window calls from a queue. An empty queue answers 1.
type Prompter struct {
	mu      sync.Mutex
	Answers []int
	Titles  []string
	Errors  []string
	Infos   []string
	Typed   string
}

func (p *Prompter) Window(title, msg, btn1, btn2 string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Titles = append(p.Titles, title)
	if len(p.Answers) == 0 {
		return 1
	}
	a := p.Answers[0]
	p.Answers = p.Answers[1:]
	return a
}

func (p *Prompter) Error(msg string) {
	p.mu.Lock()
	p.Errors = append(p.Errors, msg)
	p.mu.Unlock()
}

func (p *Prompter) ErrorRetry(msg string) bool {
	p.Error(msg)
	return p.Window("Error", msg, "Retry", "Cancel") == 1
}

func (p *Prompter) Info(msg string) {
	p.mu.Lock()
	p.Infos = append(p.Infos, msg)
	p.mu.Unlock()
}

func (p *Prompter) Keyboard(value string, maxLen int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Typed == "" {
		return value, false
	}
	s := []rune(p.Typed)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return string(s), true
}

func (p *Prompter) Setting(string, *gui.Window) bool {
	return p.Window("", "", "OK", "Cancel") == 1
}

// Snapshot returns copies of what the prompter was asked.
func (p *Prompter) Snapshot() (titles, errors, infos []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.Titles...), append([]string(nil), p.Errors...), append([]string(nil), p.Infos...)
}

// Core keeps a ROM and plain byte slices for battery and snapshot data.
type Core struct {
	mu       sync.Mutex
	Name     string
	ROM      []byte
	Code     string
	Battery  []byte
	State    []byte
	Resets   int
	Sun      int
	Restored []string
}

func (c *Core) Load(name string, rom []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Name, c.ROM = name, rom
	return nil
}

func (c *Core) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ROM != nil
}

func (c *Core) Reset() {
	c.mu.Lock()
	c.Resets++
	c.mu.Unlock()
}

func (c *Core) ResetCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Resets
}

func (c *Core) ROMCode() string           { return c.Code }
func (c *Core) SunLevel() int             { return c.Sun }
func (c *Core) SetSunLevel(level int)     { c.Sun = level }
func (c *Core) Screen() image.Image       { return solid(240, 160) }
func (c *Core) Snapshot() ([]byte, error) { return c.State, nil }

func (c *Core) BatteryData() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Battery, nil
}

func (c *Core) RestoreBattery(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Battery = data
	c.Restored = append(c.Restored, "sram")
	return nil
}

func (c *Core) RestoreSnapshot(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.State = data
	c.Restored = append(c.Restored, "snapshot")
	return nil
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.RGBA{A: 255})
	return img
}

type Platform struct {
	Caps      settings.Capabilities
	Clock     time.Time
	Levels    map[int]int
	mu        sync.Mutex
	Exits     []settings.ExitAction
	Shutdowns int
}

func (p *Platform) Capabilities() settings.Capabilities { return p.Caps }

func (p *Platform) Battery(player int) (int, bool) {
	level, ok := p.Levels[player]
	return level, ok
}

func (p *Platform) Now() time.Time {
	if p.Clock.IsZero() {
		return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return p.Clock
}

func (p *Platform) Exit(action settings.ExitAction) {
	p.mu.Lock()
	p.Exits = append(p.Exits, action)
	p.mu.Unlock()
}

func (p *Platform) Shutdown() {
	p.mu.Lock()
	p.Shutdowns++
	p.mu.Unlock()
}

// Fixture is a session wired to fakes and to an SD card rooted in a temp dir.
type Fixture struct {
	Session  *menu.Session
	Tree     *Tree
	Progress *Progress
	Prompt   *Prompter
	Core     *Core
	Platform *Platform
	SDRoot   string
}

func NewFixture(tb testing.TB) *Fixture {
	tb.Helper()
	root := tb.TempDir()
	f := &Fixture{
		Tree:     NewTree(),
		Progress: &Progress{},
		Prompt:   &Prompter{},
		Core:     &Core{},
		Platform: &Platform{Caps: settings.Capabilities{Wii: true, USB: true, SMB: true, Network: true}},
		SDRoot:   root,
	}
	mounts := storage.NewMounts(map[storage.Method]string{storage.MethodSD: root}, nil)
	f.Session = &menu.Session{
		GUI:      f.Tree,
		Progress: f.Progress,
		Prompt:   f.Prompt,
		Core:     f.Core,
		Platform: f.Platform,
		Store:    settings.NewStore(filepath.Join(root, "settings.xml"), nil),
		Mounts:   mounts,
		Browser:  browser.New(mounts, f.Progress, nil),
		Saves:    saves.NewManager(f.Core, mounts, f.Progress, nil),
	}
	f.Session.SetPrefs(settings.Defaults())
	return f
}
