package gui

import "go.uber.org/atomic"

// Tree is the shared root plus the bracket that guards it.
type Tree interface {
	Halt()
	Resume()
	Root() *Window
}

// Attachment is a set of elements appended to the root. Release detaches
// them; it is safe to call more than once, so it can be deferred.
type Attachment struct {
	tree     Tree
	elems    []Element
	released atomic.Bool
}

// Attach appends elems to the root between Halt and Resume. The last
// element receives focus while the root is disabled.
func Attach(t Tree, elems ...Element) *Attachment {
	t.Halt()
	root := t.Root()
	for _, e := range elems {
		root.Append(e)
	}
	if len(elems) > 0 {
		root.ChangeFocus(elems[len(elems)-1])
	}
	t.Resume()
	return &Attachment{tree: t, elems: elems}
}

func (a *Attachment) Release() {
	if a == nil || a.released.Swap(true) {
		return
	}
	a.tree.Halt()
	root := a.tree.Root()
	for _, e := range a.elems {
		root.Remove(e)
	}
	a.tree.Resume()
}

func (a *Attachment) Released() bool {
	return a.released.Load()
}

// Mutate runs fn against the root inside one Halt/Resume bracket.
func Mutate(t Tree, fn func(root *Window)) {
	t.Halt()
	defer t.Resume()
	fn(t.Root())
}
