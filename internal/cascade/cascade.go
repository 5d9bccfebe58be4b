// Package cascade implements the state machine behind a cascading menu: a
// root list whose items may open nested submenus, driven by pointer and
// keyboard input.
//
// A Cascade is not safe for concurrent use. All methods, and every callback
// handed to the Scheduler, must run on the goroutine that owns it.
package cascade

import (
	"errors"

	"github.com/atomicstack/cascade-menu/internal/geometry"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
)

// ErrNilTree is returned when a cascade is created without a tree.
var ErrNilTree = errors.New("cascade: nil tree")

// FocusTarget says what currently holds keyboard focus.
type FocusTarget int

const (
	FocusAnchor FocusTarget = iota
	FocusList
	FocusItem
)

func (f FocusTarget) String() string {
	switch f {
	case FocusList:
		return "list"
	case FocusItem:
		return "item"
	}
	return "anchor"
}

// Focus locates keyboard focus. Depth and Index are -1 unless the target is
// a list or an item.
type Focus struct {
	Target FocusTarget
	Depth  int
	Index  int
}

// Cascade owns the root tree and the chain of open levels.
type Cascade struct {
	opts Options
	tree *menu.Tree
	root *Level

	typeAhead      string
	typeAheadTimer Timer
}

// New creates a cascade for tree. The tree becomes rooted until Dispose is
// called, so it cannot be attached as a submenu elsewhere. When opts.Open is
// set and an anchor is present the root level opens immediately.
func New(tree *menu.Tree, opts Options) (*Cascade, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if err := tree.Claim(); err != nil {
		return nil, err
	}
	if opts.TypeAheadTimeout <= 0 {
		opts.TypeAheadTimeout = DefaultTypeAheadTimeout
	}
	c := &Cascade{opts: opts, tree: tree}
	if opts.Open {
		c.SetOpen(true)
	}
	return c, nil
}

// Dispose tears the cascade down without notifying OnClose and releases the
// root tree.
func (c *Cascade) Dispose() {
	c.teardown()
	c.tree.Release()
}

func (c *Cascade) Options() Options { return c.opts }

func (c *Cascade) Tree() *menu.Tree { return c.tree }

func (c *Cascade) Anchor() geometry.Element { return c.opts.Anchor }

// SetAnchor replaces the anchor. Removing it closes the cascade silently.
func (c *Cascade) SetAnchor(el geometry.Element) {
	c.opts.Anchor = el
	if el == nil {
		c.teardown()
		return
	}
	if c.opts.Open {
		c.SetOpen(true)
	}
}

// SetMeasurer replaces the layout source used by the travel trackers.
func (c *Cascade) SetMeasurer(m Measurer) { c.opts.Measurer = m }

// SetScheduler replaces the timer source. Pending switches scheduled on the
// previous scheduler still fire there.
func (c *Cascade) SetScheduler(s Scheduler) { c.opts.Scheduler = s }

// SetOpen is the owner's open flag. Opening needs an anchor; closing this
// way does not call OnClose.
func (c *Cascade) SetOpen(open bool) {
	c.opts.Open = open
	if !open {
		c.teardown()
		return
	}
	if c.root != nil || c.opts.Anchor == nil {
		return
	}
	c.root = newLevel(c, rootHandle{c}, 0, -1, c.tree)
	events.Cascade.Open(0, -1, "")
	c.entered(0)
	if !c.opts.AutoFocus {
		return
	}
	if c.opts.DisableAutoFocusItem {
		c.root.focusList()
		return
	}
	c.root.focusInitial()
}

func (c *Cascade) IsOpen() bool { return c.root != nil }

// Root returns the root level, or nil when closed.
func (c *Cascade) Root() *Level { return c.root }

// Levels returns the open chain from the root down.
func (c *Cascade) Levels() []*Level {
	var out []*Level
	for l := c.root; l != nil; l = l.child {
		out = append(out, l)
	}
	return out
}

// Level returns the open level at depth, or nil.
func (c *Cascade) Level(depth int) *Level {
	if depth < 0 {
		return nil
	}
	l := c.root
	for d := 0; l != nil && d < depth; d++ {
		l = l.child
	}
	return l
}

// OpenPath returns the open index at each level that has an open child.
func (c *Cascade) OpenPath() []int {
	var path []int
	for l := c.root; l != nil && l.openIndex >= 0; l = l.child {
		path = append(path, l.openIndex)
	}
	return path
}

// Focus reports what holds keyboard focus. With nothing inside the cascade
// focused, focus is on the anchor.
func (c *Cascade) Focus() Focus {
	if lvl := c.keyboardLevel(); lvl != nil {
		if lvl.focus >= 0 {
			return Focus{Target: FocusItem, Depth: lvl.depth, Index: lvl.focus}
		}
		if lvl.listFocused {
			return Focus{Target: FocusList, Depth: lvl.depth, Index: -1}
		}
	}
	return Focus{Target: FocusAnchor, Depth: -1, Index: -1}
}

// KeyboardLevel returns the level receiving keys: the deepest one holding
// focus, or the root when none does.
func (c *Cascade) KeyboardLevel() *Level {
	if lvl := c.keyboardLevel(); lvl != nil {
		return lvl
	}
	return c.root
}

func (c *Cascade) keyboardLevel() *Level {
	var found *Level
	for l := c.root; l != nil; l = l.child {
		if l.hasFocus() {
			found = l
		}
	}
	return found
}

// HandleKey routes a key press. It reports whether the cascade consumed it.
func (c *Cascade) HandleKey(ev KeyEvent) bool {
	if c.root == nil {
		return false
	}
	return c.KeyboardLevel().handleKey(ev)
}

// PointerMove reports the pointer over item index of the level at depth.
func (c *Cascade) PointerMove(depth, index int, ev PointerEvent) {
	if lvl := c.Level(depth); lvl != nil {
		lvl.pointerOver(index, ev)
	}
}

// PointerOutside reports the pointer outside every panel. Open submenus stay
// open.
func (c *Cascade) PointerOutside(PointerEvent) {}

// Click activates item index of the level at depth.
func (c *Cascade) Click(depth, index int, ev PointerEvent) {
	if lvl := c.Level(depth); lvl != nil {
		lvl.click(index, ev)
	}
}

// ClickOutside closes the cascade as a backdrop click.
func (c *Cascade) ClickOutside(ev PointerEvent) {
	c.Close(pointerEvent(ev), ReasonBackdropClick)
}

// Close closes every level and reports reason to OnClose. Closing an already
// closed cascade does nothing.
func (c *Cascade) Close(ev Event, reason CloseReason) {
	if !c.teardown() {
		return
	}
	c.opts.Open = false
	events.Cascade.CloseCascade(string(reason))
	if c.opts.OnClose != nil {
		c.opts.OnClose(ev, reason)
	}
}

// Reload swaps the root tree. Open submenus close and indexes that no longer
// exist are clamped.
func (c *Cascade) Reload(tree *menu.Tree) error {
	if tree == nil {
		return ErrNilTree
	}
	if tree == c.tree {
		return nil
	}
	if err := tree.Claim(); err != nil {
		return err
	}
	c.tree.Release()
	c.tree = tree
	c.resetTypeAhead()
	if c.root != nil {
		c.root.replaceTree(tree)
	}
	return nil
}

func (c *Cascade) teardown() bool {
	if c.root == nil {
		return false
	}
	root := c.root
	c.root = nil
	root.teardown()
	c.resetTypeAhead()
	return true
}

func (c *Cascade) activate(depth, index int, node *menu.Node) {
	act := Activation{Node: node}
	for d := 0; d < depth; d++ {
		lvl := c.Level(d)
		owner, _ := lvl.tree.At(lvl.openIndex)
		act.Path = append(act.Path, lvl.openIndex)
		act.Labels = append(act.Labels, owner.Label())
	}
	act.Path = append(act.Path, index)
	act.Labels = append(act.Labels, node.Label())
	events.Cascade.Activate(act.Path, node.Label())
	if c.opts.OnActivate != nil {
		c.opts.OnActivate(act)
		return
	}
	node.Action()(act.Context())
}

func (c *Cascade) scheduler() Scheduler {
	if c.opts.Scheduler == nil {
		return ImmediateScheduler{}
	}
	return c.opts.Scheduler
}

// clockless reports whether the scheduler runs callbacks inline. There is
// then no pause after which the type-ahead buffer could clear.
func (c *Cascade) clockless() bool {
	_, ok := c.scheduler().(ImmediateScheduler)
	return ok
}

func (c *Cascade) measure(depth int) (geometry.Rect, bool) {
	if c.opts.Measurer == nil {
		return geometry.Rect{}, false
	}
	return c.opts.Measurer.PanelBounds(depth)
}

func (c *Cascade) entered(depth int) {
	if c.opts.OnEnter != nil {
		c.opts.OnEnter(depth)
	}
}

func (c *Cascade) exited(depth int) {
	if c.opts.OnExited != nil {
		c.opts.OnExited(depth)
	}
}

func (c *Cascade) appendTypeAhead(r rune) string {
	if c.typeAheadTimer != nil {
		c.typeAheadTimer.Stop()
		c.typeAheadTimer = nil
	}
	query := c.typeAhead + string(r)
	c.typeAhead = query
	if c.clockless() {
		return query
	}
	c.typeAheadTimer = c.scheduler().Schedule(c.opts.TypeAheadTimeout, func() {
		c.typeAhead = ""
		c.typeAheadTimer = nil
	})
	return query
}

func (c *Cascade) resetTypeAhead() {
	if c.typeAheadTimer != nil {
		c.typeAheadTimer.Stop()
		c.typeAheadTimer = nil
	}
	c.typeAhead = ""
}

type rootHandle struct{ c *Cascade }

func (rootHandle) RequestOpen(int)        {}
func (rootHandle) RequestCloseThisLevel() {}

func (h rootHandle) RequestCloseCascade(ev Event, reason CloseReason) {
	h.c.Close(ev, reason)
}
