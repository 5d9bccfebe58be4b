package cascade

import (
	"github.com/atomicstack/cascade-menu/internal/geometry"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
)

// Opcode names a command a level accepts on its command channel.
type Opcode int

const (
	// OpOpen opens the submenu of Index, replacing any open sibling.
	OpOpen Opcode = iota
	// OpCloseLevel closes the open child and returns focus to its owning item.
	OpCloseLevel
	// OpCloseCascade asks the cascade to close every level.
	OpCloseCascade
	// OpMoveFocus moves item focus by Delta enabled items, wrapping.
	OpMoveFocus
)

// Command is a message sent to a level.
type Command struct {
	Op     Opcode
	Index  int
	Delta  int
	Focus  bool
	Event  Event
	Reason CloseReason
}

// ParentHandle is the capability a level holds on whatever opened it. The
// root level's parent is the cascade itself.
type ParentHandle interface {
	// RequestOpen keeps the submenu of index open, cancelling any pending
	// switch away from it.
	RequestOpen(index int)
	// RequestCloseThisLevel closes the requesting level and focuses the item
	// that owned it.
	RequestCloseThisLevel()
	// RequestCloseCascade closes everything.
	RequestCloseCascade(ev Event, reason CloseReason)
}

// Level is one open panel of the cascade: a tree plus the pointer and focus
// state that goes with it. A level has at most one open child.
type Level struct {
	cascade *Cascade
	parent  ParentHandle
	depth   int
	index   int
	tree    *menu.Tree

	openIndex int
	child     *Level

	focus       int
	listFocused bool
	hovered     int

	tracker      *Tracker
	pending      Timer
	pendingIndex int
	seq          uint64
	alive        bool
}

func newLevel(c *Cascade, parent ParentHandle, depth, index int, tree *menu.Tree) *Level {
	l := &Level{
		cascade:      c,
		parent:       parent,
		depth:        depth,
		index:        index,
		tree:         tree,
		openIndex:    -1,
		focus:        -1,
		hovered:      -1,
		pendingIndex: -1,
		alive:        true,
	}
	l.tracker = NewTracker(func() (geometry.Rect, bool) {
		if l.child == nil {
			return geometry.Rect{}, false
		}
		return c.measure(depth + 1)
	})
	return l
}

func (l *Level) Depth() int { return l.depth }

// IndexInParent is the index of the item owning this level, or -1 at the
// root.
func (l *Level) IndexInParent() int { return l.index }

func (l *Level) Tree() *menu.Tree { return l.tree }

// OpenIndex is the index whose submenu is open, or -1.
func (l *Level) OpenIndex() int { return l.openIndex }

// FocusIndex is the focused item, or -1.
func (l *Level) FocusIndex() int { return l.focus }

// ListFocused reports whether the panel itself holds focus.
func (l *Level) ListFocused() bool { return l.listFocused }

// Hovered is the last item the pointer was over, or -1.
func (l *Level) Hovered() int { return l.hovered }

// PendingIndex is the target of a scheduled switch. -2 means nothing is
// scheduled and -1 means a close is scheduled.
func (l *Level) PendingIndex() int {
	if l.pending == nil {
		return -2
	}
	return l.pendingIndex
}

func (l *Level) Child() *Level { return l.child }

func (l *Level) Tracker() *Tracker { return l.tracker }

// RequestOpen implements ParentHandle for the child level.
func (l *Level) RequestOpen(index int) {
	l.Dispatch(Command{Op: OpOpen, Index: index})
}

// RequestCloseThisLevel implements ParentHandle for the child level.
func (l *Level) RequestCloseThisLevel() {
	l.Dispatch(Command{Op: OpCloseLevel})
}

// RequestCloseCascade implements ParentHandle for the child level.
func (l *Level) RequestCloseCascade(ev Event, reason CloseReason) {
	l.Dispatch(Command{Op: OpCloseCascade, Event: ev, Reason: reason})
}

// Dispatch handles a command. Commands sent to a torn down level are
// dropped.
func (l *Level) Dispatch(cmd Command) {
	if !l.alive {
		return
	}
	switch cmd.Op {
	case OpOpen:
		l.open(cmd.Index, cmd.Focus)
	case OpCloseLevel:
		l.closeChildAndFocusOwner()
	case OpCloseCascade:
		l.parent.RequestCloseCascade(cmd.Event, cmd.Reason)
	case OpMoveFocus:
		l.moveFocus(cmd.Delta)
	}
}

func (l *Level) open(i int, focus bool) {
	l.cancelPending()
	l.parent.RequestOpen(l.index)
	node, ok := l.tree.At(i)
	if !ok {
		events.Cascade.Stale(l.depth, i)
		return
	}
	if l.openIndex == i && l.child != nil {
		if focus {
			l.setFocus(i)
			l.child.focusInitial()
		}
		return
	}
	if node.Disabled() || !node.HasSubmenu() {
		l.closeChild()
		return
	}
	l.closeChild()
	l.openIndex = i
	l.child = newLevel(l.cascade, l, l.depth+1, i, node.Submenu())
	events.Cascade.Open(l.child.depth, i, node.Label())
	l.cascade.entered(l.child.depth)
	l.tracker.Refresh()
	if focus {
		l.setFocus(i)
		l.child.focusInitial()
	}
}

func (l *Level) closeChild() {
	if l.child == nil {
		l.openIndex = -1
		return
	}
	events.Cascade.Close(l.child.depth, l.openIndex)
	l.child.teardown()
	l.child = nil
	l.openIndex = -1
	l.tracker.ClearAnchors()
}

func (l *Level) closeChildAndFocusOwner() {
	owner := l.openIndex
	l.cancelPending()
	l.closeChild()
	if owner >= 0 {
		l.setFocus(owner)
	}
}

func (l *Level) teardown() {
	l.cancelPending()
	if l.child != nil {
		l.child.teardown()
		l.child = nil
	}
	l.openIndex = -1
	l.alive = false
	l.tracker.Reset()
	l.cascade.exited(l.depth)
}

// schedule arranges for target to become the open submenu after the
// transition delay. A target of -1 closes the open submenu.
func (l *Level) schedule(target int) {
	l.cancelPending()
	l.seq++
	seq := l.seq
	l.pendingIndex = target
	delay := l.cascade.opts.TransitionDelay
	events.Cascade.Schedule(l.depth, target, delay)

	fired := false
	timer := l.cascade.scheduler().Schedule(delay, func() {
		fired = true
		if !l.alive || seq != l.seq {
			return
		}
		l.pending = nil
		l.pendingIndex = -1
		events.Cascade.Fire(l.depth, target)
		l.commit(target)
	})
	if !fired && l.alive && seq == l.seq {
		l.pending = timer
	}
}

func (l *Level) commit(target int) {
	if target < 0 {
		l.closeChild()
		return
	}
	// a panel opened by hover takes keyboard focus like one opened by arrow
	l.open(target, true)
}

func (l *Level) cancelPending() {
	if l.pending != nil {
		l.pending.Stop()
		l.pending = nil
	}
	l.seq++
	l.pendingIndex = -1
}

func (l *Level) pointerOver(i int, ev PointerEvent) {
	node, ok := l.tree.At(i)
	if !ok {
		events.Cascade.Stale(l.depth, i)
		return
	}
	traveling := l.tracker.IsTravelingToSubmenu(ev)
	entered := i != l.hovered
	l.hovered = i
	l.parent.RequestOpen(l.index)

	if l.openIndex >= 0 && i != l.openIndex && traveling {
		events.Cascade.Suppress(l.depth, i)
		return
	}

	if l.child != nil {
		l.child.blur()
	}
	if !node.Disabled() {
		l.setFocus(i)
	}

	target := -1
	if !node.Disabled() && node.HasSubmenu() {
		target = i
	}
	if target == l.openIndex {
		l.cancelPending()
		if entered && target >= 0 {
			l.tracker.OnPointerEnterItem(ev.Point)
		}
		return
	}
	if l.pending != nil && l.pendingIndex == target {
		return
	}
	l.tracker.OnPointerEnterItem(ev.Point)
	l.schedule(target)
}

func (l *Level) click(i int, ev PointerEvent) {
	if _, ok := l.tree.At(i); !ok {
		events.Cascade.Stale(l.depth, i)
		return
	}
	l.parent.RequestOpen(l.index)
	l.activate(i, pointerEvent(ev))
}

func (l *Level) activate(i int, ev Event) {
	node, ok := l.tree.At(i)
	if !ok || node.Disabled() {
		return
	}
	if node.Action() != nil {
		l.setFocus(i)
		l.cascade.activate(l.depth, i, node)
		l.Dispatch(Command{Op: OpCloseCascade, Event: ev, Reason: ReasonItemActivated})
		return
	}
	if node.HasSubmenu() {
		l.Dispatch(Command{Op: OpOpen, Index: i, Focus: true})
	}
}

func (l *Level) handleKey(ev KeyEvent) bool {
	toChild, toParent := KeyRight, KeyLeft
	if l.cascade.opts.Direction == RightToLeft {
		toChild, toParent = KeyLeft, KeyRight
	}
	switch ev.Key {
	case KeyUp:
		l.Dispatch(Command{Op: OpMoveFocus, Delta: -1})
	case KeyDown:
		l.Dispatch(Command{Op: OpMoveFocus, Delta: 1})
	case KeyHome:
		l.focusEdge(true)
	case KeyEnd:
		l.focusEdge(false)
	case KeyEscape:
		l.Dispatch(Command{Op: OpCloseCascade, Event: keyEvent(ev.Key), Reason: ReasonEscapeKeyDown})
	case KeyTab:
		l.Dispatch(Command{Op: OpCloseCascade, Event: keyEvent(ev.Key), Reason: ReasonTabKeyDown})
	case toChild:
		node, ok := l.tree.At(l.focus)
		if !ok || node.Disabled() || !node.HasSubmenu() {
			return true
		}
		l.Dispatch(Command{Op: OpOpen, Index: l.focus, Focus: true})
	case toParent:
		if l.depth > 0 {
			l.parent.RequestCloseThisLevel()
		}
	case KeyEnter, KeySpace:
		if l.focus >= 0 {
			l.activate(l.focus, keyEvent(ev.Key))
		}
	case KeyRune:
		l.typeAhead(ev.Rune)
	default:
		return false
	}
	return true
}

func (l *Level) setFocus(i int) {
	if l.focus == i && !l.listFocused {
		return
	}
	l.focus = i
	l.listFocused = false
	events.Cascade.Focus(l.depth, i)
}

func (l *Level) focusList() {
	l.focus = -1
	l.listFocused = true
}

func (l *Level) blur() {
	l.focus = -1
	l.listFocused = false
	if l.child != nil {
		l.child.blur()
	}
}

func (l *Level) hasFocus() bool {
	return l.focus >= 0 || l.listFocused
}

// replaceTree swaps in a reloaded tree, closing children and clamping any
// index that no longer exists.
func (l *Level) replaceTree(t *menu.Tree) {
	l.cancelPending()
	l.closeChild()
	l.tree = t
	l.hovered = -1
	l.tracker.Reset()
	if l.focus >= t.Len() {
		l.focus = -1
		if idx := initialFocusIndex(t, l.cascade.opts.Variant); idx >= 0 {
			l.setFocus(idx)
		}
	} else if node, ok := t.At(l.focus); ok && node.Disabled() {
		l.focus = -1
		l.moveFocus(1)
	}
}
