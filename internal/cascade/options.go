package cascade

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/cascade-menu/internal/geometry"
	"github.com/atomicstack/cascade-menu/internal/menu"
)

const (
	// DefaultTransitionDelay is how long a hovered item waits before its
	// submenu replaces the open one.
	DefaultTransitionDelay = 100 * time.Millisecond
	// DefaultTypeAheadTimeout clears the type-ahead buffer after a pause.
	DefaultTypeAheadTimeout = 500 * time.Millisecond
)

// Variant selects how the initial focus target is picked.
type Variant int

const (
	// VariantSelectedMenu focuses the first selected node, falling back to
	// the first enabled one.
	VariantSelectedMenu Variant = iota
	// VariantMenu ignores the selected flag.
	VariantMenu
)

func (v Variant) String() string {
	if v == VariantMenu {
		return "menu"
	}
	return "selectedMenu"
}

// ParseVariant accepts "menu" or "selectedMenu" (case-insensitive).
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "selectedmenu", "selected-menu", "selected":
		return VariantSelectedMenu, nil
	case "menu":
		return VariantMenu, nil
	}
	return VariantSelectedMenu, fmt.Errorf("unknown menu variant %q (want menu or selectedMenu)", s)
}

// Direction mirrors arrow keys and submenu placement.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// CloseReason explains why the cascade closed itself.
type CloseReason string

const (
	ReasonEscapeKeyDown CloseReason = "escapeKeyDown"
	ReasonBackdropClick CloseReason = "backdropClick"
	ReasonTabKeyDown    CloseReason = "tabKeyDown"
	ReasonItemActivated CloseReason = "itemActivated"
)

// Key is a navigation key understood by the cascade.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyEnter
	KeySpace
	KeyEscape
	KeyTab
	KeyRune
)

var keyNames = map[Key]string{
	KeyNone:   "none",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyHome:   "home",
	KeyEnd:    "end",
	KeyEnter:  "enter",
	KeySpace:  "space",
	KeyEscape: "esc",
	KeyTab:    "tab",
	KeyRune:   "rune",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// KeyEvent is a key press. Rune is only set for KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// PointerEvent is a pointer position report. Trusted is false for
// synthesized events.
type PointerEvent struct {
	Point   geometry.Point
	Trusted bool
}

// EventKind tells which input produced an Event.
type EventKind int

const (
	EventOwner EventKind = iota
	EventKey
	EventPointer
)

// Event describes the input that triggered a close.
type Event struct {
	Kind  EventKind
	Key   Key
	Point geometry.Point
}

func keyEvent(k Key) Event {
	return Event{Kind: EventKey, Key: k}
}

func pointerEvent(ev PointerEvent) Event {
	return Event{Kind: EventPointer, Point: ev.Point}
}

// Activation identifies an activated node.
type Activation struct {
	Path   []int
	Labels []string
	Node   *menu.Node
}

// Context converts the activation into the context passed to node actions.
func (a Activation) Context() menu.Context {
	return menu.Context{Path: append([]int(nil), a.Path...), Labels: append([]string(nil), a.Labels...)}
}

// Measurer reports where the host laid out each open level.
type Measurer interface {
	PanelBounds(depth int) (geometry.Rect, bool)
}

// Options are the parameters the owner of a cascade controls.
type Options struct {
	Anchor               geometry.Element
	Open                 bool
	TransitionDelay      time.Duration
	TypeAheadTimeout     time.Duration
	Variant              Variant
	AutoFocus            bool
	DisableAutoFocusItem bool
	Direction            Direction

	// OnClose fires when the cascade closes itself. It does not fire when
	// the owner closes it through SetOpen(false).
	OnClose func(Event, CloseReason)
	// OnActivate runs the action of an activated node. When nil the action
	// is called directly and its command is discarded.
	OnActivate func(Activation)
	// OnEnter and OnExited fire when a level is created and torn down.
	OnEnter  func(depth int)
	OnExited func(depth int)

	Scheduler Scheduler
	Measurer  Measurer
}

// DefaultOptions returns options with auto focus enabled, the selectedMenu
// variant and the default delays.
func DefaultOptions() Options {
	return Options{
		TransitionDelay:  DefaultTransitionDelay,
		TypeAheadTimeout: DefaultTypeAheadTimeout,
		Variant:          VariantSelectedMenu,
		AutoFocus:        true,
	}
}
