package menu

import "errors"

var (
	// ErrNodeAttached is returned when a node already belongs to a tree.
	ErrNodeAttached = errors.New("menu: node already belongs to a tree")
	// ErrTreeAttached is returned when a tree already hangs under a node.
	ErrTreeAttached = errors.New("menu: tree already attached to a node")
	// ErrTreeRooted is returned when a tree is in use as a cascade root.
	ErrTreeRooted = errors.New("menu: tree is in use as a root")
	// ErrCycle is returned when attaching a tree would make it its own ancestor.
	ErrCycle = errors.New("menu: submenu would create a cycle")
)

// Node is one renderable entry in a menu.
type Node struct {
	label    string
	action   Action
	submenu  *Tree
	disabled bool
	selected bool
	tree     *Tree
}

// NodeOption configures a node at construction time.
type NodeOption func(*Node)

// WithAction sets the activation callback.
func WithAction(action Action) NodeOption {
	return func(n *Node) { n.action = action }
}

// Disabled marks the node as skipped for focus and activation.
func Disabled() NodeOption {
	return func(n *Node) { n.disabled = true }
}

// Selected marks the node as the preferred initial focus target.
func Selected() NodeOption {
	return func(n *Node) { n.selected = true }
}

// NewNode creates a detached node. Submenus are attached with SetSubmenu so
// ownership can be checked.
func NewNode(label string, opts ...NodeOption) *Node {
	n := &Node{label: label}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Node) Label() string    { return n.label }
func (n *Node) Action() Action   { return n.action }
func (n *Node) Submenu() *Tree   { return n.submenu }
func (n *Node) Disabled() bool   { return n.disabled }
func (n *Node) Selected() bool   { return n.selected }
func (n *Node) HasSubmenu() bool { return n.submenu != nil && n.submenu.Len() > 0 }

// Tree returns the tree the node belongs to, or nil when detached.
func (n *Node) Tree() *Tree { return n.tree }

// SetDisabled toggles the disabled flag.
func (n *Node) SetDisabled(disabled bool) { n.disabled = disabled }

// SetSelected toggles the selected flag.
func (n *Node) SetSelected(selected bool) { n.selected = selected }

// SetSubmenu moves t into the node's submenu slot. A tree can only ever have
// one owner: attaching a tree that is already owned, or that would contain
// the node itself, fails. Any previous submenu is detached. Passing nil
// clears the slot.
func (n *Node) SetSubmenu(t *Tree) error {
	if t == n.submenu {
		return nil
	}
	if t != nil {
		if t.owner != nil {
			return ErrTreeAttached
		}
		if t.rooted {
			return ErrTreeRooted
		}
		for anc := n.tree; anc != nil; anc = anc.parentTree() {
			if anc == t {
				return ErrCycle
			}
		}
	}
	if n.submenu != nil {
		n.submenu.owner = nil
	}
	n.submenu = t
	if t != nil {
		t.owner = n
	}
	return nil
}

// Tree is an ordered sequence of nodes. Order defines both the visual order
// and the keyboard navigation order.
type Tree struct {
	nodes  []*Node
	owner  *Node
	rooted bool
}

// NewTree creates a tree from detached nodes.
func NewTree(nodes ...*Node) (*Tree, error) {
	t := &Tree{}
	for _, n := range nodes {
		if err := t.Append(n); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Append adds a detached node to the end of the tree.
func (t *Tree) Append(n *Node) error {
	if n == nil {
		return nil
	}
	if n.tree != nil {
		return ErrNodeAttached
	}
	if n.submenu != nil {
		for anc := t; anc != nil; anc = anc.parentTree() {
			if anc == n.submenu {
				return ErrCycle
			}
		}
	}
	n.tree = t
	t.nodes = append(t.nodes, n)
	return nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// At returns the node at index i. The boolean is false for out-of-range
// indexes, which callers treat as stale references.
func (t *Tree) At(i int) (*Node, bool) {
	if t == nil || i < 0 || i >= len(t.nodes) {
		return nil, false
	}
	return t.nodes[i], true
}

// Nodes returns a copy of the node list.
func (t *Tree) Nodes() []*Node {
	if t == nil {
		return nil
	}
	dup := make([]*Node, len(t.nodes))
	copy(dup, t.nodes)
	return dup
}

// Owner returns the node whose submenu slot holds the tree.
func (t *Tree) Owner() *Node {
	if t == nil {
		return nil
	}
	return t.owner
}

// Detach releases the tree from its owning node so it can be moved elsewhere.
func (t *Tree) Detach() {
	if t == nil || t.owner == nil {
		return
	}
	t.owner.submenu = nil
	t.owner = nil
}

// Claim marks the tree as a cascade root. Only detached trees can be claimed
// and a claimed tree cannot be attached under a node until released.
func (t *Tree) Claim() error {
	if t.owner != nil {
		return ErrTreeAttached
	}
	if t.rooted {
		return ErrTreeRooted
	}
	t.rooted = true
	return nil
}

// Release undoes Claim.
func (t *Tree) Release() {
	if t != nil {
		t.rooted = false
	}
}

// Walk visits every node depth first. path holds the positional indexes from
// this tree down to the node. Returning false stops descent into that node's
// submenu.
func (t *Tree) Walk(fn func(path []int, n *Node) bool) {
	t.walk(nil, fn)
}

func (t *Tree) walk(prefix []int, fn func([]int, *Node) bool) {
	if t == nil {
		return
	}
	for i, n := range t.nodes {
		path := append(append([]int(nil), prefix...), i)
		if !fn(path, n) {
			continue
		}
		n.submenu.walk(path, fn)
	}
}

// Depth returns the number of levels in the tree, counting itself.
func (t *Tree) Depth() int {
	if t.Len() == 0 {
		return 0
	}
	deepest := 0
	for _, n := range t.nodes {
		if d := n.submenu.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

func (t *Tree) parentTree() *Tree {
	if t.owner == nil {
		return nil
	}
	return t.owner.tree
}
