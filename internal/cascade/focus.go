package cascade

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/cascade-menu/internal/menu"
)

// initialFocusIndex picks the node a freshly opened level focuses: the first
// selected enabled node for the selectedMenu variant, otherwise the first
// enabled node. It returns -1 when every node is disabled.
func initialFocusIndex(t *menu.Tree, v Variant) int {
	first := -1
	for i, n := range t.Nodes() {
		if n.Disabled() {
			continue
		}
		if v == VariantSelectedMenu && n.Selected() {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

func (l *Level) focusInitial() {
	if idx := initialFocusIndex(l.tree, l.cascade.opts.Variant); idx >= 0 {
		l.setFocus(idx)
		return
	}
	l.focusList()
}

func (l *Level) moveFocus(delta int) {
	n := l.tree.Len()
	if n == 0 || delta == 0 {
		return
	}
	start := l.focus
	if start < 0 {
		// with only the list focused the first step lands on an edge
		if delta > 0 {
			start = -1
		} else {
			start = n
		}
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	for k := 1; k <= n; k++ {
		idx := ((start+step*k)%n + n) % n
		if node, ok := l.tree.At(idx); ok && !node.Disabled() {
			l.setFocus(idx)
			return
		}
	}
}

func (l *Level) focusEdge(first bool) {
	nodes := l.tree.Nodes()
	for k := range nodes {
		idx := k
		if !first {
			idx = len(nodes) - 1 - k
		}
		if !nodes[idx].Disabled() {
			l.setFocus(idx)
			return
		}
	}
}

func (l *Level) typeAhead(r rune) {
	query := l.cascade.appendTypeAhead(r)
	idx := matchIndex(l.tree, query, l.focus)
	if idx < 0 && l.cascade.clockless() && len([]rune(query)) > 1 {
		// without a clock a miss starts a fresh buffer
		l.cascade.resetTypeAhead()
		idx = matchIndex(l.tree, l.cascade.appendTypeAhead(r), l.focus)
	}
	if idx >= 0 {
		l.setFocus(idx)
	}
}

// matchIndex finds the enabled node matching query, searching from the
// current focus and wrapping. A single character moves past the current
// node so repeated presses cycle; longer queries keep the current node when
// it still matches. Prefix matches win over fuzzy ones.
func matchIndex(t *menu.Tree, query string, from int) int {
	n := t.Len()
	if n == 0 || query == "" {
		return -1
	}
	start := from
	if start < 0 {
		start = 0
	} else if len([]rune(query)) == 1 {
		start = from + 1
	}
	lower := strings.ToLower(query)
	matchers := []func(string) bool{
		func(label string) bool { return strings.HasPrefix(strings.ToLower(label), lower) },
		func(label string) bool { return fuzzy.MatchFold(query, label) },
	}
	for _, match := range matchers {
		for k := 0; k < n; k++ {
			idx := (start + k) % n
			node, ok := t.At(idx)
			if !ok || node.Disabled() {
				continue
			}
			if match(node.Label()) {
				return idx
			}
		}
	}
	return -1
}
