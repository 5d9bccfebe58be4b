package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Context carries the identity of the node an action was activated from.
type Context struct {
	Path   []int
	Labels []string
}

// Label returns the label of the activated node.
func (c Context) Label() string {
	if len(c.Labels) == 0 {
		return ""
	}
	return c.Labels[len(c.Labels)-1]
}

// Breadcrumb joins the labels from the root down to the activated node.
func (c Context) Breadcrumb() string {
	return strings.Join(c.Labels, " → ")
}

// Action runs when a node is activated. The returned command is executed by
// the host program; it may be nil.
type Action func(Context) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info   string
	Output string
	Err    error
}
