package menu

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Entry is a value description of a node. Build turns entries into fresh
// nodes and trees, so trees built from entries never share subtrees.
type Entry struct {
	Label    string
	Action   Action
	Disabled bool
	Selected bool
	Items    []Entry
}

// Build constructs a tree from entry descriptions.
func Build(entries []Entry) (*Tree, error) {
	t := &Tree{}
	for _, e := range entries {
		opts := []NodeOption{}
		if e.Action != nil {
			opts = append(opts, WithAction(e.Action))
		}
		if e.Disabled {
			opts = append(opts, Disabled())
		}
		if e.Selected {
			opts = append(opts, Selected())
		}
		n := NewNode(e.Label, opts...)
		if len(e.Items) > 0 {
			sub, err := Build(e.Items)
			if err != nil {
				return nil, err
			}
			if err := n.SetSubmenu(sub); err != nil {
				return nil, err
			}
		}
		if err := t.Append(n); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustBuild is Build for static menus; it panics on error.
func MustBuild(entries []Entry) *Tree {
	t, err := Build(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Definition is the on-disk TOML form of a menu.
//
//	title = "main"
//
//	[[item]]
//	label = "Settings"
//	  [[item.item]]
//	  label = "Dark mode"
//	  print = "dark"
type Definition struct {
	Title string           `toml:"title"`
	Items []ItemDefinition `toml:"item"`
}

// ItemDefinition describes one node. At most one of Run, Tmux and Print may
// be set.
type ItemDefinition struct {
	Label    string           `toml:"label"`
	Run      string           `toml:"run"`
	Tmux     string           `toml:"tmux"`
	Print    string           `toml:"print"`
	Disabled bool             `toml:"disabled"`
	Selected bool             `toml:"selected"`
	Items    []ItemDefinition `toml:"item"`
}

// Environment carries the runtime settings actions need.
type Environment struct {
	SocketPath string
}

// Parse decodes a TOML definition.
func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Definition{}, fmt.Errorf("parse menu definition at %d:%d: %w\n%s", row, col, err, derr.String())
		}
		return Definition{}, fmt.Errorf("parse menu definition: %w", err)
	}
	return def, nil
}

// Load reads and decodes a TOML definition file.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read menu definition: %w", err)
	}
	return Parse(data)
}

// Entries validates the definition and converts it to entries with actions
// bound to env.
func (d Definition) Entries(env Environment) ([]Entry, error) {
	if len(d.Items) == 0 {
		return nil, errors.New("menu definition has no items")
	}
	return convertItems(d.Items, env, nil)
}

// Tree validates the definition and builds its tree.
func (d Definition) Tree(env Environment) (*Tree, error) {
	entries, err := d.Entries(env)
	if err != nil {
		return nil, err
	}
	return Build(entries)
}

func convertItems(items []ItemDefinition, env Environment, parents []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		label := strings.TrimSpace(item.Label)
		where := strings.Join(append(append([]string(nil), parents...), fmt.Sprintf("#%d", i+1)), " → ")
		if label == "" {
			return nil, fmt.Errorf("item %s: label is required", where)
		}
		where = strings.Join(append(append([]string(nil), parents...), label), " → ")
		action, err := item.action(env)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", where, err)
		}
		entry := Entry{
			Label:    label,
			Action:   action,
			Disabled: item.Disabled,
			Selected: item.Selected,
		}
		if len(item.Items) > 0 {
			children, err := convertItems(item.Items, env, append(append([]string(nil), parents...), label))
			if err != nil {
				return nil, err
			}
			entry.Items = children
		} else if action == nil && !item.Disabled {
			return nil, fmt.Errorf("item %s: needs an action or nested items", where)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (item ItemDefinition) action(env Environment) (Action, error) {
	set := 0
	for _, v := range []string{item.Run, item.Tmux, item.Print} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("only one of run, tmux and print may be set")
	}
	switch {
	case strings.TrimSpace(item.Run) != "":
		return RunAction(item.Run)
	case strings.TrimSpace(item.Tmux) != "":
		return TmuxAction(env.SocketPath, item.Tmux)
	case item.Print != "":
		return PrintAction(item.Print), nil
	}
	return nil, nil
}

// DemoEntries returns the built-in menu shown when no definition file is
// configured.
func DemoEntries() []Entry {
	leaf := func(label, value string) Entry {
		return Entry{Label: label, Action: PrintAction(value)}
	}
	deeper3 := []Entry{
		leaf("You did it!", "deeper:1"),
		leaf("You did it!", "deeper:2"),
		leaf("You did it!", "deeper:3"),
	}
	deeper2 := []Entry{
		leaf("Not this one", "nope:1"),
		leaf("Not this one", "nope:2"),
		{Label: "Go deeper", Items: deeper3},
		leaf("Not this one", "nope:3"),
	}
	deeper1 := []Entry{
		{Label: "Go deeper", Items: deeper2},
		leaf("Not this one", "nope:4"),
		{Label: "Disabled", Disabled: true},
	}
	autoSave := []Entry{
		leaf("On Exit", "autosave:exit"),
		leaf("On Change", "autosave:change"),
	}
	settings := []Entry{
		leaf("Dark Mode", "settings:dark-mode"),
		leaf("Verbose Logging", "settings:verbose-logging"),
		{Label: "Auto-save", Items: autoSave},
		{Label: "Go deeper", Items: deeper1},
	}
	account := []Entry{
		leaf("Reset password", "account:reset-password"),
		leaf("Change username", "account:change-username"),
	}
	return []Entry{
		{Label: "Settings", Items: settings},
		{Label: "My account", Items: account},
		leaf("Logout", "logout"),
	}
}
