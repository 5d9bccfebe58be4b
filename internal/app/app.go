package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/cascade-menu/internal/backend"
	"github.com/atomicstack/cascade-menu/internal/cascade"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
	"github.com/atomicstack/cascade-menu/internal/ui"
)

const reloadInterval = 500 * time.Millisecond

// ErrMenu marks failures to load the menu definition at startup.
var ErrMenu = errors.New("menu definition")

// Config describes user-provided application options.
type Config struct {
	Menu          string
	Watch         bool
	Delay         time.Duration
	Variant       string
	RTL           bool
	StartOpen     bool
	AutoFocus     bool
	AutoFocusItem bool
	Title         string
	SocketPath    string
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
}

// Run bootstraps and executes the Bubble Tea program. It returns the output
// of the activated action, empty when the menu was dismissed.
func Run(cfg Config) (string, error) {
	opts, err := cfg.cascadeOptions()
	if err != nil {
		return "", err
	}
	tree, title, err := loadMenu(cfg)
	if err != nil {
		return "", err
	}

	var watcher *backend.Watcher
	if cfg.Watch && cfg.Menu != "" {
		watcher, err = backend.NewWatcher(cfg.Menu, cfg.environment(), reloadInterval)
		if err != nil {
			return "", err
		}
	}

	model, err := ui.NewModel(ui.Config{
		Tree:       tree,
		Title:      title,
		Options:    opts,
		StartOpen:  cfg.StartOpen,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Watcher:    watcher,
	})
	if err != nil {
		if watcher != nil {
			watcher.Stop()
		}
		return "", err
	}
	defer model.Close()

	g, ctx := errgroup.WithContext(context.Background())
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	g.Go(func() error {
		if watcher != nil {
			defer watcher.Stop()
		}
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	if watcher != nil {
		g.Go(func() error {
			watcher.Wait()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		events.App.Exit("", err)
		return "", err
	}
	events.App.Exit(model.Output(), nil)
	return model.Output(), nil
}

func (cfg Config) environment() menu.Environment {
	return menu.Environment{SocketPath: cfg.SocketPath}
}

func (cfg Config) cascadeOptions() (cascade.Options, error) {
	opts := cascade.DefaultOptions()
	variant, err := cascade.ParseVariant(cfg.Variant)
	if err != nil {
		return opts, err
	}
	opts.Variant = variant
	if cfg.Delay >= 0 {
		opts.TransitionDelay = cfg.Delay
	}
	opts.AutoFocus = cfg.AutoFocus
	opts.DisableAutoFocusItem = !cfg.AutoFocusItem
	if cfg.RTL {
		opts.Direction = cascade.RightToLeft
	}
	return opts, nil
}

// loadMenu builds the tree from the definition file, or the demo menu when
// none is configured. An explicit Title wins over the file's title.
func loadMenu(cfg Config) (*menu.Tree, string, error) {
	if cfg.Menu == "" {
		tree, err := menu.Build(menu.DemoEntries())
		if err != nil {
			return nil, "", err
		}
		events.Menu.Loaded("demo", tree.Len())
		return tree, cfg.Title, nil
	}
	def, err := menu.Load(cfg.Menu)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrMenu, err)
	}
	tree, err := def.Tree(cfg.environment())
	if err != nil {
		events.Menu.Invalid(cfg.Menu, err)
		return nil, "", fmt.Errorf("%w: %s: %w", ErrMenu, cfg.Menu, err)
	}
	events.Menu.Loaded(cfg.Menu, tree.Len())
	title := cfg.Title
	if title == "" {
		title = def.Title
	}
	return tree, title, nil
}
