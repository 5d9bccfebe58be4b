package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cascade-menu/internal/backend"
	"github.com/atomicstack/cascade-menu/internal/cascade"
	"github.com/atomicstack/cascade-menu/internal/menu"
	"github.com/atomicstack/cascade-menu/internal/theme"
	"github.com/atomicstack/cascade-menu/internal/ui/command"
)

const (
	defaultTitle  = "Menu"
	defaultWidth  = 80
	defaultHeight = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config describes how the model is built.
type Config struct {
	Tree  *menu.Tree
	Title string
	// Options seeds the cascade. Anchor, Measurer, OnClose and OnActivate
	// are owned by the model and overwritten.
	Options    cascade.Options
	StartOpen  bool
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Watcher    *backend.Watcher
	// Scheduler replaces the tea.Tick based timers, typically with a
	// cascade.ManualScheduler in tests.
	Scheduler cascade.Scheduler
}

// Model implements the Bubble Tea model for the cascading menu.
type Model struct {
	cascade   *cascade.Cascade
	title     string
	direction cascade.Direction

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	ticks     *tickScheduler
	scheduler cascade.Scheduler
	watcher   *backend.Watcher
	bus       *command.Bus
	keys      keyMap
	help      help.Model
	pending   []tea.Cmd

	running    bool
	errMsg     string
	infoMsg    string
	infoExpire time.Time
	lastClose  cascade.CloseReason
	output     string

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model and the cascade it drives.
func NewModel(cfg Config) (*Model, error) {
	tree := cfg.Tree
	if tree == nil {
		tree = menu.MustBuild(menu.DemoEntries())
	}
	title := cfg.Title
	if title == "" {
		title = defaultTitle
	}
	m := &Model{
		title:      title,
		direction:  cfg.Options.Direction,
		width:      defaultWidth,
		height:     defaultHeight,
		showFooter: cfg.ShowFooter,
		verbose:    cfg.Verbose,
		watcher:    cfg.Watcher,
		bus:        command.New(),
		keys:       newKeyMap(cfg.Options.Direction),
		help:       help.New(),
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	m.scheduler = cfg.Scheduler
	if m.scheduler == nil {
		m.ticks = newTickScheduler()
		m.scheduler = m.ticks
	}

	opts := cfg.Options
	opts.Anchor = anchorElement{m: m}
	opts.Measurer = m
	opts.Scheduler = m.scheduler
	opts.OnClose = m.onCascadeClose
	opts.OnActivate = m.onActivate
	opts.Open = cfg.StartOpen
	c, err := cascade.New(tree, opts)
	if err != nil {
		return nil, err
	}
	m.cascade = c
	m.registerHandlers()
	return m, nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForBackendEvent(m.watcher)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(timerFiredMsg{}):     m.handleTimerFiredMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate folds in commands queued by cascade callbacks and timers
// scheduled during this update.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.pending...)
	m.pending = nil
	if m.ticks != nil {
		cmds = append(cmds, m.ticks.drain()...)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Cascade exposes the menu state machine.
func (m *Model) Cascade() *cascade.Cascade {
	return m.cascade
}

// Output is the value printed by the activated action, if any.
func (m *Model) Output() string {
	return m.output
}

// LastCloseReason is why the menu last closed itself.
func (m *Model) LastCloseReason() cascade.CloseReason {
	return m.lastClose
}

// Err is the message of the last failed action or reload.
func (m *Model) Err() string {
	return m.errMsg
}

// Close releases the cascade's tree.
func (m *Model) Close() {
	m.cascade.Dispose()
}
