package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
)

const settleDelay = 50 * time.Millisecond

// Event carries a reloaded menu definition or the error that stopped it
// from loading.
type Event struct {
	Path  string
	Title string
	Tree  *menu.Tree
	Err   error
}

// Watcher reloads a menu definition file whenever it changes on disk.
type Watcher struct {
	path     string
	env      menu.Environment
	fs       *fsnotify.Watcher
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher watches path, rebuilding the tree with env after each change.
// Reloads are at least interval apart. The parent directory is watched so
// editors that replace the file on save are picked up too.
func NewWatcher(path string, env menu.Environment, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		env:      env,
		fs:       fsw,
		throttle: newThrottle(interval),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns the channel of reload results. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if !w.settle() || !w.throttle.wait(w.ctx) {
				return
			}
			if !w.emit(w.load()) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			events.Watcher.Error(err)
			if !w.emit(Event{Path: w.path, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// settle waits until the file has been quiet for settleDelay so a save that
// truncates before writing is not read half way.
func (w *Watcher) settle() bool {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()
	for {
		select {
		case <-w.ctx.Done():
			return false
		case ev, ok := <-w.fs.Events:
			if !ok {
				return false
			}
			if w.relevant(ev) {
				timer.Reset(settleDelay)
			}
		case <-timer.C:
			return true
		}
	}
}

func (w *Watcher) load() Event {
	events.Watcher.Reload(w.path)
	def, err := menu.Load(w.path)
	if err != nil {
		events.Menu.Invalid(w.path, err)
		return Event{Path: w.path, Err: err}
	}
	tree, err := def.Tree(w.env)
	if err != nil {
		events.Menu.Invalid(w.path, err)
		return Event{Path: w.path, Title: def.Title, Err: err}
	}
	events.Menu.Loaded(w.path, tree.Len())
	return Event{Path: w.path, Title: def.Title, Tree: tree}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
