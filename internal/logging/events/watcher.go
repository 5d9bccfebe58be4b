package events

import "github.com/atomicstack/cascade-menu/internal/logging"

type WatcherTracer struct{}

var Watcher = WatcherTracer{}

func (WatcherTracer) Reload(path string) {
	logging.Trace("watcher.reload", map[string]interface{}{"path": path})
}

func (WatcherTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("watcher.error", map[string]interface{}{"error": err.Error()})
}
