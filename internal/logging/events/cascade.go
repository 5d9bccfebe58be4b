package events

import (
	"time"

	"github.com/atomicstack/cascade-menu/internal/logging"
)

type CascadeTracer struct{}

var Cascade = CascadeTracer{}

func (CascadeTracer) Open(depth, index int, label string) {
	logging.Trace("cascade.open", map[string]interface{}{"depth": depth, "index": index, "label": label})
}

func (CascadeTracer) Close(depth, index int) {
	logging.Trace("cascade.close", map[string]interface{}{"depth": depth, "index": index})
}

func (CascadeTracer) Suppress(depth, index int) {
	logging.Trace("cascade.suppress", map[string]interface{}{"depth": depth, "index": index})
}

func (CascadeTracer) Schedule(depth, index int, delay time.Duration) {
	logging.Trace("cascade.schedule", map[string]interface{}{"depth": depth, "index": index, "delay": delay.String()})
}

func (CascadeTracer) Fire(depth, index int) {
	logging.Trace("cascade.fire", map[string]interface{}{"depth": depth, "index": index})
}

func (CascadeTracer) Stale(depth, index int) {
	logging.Trace("cascade.stale", map[string]interface{}{"depth": depth, "index": index})
}

func (CascadeTracer) Focus(depth, index int) {
	logging.Trace("cascade.focus", map[string]interface{}{"depth": depth, "index": index})
}

func (CascadeTracer) CloseCascade(reason string) {
	logging.Trace("cascade.close-all", map[string]interface{}{"reason": reason})
}

func (CascadeTracer) Activate(path []int, label string) {
	logging.Trace("cascade.activate", map[string]interface{}{"path": path, "label": label})
}
