package events

import "github.com/atomicstack/cascade-menu/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Loaded(source string, items int) {
	logging.Trace("menu.loaded", map[string]interface{}{"source": source, "items": items})
}

func (MenuTracer) Invalid(source string, err error) {
	if err == nil {
		return
	}
	logging.Trace("menu.invalid", map[string]interface{}{"source": source, "error": err.Error()})
}
