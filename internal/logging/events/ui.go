package events

import "github.com/blokas/pisound-config/internal/logging"

type NavTracer struct{}

type ViewTracer struct{}

type FilterTracer struct{}

type CommandTracer struct{}

var (
	Nav     = NavTracer{}
	View    = ViewTracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (NavTracer) Mount(kind, title string) {
	logging.Trace("nav.mount", map[string]interface{}{"kind": kind, "title": title})
}

func (NavTracer) Activate(view, control, title string) {
	logging.Trace("nav.activate", map[string]interface{}{
		"view":    view,
		"control": control,
		"title":   title,
	})
}

func (NavTracer) Cancel(view string) {
	logging.Trace("nav.cancel", map[string]interface{}{"view": view})
}

func (NavTracer) Exit(reason string) {
	logging.Trace("nav.exit", map[string]interface{}{"reason": reason})
}

func (NavTracer) Refresh(view string) {
	logging.Trace("nav.refresh", map[string]interface{}{"view": view})
}

func (ViewTracer) Cursor(view string, cursor int) {
	logging.Trace("view.cursor", map[string]interface{}{"view": view, "cursor": cursor})
}

func (ViewTracer) Submit(key, value, newValue string) {
	logging.Trace("view.form.submit", map[string]interface{}{
		"key":       key,
		"value":     value,
		"new_value": newValue,
	})
}

func (ViewTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("view.error", map[string]interface{}{"error": err.Error()})
}

func (FilterTracer) Cleared(view string) {
	logging.Trace("filter.clear", map[string]interface{}{"view": view})
}

func (FilterTracer) Append(view, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"view": view, "filter": filter})
}

func (FilterTracer) Backspace(view, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"view": view, "filter": filter})
}

func (CommandTracer) Queue(view, label string) {
	logging.Trace("command.queue", map[string]interface{}{"view": view, "label": label})
}

func (CommandTracer) Skip(view, label string) {
	logging.Trace("command.skip", map[string]interface{}{"view": view, "label": label})
}

func (CommandTracer) NoOp(view, label string) {
	logging.Trace("command.noop", map[string]interface{}{"view": view, "label": label})
}

func (CommandTracer) Result(view, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"view": view, "label": label, "msg": msgType})
}
