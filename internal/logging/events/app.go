package events

import "github.com/blokas/pisound-config/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(relaunch bool) {
	logging.Trace("app.stop", map[string]interface{}{"relaunch": relaunch})
}

func (AppTracer) Relaunch(executable string, args []string) {
	logging.Trace("app.relaunch", map[string]interface{}{"executable": executable, "args": args})
}
