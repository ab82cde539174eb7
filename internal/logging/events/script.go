package events

import "github.com/blokas/pisound-config/internal/logging"

type ScriptTracer struct{}

var Script = ScriptTracer{}

func (ScriptTracer) Start(path string) {
	logging.Trace("script.start", map[string]interface{}{"path": path})
}

func (ScriptTracer) LaunchFailed(path string, err error) {
	logging.Trace("script.launch-failed", map[string]interface{}{"path": path, "error": err.Error()})
}

func (ScriptTracer) Line(path string, index int) {
	logging.Trace("script.line", map[string]interface{}{"path": path, "index": index})
}

// Exit records the exit status. It is not shown to the operator.
func (ScriptTracer) Exit(path string, code int, lines int) {
	logging.Trace("script.exit", map[string]interface{}{"path": path, "code": code, "lines": lines})
}

func (ScriptTracer) Kill(path string) {
	logging.Trace("script.kill", map[string]interface{}{"path": path})
}
