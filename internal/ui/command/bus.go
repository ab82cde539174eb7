package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/logging"
	"github.com/blokas/pisound-config/internal/logging/events"
	"github.com/blokas/pisound-config/internal/menu"
)

// Request encapsulates a callback invocation.
type Request struct {
	View      string
	Label     string
	Callback  menu.Callback
	Control   menu.Control
	Selection *menu.Selection
}

// IdleMsg reports that a callback finished without requesting anything, so
// the controller can accept input again.
type IdleMsg struct {
	Label string
}

// FailedMsg reports a callback that panicked. The mounted view stays active.
type FailedMsg struct {
	Label string
	Err   error
}

// Bus coordinates the execution of menu callbacks.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a callback into a Bubble Tea command while emitting trace
// logs. The returned command always yields a message.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.View, req.Label)
	return func() (msg tea.Msg) {
		if req.Callback == nil {
			events.Command.Skip(req.View, req.Label)
			return IdleMsg{Label: req.Label}
		}
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("%s: %v", req.Label, r)
				logging.Error(err)
				msg = FailedMsg{Label: req.Label, Err: err}
			}
		}()
		sel := req.Selection
		if sel == nil {
			sel = &menu.Selection{}
		}
		cmd := req.Callback(ctx, req.Control, sel)
		if cmd == nil {
			events.Command.NoOp(req.View, req.Label)
			return IdleMsg{Label: req.Label}
		}
		msg = cmd()
		if msg == nil {
			events.Command.NoOp(req.View, req.Label)
			return IdleMsg{Label: req.Label}
		}
		events.Command.Result(req.View, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
