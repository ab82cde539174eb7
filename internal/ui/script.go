package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/logging"
	"github.com/blokas/pisound-config/internal/logging/events"
	"github.com/blokas/pisound-config/internal/menu"
	"github.com/blokas/pisound-config/internal/runner"
)

// scriptRun is one execution streamed into a script view. The stream is set
// from the command goroutine that launched the process.
type scriptRun struct {
	id     int
	path   string
	cancel context.CancelFunc

	mu        sync.Mutex
	stream    *runner.Stream
	launching bool
	abandoned bool
	launched  chan struct{}

	output   strings.Builder
	lines    int
	closed   bool
	exited   bool
	viewport viewport.Model
}

func (r *scriptRun) setStream(stream *runner.Stream) {
	r.mu.Lock()
	r.stream = stream
	r.mu.Unlock()
}

func (r *scriptRun) currentStream() *runner.Stream {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stream
}

// beginLaunch reports whether the start command may launch the process. It
// fails once wait has given up on a run whose command never started.
func (r *scriptRun) beginLaunch() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.abandoned {
		return false
	}
	r.launching = true
	return true
}

// wait blocks until a launched process has been reaped. A launch in progress
// is waited for first.
func (r *scriptRun) wait() {
	r.mu.Lock()
	if !r.launching {
		r.abandoned = true
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	<-r.launched
	if stream := r.currentStream(); stream != nil {
		stream.Wait()
	}
}

type scriptStartedMsg struct {
	id  int
	err error
}

type scriptLineMsg struct {
	id   int
	line string
}

type scriptClosedMsg struct {
	id int
}

type scriptExitedMsg struct {
	id   int
	code int
	err  error
}

func (m *Model) startScript(v menu.ScriptView) tea.Cmd {
	m.runSeq++
	ctx, cancel := context.WithCancel(m.ctx.Background())
	run := &scriptRun{
		id:       m.runSeq,
		path:     v.Path,
		cancel:   cancel,
		launched: make(chan struct{}),
		viewport: viewport.New(max(m.contentWidth(), 1), m.scriptHeight()),
	}
	m.script = run
	events.Script.Start(v.Path)
	r := m.runner
	return func() tea.Msg {
		if !run.beginLaunch() {
			return scriptStartedMsg{id: run.id, err: context.Canceled}
		}
		defer close(run.launched)
		if err := ctx.Err(); err != nil {
			return scriptStartedMsg{id: run.id, err: err}
		}
		stream, err := r.Run(ctx, run.path)
		if err != nil {
			return scriptStartedMsg{id: run.id, err: err}
		}
		run.setStream(stream)
		return scriptStartedMsg{id: run.id}
	}
}

// stopScript cancels the mounted script. A process still running is killed
// and kept until Shutdown reaps it.
func (m *Model) stopScript() {
	run := m.script
	if run == nil {
		return
	}
	m.script = nil
	if !run.exited {
		events.Script.Kill(run.path)
		m.orphans = append(m.orphans, run)
	}
	run.cancel()
}

func (m *Model) activeRun(id int) *scriptRun {
	if m.script == nil || m.script.id != id {
		return nil
	}
	return m.script
}

func waitForScriptLine(run *scriptRun, stream *runner.Stream) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stream.Lines()
		if !ok {
			return scriptClosedMsg{id: run.id}
		}
		return scriptLineMsg{id: run.id, line: line}
	}
}

func waitForScriptExit(run *scriptRun, stream *runner.Stream) tea.Cmd {
	return func() tea.Msg {
		code, err := stream.Wait()
		return scriptExitedMsg{id: run.id, code: code, err: err}
	}
}

func (m *Model) handleScriptStartedMsg(msg tea.Msg) tea.Cmd {
	started, ok := msg.(scriptStartedMsg)
	if !ok {
		return nil
	}
	run := m.activeRun(started.id)
	if run == nil {
		return nil
	}
	if started.err != nil {
		events.Script.LaunchFailed(run.path, started.err)
		logging.Error(fmt.Errorf("launch %s: %w", run.path, started.err))
		m.appendScriptText(run, fmt.Sprintf("failed to launch %s: %v\n", run.path, started.err))
		run.exited = true
		m.finishScript(run)
		return nil
	}
	return waitForScriptLine(run, run.currentStream())
}

func (m *Model) handleScriptLineMsg(msg tea.Msg) tea.Cmd {
	lineMsg, ok := msg.(scriptLineMsg)
	if !ok {
		return nil
	}
	run := m.activeRun(lineMsg.id)
	if run == nil {
		return nil
	}
	events.Script.Line(run.path, run.lines)
	run.lines++
	m.appendScriptText(run, lineMsg.line+"\n")
	return waitForScriptLine(run, run.currentStream())
}

func (m *Model) handleScriptClosedMsg(msg tea.Msg) tea.Cmd {
	closed, ok := msg.(scriptClosedMsg)
	if !ok {
		return nil
	}
	run := m.activeRun(closed.id)
	if run == nil {
		return nil
	}
	m.finishScript(run)
	return waitForScriptExit(run, run.currentStream())
}

func (m *Model) handleScriptExitedMsg(msg tea.Msg) tea.Cmd {
	exited, ok := msg.(scriptExitedMsg)
	if !ok {
		return nil
	}
	run := m.activeRun(exited.id)
	if run == nil {
		return nil
	}
	run.exited = true
	events.Script.Exit(run.path, exited.code, run.lines)
	if exited.err != nil {
		logging.Error(fmt.Errorf("wait %s: %w", run.path, exited.err))
	}
	return nil
}

func (m *Model) appendScriptText(run *scriptRun, text string) {
	run.output.WriteString(text)
	run.viewport.SetContent(run.output.String())
	run.viewport.GotoBottom()
}

// finishScript offers the back control once the output stream has closed.
func (m *Model) finishScript(run *scriptRun) {
	if run.closed {
		return
	}
	run.closed = true
	v, ok := m.screen.View.(menu.ScriptView)
	if !ok {
		return
	}
	m.screen.SetTrailing(backControls(v.Back, "Back"))
	m.screen.Cursor = 0
}

// handleScriptKey scrolls the output. Enter reaches the back control.
func (m *Model) handleScriptKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.script == nil {
		return nil, false
	}
	switch msg.String() {
	case "up", "down", "pgup", "pgdown", "k", "j", "b", "f", "u", "d":
		var cmd tea.Cmd
		m.script.viewport, cmd = m.script.viewport.Update(msg)
		return cmd, true
	case "home":
		m.script.viewport.GotoTop()
		return nil, true
	case "end":
		m.script.viewport.GotoBottom()
		return nil, true
	}
	return nil, false
}

func (m *Model) resizeScript() {
	if m.script == nil {
		return
	}
	m.script.viewport.Width = max(m.contentWidth(), 1)
	m.script.viewport.Height = m.scriptHeight()
	m.script.viewport.GotoBottom()
}
