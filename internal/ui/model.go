package ui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/backend"
	"github.com/blokas/pisound-config/internal/menu"
	"github.com/blokas/pisound-config/internal/runner"
	"github.com/blokas/pisound-config/internal/theme"
	"github.com/blokas/pisound-config/internal/ui/command"
	uistate "github.com/blokas/pisound-config/internal/ui/state"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Runner  runner.Runner
	Watcher *backend.Watcher
	// Width and Height pin the layout; zero follows the terminal size.
	Width  int
	Height int
	// CursorMode applies to the filter caret and the form field.
	CursorMode cursor.Mode
}

// Model implements the Bubble Tea model for the configuration tool. It owns
// the single mounted view.
type Model struct {
	ctx    menu.Context
	root   menu.Callback
	runner runner.Runner
	bus    *command.Bus

	screen *uistate.Screen
	form   *inputForm
	script *scriptRun

	loading      bool
	pendingLabel string
	refreshing   bool
	errMsg       string

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	backend        *backend.Watcher
	backendLastErr string

	filterCursor      cursor.Model
	filterCursorDirty bool
	cursorMode        cursor.Mode

	handlers map[reflect.Type]msgHandler

	relaunch bool
	quitting bool
	runSeq   int
	orphans  []*scriptRun
}

// NewModel builds a controller that starts by activating root.
func NewModel(ctx menu.Context, root menu.Callback, opts Options) *Model {
	r := opts.Runner
	if r == nil {
		r = runner.New()
	}
	m := &Model{
		ctx:        ctx,
		root:       root,
		runner:     r,
		bus:        command.New(),
		backend:    opts.Watcher,
		cursorMode: opts.CursorMode,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	c.SetMode(opts.CursorMode)
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.activate(m.root, uistate.Control{Label: "start", Kind: menu.ControlItem}, &menu.Selection{})}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages. The cancel key is checked before
// anything else sees the message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && isCancelKey(key) {
		return m, m.cancel()
	}

	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey && m.form != nil {
		if cmd := m.form.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

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
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(menu.MountMsg{}):     m.handleMountMsg,
		reflect.TypeOf(menu.ExitMsg{}):      m.handleExitMsg,
		reflect.TypeOf(menu.RelaunchMsg{}):  m.handleRelaunchMsg,
		reflect.TypeOf(command.IdleMsg{}):   m.handleIdleMsg,
		reflect.TypeOf(command.FailedMsg{}): m.handleFailedMsg,
		reflect.TypeOf(scriptStartedMsg{}):  m.handleScriptStartedMsg,
		reflect.TypeOf(scriptLineMsg{}):     m.handleScriptLineMsg,
		reflect.TypeOf(scriptClosedMsg{}):   m.handleScriptClosedMsg,
		reflect.TypeOf(scriptExitedMsg{}):   m.handleScriptExitedMsg,
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

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Relaunch reports whether the program loop ended with a relaunch request.
func (m *Model) Relaunch() bool {
	return m.relaunch
}

// Shutdown cancels any running script and waits for its process group to be
// reaped. Call it after the program loop has returned.
func (m *Model) Shutdown() {
	m.stopScript()
	for _, run := range m.orphans {
		run.wait()
	}
	m.orphans = nil
}

// Screen exposes the mounted screen state.
func (m *Model) Screen() *uistate.Screen {
	return m.screen
}

// ScriptOutput returns the text streamed by the mounted script so far.
func (m *Model) ScriptOutput() string {
	if m.script == nil {
		return ""
	}
	return m.script.output.String()
}
