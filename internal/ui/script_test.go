package ui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/logging"
	"github.com/blokas/pisound-config/internal/menu"
	"github.com/blokas/pisound-config/internal/runner"
	"github.com/blokas/pisound-config/internal/testutil"
)

func quietLogs(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "pisound-config.log"))
	t.Cleanup(func() { logging.Configure("") })
}

// step runs cmd and feeds its message back into the model.
func step(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		_, next := m.Update(msg)
		return next
	case <-time.After(10 * time.Second):
		t.Fatalf("timeout waiting for command")
	}
	return nil
}

func hasBack(m *Model) bool {
	for _, control := range m.Screen().Trailing {
		if control.Kind == menu.ControlBack {
			return true
		}
	}
	return false
}

func TestScriptStreamsLinesInOrder(t *testing.T) {
	path := testutil.WriteScript(t, "echo step1\nsleep 0.05\necho step2\n")
	backed := false
	m := newTestModel(nil)
	cmd := m.mount(menu.ScriptView{
		Title: "Run",
		Path:  path,
		Back: func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
			backed = true
			return nil
		},
	})

	cmd = step(t, m, cmd) // started
	if m.ScriptOutput() != "" {
		t.Fatalf("expected no output before the first line, got %q", m.ScriptOutput())
	}
	cmd = step(t, m, cmd)
	if got := m.ScriptOutput(); got != "step1\n" {
		t.Fatalf("expected exactly the first line, got %q", got)
	}
	if hasBack(m) {
		t.Fatalf("expected no back control while streaming")
	}
	cmd = step(t, m, cmd)
	if got := m.ScriptOutput(); got != "step1\nstep2\n" {
		t.Fatalf("expected both lines in order, got %q", got)
	}
	cmd = step(t, m, cmd) // stream closed
	if !hasBack(m) {
		t.Fatalf("expected back control after stream close")
	}
	if next := step(t, m, cmd); next != nil {
		t.Fatalf("expected nothing after exit, got a command")
	}
	if got := m.ScriptOutput(); got != "step1\nstep2\n" {
		t.Fatalf("expected final text step1\\nstep2\\n, got %q", got)
	}

	_, cmd = m.Update(keyEnter)
	if cmd == nil {
		t.Fatalf("expected back activation")
	}
	cmd()
	if !backed {
		t.Fatalf("expected back callback")
	}
}

func TestScriptViewThroughHarness(t *testing.T) {
	path := testutil.WriteScript(t, "echo out\necho err 1>&2\nexit 4\n")
	h := startHarness(func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
		return menu.Mount(menu.ScriptView{Title: "Install", Path: path, Back: menu.Exit})
	})
	if got := h.Model().ScriptOutput(); got != "out\nerr\n" {
		t.Fatalf("expected merged output, got %q", got)
	}
	view := h.View()
	if !strings.Contains(view, "out") || !strings.Contains(view, "< Back >") {
		t.Fatalf("expected output and back control\n%s", view)
	}
	if strings.Contains(view, "4") {
		t.Fatalf("expected exit code not shown\n%s", view)
	}
}

func TestScriptLaunchFailureIsShownAsText(t *testing.T) {
	quietLogs(t)
	path := filepath.Join(t.TempDir(), "missing.sh")
	h := startHarness(func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
		return menu.Mount(menu.ScriptView{Title: "Install", Path: path, Back: menu.Exit})
	})
	m := h.Model()
	if !strings.HasPrefix(m.ScriptOutput(), "failed to launch "+path) {
		t.Fatalf("expected launch failure text, got %q", m.ScriptOutput())
	}
	if !hasBack(m) {
		t.Fatalf("expected back control after launch failure")
	}
	h.Send(keyEnter)
	if !h.Quit() {
		t.Fatalf("expected back to run its target")
	}
}

func TestCancelKeyKillsRunningScript(t *testing.T) {
	path := testutil.WriteScript(t, "echo started\nsleep 30\necho finished\n")
	m := newTestModel(nil)
	cmd := m.mount(menu.ScriptView{Title: "Long", Path: path, Back: menu.Exit})
	cmd = step(t, m, cmd)
	step(t, m, cmd)
	if m.ScriptOutput() != "started\n" {
		t.Fatalf("expected first line, got %q", m.ScriptOutput())
	}

	_, quit := m.Update(keyEsc)
	if quit == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}

	done := make(chan struct{})
	go func() {
		m.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected shutdown to reap the script promptly")
	}
}

func TestMountingAnotherViewStopsScript(t *testing.T) {
	path := testutil.WriteScript(t, "echo started\nsleep 30\n")
	m := newTestModel(nil)
	cmd := m.mount(menu.ScriptView{Title: "Long", Path: path, Back: menu.Exit})
	cmd = step(t, m, cmd)
	lineCmd := step(t, m, cmd)

	m.mount(menu.MessageView{Body: "elsewhere"})
	if m.ScriptOutput() != "" {
		t.Fatalf("expected script detached from the view")
	}
	// The pending read finishes once the process group is gone and is dropped.
	if next := step(t, m, lineCmd); next != nil {
		t.Fatalf("expected stale script message ignored")
	}
	m.Shutdown()
}

// gatedRunner holds each launch until release is closed.
type gatedRunner struct {
	entered chan struct{}
	release chan struct{}

	mu     sync.Mutex
	stream *runner.Stream
}

func newGatedRunner() *gatedRunner {
	return &gatedRunner{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedRunner) Run(ctx context.Context, path string) (*runner.Stream, error) {
	close(g.entered)
	<-g.release
	stream, err := runner.New().Run(ctx, path)
	g.mu.Lock()
	g.stream = stream
	g.mu.Unlock()
	return stream, err
}

func (g *gatedRunner) launched() *runner.Stream {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stream
}

func TestShutdownWaitsForLaunchInProgress(t *testing.T) {
	path := testutil.WriteScript(t, "echo started\nsleep 30\n")
	gate := newGatedRunner()
	m := NewModel(menu.Context{}, nil, Options{Runner: gate, CursorMode: cursor.CursorStatic})
	start := m.mount(menu.ScriptView{Title: "Long", Path: path, Back: menu.Exit})
	go start()
	select {
	case <-gate.entered:
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for launch")
	}

	m.Update(keyEsc)
	done := make(chan struct{})
	go func() {
		m.Shutdown()
		close(done)
	}()
	select {
	case <-done:
		t.Fatalf("expected shutdown to wait for the launch in progress")
	case <-time.After(100 * time.Millisecond):
	}

	close(gate.release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected shutdown once the launched process was reaped")
	}
	stream := gate.launched()
	if stream == nil {
		t.Fatalf("expected the process to have been launched")
	}
	if !stream.Killed() {
		t.Fatalf("expected the launched process group to be killed")
	}
}

func TestShutdownAbandonsLaunchNotStarted(t *testing.T) {
	gate := newGatedRunner()
	m := NewModel(menu.Context{}, nil, Options{Runner: gate, CursorMode: cursor.CursorStatic})
	start := m.mount(menu.ScriptView{Title: "Long", Path: "/nonexistent.sh", Back: menu.Exit})
	m.Update(keyEsc)
	m.Shutdown()

	msg, ok := start().(scriptStartedMsg)
	if !ok || msg.err == nil {
		t.Fatalf("expected abandoned launch to report an error, got %#v", msg)
	}
	select {
	case <-gate.entered:
		t.Fatalf("expected runner not called after shutdown")
	default:
	}
}
