package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/backend"
	"github.com/blokas/pisound-config/internal/logging/events"
	"github.com/blokas/pisound-config/internal/menu"
	uistate "github.com/blokas/pisound-config/internal/ui/state"
)

const refreshLabel = "refresh"

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent rebuilds the mounted menu from live settings when one of
// the watched files changed. Forms and script views are left alone.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		return nil
	}
	m.backendLastErr = ""
	if m.loading || m.screen == nil {
		return nil
	}
	v, ok := m.screen.View.(menu.ListView)
	if !ok || v.Refresh == nil {
		return nil
	}
	events.Nav.Refresh(m.screen.ID())
	cmd := m.activate(v.Refresh, uistate.Control{Label: refreshLabel, Kind: menu.ControlRefresh}, &menu.Selection{})
	m.refreshing = true
	return cmd
}
