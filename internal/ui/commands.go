package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/logging/events"
	"github.com/blokas/pisound-config/internal/menu"
	"github.com/blokas/pisound-config/internal/ui/command"
)

func (m *Model) handleMountMsg(msg tea.Msg) tea.Cmd {
	mountMsg, ok := msg.(menu.MountMsg)
	if !ok || mountMsg.View == nil {
		return nil
	}
	m.loading = false
	m.pendingLabel = ""
	return m.mount(mountMsg.View)
}

func (m *Model) handleExitMsg(msg tea.Msg) tea.Cmd {
	events.Nav.Exit("exit")
	m.stopScript()
	m.quitting = true
	return tea.Quit
}

func (m *Model) handleRelaunchMsg(msg tea.Msg) tea.Cmd {
	events.Nav.Exit("relaunch")
	m.stopScript()
	m.relaunch = true
	m.quitting = true
	return tea.Quit
}

func (m *Model) handleIdleMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(command.IdleMsg); !ok {
		return nil
	}
	m.loading = false
	m.pendingLabel = ""
	m.refreshing = false
	return nil
}

func (m *Model) handleFailedMsg(msg tea.Msg) tea.Cmd {
	failed, ok := msg.(command.FailedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingLabel = ""
	m.refreshing = false
	if failed.Err != nil {
		m.errMsg = failed.Err.Error()
		events.View.Error(failed.Err)
	}
	return nil
}
