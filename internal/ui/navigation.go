package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/logging"
	"github.com/blokas/pisound-config/internal/logging/events"
	"github.com/blokas/pisound-config/internal/menu"
	"github.com/blokas/pisound-config/internal/ui/command"
	uistate "github.com/blokas/pisound-config/internal/ui/state"
)

const (
	saveLabel   = "Save"
	cancelLabel = "Cancel"
)

func isCancelKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlC
}

// cancel ends the loop without running any callback.
func (m *Model) cancel() tea.Cmd {
	events.Nav.Cancel(m.screen.ID())
	m.stopScript()
	m.quitting = true
	return tea.Quit
}

// mount replaces the active view. The previous screen is dropped; only a
// refresh of the same screen keeps its focus and filter.
func (m *Model) mount(view menu.View) tea.Cmd {
	m.stopScript()
	prev := m.screen
	refreshing := m.refreshing
	m.refreshing = false
	m.form = nil
	m.errMsg = ""

	var cmd tea.Cmd
	switch v := view.(type) {
	case menu.ListView:
		m.screen = uistate.NewScreen(v, listControls(v), backControls(v.Back, v.BackText()))
	case menu.InputView:
		if v.Selection == nil {
			v.Selection = &menu.Selection{}
		}
		field := uistate.Control{Label: v.Selection.Key, Kind: menu.ControlField}
		trailing := []uistate.Control{
			{Label: saveLabel, Kind: menu.ControlSave},
			{Label: cancelLabel, Kind: menu.ControlCancel},
		}
		m.screen = uistate.NewScreen(v, []uistate.Control{field}, trailing)
		m.form, cmd = newInputForm(v.Selection.Value, m.cursorMode)
	case menu.MessageView:
		m.screen = uistate.NewScreen(v, nil, backControls(v.Back, v.BackText()))
	case menu.ScriptView:
		m.screen = uistate.NewScreen(v, nil, nil)
		cmd = m.startScript(v)
	default:
		err := fmt.Errorf("cannot mount view %T", view)
		logging.Error(err)
		events.View.Error(err)
		return nil
	}
	if refreshing {
		m.screen.Restore(prev)
	}
	events.Nav.Mount(view.Kind().String(), view.Heading())
	m.syncViewport()
	return cmd
}

func listControls(v menu.ListView) []uistate.Control {
	controls := make([]uistate.Control, 0)
	for section, items := range v.Sections {
		for _, item := range items {
			controls = append(controls, uistate.Control{
				Label:   item.Title,
				Kind:    menu.ControlItem,
				Item:    item,
				Section: section,
			})
		}
	}
	return controls
}

func backControls(back menu.Callback, label string) []uistate.Control {
	if back == nil {
		return nil
	}
	return []uistate.Control{{Label: label, Kind: menu.ControlBack}}
}

// backTarget returns the navigation target of the mounted view.
func (m *Model) backTarget() menu.Callback {
	switch v := m.screen.View.(type) {
	case menu.ListView:
		return v.Back
	case menu.MessageView:
		return v.Back
	case menu.ScriptView:
		return v.Back
	case menu.InputView:
		return v.Cancel
	}
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading || m.screen == nil {
		return nil
	}
	control, ok := m.screen.Focused()
	if !ok {
		return nil
	}
	switch control.Kind {
	case menu.ControlItem:
		callback := control.Item.Callback
		if callback == nil {
			if v, ok := m.screen.View.(menu.ListView); ok {
				callback = v.Default
			}
		}
		return m.activate(callback, control, control.Item.Selection())
	case menu.ControlBack:
		return m.activate(m.backTarget(), control, &menu.Selection{})
	case menu.ControlField, menu.ControlSave:
		return m.submitForm(control)
	case menu.ControlCancel:
		v, ok := m.screen.View.(menu.InputView)
		if !ok {
			return nil
		}
		return m.activate(v.Cancel, control, v.Selection)
	}
	return nil
}

// submitForm writes the field text into NewValue and leaves Value as it was.
func (m *Model) submitForm(control uistate.Control) tea.Cmd {
	v, ok := m.screen.View.(menu.InputView)
	if !ok || m.form == nil {
		return nil
	}
	sel := v.Selection
	sel.NewValue = m.form.Value()
	events.View.Submit(sel.Key, sel.Value, sel.NewValue)
	return m.activate(v.Submit, control, sel)
}

// activate runs callback through the command bus. Input stays blocked until
// the callback's result arrives.
func (m *Model) activate(callback menu.Callback, control uistate.Control, sel *menu.Selection) tea.Cmd {
	view := m.screen.ID()
	m.loading = true
	m.pendingLabel = control.Label
	m.errMsg = ""
	events.Nav.Activate(view, controlName(control.Kind), control.Label)
	return m.bus.Execute(m.ctx, command.Request{
		View:      view,
		Label:     control.Label,
		Callback:  callback,
		Control:   menu.Control{Kind: control.Kind, Label: control.Label},
		Selection: sel,
	})
}

func controlName(kind menu.ControlKind) string {
	switch kind {
	case menu.ControlItem:
		return "item"
	case menu.ControlBack:
		return "back"
	case menu.ControlSave:
		return "save"
	case menu.ControlCancel:
		return "cancel"
	case menu.ControlField:
		return "field"
	case menu.ControlRefresh:
		return "refresh"
	}
	return "unknown"
}

func (m *Model) moveCursorUp() {
	if m.screen == nil {
		return
	}
	if m.screen.MoveCursorUp() {
		events.View.Cursor(m.screen.ID(), m.screen.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorDown() {
	if m.screen == nil {
		return
	}
	if m.screen.MoveCursorDown() {
		events.View.Cursor(m.screen.ID(), m.screen.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorPageUp() {
	if m.screen == nil {
		return
	}
	if m.screen.MoveCursorPageUp(m.maxVisibleItems()) {
		events.View.Cursor(m.screen.ID(), m.screen.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorPageDown() {
	if m.screen == nil {
		return
	}
	if m.screen.MoveCursorPageDown(m.maxVisibleItems()) {
		events.View.Cursor(m.screen.ID(), m.screen.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorHome() {
	if m.screen == nil {
		return
	}
	if m.screen.MoveCursorHome() {
		events.View.Cursor(m.screen.ID(), m.screen.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorEnd() {
	if m.screen == nil {
		return
	}
	if m.screen.MoveCursorEnd() {
		events.View.Cursor(m.screen.ID(), m.screen.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	if m.screen == nil {
		return
	}
	m.screen.EnsureCursorVisible(m.maxVisibleItems())
}
