package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blokas/pisound-config/internal/logging/events"
	"github.com/blokas/pisound-config/internal/menu"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.loading || m.screen == nil {
		return nil
	}
	switch m.screen.View.Kind() {
	case menu.KindInputForm:
		return m.handleFormKey(keyMsg)
	case menu.KindScript:
		if cmd, handled := m.handleScriptKey(keyMsg); handled {
			return cmd
		}
	case menu.KindMainMenu, menu.KindListMenu:
		if handled, cmd := m.handleTextInput(keyMsg); handled {
			return cmd
		}
	}
	switch keyMsg.String() {
	case "up", "ctrl+p", "shift+tab":
		m.moveCursorUp()
	case "down", "ctrl+n", "tab":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	case "enter":
		return m.handleEnterKey()
	}
	return nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		m.moveCursorDown()
		return m.syncFormFocus()
	case "shift+tab", "up":
		m.moveCursorUp()
		return m.syncFormFocus()
	case "enter":
		return m.handleEnterKey()
	}
	if m.form == nil || m.screen.Cursor != 0 {
		return nil
	}
	return m.form.Update(msg)
}

func (m *Model) syncFormFocus() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.SetFocused(m.screen.Cursor == 0)
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterChange(before string) {
	if m.screen != nil && before != m.screen.Filter {
		m.filterCursorDirty = true
		m.errMsg = ""
		m.syncViewport()
	}
}

// handleTextInput edits the list filter.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	current := m.screen
	before := current.Filter
	id := current.ID()
	switch msg.String() {
	case "ctrl+u":
		if !current.ClearFilter() {
			return false, nil
		}
		m.noteFilterChange(before)
		events.Filter.Cleared(id)
		return true, nil
	case "ctrl+w":
		if !current.DeleteFilterWord() {
			return false, nil
		}
		m.noteFilterChange(before)
		events.Filter.Backspace(id, current.Filter)
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !current.DeleteFilterRune() {
			return false, nil
		}
		m.noteFilterChange(before)
		events.Filter.Backspace(id, current.Filter)
		return true, nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		current.AppendFilter(string(msg.Runes))
		m.noteFilterChange(before)
		events.Filter.Append(id, current.Filter)
		return true, nil
	case tea.KeySpace:
		if current.Filter == "" {
			return false, nil
		}
		current.AppendFilter(" ")
		m.noteFilterChange(before)
		events.Filter.Append(id, current.Filter)
		return true, nil
	}
	return false, nil
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := render(styles.FilterPrompt, "» ")
	if m.screen == nil || m.screen.Filter == "" {
		return prompt + m.renderFilterCursor(" ") + render(styles.Filter, "type to filter")
	}
	return prompt + render(styles.Filter, m.screen.Filter) + m.renderFilterCursor(" ")
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
