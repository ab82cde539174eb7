package ui

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldCharLimit caps typing. A longer pre-filled value raises the cap to its
// own length.
const fieldCharLimit = 256

// inputForm is the single text field of an input view.
type inputForm struct {
	input textinput.Model
}

func newInputForm(value string, mode cursor.Mode) (*inputForm, tea.Cmd) {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = max(fieldCharLimit, utf8.RuneCountInString(value))
	ti.SetValue(value)
	ti.CursorEnd()
	if styles.Field != nil {
		ti.TextStyle = styles.Field.Copy()
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = styles.Cursor.Copy()
	}
	modeCmd := ti.Cursor.SetMode(mode)
	f := &inputForm{input: ti}
	return f, tea.Batch(modeCmd, f.input.Focus())
}

// Update forwards msg to the text field.
func (f *inputForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// SetFocused moves keyboard focus to or away from the field.
func (f *inputForm) SetFocused(focused bool) tea.Cmd {
	if !focused {
		f.input.Blur()
		return nil
	}
	if f.input.Focused() {
		return nil
	}
	return f.input.Focus()
}

// Value returns the field text as it is right now.
func (f *inputForm) Value() string {
	return f.input.Value()
}

// SetWidth limits the visible part of the field.
func (f *inputForm) SetWidth(width int) {
	f.input.Width = max(width-len([]rune(f.input.Prompt))-1, 1)
}

// View renders the field.
func (f *inputForm) View() string {
	return f.input.View()
}
