package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Frame        *lipgloss.Style
	Title        *lipgloss.Style
	Body         *lipgloss.Style
	Description  *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	CurrentItem  *lipgloss.Style
	Field        *lipgloss.Style
	FocusField   *lipgloss.Style
	Output       *lipgloss.Style
	Error        *lipgloss.Style
	Loading      *lipgloss.Style
	Footer       *lipgloss.Style
	Love         *lipgloss.Style
	FilterPrompt *lipgloss.Style
	Filter       *lipgloss.Style
	Cursor       *lipgloss.Style
}

var defaultStyles = Styles{
	Frame: ptr(
		lipgloss.NewStyle().Padding(1, 2),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	),
	Body: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	),
	Description: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
	),
	CurrentItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	),
	Field: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
	),
	FocusField: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240")),
	),
	Output: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Love: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
