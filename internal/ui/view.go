package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/blokas/pisound-config/internal/menu"
	uistate "github.com/blokas/pisound-config/internal/ui/state"
)

const (
	framePercent    = 80
	framePadX       = 2
	framePadY       = 1
	minContentWidth = 10
	minScriptHeight = 3

	footerLead = "with "
	footerLove = "love"
	footerTail = " by Blokas Community! ESC to EXIT"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == nil {
		return m.frame([]styledLine{{text: "Loading…", style: styles.Loading}})
	}
	width := m.contentWidth()
	lines := make([]styledLine, 0, 24)
	lines = append(lines, styledLine{text: m.screen.View.Heading(), style: styles.Title}, styledLine{})
	lines = append(lines, m.descriptionLines(width)...)

	switch v := m.screen.View.(type) {
	case menu.ListView:
		lines = append(lines, m.controlLines(width)...)
	case menu.InputView:
		lines = append(lines, m.formLines(width)...)
	case menu.MessageView:
		for _, line := range wrapText(v.Body, width) {
			lines = append(lines, styledLine{text: line, style: styles.Body})
		}
		lines = append(lines, styledLine{})
		lines = append(lines, m.controlLines(width)...)
	case menu.ScriptView:
		lines = append(lines, m.scriptLines(width)...)
	}

	if status := m.statusLine(); status.text != "" {
		lines = append(lines, styledLine{}, status)
	}
	if m.showsFilter() {
		lines = append(lines, styledLine{}, styledLine{text: m.filterPrompt(), raw: true})
	}
	lines = append(lines, styledLine{}, styledLine{text: m.footer(), raw: true})

	if m.height > 0 {
		lines = limitHeight(lines, m.height-2*framePadY, width)
	}
	lines = applyWidth(lines, width)
	return m.frame(lines)
}

// frame pads the rendered lines and centres them in the terminal.
func (m *Model) frame(lines []styledLine) string {
	body := renderLines(lines)
	if styles.Frame != nil {
		body = styles.Frame.Render(body)
	}
	if m.width > 0 {
		body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	}
	return body
}

func (m *Model) descriptionLines(width int) []styledLine {
	var description string
	switch v := m.screen.View.(type) {
	case menu.ListView:
		description = v.Description
	case menu.InputView:
		description = v.Description
	}
	if description == "" {
		return nil
	}
	wrapped := wrapText(description, width)
	lines := make([]styledLine, 0, len(wrapped)+1)
	for _, line := range wrapped {
		lines = append(lines, styledLine{text: line, style: styles.Description})
	}
	return append(lines, styledLine{})
}

// controlLines renders the visible window of focusable controls. Sections
// and the trailing controls are separated by blank lines.
func (m *Model) controlLines(width int) []styledLine {
	current := m.screen
	m.syncViewport()
	lines := make([]styledLine, 0, current.Len()+4)
	if len(current.Items) == 0 && current.Filter != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", current.Filter), style: styles.Description}, styledLine{})
	}
	start, end := 0, current.Len()
	if maxItems := m.maxVisibleItems(); maxItems > 0 && end > maxItems {
		start = current.ViewportOffset
		end = min(start+maxItems, current.Len())
	}
	for i := start; i < end; i++ {
		control, _ := current.Control(i)
		if i > start {
			prev, _ := current.Control(i - 1)
			if i == len(current.Items) || (control.Kind == menu.ControlItem && control.Section != prev.Section) {
				lines = append(lines, styledLine{})
			}
		}
		lines = append(lines, buildControlLine(control, i == current.Cursor, width))
	}
	return lines
}

// buildControlLine renders one control. The focused one is padded so its
// highlight spans the content width.
func buildControlLine(control uistate.Control, focused bool, width int) styledLine {
	text := "  " + control.Label
	if control.Kind != menu.ControlItem {
		text = "< " + control.Label + " >"
	}
	style := styles.Item
	if control.Kind == menu.ControlItem && control.Item.Current {
		text += " (current)"
		style = styles.CurrentItem
	}
	if focused {
		style = styles.SelectedItem
		if width > 0 {
			if pad := width - runewidth.StringWidth(text); pad > 0 {
				text += strings.Repeat(" ", pad)
			}
		}
	}
	return styledLine{text: text, style: style}
}

func (m *Model) formLines(width int) []styledLine {
	if m.form == nil {
		return nil
	}
	if width > 0 {
		m.form.SetWidth(width)
	}
	fieldStyle := styles.Field
	if m.screen.Cursor == 0 {
		fieldStyle = styles.FocusField
	}
	field := m.form.View()
	if fieldStyle != nil {
		field = fieldStyle.Render(field)
	}
	lines := []styledLine{{text: field, raw: true}, {}}
	for i := 1; i < m.screen.Len(); i++ {
		control, _ := m.screen.Control(i)
		lines = append(lines, buildControlLine(control, i == m.screen.Cursor, width))
	}
	return lines
}

func (m *Model) scriptLines(width int) []styledLine {
	lines := make([]styledLine, 0, 8)
	if run := m.script; run != nil {
		if m.width > 0 && m.height > 0 {
			for _, line := range strings.Split(run.viewport.View(), "\n") {
				lines = append(lines, styledLine{text: line, raw: true})
			}
		} else {
			for _, line := range strings.Split(strings.TrimSuffix(run.output.String(), "\n"), "\n") {
				lines = append(lines, styledLine{text: line, style: styles.Output})
			}
		}
	}
	if m.screen.Len() > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, m.controlLines(width)...)
	}
	return lines
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.loading && m.pendingLabel != "" && m.screen != nil:
		return styledLine{text: "Please wait…", style: styles.Loading}
	case m.backendLastErr != "":
		return styledLine{text: fmt.Sprintf("Settings watcher: %s", m.backendLastErr), style: styles.Description}
	}
	return styledLine{}
}

func (m *Model) showsFilter() bool {
	if m.screen == nil {
		return false
	}
	if _, ok := m.screen.View.(menu.ListView); !ok {
		return false
	}
	return len(m.screen.Full) > 0
}

func (m *Model) footer() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil {
			return value
		}
		return style.Render(value)
	}
	return render(styles.Footer, footerLead) + render(styles.Love, footerLove) + render(styles.Footer, footerTail)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	m.resizeScript()
	return nil
}

// contentWidth is the width available inside the frame, zero when the
// terminal size is unknown.
func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width*framePercent/100-2*framePadX, minContentWidth)
}

// chromeHeight counts the rows every view spends outside its controls.
func (m *Model) chromeHeight() int {
	used := 2*framePadY + 2 // frame padding, title and its gap
	used += 2               // footer and its gap
	used += 2               // status row and its gap
	if m.screen != nil {
		if d := m.descriptionLines(m.contentWidth()); len(d) > 0 {
			used += len(d)
		}
	}
	if m.showsFilter() {
		used += 2
	}
	return used
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 || m.screen == nil {
		return -1
	}
	used := m.chromeHeight()
	switch v := m.screen.View.(type) {
	case menu.ListView:
		used += max(len(v.Sections)-1, 0) + 1
	case menu.MessageView:
		used += len(wrapText(v.Body, m.contentWidth())) + 1
	case menu.ScriptView:
		used += m.scriptHeight() + 1
	}
	return max(m.height-used, 1)
}

func (m *Model) scriptHeight() int {
	if m.height <= 0 {
		return minScriptHeight
	}
	// Leave room for the back control and its gap.
	return max(m.height-m.chromeHeight()-2, minScriptHeight)
}

func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	return strings.Split(text, "\n")
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}
