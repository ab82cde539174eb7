// Package state holds the interactive state of the mounted view.
package state

import "github.com/blokas/pisound-config/internal/menu"

// Control is one focusable element of a mounted screen. Section separates
// groups of items visually.
type Control struct {
	Label   string
	Kind    menu.ControlKind
	Item    menu.Item
	Section int
}

// Screen tracks focus, filter and scroll offset for the mounted view. Items
// are the filterable entries; Trailing controls (back, save, cancel) follow
// them and are never filtered out.
type Screen struct {
	View           menu.View
	Items          []Control
	Full           []Control
	Trailing       []Control
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewScreen builds fresh state for view with focus on the first control.
func NewScreen(view menu.View, items, trailing []Control) *Screen {
	s := &Screen{
		View:       view,
		Full:       CloneControls(items),
		Trailing:   CloneControls(trailing),
		LastCursor: -1,
	}
	s.applyFilter()
	return s
}

// ID identifies the screen by view kind and heading.
func (s *Screen) ID() string {
	if s == nil || s.View == nil {
		return ""
	}
	return s.View.Kind().String() + ":" + s.View.Heading()
}

// Len returns the number of focusable controls.
func (s *Screen) Len() int {
	return len(s.Items) + len(s.Trailing)
}

// Control returns the control at index i across items and trailing controls.
func (s *Screen) Control(i int) (Control, bool) {
	if i < 0 || i >= s.Len() {
		return Control{}, false
	}
	if i < len(s.Items) {
		return s.Items[i], true
	}
	return s.Trailing[i-len(s.Items)], true
}

// Focused returns the control under the cursor.
func (s *Screen) Focused() (Control, bool) {
	return s.Control(s.Cursor)
}

// SetTrailing replaces the trailing controls, keeping focus in range.
func (s *Screen) SetTrailing(controls []Control) {
	s.Trailing = CloneControls(controls)
	s.clampCursor()
}

// Restore carries cursor, filter and scroll position over from prev when it
// showed the same screen.
func (s *Screen) Restore(prev *Screen) {
	if prev == nil || prev.ID() != s.ID() {
		return
	}
	if prev.Filter != "" {
		s.Filter = prev.Filter
		s.applyFilter()
	}
	s.Cursor = prev.Cursor
	s.ViewportOffset = prev.ViewportOffset
	s.clampCursor()
}

func (s *Screen) clampCursor() {
	n := s.Len()
	if n == 0 {
		s.Cursor = 0
		return
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= n {
		s.Cursor = n - 1
	}
}
