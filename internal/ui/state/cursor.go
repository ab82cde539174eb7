package state

// MoveCursorUp moves focus to the previous control, wrapping to the last.
func (s *Screen) MoveCursorUp() bool {
	n := s.Len()
	if n == 0 {
		return false
	}
	old := s.Cursor
	if s.Cursor > 0 {
		s.Cursor--
	} else {
		s.Cursor = n - 1
	}
	return old != s.Cursor
}

// MoveCursorDown moves focus to the next control, wrapping to the first.
func (s *Screen) MoveCursorDown() bool {
	n := s.Len()
	if n == 0 {
		return false
	}
	old := s.Cursor
	if s.Cursor < n-1 {
		s.Cursor++
	} else {
		s.Cursor = 0
	}
	return old != s.Cursor
}

// MoveCursorHome moves focus to the first control.
func (s *Screen) MoveCursorHome() bool {
	if s.Len() == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	s.Cursor = 0
	return old != s.Cursor
}

// MoveCursorEnd moves focus to the last control.
func (s *Screen) MoveCursorEnd() bool {
	n := s.Len()
	if n == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	s.Cursor = n - 1
	return old != s.Cursor
}

// MoveCursorPageUp moves focus up by the given page size.
func (s *Screen) MoveCursorPageUp(maxVisible int) bool {
	return s.moveCursorBy(-s.pageSize(maxVisible))
}

// MoveCursorPageDown moves focus down by the given page size.
func (s *Screen) MoveCursorPageDown(maxVisible int) bool {
	return s.moveCursorBy(s.pageSize(maxVisible))
}

func (s *Screen) moveCursorBy(delta int) bool {
	if s.Len() == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	s.Cursor += delta
	s.clampCursor()
	return s.Cursor != old
}

func (s *Screen) pageSize(maxVisible int) int {
	total := s.Len()
	if maxVisible <= 0 || maxVisible > total {
		return max(total, 1)
	}
	return maxVisible
}

// EnsureCursorVisible adjusts the viewport offset so the focused control
// stays within maxVisible rows.
func (s *Screen) EnsureCursorVisible(maxVisible int) {
	n := s.Len()
	if n == 0 {
		s.Cursor = 0
		s.ViewportOffset = 0
		return
	}
	s.clampCursor()
	if maxVisible <= 0 {
		s.ViewportOffset = 0
		return
	}
	maxOffset := max(n-maxVisible, 0)
	s.ViewportOffset = min(max(s.ViewportOffset, 0), maxOffset)
	if s.Cursor < s.ViewportOffset {
		s.ViewportOffset = s.Cursor
	}
	if s.Cursor > s.ViewportOffset+maxVisible-1 {
		s.ViewportOffset = min(s.Cursor-maxVisible+1, maxOffset)
	}
}
