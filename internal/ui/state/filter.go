package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/blokas/pisound-config/internal/menu"
)

// SetFilter updates the filter query. Focus jumps to the best match while a
// query is active and returns to where it was once the query is cleared.
func (s *Screen) SetFilter(query string) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(s.Filter)
	s.Filter = query
	if trimmed != "" && prevTrimmed == "" {
		s.LastCursor = s.Cursor
	}
	s.applyFilter()
	switch {
	case trimmed != "":
		s.Cursor = max(BestMatchIndex(s.Items, trimmed), 0)
	case prevTrimmed != "":
		if s.LastCursor >= 0 && s.LastCursor < s.Len() {
			s.Cursor = s.LastCursor
		}
		s.LastCursor = -1
	}
	s.clampCursor()
}

// AppendFilter adds text to the end of the filter.
func (s *Screen) AppendFilter(text string) bool {
	if text == "" {
		return false
	}
	s.SetFilter(s.Filter + text)
	return true
}

// DeleteFilterRune removes the last rune of the filter.
func (s *Screen) DeleteFilterRune() bool {
	runes := []rune(s.Filter)
	if len(runes) == 0 {
		return false
	}
	s.SetFilter(string(runes[:len(runes)-1]))
	return true
}

// DeleteFilterWord removes the last word of the filter.
func (s *Screen) DeleteFilterWord() bool {
	runes := []rune(s.Filter)
	if len(runes) == 0 {
		return false
	}
	i := len(runes)
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	s.SetFilter(string(runes[:i]))
	return true
}

// ClearFilter drops the filter.
func (s *Screen) ClearFilter() bool {
	if s.Filter == "" {
		return false
	}
	s.SetFilter("")
	return true
}

func (s *Screen) applyFilter() {
	s.Items = FilterControls(s.Full, s.Filter)
	if s.ViewportOffset > max(s.Len()-1, 0) {
		s.ViewportOffset = 0
	}
	s.clampCursor()
}

// FilterControls returns the item controls whose labels fuzzily match query,
// in their original order.
func FilterControls(controls []Control, query string) []Control {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneControls(controls)
	}
	labels := make([]string, len(controls))
	for i, c := range controls {
		labels[i] = c.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return nil
	}
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	filtered := make([]Control, 0, len(matches))
	for idx, c := range controls {
		if _, ok := matches[idx]; ok && c.Kind == menu.ControlItem {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// BestMatchIndex returns the index of the control that best matches query:
// an exact label, then a prefix, then a substring, then the closest fuzzy
// match.
func BestMatchIndex(controls []Control, query string) int {
	if len(controls) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, c := range controls {
		if strings.EqualFold(c.Label, trimmed) {
			return i
		}
	}
	for i, c := range controls {
		if strings.HasPrefix(strings.ToLower(c.Label), lower) {
			return i
		}
	}
	for i, c := range controls {
		if strings.Contains(strings.ToLower(c.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(controls))
	for i, c := range controls {
		labels[i] = c.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
