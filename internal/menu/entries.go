package menu

import "github.com/blokas/pisound-config/internal/settings"

// entryItems converts provider entries into menu items without callbacks so
// the list's default callback applies.
func entryItems(entries []settings.Entry) []Item {
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{
			Title:   entry.Title,
			Key:     entry.Key,
			Value:   entry.Value,
			Current: entry.Current,
		})
	}
	return items
}
