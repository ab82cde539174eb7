package settings

import (
	"fmt"
	"os"
	"strings"
)

var hotspotKeys = map[string]struct{}{
	"ssid":           {},
	"wpa_passphrase": {},
	"channel":        {},
}

func splitHotspotLine(line string) (string, string, bool) {
	parts := strings.SplitN(strings.TrimSpace(line), "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (f *Files) listHotspot() ([]Entry, error) {
	lines, err := readLines(f.paths.HotspotConfig)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.paths.HotspotConfig, err)
	}
	entries := make([]Entry, 0, len(hotspotKeys))
	for _, line := range lines {
		key, value, ok := splitHotspotLine(line)
		if !ok {
			continue
		}
		if _, known := hotspotKeys[key]; !known {
			continue
		}
		entries = append(entries, Entry{
			Title: key + ": " + value,
			Key:   key,
			Value: value,
		})
	}
	return entries, nil
}

func (f *Files) updateHotspot(key, value string) error {
	if _, known := hotspotKeys[key]; !known {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	path := f.paths.HotspotConfig
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return withLock(path, func() error {
		lines, err := readLines(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		for i, line := range lines {
			current, _, ok := splitHotspotLine(line)
			if !ok || current != key {
				continue
			}
			lines[i] = key + "=" + value
			return writeLines(path, lines)
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	})
}
