package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ClickCountLimitKey holds a number rather than a script path.
const ClickCountLimitKey = "CLICK_COUNT_LIMIT"

const (
	doNothingScript      = "do_nothing.sh"
	defaultClickCount    = "8"
	buttonValueSeparator = "\t"
	notSetName           = "Not Set"
)

// buttonKeys are the interactions pisound-btn understands.
var buttonKeys = []string{
	"CLICK_1",
	"CLICK_2",
	"CLICK_3",
	"CLICK_OTHER",
	"HOLD_1S",
	"HOLD_3S",
	"HOLD_5S",
	"HOLD_OTHER",
	ClickCountLimitKey,
}

func (f *Files) buttonDefault(key string) string {
	if key == ClickCountLimitKey {
		return defaultClickCount
	}
	return filepath.Join(f.paths.ButtonScriptsDir, doNothingScript)
}

// prepareButton creates the button config when missing and appends any
// interaction it does not cover yet.
func (f *Files) prepareButton() error {
	path := f.paths.ButtonConfig
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		lines := make([]string, 0, len(buttonKeys))
		for _, key := range buttonKeys {
			lines = append(lines, key+buttonValueSeparator+f.buttonDefault(key))
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := writeLines(path, lines); err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		return nil
	}
	return withLock(path, func() error {
		lines, err := readLines(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		present := make(map[string]struct{}, len(lines))
		for _, line := range lines {
			if fields := strings.Fields(line); len(fields) > 0 {
				present[fields[0]] = struct{}{}
			}
		}
		missing := false
		for _, key := range buttonKeys {
			if _, ok := present[key]; ok {
				continue
			}
			lines = append(lines, key+buttonValueSeparator+f.buttonDefault(key))
			missing = true
		}
		if !missing {
			return nil
		}
		sort.Strings(lines)
		return writeLines(path, lines)
	})
}

func (f *Files) listButton() ([]Entry, error) {
	if err := f.prepareButton(); err != nil {
		return nil, err
	}
	lines, err := readLines(f.paths.ButtonConfig)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.paths.ButtonConfig, err)
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		key := fields[0]
		if key == "UP" || key == "DOWN" {
			continue
		}
		name := notSetName
		if len(fields) > 1 {
			name = PrettyName(fields[1])
		}
		entries = append(entries, Entry{
			Title: key + ": " + name,
			Key:   key,
			Value: name,
		})
	}
	return entries, nil
}

func (f *Files) updateButton(key, value string) error {
	path := f.paths.ButtonConfig
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return withLock(path, func() error {
		lines, err := readLines(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		for i, line := range lines {
			fields := strings.Fields(line)
			if len(fields) == 0 || fields[0] != key {
				continue
			}
			lines[i] = key + buttonValueSeparator + value
			return writeLines(path, lines)
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	})
}
