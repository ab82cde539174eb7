// Package settings reads and persists the pisound configuration files the
// menus edit: button actions, hotspot parameters and the default ALSA card.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gofrs/flock"

	"github.com/blokas/pisound-config/internal/logging/events"
)

// Section names a group of settings shown together in one menu.
type Section string

const (
	SectionButton  Section = "button"
	SectionHotspot Section = "hotspot"
	SectionCards   Section = "cards"
)

// KeyDefaultCard is the key updated in SectionCards; the value is a card index.
const KeyDefaultCard = "default"

var (
	ErrUnknownSection = errors.New("unknown settings section")
	ErrUnknownKey     = errors.New("unknown settings key")
)

// Entry is one displayable setting.
type Entry struct {
	Title   string
	Key     string
	Value   string
	Current bool
}

// Script is an executable action found in a scripts directory.
type Script struct {
	Title string
	Path  string
}

// Provider reads current state for menus and persists single changes.
type Provider interface {
	ListItems(section Section) ([]Entry, error)
	UpdateItem(section Section, key, value string) error
	ListScripts(dir string) ([]Script, error)
}

// Paths locates the files backing each section.
type Paths struct {
	ButtonConfig     string
	ButtonScriptsDir string
	HotspotConfig    string
	AsoundConfig     string
	CardsFile        string
}

// Files is the file-backed Provider.
type Files struct {
	paths Paths
}

// NewFiles returns a Provider backed by the given files.
func NewFiles(paths Paths) *Files {
	return &Files{paths: paths}
}

// Paths returns the configured file locations.
func (f *Files) Paths() Paths {
	return f.paths
}

// Watched lists the files whose modification should refresh open menus.
func (f *Files) Watched() []string {
	var out []string
	for _, p := range []string{f.paths.ButtonConfig, f.paths.HotspotConfig, f.paths.AsoundConfig} {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// ListItems returns the entries for section.
func (f *Files) ListItems(section Section) ([]Entry, error) {
	var (
		entries []Entry
		err     error
	)
	switch section {
	case SectionButton:
		entries, err = f.listButton()
	case SectionHotspot:
		entries, err = f.listHotspot()
	case SectionCards:
		entries, err = f.listCards()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	if err != nil {
		return nil, err
	}
	events.Settings.List(string(section), len(entries))
	return entries, nil
}

// UpdateItem persists value for key within section.
func (f *Files) UpdateItem(section Section, key, value string) error {
	var err error
	switch section {
	case SectionButton:
		err = f.updateButton(key, value)
	case SectionHotspot:
		err = f.updateHotspot(key, value)
	case SectionCards:
		if key != KeyDefaultCard {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		err = f.setActiveCard(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	if err != nil {
		return err
	}
	events.Settings.Update(string(section), key, value)
	return nil
}

// ListScripts returns the *.sh files in dir ordered by file name.
func (f *Files) ListScripts(dir string) ([]Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list scripts in %s: %w", dir, err)
	}
	scripts := make([]Script, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ".sh") {
			continue
		}
		scripts = append(scripts, Script{
			Title: PrettyName(entry.Name()),
			Path:  filepath.Join(dir, entry.Name()),
		})
	}
	return scripts, nil
}

// PrettyName turns a script file name such as "start_puredata.sh" into
// "Start Puredata".
func PrettyName(name string) string {
	base := filepath.Base(name)
	if idx := strings.Index(base, "."); idx >= 0 {
		base = base[:idx]
	}
	base = strings.ReplaceAll(base, "_", " ")
	out := []rune(base)
	startOfWord := true
	for i, r := range out {
		if unicode.IsLetter(r) {
			if startOfWord {
				out[i] = unicode.ToUpper(r)
			} else {
				out[i] = unicode.ToLower(r)
			}
			startOfWord = false
			continue
		}
		startOfWord = !unicode.IsDigit(r)
	}
	return string(out)
}

// withLock runs fn while holding an exclusive lock on the <path>.lock sidecar.
func withLock(path string, fn func() error) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.Unlock()
	return fn()
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func writeLines(path string, lines []string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	return os.WriteFile(path, []byte(content), mode)
}
