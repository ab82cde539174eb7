package settings

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var cardLine = regexp.MustCompile(`^\s*(\d+)\s+\[([^\]]+)\]:\s*(.*)$`)

const (
	pcmCardKey = "defaults.pcm.card"
	ctlCardKey = "defaults.ctl.card"
)

func (f *Files) listCards() ([]Entry, error) {
	lines, err := readLines(f.paths.CardsFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.paths.CardsFile, err)
	}
	active, err := f.activeCard()
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, line := range lines {
		m := cardLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		index := m[1]
		id := strings.TrimSpace(m[2])
		title := id
		if _, desc, ok := strings.Cut(m[3], " - "); ok && strings.TrimSpace(desc) != "" {
			title = strings.TrimSpace(desc)
		}
		entries = append(entries, Entry{
			Title:   title,
			Key:     index,
			Value:   id,
			Current: index == active,
		})
	}
	return entries, nil
}

// activeCard returns the card index configured as default; ALSA falls back
// to card 0 when nothing is configured.
func (f *Files) activeCard() (string, error) {
	lines, err := readLines(f.paths.AsoundConfig)
	if errors.Is(err, os.ErrNotExist) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.paths.AsoundConfig, err)
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == pcmCardKey {
			return fields[1], nil
		}
	}
	return "0", nil
}

func (f *Files) setActiveCard(index string) error {
	if _, err := strconv.Atoi(index); err != nil {
		return fmt.Errorf("%w: card %q", ErrUnknownKey, index)
	}
	cards, err := f.listCards()
	if err != nil {
		return err
	}
	found := false
	for _, card := range cards {
		if card.Key == index {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: card %s", ErrUnknownKey, index)
	}

	path := f.paths.AsoundConfig
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return writeLines(path, []string{pcmCardKey + " " + index, ctlCardKey + " " + index})
	}
	return withLock(path, func() error {
		lines, err := readLines(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		seen := map[string]bool{}
		for i, line := range lines {
			fields := strings.Fields(line)
			if len(fields) != 2 {
				continue
			}
			if fields[0] == pcmCardKey || fields[0] == ctlCardKey {
				lines[i] = fields[0] + " " + index
				seen[fields[0]] = true
			}
		}
		for _, key := range []string{pcmCardKey, ctlCardKey} {
			if !seen[key] {
				lines = append(lines, key+" "+index)
			}
		}
		return writeLines(path, lines)
	})
}
