// Package backend watches the settings files and reports changes so open
// menus can rebuild themselves from fresh state.
package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blokas/pisound-config/internal/logging/events"
)

const (
	defaultDebounce = 150 * time.Millisecond
	minInterval     = 250 * time.Millisecond
)

// Event reports settings files that changed, or a watch failure.
type Event struct {
	Paths []string
	Err   error
}

// Watcher observes a set of files through their parent directories so that
// editors replacing a file by rename are still noticed.
type Watcher struct {
	debounce time.Duration
	throttle *throttle
	targets  map[string]struct{}

	fs     *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching paths. Paths whose directory does not exist are
// skipped. A zero debounce uses the default.
func NewWatcher(paths []string, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		debounce: debounce,
		throttle: newThrottle(minInterval),
		targets:  make(map[string]struct{}, len(paths)),
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	dirs := map[string]struct{}{}
	for _, path := range paths {
		clean := filepath.Clean(path)
		w.targets[clean] = struct{}{}
		dirs[filepath.Dir(clean)] = struct{}{}
	}
	watching := 0
	for dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			events.Settings.WatchError(err)
			continue
		}
		watching++
	}
	if watching == 0 {
		cancel()
		fsw.Close()
		return nil, errors.New("none of the watched directories exist")
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Events returns the channel of change notifications. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher and releases the underlying notifier.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the event loop has exited and Events is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	defer close(w.events)
	defer w.fs.Close()

	pending := map[string]struct{}{}
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timer, timerC = nil, nil
	}
	defer stopTimer()

	send := func(evt Event) bool {
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			name := filepath.Clean(ev.Name)
			if _, tracked := w.targets[name]; !tracked {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			pending[name] = struct{}{}
			if timer == nil {
				delay := w.throttle.reserve(time.Now())
				if delay < w.debounce {
					delay = w.debounce
				}
				timer = time.NewTimer(delay)
				timerC = timer.C
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			events.Settings.WatchError(err)
			if !send(Event{Err: err}) {
				return
			}
		case <-timerC:
			timer, timerC = nil, nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = map[string]struct{}{}
			events.Settings.Changed(paths)
			if !send(Event{Paths: paths}) {
				return
			}
		}
	}
}
