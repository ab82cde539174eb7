package ui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/backend"
	"github.com/blokas/pisound-config/internal/logging"
	"github.com/blokas/pisound-config/internal/menu"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func newTestModel(root menu.Callback) *Model {
	return NewModel(menu.Context{}, root, Options{CursorMode: cursor.CursorStatic})
}

func startHarness(root menu.Callback) *Harness {
	h := NewHarness(newTestModel(root))
	h.Init()
	return h
}

func mountList(view menu.ListView) menu.Callback {
	return func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
		return menu.Mount(view)
	}
}

func focusedLabel(t *testing.T, m *Model) string {
	t.Helper()
	control, ok := m.Screen().Focused()
	if !ok {
		t.Fatalf("expected a focused control")
	}
	return control.Label
}

func TestInitMountsRootView(t *testing.T) {
	h := startHarness(mountList(menu.ListView{Title: "Root", Main: true, Sections: [][]menu.Item{{{Title: "One"}}}}))
	screen := h.Model().Screen()
	if screen == nil || screen.View.Kind() != menu.KindMainMenu {
		t.Fatalf("expected main menu mounted, got %+v", screen)
	}
	if h.Model().loading {
		t.Fatalf("expected input unblocked after mount")
	}
	if !strings.Contains(h.View(), "One") {
		t.Fatalf("expected item rendered, got\n%s", h.View())
	}
}

func TestDefaultCallbackReceivesItemFields(t *testing.T) {
	var got *menu.Selection
	calls := 0
	c := func(_ menu.Context, _ menu.Control, sel *menu.Selection) tea.Cmd {
		calls++
		got = sel
		return nil
	}
	h := startHarness(mountList(menu.ListView{
		Title: "Items",
		Sections: [][]menu.Item{{
			{Title: "A: foo", Key: "A", Value: "foo"},
			{Title: "B: bar", Key: "B", Value: "bar"},
		}},
		Default: c,
	}))
	h.Send(keyDown)
	h.Send(keyEnter)
	if calls != 1 || got == nil {
		t.Fatalf("expected default callback once, got %d", calls)
	}
	if got.Title != "B: bar" || got.Key != "B" || got.Value != "bar" || got.NewValue != "" {
		t.Fatalf("unexpected selection %+v", got)
	}
	if h.Model().loading {
		t.Fatalf("expected input unblocked after callback returned nothing")
	}
}

func TestItemCallbackOverridesDefault(t *testing.T) {
	var hit string
	record := func(name string) menu.Callback {
		return func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
			hit = name
			return nil
		}
	}
	h := startHarness(mountList(menu.ListView{
		Title:    "Items",
		Sections: [][]menu.Item{{{Title: "Own", Callback: record("own")}}},
		Default:  record("default"),
	}))
	h.Send(keyEnter)
	if hit != "own" {
		t.Fatalf("expected item callback, got %q", hit)
	}
}

func TestCancelKeyQuitsWithoutCallback(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyEsc, {Type: tea.KeyCtrlC}} {
		called := false
		h := startHarness(mountList(menu.ListView{
			Title:    "Root",
			Sections: [][]menu.Item{{{Title: "One"}}},
			Default: func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
				called = true
				return nil
			},
			Back: func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
				called = true
				return nil
			},
		}))
		h.Send(msg)
		if !h.Quit() {
			t.Fatalf("expected %s to quit", msg.String())
		}
		if called {
			t.Fatalf("expected no callback for %s", msg.String())
		}
		if h.Model().Relaunch() {
			t.Fatalf("expected no relaunch request")
		}
	}
}

func TestCancelKeyWorksWhileLoading(t *testing.T) {
	m := newTestModel(nil)
	m.mount(menu.ListView{Title: "Root"})
	m.loading = true
	_, cmd := m.Update(keyEsc)
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestLoadingBlocksInput(t *testing.T) {
	called := false
	m := newTestModel(nil)
	m.mount(menu.ListView{
		Title:    "Root",
		Sections: [][]menu.Item{{{Title: "One"}, {Title: "Two"}}},
		Default: func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
			called = true
			return nil
		},
	})
	m.loading = true
	if _, cmd := m.Update(keyDown); cmd != nil {
		t.Fatalf("expected no command while loading")
	}
	if m.Screen().Cursor != 0 {
		t.Fatalf("expected cursor unchanged while loading, got %d", m.Screen().Cursor)
	}
	if _, cmd := m.Update(keyEnter); cmd != nil {
		t.Fatalf("expected enter ignored while loading")
	}
	if called {
		t.Fatalf("expected no callback while loading")
	}
}

func TestEmptyListShowsBackOnly(t *testing.T) {
	backed := false
	h := startHarness(mountList(menu.ListView{
		Title:       "Empty",
		Description: "Nothing to configure.",
		Back: func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
			backed = true
			return nil
		},
	}))
	if label := focusedLabel(t, h.Model()); label != "Back" {
		t.Fatalf("expected back focused, got %q", label)
	}
	if !strings.Contains(h.View(), "Nothing to configure.") {
		t.Fatalf("expected description rendered, got\n%s", h.View())
	}
	h.Send(keyEnter)
	if !backed {
		t.Fatalf("expected back callback")
	}
}

func TestBackReentryReflectsCurrentState(t *testing.T) {
	entries := []string{"one"}
	var list menu.Callback
	list = func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
		items := make([]menu.Item, 0, len(entries))
		for _, entry := range entries {
			items = append(items, menu.Item{Title: entry})
		}
		return menu.Mount(menu.ListView{
			Title:    "Entries",
			Sections: [][]menu.Item{items},
			Default: func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
				return menu.Mount(menu.MessageView{Body: "details", Back: list})
			},
		})
	}
	h := startHarness(list)
	h.Send(keyEnter)
	if h.Model().Screen().View.Kind() != menu.KindMessage {
		t.Fatalf("expected message view mounted")
	}
	entries = append(entries, "two")
	h.Send(keyEnter)
	screen := h.Model().Screen()
	if screen.View.Kind() != menu.KindListMenu {
		t.Fatalf("expected list view after back")
	}
	if len(screen.Items) != 2 || screen.Items[1].Label != "two" {
		t.Fatalf("expected rebuilt items, got %+v", screen.Items)
	}
}

func TestFilterNarrowsItemsAndKeepsBack(t *testing.T) {
	h := startHarness(mountList(menu.ListView{
		Title:    "Root",
		Sections: [][]menu.Item{{{Title: "Button Settings"}, {Title: "Hotspot Settings"}, {Title: "Show More Info"}}},
		Back:     menu.Exit,
	}))
	h.Send(runes("hotspot"))
	screen := h.Model().Screen()
	if screen.Filter != "hotspot" {
		t.Fatalf("expected filter text, got %q", screen.Filter)
	}
	if len(screen.Items) != 1 || screen.Items[0].Label != "Hotspot Settings" {
		t.Fatalf("expected hotspot item only, got %+v", screen.Items)
	}
	if len(screen.Trailing) != 1 {
		t.Fatalf("expected back control kept, got %+v", screen.Trailing)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	if len(h.Model().Screen().Items) != 3 {
		t.Fatalf("expected filter cleared")
	}
}

func TestMainMenuExitControl(t *testing.T) {
	h := startHarness(mountList(menu.ListView{Title: "Root", Main: true, Back: menu.Exit, BackLabel: "Exit"}))
	if label := focusedLabel(t, h.Model()); label != "Exit" {
		t.Fatalf("expected exit control, got %q", label)
	}
	h.Send(keyEnter)
	if !h.Quit() {
		t.Fatalf("expected exit to quit")
	}
	if h.Model().Relaunch() {
		t.Fatalf("expected plain exit")
	}
}

func TestRelaunchEffect(t *testing.T) {
	h := startHarness(mountList(menu.ListView{
		Title:    "Root",
		Sections: [][]menu.Item{{{Title: "Update", Callback: menu.Relaunch}}},
	}))
	h.Send(keyEnter)
	if !h.Quit() || !h.Model().Relaunch() {
		t.Fatalf("expected quit with relaunch request")
	}
}

func TestPanickingCallbackKeepsView(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "pisound-config.log"))
	t.Cleanup(func() { logging.Configure("") })
	h := startHarness(mountList(menu.ListView{
		Title:    "Root",
		Sections: [][]menu.Item{{{Title: "Broken"}}},
		Default: func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
			panic("boom")
		},
	}))
	h.Send(keyEnter)
	m := h.Model()
	if m.loading {
		t.Fatalf("expected input unblocked after failure")
	}
	if m.Screen().View.Heading() != "Root" {
		t.Fatalf("expected view kept, got %q", m.Screen().View.Heading())
	}
	if !strings.Contains(h.View(), "boom") {
		t.Fatalf("expected error rendered, got\n%s", h.View())
	}
	h.Send(keyEsc)
	if !h.Quit() {
		t.Fatalf("expected cancel key to still quit")
	}
}

func TestBackendEventRefreshesMenuKeepingFocus(t *testing.T) {
	entries := []string{"one", "two"}
	var list menu.Callback
	list = func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
		items := make([]menu.Item, 0, len(entries))
		for _, entry := range entries {
			items = append(items, menu.Item{Title: entry})
		}
		return menu.Mount(menu.ListView{Title: "Entries", Sections: [][]menu.Item{items}, Refresh: list})
	}
	h := startHarness(list)
	h.Send(keyDown)
	entries = []string{"one", "two", "three"}
	h.Send(backendEventMsg{event: backend.Event{Paths: []string{"/etc/pisound.conf"}}})
	screen := h.Model().Screen()
	if len(screen.Items) != 3 {
		t.Fatalf("expected refreshed items, got %+v", screen.Items)
	}
	if screen.Cursor != 1 {
		t.Fatalf("expected cursor kept at 1, got %d", screen.Cursor)
	}
	if h.Model().refreshing {
		t.Fatalf("expected refresh flag cleared")
	}
}

func TestBackendEventIgnoredWithoutRefresh(t *testing.T) {
	m := newTestModel(nil)
	m.mount(menu.MessageView{Body: "hello"})
	if cmd := m.applyBackendEvent(backend.Event{Paths: []string{"x"}}); cmd != nil {
		t.Fatalf("expected no refresh for message view")
	}
}

func TestViewRendersFooterAndCurrentMarker(t *testing.T) {
	h := startHarness(mountList(menu.ListView{
		Title:    "Cards",
		Sections: [][]menu.Item{{{Title: "bcm2835"}, {Title: "pisound", Current: true}}},
		Back:     menu.Exit,
	}))
	view := h.View()
	for _, want := range []string{"Cards", "pisound (current)", "< Back >", "love", "ESC to EXIT"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view\n%s", want, view)
		}
	}
}

func TestWindowSizeLimitsVisibleControls(t *testing.T) {
	items := make([]menu.Item, 30)
	for i := range items {
		items[i] = menu.Item{Title: strings.Repeat("x", i+1)}
	}
	h := startHarness(mountList(menu.ListView{Title: "Long", Sections: [][]menu.Item{items}, Back: menu.Exit}))
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 20})
	m := h.Model()
	if visible := m.maxVisibleItems(); visible <= 0 || visible >= 30 {
		t.Fatalf("expected a bounded window, got %d", visible)
	}
	if lines := strings.Count(h.View(), "\n") + 1; lines > 20 {
		t.Fatalf("expected view to fit 20 rows, got %d", lines)
	}
	h.Send(keyUp)
	if label := focusedLabel(t, m); label != "Back" {
		t.Fatalf("expected wrap to back, got %q", label)
	}
	if !strings.Contains(h.View(), "< Back >") {
		t.Fatalf("expected back visible after scrolling\n%s", h.View())
	}
}
