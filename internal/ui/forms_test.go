package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/menu"
)

type formResult struct {
	submitted *menu.Selection
	cancelled *menu.Selection
}

func formHarness(sel *menu.Selection) (*Harness, *formResult) {
	result := &formResult{}
	root := func(menu.Context, menu.Control, *menu.Selection) tea.Cmd {
		return menu.Mount(menu.InputView{
			Title:       "Change 'ssid' value",
			Description: "Enter a new value below:",
			Selection:   sel,
			Submit: func(_ menu.Context, _ menu.Control, got *menu.Selection) tea.Cmd {
				result.submitted = got
				return nil
			},
			Cancel: func(_ menu.Context, _ menu.Control, got *menu.Selection) tea.Cmd {
				result.cancelled = got
				return nil
			},
		})
	}
	return startHarness(root), result
}

func TestInputFormPrefillsValue(t *testing.T) {
	h, _ := formHarness(&menu.Selection{Key: "ssid", Value: "MyNet"})
	m := h.Model()
	if m.form == nil || m.form.Value() != "MyNet" {
		t.Fatalf("expected field pre-filled with MyNet")
	}
	if m.Screen().Len() != 3 {
		t.Fatalf("expected field, save and cancel, got %d controls", m.Screen().Len())
	}
}

func TestInputFormSubmitsExactFieldText(t *testing.T) {
	h, result := formHarness(&menu.Selection{Key: "ssid", Value: "MyNet"})
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	h.Send(runes("NewNetx"))
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.Send(runes(" "))
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.Send(keyDown)
	if label := focusedLabel(t, h.Model()); label != "Save" {
		t.Fatalf("expected save focused, got %q", label)
	}
	h.Send(keyEnter)
	got := result.submitted
	if got == nil {
		t.Fatalf("expected submit callback")
	}
	if got.Key != "ssid" || got.Value != "MyNet" || got.NewValue != "NewNet" {
		t.Fatalf("expected {ssid MyNet NewNet}, got %+v", got)
	}
	if result.cancelled != nil {
		t.Fatalf("expected no cancel callback")
	}
}

func TestInputFormEnterOnFieldSaves(t *testing.T) {
	h, result := formHarness(&menu.Selection{Key: "channel", Value: "6"})
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.Send(runes("11"))
	h.Send(keyEnter)
	if result.submitted == nil || result.submitted.NewValue != "11" {
		t.Fatalf("expected submit with 11, got %+v", result.submitted)
	}
}

func TestInputFormCancelLeavesSelectionUntouched(t *testing.T) {
	h, result := formHarness(&menu.Selection{Key: "ssid", Value: "MyNet"})
	h.Send(runes("abc"))
	h.Send(keyUp)
	if label := focusedLabel(t, h.Model()); label != "Cancel" {
		t.Fatalf("expected cancel focused, got %q", label)
	}
	h.Send(runes("zzz"))
	h.Send(keyEnter)
	got := result.cancelled
	if got == nil {
		t.Fatalf("expected cancel callback")
	}
	if got.Value != "MyNet" || got.NewValue != "" {
		t.Fatalf("expected untouched selection, got %+v", got)
	}
	if result.submitted != nil {
		t.Fatalf("expected no submit callback")
	}
}

func TestInputFormIgnoresTypingAwayFromField(t *testing.T) {
	h, _ := formHarness(&menu.Selection{Key: "ssid", Value: "MyNet"})
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	h.Send(runes("abc"))
	if v := h.Model().form.Value(); v != "MyNet" {
		t.Fatalf("expected field unchanged, got %q", v)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	h.Send(runes("!"))
	if v := h.Model().form.Value(); v != "MyNet!" {
		t.Fatalf("expected typing after refocus, got %q", v)
	}
}

func TestInputFormKeepsLongPrefilledValue(t *testing.T) {
	long := strings.Repeat("ä", fieldCharLimit+40)
	h, result := formHarness(&menu.Selection{Key: "wpa_passphrase", Value: long})
	if v := h.Model().form.Value(); v != long {
		t.Fatalf("expected %d runes pre-filled, got %d", fieldCharLimit+40, len([]rune(v)))
	}
	h.Send(keyEnter)
	got := result.submitted
	if got == nil {
		t.Fatalf("expected submit callback")
	}
	if got.Changed() {
		t.Fatalf("expected untouched long value to be unchanged")
	}
}
