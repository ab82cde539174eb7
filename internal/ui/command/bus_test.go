package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/menu"
)

func TestExecutePassesSelection(t *testing.T) {
	var got *menu.Selection
	var control menu.Control
	cb := func(_ menu.Context, c menu.Control, sel *menu.Selection) tea.Cmd {
		got = sel
		control = c
		return menu.Mount(menu.MessageView{Body: "done"})
	}
	sel := &menu.Selection{Key: "B", Value: "bar"}
	msg := New().Execute(menu.Context{}, Request{
		Label:     "B: bar",
		Callback:  cb,
		Control:   menu.Control{Kind: menu.ControlItem, Label: "B: bar"},
		Selection: sel,
	})()
	if _, ok := msg.(menu.MountMsg); !ok {
		t.Fatalf("expected MountMsg, got %T", msg)
	}
	if got != sel || control.Label != "B: bar" {
		t.Fatalf("expected selection and control forwarded, got %+v %+v", got, control)
	}
}

func TestExecuteWithoutCallbackIsIdle(t *testing.T) {
	msg := New().Execute(menu.Context{}, Request{Label: "x"})()
	if _, ok := msg.(IdleMsg); !ok {
		t.Fatalf("expected IdleMsg, got %T", msg)
	}
}

func TestExecuteNilCommandIsIdle(t *testing.T) {
	cb := func(menu.Context, menu.Control, *menu.Selection) tea.Cmd { return nil }
	msg := New().Execute(menu.Context{}, Request{Label: "x", Callback: cb})()
	if _, ok := msg.(IdleMsg); !ok {
		t.Fatalf("expected IdleMsg, got %T", msg)
	}
}

func TestExecuteDefaultsSelection(t *testing.T) {
	var got *menu.Selection
	cb := func(_ menu.Context, _ menu.Control, sel *menu.Selection) tea.Cmd {
		got = sel
		return nil
	}
	New().Execute(menu.Context{}, Request{Label: "x", Callback: cb})()
	if got == nil {
		t.Fatalf("expected an empty selection, got nil")
	}
}

func TestExecuteRecoversPanics(t *testing.T) {
	cb := func(menu.Context, menu.Control, *menu.Selection) tea.Cmd { panic("boom") }
	msg := New().Execute(menu.Context{}, Request{Label: "x", Callback: cb})()
	failed, ok := msg.(FailedMsg)
	if !ok || failed.Err == nil {
		t.Fatalf("expected FailedMsg, got %#v", msg)
	}
}
