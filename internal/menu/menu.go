package menu

import (
	"context"
	"maps"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/catalog"
	"github.com/blokas/pisound-config/internal/settings"
	"github.com/blokas/pisound-config/internal/sysinfo"
)

// Context carries the collaborators callbacks use to build the next view.
type Context struct {
	Ctx              context.Context
	Settings         settings.Provider
	Info             sysinfo.Source
	Catalog          catalog.Catalog
	ScriptsDir       string
	ButtonScriptsDir string
}

// Background returns ctx.Ctx or a background context when unset.
func (c Context) Background() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// ControlKind identifies what kind of on-screen control was activated.
type ControlKind int

const (
	ControlItem ControlKind = iota
	ControlBack
	ControlSave
	ControlCancel
	// ControlField is the text field of an input form; Enter on it saves.
	ControlField
	// ControlRefresh marks a rebuild triggered by changed settings files.
	ControlRefresh
)

// Control describes the control that triggered a callback.
type Control struct {
	Kind  ControlKind
	Label string
}

// Callback handles activation of a control. It normally ends by returning a
// command that mounts exactly one new view.
type Callback func(ctx Context, control Control, sel *Selection) tea.Cmd

// Item is one selectable entry in a list view. Items are built fresh from live
// state each time a view is constructed and are not mutated afterwards.
type Item struct {
	Title    string
	Key      string
	Value    string
	Current  bool
	Callback Callback
	Parent   Callback
	Extra    map[string]string
}

// Selection carries an activated item's fields into the next callback.
// NewValue is written by an input form; Extra holds ad hoc fields such as a
// script path.
type Selection struct {
	Title    string
	Key      string
	Value    string
	NewValue string
	Current  bool
	Callback Callback
	Parent   Callback
	Extra    map[string]string
}

// Selection returns a fresh envelope holding every field of the item.
func (i Item) Selection() *Selection {
	return &Selection{
		Title:    i.Title,
		Key:      i.Key,
		Value:    i.Value,
		Current:  i.Current,
		Callback: i.Callback,
		Parent:   i.Parent,
		Extra:    maps.Clone(i.Extra),
	}
}

// Get returns an extra field.
func (s *Selection) Get(name string) string {
	if s == nil || s.Extra == nil {
		return ""
	}
	return s.Extra[name]
}

// Set stores an extra field.
func (s *Selection) Set(name, value string) {
	if s.Extra == nil {
		s.Extra = make(map[string]string)
	}
	s.Extra[name] = value
}

// Changed reports whether an input form produced a different value.
func (s *Selection) Changed() bool {
	return s.NewValue != s.Value
}

// Kind distinguishes the view variants.
type Kind int

const (
	KindMainMenu Kind = iota
	KindListMenu
	KindInputForm
	KindMessage
	KindScript
)

func (k Kind) String() string {
	switch k {
	case KindMainMenu:
		return "main"
	case KindListMenu:
		return "list"
	case KindInputForm:
		return "input"
	case KindMessage:
		return "message"
	case KindScript:
		return "script"
	}
	return "unknown"
}

// View describes a screen for the navigation controller to mount.
type View interface {
	Kind() Kind
	Heading() string
}

// ListView is a menu of items grouped into sections with an optional trailing
// back control. Main marks the root menu.
type ListView struct {
	Title       string
	Description string
	Sections    [][]Item
	Default     Callback
	Back        Callback
	BackLabel   string
	Main        bool
	// Refresh rebuilds the view from live state when watched settings change.
	Refresh Callback
}

func (v ListView) Kind() Kind {
	if v.Main {
		return KindMainMenu
	}
	return KindListMenu
}

func (v ListView) Heading() string { return v.Title }

// BackText returns the label of the trailing control.
func (v ListView) BackText() string {
	if v.BackLabel != "" {
		return v.BackLabel
	}
	return "Back"
}

// InputView edits a single value. Submit receives Selection with NewValue set;
// Cancel receives it untouched.
type InputView struct {
	Title       string
	Description string
	Selection   *Selection
	Submit      Callback
	Cancel      Callback
}

func (v InputView) Kind() Kind      { return KindInputForm }
func (v InputView) Heading() string { return v.Title }

// MessageView shows static text with an optional back control.
type MessageView struct {
	Title     string
	Body      string
	Back      Callback
	BackLabel string
}

func (v MessageView) Kind() Kind { return KindMessage }

func (v MessageView) Heading() string {
	if v.Title == "" {
		return "Info"
	}
	return v.Title
}

// BackText returns the label of the back control.
func (v MessageView) BackText() string {
	if v.BackLabel != "" {
		return v.BackLabel
	}
	return "Back"
}

// ScriptView runs Path and streams its output. Back is offered once the
// output stream has closed.
type ScriptView struct {
	Title string
	Path  string
	Back  Callback
}

func (v ScriptView) Kind() Kind      { return KindScript }
func (v ScriptView) Heading() string { return v.Title }

// MountMsg asks the navigation controller to replace the active view.
type MountMsg struct {
	View View
}

// ExitMsg ends the program loop.
type ExitMsg struct{}

// RelaunchMsg ends the program loop and asks the entry point to re-execute
// the program image.
type RelaunchMsg struct{}

// Mount returns a command installing view.
func Mount(view View) tea.Cmd {
	return func() tea.Msg { return MountMsg{View: view} }
}

// Exit is a Callback ending the program.
func Exit(Context, Control, *Selection) tea.Cmd {
	return func() tea.Msg { return ExitMsg{} }
}

// Relaunch is a Callback restarting the program.
func Relaunch(Context, Control, *Selection) tea.Cmd {
	return func() tea.Msg { return RelaunchMsg{} }
}
