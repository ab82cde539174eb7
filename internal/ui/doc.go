// Package ui contains the Bubble Tea program that drives the configuration
// tool. The Model type owns the single mounted view and focuses on message
// orchestration, while dedicated helpers own navigation, input, rendering and
// script streaming.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. The cancel key
//     (esc or ctrl+c) is checked first and ends the loop without running any
//     callback.
//   - Every other message is routed through a typed handler registry so each
//     tea.Msg is handled by a focused function (key presses, window size,
//     mount requests, script output, settings changes).
//   - Activating a control hands its callback to the command bus
//     (internal/ui/command). Input is ignored until the callback's result
//     arrives; normally that is a menu.MountMsg which replaces the view.
//
// State ownership:
//   - Focus, filter and scroll offset of the mounted view live in
//     internal/ui/state.Screen. Mounting builds a fresh Screen from the view
//     descriptor, so nothing is cached across navigation.
//   - Views never reference each other; each carries only the callbacks that
//     rebuild its parent.
//
// Script streaming:
//   - A script view starts the process through runner.Runner and reads one
//     line per command, so lines reach the screen in the order the process
//     wrote them. Leaving the view or pressing the cancel key kills the
//     process group; Model.Shutdown waits until it has been reaped.
//
// Backend interactions:
//   - A backend.Watcher reports changes to the settings files; when the
//     mounted menu has a Refresh callback it is rebuilt from live state and
//     keeps its focus.
package ui
