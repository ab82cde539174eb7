package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/logging/events"
	"github.com/blokas/pisound-config/internal/settings"
)

const (
	hotspotTitle       = "Pisound Hotspot Settings"
	hotspotDescription = "Here you can change Pisound Hotspot name, password and channel."
	hotspotRestart     = "The changes will take an effect next time you start the hotspot."
)

// HotspotMenu lists the editable hotspot parameters.
func HotspotMenu(ctx Context, _ Control, _ *Selection) tea.Cmd {
	entries, err := ctx.Settings.ListItems(settings.SectionHotspot)
	if err != nil {
		return Mount(ErrorView(hotspotTitle, err, MainMenu))
	}
	return Mount(ListView{
		Title:       hotspotTitle,
		Description: hotspotDescription,
		Sections:    [][]Item{entryItems(entries)},
		Default:     HotspotParamForm,
		Back:        MainMenu,
		Refresh:     HotspotMenu,
	})
}

// HotspotParamForm edits the selected parameter.
func HotspotParamForm(_ Context, _ Control, sel *Selection) tea.Cmd {
	return Mount(InputView{
		Title:       fmt.Sprintf("Change '%s' value", sel.Key),
		Description: "Enter a new value below:",
		Selection:   sel,
		Submit:      updateHotspot,
		Cancel:      HotspotMenu,
	})
}

// updateHotspot persists a changed value and reminds the operator that the
// hotspot reads it on its next start. Unchanged values skip persistence.
func updateHotspot(ctx Context, control Control, sel *Selection) tea.Cmd {
	if !sel.Changed() {
		events.Settings.Unchanged(string(settings.SectionHotspot), sel.Key)
		return HotspotMenu(ctx, control, sel)
	}
	if err := ctx.Settings.UpdateItem(settings.SectionHotspot, sel.Key, sel.NewValue); err != nil {
		return Mount(ErrorView(hotspotTitle, err, HotspotMenu))
	}
	return Mount(MessageView{
		Body: hotspotRestart,
		Back: HotspotMenu,
	})
}
