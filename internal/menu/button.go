package menu

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/settings"
)

const (
	buttonTitle       = "Pisound Button Settings"
	buttonDescription = "Here you can assign different actions to different Button interactions. " +
		"We know it sounds funny.\n\n" +
		"'OTHER_CLICKS' - when 4 and more consecutive clicks are received.\n" +
		"'HOLD_OTHER' - when pressed for 7 and more seconds."
)

// ButtonMenu lists the button interactions and their current actions.
func ButtonMenu(ctx Context, _ Control, _ *Selection) tea.Cmd {
	entries, err := ctx.Settings.ListItems(settings.SectionButton)
	if err != nil {
		return Mount(ErrorView(buttonTitle, err, MainMenu))
	}
	return Mount(ListView{
		Title:       buttonTitle,
		Description: buttonDescription,
		Sections:    [][]Item{entryItems(entries)},
		Default:     ButtonActionMenu,
		Back:        MainMenu,
		Refresh:     ButtonMenu,
	})
}

// ButtonActionMenu lists the scripts that can be bound to the selected
// interaction. The click count limit is a number and gets an input form.
func ButtonActionMenu(ctx Context, control Control, sel *Selection) tea.Cmd {
	if sel.Key == settings.ClickCountLimitKey {
		return Mount(InputView{
			Title:       fmt.Sprintf("Change '%s' value", sel.Key),
			Description: "Enter the number of consecutive clicks to count:",
			Selection:   sel,
			Submit:      updateClickLimit,
			Cancel:      ButtonMenu,
		})
	}
	title := fmt.Sprintf("Button '%s' Action", sel.Key)
	scripts, err := ctx.Settings.ListScripts(ctx.ButtonScriptsDir)
	if err != nil {
		return Mount(ErrorView(title, err, ButtonMenu))
	}
	items := make([]Item, 0, len(scripts))
	for _, script := range scripts {
		items = append(items, Item{
			Title: script.Title,
			Key:   sel.Key,
			Value: script.Path,
		})
	}
	return Mount(ListView{
		Title:       title,
		Description: fmt.Sprintf("To assign your own script, place it inside '%s' directory.", ctx.ButtonScriptsDir),
		Sections:    [][]Item{items},
		Default:     updateButton,
		Back:        ButtonMenu,
	})
}

func updateButton(ctx Context, control Control, sel *Selection) tea.Cmd {
	if err := ctx.Settings.UpdateItem(settings.SectionButton, sel.Key, sel.Value); err != nil {
		return Mount(ErrorView(buttonTitle, err, ButtonMenu))
	}
	return ButtonMenu(ctx, control, sel)
}

func updateClickLimit(ctx Context, control Control, sel *Selection) tea.Cmd {
	value := strings.TrimSpace(sel.NewValue)
	if value == sel.Value {
		return ButtonMenu(ctx, control, sel)
	}
	if n, err := strconv.Atoi(value); err != nil || n < 1 {
		return Mount(MessageView{
			Title: buttonTitle,
			Body:  fmt.Sprintf("%q is not a valid click count. Enter a positive number.", sel.NewValue),
			Back:  ButtonMenu,
		})
	}
	if err := ctx.Settings.UpdateItem(settings.SectionButton, sel.Key, value); err != nil {
		return Mount(ErrorView(buttonTitle, err, ButtonMenu))
	}
	return ButtonMenu(ctx, control, sel)
}
