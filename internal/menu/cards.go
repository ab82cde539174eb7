package menu

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/settings"
)

const cardsTitle = "Change Default Card"

// CardsMenu lists the ALSA cards and marks the default one.
func CardsMenu(ctx Context, _ Control, _ *Selection) tea.Cmd {
	entries, err := ctx.Settings.ListItems(settings.SectionCards)
	if err != nil {
		return Mount(ErrorView(cardsTitle, err, MainMenu))
	}
	active := "unknown"
	for _, entry := range entries {
		if entry.Current {
			active = entry.Title
			break
		}
	}
	return Mount(ListView{
		Title:       cardsTitle,
		Description: "Currently active card is " + active,
		Sections:    [][]Item{entryItems(entries)},
		Default:     setCard,
		Back:        MainMenu,
		Refresh:     CardsMenu,
	})
}

func setCard(ctx Context, control Control, sel *Selection) tea.Cmd {
	if sel.Current {
		return CardsMenu(ctx, control, sel)
	}
	if err := ctx.Settings.UpdateItem(settings.SectionCards, settings.KeyDefaultCard, sel.Key); err != nil {
		return Mount(ErrorView(cardsTitle, err, CardsMenu))
	}
	return CardsMenu(ctx, control, sel)
}
