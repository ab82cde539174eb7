package menu

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// InfoMessage shows versions, serial number and network details.
func InfoMessage(ctx Context, _ Control, _ *Selection) tea.Cmd {
	if ctx.Info == nil {
		return Mount(ErrorView("Info", errors.New("system information unavailable"), MainMenu))
	}
	info := ctx.Info.Collect(ctx.Background())
	return Mount(MessageView{
		Body: info.Message(),
		Back: MainMenu,
	})
}
