package menu

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/catalog"
)

const updateScript = "system-update.sh"

// InstallMenu lists the packages of the install catalogue.
func InstallMenu(ctx Context, _ Control, _ *Selection) tea.Cmd {
	items := make([]Item, 0, len(ctx.Catalog.Packages))
	for _, pkg := range ctx.Catalog.Packages {
		items = append(items, Item{
			Title: pkg.Title,
			Extra: map[string]string{ExtraFile: pkg.File},
		})
	}
	title := ctx.Catalog.Title
	if title == "" {
		title = "Install Additional Software"
	}
	return Mount(ListView{
		Title:       title,
		Description: ctx.Catalog.Description,
		Sections:    [][]Item{items},
		Default:     RunScript,
		Back:        MainMenu,
	})
}

// RunScript mounts a script runner for the selection's file. The script
// view returns to the selection's parent, or to the install menu.
func RunScript(ctx Context, _ Control, sel *Selection) tea.Cmd {
	back := sel.Parent
	if back == nil {
		back = InstallMenu
	}
	return Mount(ScriptView{
		Title: sel.Title,
		Path:  catalog.Package{Title: sel.Title, File: sel.Get(ExtraFile)}.ScriptPath(ctx.ScriptsDir),
		Back:  back,
	})
}
