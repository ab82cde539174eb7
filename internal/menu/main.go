package menu

import tea "github.com/charmbracelet/bubbletea"

const mainTitle = "Pisound Configuration Tool"

// ExtraFile names the script file, relative to the scripts directory, that
// RunScript executes.
const ExtraFile = "file"

// MainMenu mounts the root menu. Its trailing control exits the program.
func MainMenu(Context, Control, *Selection) tea.Cmd {
	return Mount(ListView{
		Title: mainTitle,
		Main:  true,
		Sections: [][]Item{
			{
				{Title: "Change Pisound Button Settings", Callback: ButtonMenu},
				{Title: "Change Pisound Hotspot Settings", Callback: HotspotMenu},
				{Title: "Change Default System Soundcard", Callback: CardsMenu},
			},
			{
				{Title: "Install Additional Software", Callback: InstallMenu},
				{
					Title:    "Update Pisound",
					Callback: RunScript,
					Parent:   Relaunch,
					Extra:    map[string]string{ExtraFile: updateScript},
				},
			},
			{
				{Title: "Show More Info", Callback: InfoMessage},
			},
		},
		Back:      Exit,
		BackLabel: "Exit",
	})
}
