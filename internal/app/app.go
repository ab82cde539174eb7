package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blokas/pisound-config/internal/backend"
	"github.com/blokas/pisound-config/internal/catalog"
	"github.com/blokas/pisound-config/internal/logging"
	"github.com/blokas/pisound-config/internal/logging/events"
	"github.com/blokas/pisound-config/internal/menu"
	"github.com/blokas/pisound-config/internal/runner"
	"github.com/blokas/pisound-config/internal/settings"
	"github.com/blokas/pisound-config/internal/sysinfo"
	"github.com/blokas/pisound-config/internal/ui"
)

const watchDebounce = 150 * time.Millisecond

// Config describes the paths and options the application runs with.
type Config struct {
	ScriptsDir       string
	ButtonScriptsDir string
	ButtonConfig     string
	HotspotConfig    string
	AsoundConfig     string
	CardsFile        string
	SysfsDir         string
	CatalogPath      string
	Watch            bool
}

// Outcome reports how the program loop ended.
type Outcome struct {
	Relaunch bool
}

// NewContext builds the collaborators the menu callbacks use.
func NewContext(ctx context.Context, cfg Config) (menu.Context, *settings.Files, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return menu.Context{}, nil, fmt.Errorf("load catalog: %w", err)
	}
	files := settings.NewFiles(settings.Paths{
		ButtonConfig:     cfg.ButtonConfig,
		ButtonScriptsDir: cfg.ButtonScriptsDir,
		HotspotConfig:    cfg.HotspotConfig,
		AsoundConfig:     cfg.AsoundConfig,
		CardsFile:        cfg.CardsFile,
	})
	return menu.Context{
		Ctx:              ctx,
		Settings:         files,
		Info:             sysinfo.New(cfg.SysfsDir),
		Catalog:          cat,
		ScriptsDir:       cfg.ScriptsDir,
		ButtonScriptsDir: cfg.ButtonScriptsDir,
	}, files, nil
}

// Run bootstraps and executes the Bubble Tea program. A running script is
// reaped before Run returns.
func Run(cfg Config) (Outcome, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	menuCtx, files, err := NewContext(ctx, cfg)
	if err != nil {
		return Outcome{}, err
	}

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(files.Watched(), watchDebounce)
		if err != nil {
			logging.Error(fmt.Errorf("settings watcher: %w", err))
			watcher = nil
		} else {
			defer func() {
				watcher.Stop()
				watcher.Wait()
			}()
		}
	}

	model := ui.NewModel(menuCtx, menu.MainMenu, ui.Options{Runner: runner.New(), Watcher: watcher})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	model.Shutdown()
	events.App.Stop(model.Relaunch())
	if errors.Is(err, tea.ErrProgramKilled) {
		return Outcome{}, nil
	}
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Relaunch: model.Relaunch()}, nil
}
