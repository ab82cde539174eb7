package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/blokas/pisound-config/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envScriptsDir       = "CFG_SCRIPTS_DIR"
	envButtonScriptsDir = "BTN_SCRIPTS"
	envButtonConfig     = "BTN_CFG"
	envHotspotConfig    = "HS_CFG"
	envAsoundConfig     = "ASOUND_CFG"
	envSysfsDir         = "PISOUND_SYSFS"
	envCatalog          = "PISOUND_CONFIG_CATALOG"
	envWatch            = "PISOUND_CONFIG_WATCH"
	envTrace            = "PISOUND_CONFIG_TRACE"
	envLogFile          = "PISOUND_CONFIG_LOG_FILE"
)

const (
	defaultButtonScriptsDir = "/usr/local/pisound/scripts/pisound-btn"
	defaultButtonConfig     = "/etc/pisound.conf"
	defaultHotspotConfig    = "/usr/local/pisound/scripts/pisound-btn/hostapd.conf"
	defaultAsoundConfig     = "/etc/asound.conf"
	defaultSysfsDir         = "/sys/kernel/pisound"
	defaultCardsFile        = "/proc/asound/cards"
)

// executable is swapped in tests so the default scripts directory is stable.
var executable = os.Executable

// Load parses configuration from the environment. The tool takes no flags.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	if len(args) > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
	}
	env := parseEnv(environ)

	scripts := envOrDefault(env, envScriptsDir, defaultScriptsDir())
	btnScripts := envOrDefault(env, envButtonScriptsDir, defaultButtonScriptsDir)
	btnConfig := envOrDefault(env, envButtonConfig, defaultButtonConfig)
	hsConfig := envOrDefault(env, envHotspotConfig, defaultHotspotConfig)
	asound := envOrDefault(env, envAsoundConfig, defaultAsoundConfig)
	sysfs := envOrDefault(env, envSysfsDir, defaultSysfsDir)
	catalog := envOrDefault(env, envCatalog, "")
	watch := envOrBool(env, envWatch, true)
	trace := envOrBool(env, envTrace, false)
	logFile := envOrDefault(env, envLogFile, defaultLogFile())

	if strings.TrimSpace(scripts) == "" {
		return Config{}, fmt.Errorf("%s must not be empty", envScriptsDir)
	}
	if strings.TrimSpace(btnConfig) == "" {
		return Config{}, fmt.Errorf("%s must not be empty", envButtonConfig)
	}

	cfg := Config{
		App: app.Config{
			ScriptsDir:       scripts,
			ButtonScriptsDir: btnScripts,
			ButtonConfig:     btnConfig,
			HotspotConfig:    hsConfig,
			AsoundConfig:     asound,
			CardsFile:        defaultCardsFile,
			SysfsDir:         sysfs,
			CatalogPath:      catalog,
			Watch:            watch,
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    trace,
		},
		Flags: map[string]string{
			"scriptsDir":       scripts,
			"buttonScriptsDir": btnScripts,
			"buttonConfig":     btnConfig,
			"hotspotConfig":    hsConfig,
			"asoundConfig":     asound,
			"sysfsDir":         sysfs,
			"catalog":          catalog,
			"watch":            strconv.FormatBool(watch),
			"trace":            strconv.FormatBool(trace),
			"logFile":          logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func defaultScriptsDir() string {
	exe, err := executable()
	if err != nil {
		return "scripts"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "scripts")
}

func defaultLogFile() string {
	return filepath.Join(xdg.StateHome, "pisound-config", "pisound-config.log")
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if info, err := os.Stat(cfg.App.ScriptsDir); err == nil && !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %s", envScriptsDir, cfg.App.ScriptsDir)
	}
	return nil
}
