package events

import "github.com/blokas/pisound-config/internal/logging"

type SettingsTracer struct{}

var Settings = SettingsTracer{}

func (SettingsTracer) List(section string, count int) {
	logging.Trace("settings.list", map[string]interface{}{"section": section, "count": count})
}

func (SettingsTracer) Update(section, key, value string) {
	logging.Trace("settings.update", map[string]interface{}{"section": section, "key": key, "value": value})
}

func (SettingsTracer) Unchanged(section, key string) {
	logging.Trace("settings.unchanged", map[string]interface{}{"section": section, "key": key})
}

func (SettingsTracer) Changed(paths []string) {
	logging.Trace("settings.changed", map[string]interface{}{"paths": paths})
}

func (SettingsTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Trace("settings.watch-error", map[string]interface{}{"error": err.Error()})
}
