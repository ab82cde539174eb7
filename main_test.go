package main

import (
	"path/filepath"
	"testing"

	"github.com/blokas/pisound-config/internal/app"
	"github.com/blokas/pisound-config/internal/config"
	"github.com/blokas/pisound-config/internal/logging"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestRunningAsRootChecksEffectiveUID(t *testing.T) {
	orig := geteuid
	t.Cleanup(func() { geteuid = orig })

	geteuid = func() int { return 1000 }
	if runningAsRoot() {
		t.Fatalf("expected uid 1000 to be rejected")
	}
	geteuid = func() int { return 0 }
	if !runningAsRoot() {
		t.Fatalf("expected uid 0 to be accepted")
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ScriptsDir:   "/opt/pisound-config/scripts",
			ButtonConfig: "/etc/pisound.conf",
			Watch:        true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"scriptsDir":   "/opt/pisound-config/scripts",
			"buttonConfig": "/etc/pisound.conf",
			"watch":        "true",
		},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["scriptsDir"] != "/opt/pisound-config/scripts" {
		t.Fatalf("expected scripts dir flag, got %v", flagsValue["scriptsDir"])
	}
	if flagsValue["buttonConfig"] != "/etc/pisound.conf" {
		t.Fatalf("expected button config flag, got %v", flagsValue["buttonConfig"])
	}
	if flagsValue["watch"] != "true" {
		t.Fatalf("expected watch flag true, got %v", flagsValue["watch"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestStartupTracePayloadReportsActiveLogPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pisound-config.log")
	logging.Configure(path)
	t.Cleanup(func() { logging.Configure("") })

	payload := startupTracePayload(config.Config{})
	if payload["logPath"] != path {
		t.Fatalf("expected log path %q, got %v", path, payload["logPath"])
	}
}
