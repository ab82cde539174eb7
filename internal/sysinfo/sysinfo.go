// Package sysinfo collects the board and network facts shown by the info
// screen.
package sysinfo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/blokas/pisound-config/internal/format/table"
)

const (
	notFound     = "Pisound Not Found"
	notInstalled = "Not Installed"
	unknown      = "Unknown"
	commandLimit = 3 * time.Second
)

// Info is a snapshot of the values displayed on the info screen.
type Info struct {
	ButtonVersion   string
	ServerVersion   string
	FirmwareVersion string
	Serial          string
	HardwareVersion string
	IPAddress       string
	Hostname        string
}

// Message renders the info screen body.
func (i Info) Message() string {
	return table.Pairs([][2]string{
		{"Button Version:", i.ButtonVersion},
		{"Server Version:", i.ServerVersion},
		{"Firmware Version:", i.FirmwareVersion},
		{"Serial Number:", i.Serial},
		{"IP Address:", i.IPAddress},
		{"Hostname:", i.Hostname},
	})
}

// Source produces an Info snapshot.
type Source interface {
	Collect(ctx context.Context) Info
}

// Collector reads pisound sysfs attributes and queries helper binaries.
type Collector struct {
	SysfsDir string

	lookPath func(string) (string, error)
	output   func(ctx context.Context, name string, args ...string) (string, error)
	hostname func() (string, error)
}

// New returns a Collector reading attributes from sysfsDir.
func New(sysfsDir string) *Collector {
	return &Collector{
		SysfsDir: sysfsDir,
		lookPath: exec.LookPath,
		output:   commandOutput,
		hostname: os.Hostname,
	}
}

func commandOutput(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// Collect gathers every value. Missing hardware or tools produce placeholder
// text instead of an error.
func (c *Collector) Collect(ctx context.Context) Info {
	ctx, cancel := context.WithTimeout(ctx, commandLimit)
	defer cancel()
	return Info{
		ButtonVersion:   c.toolVersion(ctx, "pisound-btn", 1),
		ServerVersion:   c.toolVersion(ctx, "pisound-ctl", 4),
		FirmwareVersion: c.attribute("version", notFound),
		Serial:          c.attribute("serial", notFound),
		HardwareVersion: c.HardwareVersion(),
		IPAddress:       c.ipAddress(ctx),
		Hostname:        c.host(),
	}
}

// HardwareVersion returns the board revision; boards predating the attribute
// report 1.0.
func (c *Collector) HardwareVersion() string {
	data, err := os.ReadFile(filepath.Join(c.SysfsDir, "hw_version"))
	if err != nil {
		return "1.0"
	}
	return strings.Trim(string(data), "\n\x00")
}

func (c *Collector) attribute(name, fallback string) string {
	data, err := os.ReadFile(filepath.Join(c.SysfsDir, name))
	if err != nil {
		return fallback
	}
	return strings.ReplaceAll(string(data), "\n", "")
}

// toolVersion runs `<tool> --version` and returns the space separated field
// at index.
func (c *Collector) toolVersion(ctx context.Context, tool string, index int) string {
	if _, err := c.lookPath(tool); err != nil {
		return notInstalled
	}
	out, err := c.output(ctx, tool, "--version")
	if err != nil {
		return unknown
	}
	return VersionField(out, index)
}

// VersionField extracts the index-th space separated word of a version banner.
func VersionField(out string, index int) string {
	fields := strings.Split(strings.TrimSpace(out), " ")
	if index < 0 || index >= len(fields) {
		return unknown
	}
	return strings.Trim(fields[index], ",")
}

func (c *Collector) ipAddress(ctx context.Context) string {
	out, err := c.output(ctx, "hostname", "-I")
	if err != nil {
		return unknown
	}
	return strings.TrimSpace(out)
}

func (c *Collector) host() string {
	name, err := c.hostname()
	if err != nil {
		return unknown
	}
	return strings.TrimSpace(name)
}
