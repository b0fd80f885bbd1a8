// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// EnvVar names the environment variable [Load] reads.
const EnvVar = "GFXINFO_CONFIG"

// Config is the master configuration for gfxinfo.
type Config struct {
	// Log configures the command logger.
	Log LogConfig `yaml:"log"`

	// Adapters selects which GPU data sources the resolver may use.
	Adapters AdaptersConfig `yaml:"adapters"`

	// AMDGPU configures the amdgpu DRM adapter.
	AMDGPU AMDGPUConfig `yaml:"amdgpu"`

	// Nvidia configures the NVML adapter.
	Nvidia NvidiaConfig `yaml:"nvidia"`

	// IORegistry configures the macOS ioreg adapter.
	IORegistry IORegistryConfig `yaml:"ioreg"`

	// Serve configures the Prometheus exporter.
	Serve ServeConfig `yaml:"serve"`

	// Watch configures the live terminal view.
	Watch WatchConfig `yaml:"watch"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a slog level name: debug, info, warn, or error.
	// Default: warn
	Level string `yaml:"level"`
}

// AdaptersConfig selects GPU data sources.
type AdaptersConfig struct {
	// Disable lists adapter kinds (amd, nvidia, intel, wmi, ioreg) to
	// drop from the platform resolver chain.
	Disable []string `yaml:"disable"`
}

// AMDGPUConfig configures the amdgpu adapter.
type AMDGPUConfig struct {
	// SysRoot is the sysfs mount point.
	// Default: /sys
	SysRoot string `yaml:"sys_root"`

	// DevRoot is the devfs mount point.
	// Default: /dev
	DevRoot string `yaml:"dev_root"`

	// IDsPath is libdrm's marketing-name table.
	// Default: /usr/share/libdrm/amdgpu.ids
	IDsPath string `yaml:"ids_path"`
}

// NvidiaConfig configures the NVML adapter.
type NvidiaConfig struct {
	// LibraryPath overrides the libnvidia-ml shared object. Empty uses
	// the dynamic loader's search path.
	LibraryPath string `yaml:"library_path"`
}

// IORegistryConfig configures the ioreg adapter.
type IORegistryConfig struct {
	// Command is the ioreg binary.
	// Default: ioreg
	Command string `yaml:"command"`

	// Timeout bounds each invocation.
	// Default: 5s
	Timeout string `yaml:"timeout"`
}

// ServeConfig configures the exporter.
type ServeConfig struct {
	// Listen is the HTTP listen address.
	// Default: :9835
	Listen string `yaml:"listen"`
}

// WatchConfig configures the live view.
type WatchConfig struct {
	// Interval is the telemetry refresh period.
	// Default: 1s
	Interval string `yaml:"interval"`
}

// Default returns the default configuration. Loaded files are decoded
// on top of it, so any field a file omits keeps its default.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "warn"},
		AMDGPU: AMDGPUConfig{
			SysRoot: "/sys",
			DevRoot: "/dev",
			IDsPath: "/usr/share/libdrm/amdgpu.ids",
		},
		IORegistry: IORegistryConfig{
			Command: "ioreg",
			Timeout: "5s",
		},
		Serve: ServeConfig{Listen: ":9835"},
		Watch: WatchConfig{Interval: "1s"},
	}
}

// Load loads configuration from the file named by GFXINFO_CONFIG. It
// fails when the variable is not set; use [Discover] when a config
// file is optional.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your gfxinfo.yaml config file, or use --config flag", EnvVar)
	}
	return LoadFile(configPath)
}

// Discover loads path when it is non-empty, then the file named by
// GFXINFO_CONFIG when that is set, and otherwise returns [Default].
func Discover(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvVar) != "" {
		return Load()
	}
	return Default(), nil
}

// LoadFile loads configuration from a specific file path and validates
// it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile decodes one file into the current config. JSON is a subset
// of YAML, so JSONC files only need comments and trailing commas
// stripped.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.AMDGPU.SysRoot = expandVars(c.AMDGPU.SysRoot, vars)
	c.AMDGPU.DevRoot = expandVars(c.AMDGPU.DevRoot, vars)
	c.AMDGPU.IDsPath = expandVars(c.AMDGPU.IDsPath, vars)
	c.Nvidia.LibraryPath = expandVars(c.Nvidia.LibraryPath, vars)
	c.IORegistry.Command = expandVars(c.IORegistry.Command, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Every problem is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	for _, name := range c.Adapters.Disable {
		if _, err := hwinfo.ParseKind(name); err != nil {
			errs = append(errs, fmt.Errorf("adapters.disable: %w", err))
		}
	}

	if c.AMDGPU.SysRoot == "" {
		errs = append(errs, errors.New("amdgpu.sys_root is required"))
	}
	if c.AMDGPU.DevRoot == "" {
		errs = append(errs, errors.New("amdgpu.dev_root is required"))
	}
	if c.IORegistry.Command == "" {
		errs = append(errs, errors.New("ioreg.command is required"))
	}
	if timeout, err := time.ParseDuration(c.IORegistry.Timeout); err != nil || timeout <= 0 {
		errs = append(errs, fmt.Errorf("ioreg.timeout must be a positive duration, got %q", c.IORegistry.Timeout))
	}
	if c.Serve.Listen == "" {
		errs = append(errs, errors.New("serve.listen is required"))
	}
	if interval, err := time.ParseDuration(c.Watch.Interval); err != nil || interval <= 0 {
		errs = append(errs, fmt.Errorf("watch.interval must be a positive duration, got %q", c.Watch.Interval))
	}

	return errors.Join(errs...)
}

// LogLevel parses Log.Level. An empty level means warn.
func (c *Config) LogLevel() (slog.Level, error) {
	if c.Log.Level == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn, err
	}
	return level, nil
}

// Disabled reports whether kind appears in Adapters.Disable.
func (c *Config) Disabled(kind hwinfo.Kind) bool {
	for _, name := range c.Adapters.Disable {
		if parsed, err := hwinfo.ParseKind(name); err == nil && parsed == kind {
			return true
		}
	}
	return false
}

// IORegistryTimeout parses IORegistry.Timeout, returning 0 when it is
// not a valid duration.
func (c *Config) IORegistryTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.IORegistry.Timeout)
	return timeout
}

// WatchInterval parses Watch.Interval, returning 0 when it is not a
// valid duration.
func (c *Config) WatchInterval() time.Duration {
	interval, _ := time.ParseDuration(c.Watch.Interval)
	return interval
}
