// Package config loads toolbelt settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"toolbelt/internal/thermal"
)

// ThermalConfig holds policy selection settings.
type ThermalConfig struct {
	// SysfsRoot is prefixed to every control-file path. Empty means the
	// real filesystem root; tests point it at a scratch tree.
	SysfsRoot string `yaml:"sysfs_root"`

	// ZoneScanLimit bounds the thermal_zone<N> scan.
	ZoneScanLimit int `yaml:"zone_scan_limit"`

	// DefaultUUID is selected when no argument is given.
	DefaultUUID string `yaml:"default_uuid"`

	// Journal overrides the transition journal location.
	Journal string `yaml:"journal"`

	// NoJournal turns off transition journaling entirely.
	NoJournal bool `yaml:"no_journal"`
}

// ContribConfig holds contributor analysis settings.
type ContribConfig struct {
	Extensions      []string `yaml:"extensions"`
	ExcludePaths    []string `yaml:"exclude_paths"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

// AlbumsConfig holds trip album settings.
type AlbumsConfig struct {
	Folder   string `yaml:"folder"`
	PageSize int    `yaml:"page_size"`
}

// Config holds all toolbelt settings.
type Config struct {
	Thermal ThermalConfig `yaml:"thermal"`
	Contrib ContribConfig `yaml:"contrib"`
	Albums  AlbumsConfig  `yaml:"albums"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Thermal: ThermalConfig{
			ZoneScanLimit: thermal.DefaultZoneLimit,
			DefaultUUID:   thermal.DefaultUUID,
		},
		Albums: AlbumsConfig{
			Folder:   "Trips",
			PageSize: 80,
		},
	}
}

// Dir returns the toolbelt configuration directory, ~/.toolbelt.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".toolbelt"), nil
}

// DefaultPath returns the default config file location, or "" when the
// home directory cannot be resolved.
func DefaultPath() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from a YAML file.
// Empty path falls back to ~/.toolbelt/config.yaml.
// Missing file returns defaults. Invalid YAML returns an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Start with defaults, YAML overwrites only specified fields
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Thermal.ZoneScanLimit <= 0 {
		cfg.Thermal.ZoneScanLimit = thermal.DefaultZoneLimit
	}
	if cfg.Thermal.DefaultUUID == "" {
		cfg.Thermal.DefaultUUID = thermal.DefaultUUID
	}
	if cfg.Albums.PageSize <= 0 {
		cfg.Albums.PageSize = 80
	}

	return cfg, nil
}

// JournalPath returns the journal location, defaulting to
// ~/.toolbelt/journal.jsonl when unset.
func (c *Config) JournalPath() (string, error) {
	if c.Thermal.Journal != "" {
		return c.Thermal.Journal, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal.jsonl"), nil
}

// Paths returns the control-file layout configured for the selector.
func (c *Config) Paths() thermal.Paths {
	p := thermal.DefaultPaths()
	p.ZoneLimit = c.Thermal.ZoneScanLimit
	return p
}

// DefaultYAML returns a commented YAML string for init.
func DefaultYAML() string {
	return `# toolbelt configuration

thermal:
  # Prefix for every kernel control-file path. Leave empty for the real
  # filesystem root; point it at a scratch tree when experimenting.
  sysfs_root: ""

  # How many /sys/class/thermal/thermal_zone<N> directories to scan when
  # looking for the INT3400 zone.
  zone_scan_limit: 10

  # Policy selected by "toolbelt thermal select" without an argument.
  # 63BE270F-... is the adaptive performance policy.
  default_uuid: "63BE270F-1C11-48FD-A6F7-3AF253FF3E2D"

  # Transition journal location. Empty means ~/.toolbelt/journal.jsonl.
  journal: ""

  # Set true to stop recording transitions.
  no_journal: false

contrib:
  # File extensions to analyze. Empty means every tracked file.
  extensions: []
  # Paths excluded from analysis, e.g. vendor/ or third_party/.
  exclude_paths: []
  # Glob patterns excluded from analysis, e.g. "*.min.js".
  exclude_patterns: []

albums:
  # Photos folder that holds generated trip albums.
  folder: "Trips"
  # Trips per page when building albums page by page.
  page_size: 80
`
}
