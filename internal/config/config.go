package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

// AllRaids disables past-raids trimming.
const AllRaids = -1

// Environment variables that override the [files] section.
const (
	EnvPrimaryFile   = "COX_PRIMARY_FILE"
	EnvSecondaryFile = "COX_SECONDARY_FILE"
	EnvPointsFile    = "COX_POINTS_FILE"
)

// Colour modes accepted by [app] color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the application configuration.
type Config struct {
	// Input files
	Files FilesConfig `toml:"files"`

	// Report shaping
	Report ReportConfig `toml:"report"`

	// Score log matching
	Points PointsConfig `toml:"points"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// FilesConfig points at the raid logs and the score log.
type FilesConfig struct {
	Primary   string `toml:"primary"`   // Primary player's CoxTimes file
	Secondary string `toml:"secondary"` // Optional comparison player's CoxTimes file
	Points    string `toml:"points"`    // Optional raid tracker score log
}

// ReportConfig controls which raids are analysed.
type ReportConfig struct {
	PastRaids     int    `toml:"past_raids"`     // Most recent raids to keep (-1 = all)
	SessionRaids  int    `toml:"session_raids"`  // Window for the "Last N" column
	LayoutFilter  string `toml:"layout_filter"`  // all, normal or full
	RequirePoints bool   `toml:"require_points"` // Drop raids without matched points
}

// PointsConfig contains score matching settings.
type PointsConfig struct {
	ToleranceSeconds int `toml:"tolerance_seconds"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool   `toml:"debug_mode"` // Enable debug logging
	Color     string `toml:"color"`      // auto, always or never
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			PastRaids:     AllRaids,
			SessionRaids:  10,
			LayoutFilter:  string(raid.LayoutAll),
			RequirePoints: false,
		},
		Points: PointsConfig{
			ToleranceSeconds: 3,
		},
		App: AppConfig{
			DebugMode: false,
			Color:     ColorAuto,
		},
	}
}

// DefaultPath returns the path to the configuration file.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".cox-analytics", "config.toml"), nil
}

// Load loads the configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration at path. Returns default config if the file doesn't exist.
// Keys missing from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	config := DefaultConfig()

	// Return defaults if file doesn't exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Parse TOML over the defaults
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// Marshal to TOML
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Write file
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadEnvFiles loads KEY=value pairs from the given .env files into the
// process environment. Missing files are skipped; variables already set win.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides file paths from COX_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPrimaryFile); v != "" {
		c.Files.Primary = v
	}
	if v := os.Getenv(EnvSecondaryFile); v != "" {
		c.Files.Secondary = v
	}
	if v := os.Getenv(EnvPointsFile); v != "" {
		c.Files.Points = v
	}
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Files.Primary == "" {
		return fmt.Errorf("primary file is not set")
	}

	if c.Report.PastRaids < AllRaids || c.Report.PastRaids == 0 {
		return fmt.Errorf("past raids must be positive or %d for all: %d", AllRaids, c.Report.PastRaids)
	}

	if c.Report.SessionRaids <= 0 {
		return fmt.Errorf("session raids must be positive: %d", c.Report.SessionRaids)
	}

	if !raid.LayoutFilter(c.Report.LayoutFilter).Valid() {
		return fmt.Errorf("invalid layout filter %q", c.Report.LayoutFilter)
	}

	if c.Points.ToleranceSeconds < 0 {
		return fmt.Errorf("tolerance cannot be negative: %d", c.Points.ToleranceSeconds)
	}

	switch c.App.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q", c.App.Color)
	}

	return nil
}

// Layout returns the configured layout filter.
func (c *Config) Layout() raid.LayoutFilter {
	return raid.LayoutFilter(c.Report.LayoutFilter)
}
