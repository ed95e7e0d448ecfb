// Package config loads the regclerk configuration from YAML files and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/codecheckers/regclerk/internal/constants"
	"github.com/codecheckers/regclerk/internal/duration"
)

// Config represents the application configuration.
type Config struct {
	// DefaultRegister selects the register when --register is not given:
	// "production" or "testing".
	DefaultRegister string `yaml:"default_register,omitempty"`
	DefaultFormat   string `yaml:"default_format,omitempty"`

	// Padding is the minimum digit width of the certificate number.
	Padding int `yaml:"padding,omitempty"`

	// MarkerLabel, when set, restricts extraction to issues carrying it.
	MarkerLabel string `yaml:"marker_label,omitempty"`

	// CacheTTL is how long GitHub responses are memoized, e.g. "5m" or "1h".
	CacheTTL string `yaml:"cache_ttl,omitempty"`

	// RosterURL points at the checker roster CSV.
	RosterURL string `yaml:"roster_url,omitempty"`

	// Floors overrides the minimum certificate number per year, keyed by
	// register then year.
	Floors map[string]map[int]int `yaml:"floors,omitempty"`
}

// DefaultRosterURL is the published codecheckers roster.
const DefaultRosterURL = "https://codecheck.org.uk/register/docs/codecheckers.csv"

// DefaultConfigDir returns the global config directory.
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".regclerk"
	}
	return filepath.Join(configDir, "regclerk")
}

// ConfigPath returns the path to the global config file.
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current
// directory.
func LocalConfigPath() string {
	return ".regclerk.yaml"
}

// Load reads the configuration from disk. The global config from the XDG
// config directory is loaded first, then any local .regclerk.yaml is merged
// on top (local values take precedence). Missing files are not an error.
func Load() (*Config, error) {
	cfg := defaults()

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}
		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}
		cfg = mergeConfig(cfg, &localCfg)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		DefaultRegister: "production",
		DefaultFormat:   "table",
		Padding:         constants.IdentifierPadding,
		RosterURL:       DefaultRosterURL,
	}
}

// applyDefaults fills in zero values left after merging.
func applyDefaults(cfg *Config) {
	if cfg.DefaultRegister == "" {
		cfg.DefaultRegister = "production"
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}
	if cfg.Padding <= 0 {
		cfg.Padding = constants.IdentifierPadding
	}
	if cfg.RosterURL == "" {
		cfg.RosterURL = DefaultRosterURL
	}
}

// mergeConfig merges local config on top of global config. Local values take
// precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	result.DefaultRegister = pick(local.DefaultRegister, global.DefaultRegister)
	result.DefaultFormat = pick(local.DefaultFormat, global.DefaultFormat)
	result.MarkerLabel = pick(local.MarkerLabel, global.MarkerLabel)
	result.CacheTTL = pick(local.CacheTTL, global.CacheTTL)
	result.RosterURL = pick(local.RosterURL, global.RosterURL)

	if local.Padding > 0 {
		result.Padding = local.Padding
	} else {
		result.Padding = global.Padding
	}

	if len(local.Floors) > 0 {
		result.Floors = local.Floors
	} else {
		result.Floors = global.Floors
	}

	return result
}

func pick(local, global string) string {
	if local != "" {
		return local
	}
	return global
}

// GetCacheTTL parses the configured cache TTL, falling back to the built-in
// default on empty or invalid values.
func (c *Config) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return constants.ResponseCacheTTL
	}
	ttl, err := duration.Parse(c.CacheTTL)
	if err != nil {
		return constants.ResponseCacheTTL
	}
	return ttl
}

// FloorFor returns the configured floor override for a register and year, or
// 0 when none is set.
func (c *Config) FloorFor(register string, year int) int {
	if years, ok := c.Floors[register]; ok {
		return years[year]
	}
	return 0
}

// Save writes the configuration to the global config file, creating the
// config directory if needed.
func (c *Config) Save() error {
	dir := DefaultConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment
// variable. Tokens are never stored in config files.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}
