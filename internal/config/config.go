// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/themectl/internal/appearance"
	"github.com/jmylchreest/themectl/internal/store"
	"github.com/jmylchreest/themectl/internal/theme"
)

// Default configuration values.
const (
	DefaultOrigin           = "localhost"
	DefaultAppearanceSource = appearance.SourceAuto
)

// Config represents the themectl configuration.
type Config struct {
	Store      StoreConfig      `toml:"store"`
	Appearance AppearanceConfig `toml:"appearance"`
	Compat     CompatConfig     `toml:"compat"`
	Document   DocumentConfig   `toml:"document"`
	TUI        TUIConfig        `toml:"tui"`
}

// StoreConfig selects where preferences are persisted.
type StoreConfig struct {
	Origin string `toml:"origin"` // Scope of the store, one file per origin
	Path   string `toml:"path"`   // Overrides the per-origin file
}

// AppearanceConfig selects the OS appearance signal.
type AppearanceConfig struct {
	Source string `toml:"source"` // auto, portal, terminal, light, dark
}

// CompatConfig holds switches reproducing legacy behaviour.
type CompatConfig struct {
	ForceDarkOnLightAuto bool `toml:"force_dark_on_light_auto"`
}

// DocumentConfig describes the host page.
type DocumentConfig struct {
	NavClass string `toml:"nav_class"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp bool `toml:"show_help"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Origin: DefaultOrigin,
		},
		Appearance: AppearanceConfig{
			Source: DefaultAppearanceSource,
		},
		Compat: CompatConfig{
			ForceDarkOnLightAuto: false,
		},
		Document: DocumentConfig{
			NavClass: theme.DefaultNavClass,
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "themectl", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Appearance.Source) {
	case appearance.SourceAuto, appearance.SourcePortal, appearance.SourceTerminal,
		appearance.SourceLight, appearance.SourceDark, "":
	default:
		return fmt.Errorf("unknown appearance source %q", c.Appearance.Source)
	}
	if c.Document.NavClass == "" {
		c.Document.NavClass = theme.DefaultNavClass
	}
	if c.Store.Origin == "" {
		c.Store.Origin = DefaultOrigin
	}
	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// StorePath returns the preference store file for the configured origin.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine data directory: %w", err)
	}
	return store.OriginPath(dir, c.Store.Origin), nil
}
