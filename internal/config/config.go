package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all agentstat configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Filters    FilterConfig     `toml:"filters"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	SessionsDir   string `toml:"sessions_dir,omitempty"`
	ExtensionsDir string `toml:"extensions_dir,omitempty"`
	CacheDir      string `toml:"cache_dir,omitempty"`
	DefaultPeriod string `toml:"default_period"`
	ShowCost      bool   `toml:"show_cost"`
}

// FilterConfig holds default session filters applied to every command.
type FilterConfig struct {
	ExcludeProjects []string `toml:"exclude_projects,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultPeriod: "month",
			ShowCost:      true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentstat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "agentstat")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// SessionsDir resolves the sessions directory: config value first, then
// the assistant's default location under the user's home.
func SessionsDir(cfg Config) string {
	if cfg.General.SessionsDir != "" {
		return cfg.General.SessionsDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "projects")
}

// ExtensionsDir resolves the extensions directory used by the tool audit.
func ExtensionsDir(cfg Config) string {
	if cfg.General.ExtensionsDir != "" {
		return cfg.General.ExtensionsDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "extensions")
}
