// Package config loads and saves the relkit configuration file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Built-in repository defaults, used when neither flags nor the config
// file name one.
const (
	DefaultOwner = "ehsan18t"
	DefaultRepo  = "easy-mingw-installer"
)

// Config represents the application configuration
type Config struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Changelog ChangelogConfig `yaml:"changelog"`
}

// GitHubConfig holds GitHub repository and API settings
type GitHubConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Token string `yaml:"token"` // Personal access token for higher rate limits
}

// ChangelogConfig holds changelog generation settings
type ChangelogConfig struct {
	// Profile is the path to a TOML manifest profile describing the
	// marker text of the package list. Empty selects the built-in
	// winlibs profile.
	Profile string `yaml:"profile"`
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/relkit/config.yaml (XDG standard - priority)
// 2. ~/.relkit/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "relkit", "config.yaml"),
		filepath.Join(home, ".relkit", "config.yaml"),
	}, nil
}

// DefaultConfigPath returns the default config file path (XDG standard)
func DefaultConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// FindConfigPath returns the first existing config file path, or the
// default path when no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return paths[0], nil
}

// Load reads configuration from the first available config file
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path. A missing file
// yields a default configuration without creating anything on disk.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes configuration to the default config file
func (c *Config) Save() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Owner returns the configured owner, falling back to the built-in default.
func (c *Config) Owner() string {
	if c.GitHub.Owner != "" {
		return c.GitHub.Owner
	}
	return DefaultOwner
}

// Repo returns the configured repository, falling back to the built-in
// default.
func (c *Config) Repo() string {
	if c.GitHub.Repo != "" {
		return c.GitHub.Repo
	}
	return DefaultRepo
}
