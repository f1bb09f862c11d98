// Package config handles the tool's global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bibkit/pdfbib/internal/logging"
)

// Config represents configuration stored in ~/.config/pdfbib/config.yml.
type Config struct {
	// BibFile is the default bibliography file entries are appended to.
	BibFile string `yaml:"bib_file,omitempty"`
	// Tool is the external extraction command.
	Tool string `yaml:"tool,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "pdfbib"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// DefaultTool is the extraction command used when none is configured,
	// resolved via PATH at invocation time.
	DefaultTool = "pdf2bib"

	// EnvBibFile and EnvTool override the configured values.
	EnvBibFile = "PDFBIB_BIB_FILE"
	EnvTool    = "PDFBIB_TOOL"
)

// configCache caches the effective config for the process lifetime.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/pdfbib/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load returns the effective configuration: file values overridden by
// environment variables, defaults applied, tilde expanded. A missing file
// yields the defaults, not an error.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg, err := LoadFile(Path())
	if err != nil {
		return nil, err
	}

	cfg.BibFile = envOverride(EnvBibFile, cfg.BibFile)
	cfg.Tool = envOverride(EnvTool, cfg.Tool)
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	if cfg.BibFile != "" {
		cfg.BibFile = ExpandTilde(cfg.BibFile)
	}

	configCache = cfg
	return cfg, nil
}

// LoadFile reads raw configuration from one file: no env overrides, no
// defaults, no caching. A missing file yields an empty config, not an error.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// Save writes the configuration file, creating its directory when needed.
// The cache is reset so the next Load observes the new values.
func Save(cfg *Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	ResetCache()
	return nil
}

// envOverride returns the environment value when set, else the config value.
func envOverride(envKey, configValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return configValue
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

var loadEnvOnce sync.Once

// LoadEnv loads a .env file from the working directory once per process.
// A missing file is fine; variables already set in the environment win.
func LoadEnv() {
	loadEnvOnce.Do(func() {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return
		}
		if err := godotenv.Load(); err != nil {
			logging.Logger.Warnf("loading .env: %v", err)
		}
	})
}
