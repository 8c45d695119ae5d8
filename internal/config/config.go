package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside a config directory.
const FileName = "config.yaml"

type Config struct {
	Theme    string `yaml:"theme"`
	LogLevel string `yaml:"log_level"`
	Home     string `yaml:"home"`
	Launcher string `yaml:"launcher"`
}

// Themes are the accepted catppuccin flavours.
var Themes = []string{"latte", "frappe", "macchiato", "mocha"}

// LogLevels are the accepted log_level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

func DefaultConfig() Config {
	return Config{
		Theme:    "mocha",
		LogLevel: "info",
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFromDir reads config.yaml from dir, for the --config-dir flag.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, FileName))
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", configPath, err)
	}

	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate rejects themes and log levels shimctl does not know.
func (c *Config) Validate() error {
	var errs []error
	if !contains(Themes, c.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(Themes, ", ")))
	}
	if !contains(LogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log_level %q (want one of %s)", c.LogLevel, strings.Join(LogLevels, ", ")))
	}
	return errors.Join(errs...)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "shimctl", FileName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "shimctl", FileName)
	}

	return filepath.Join(home, ".config", "shimctl", FileName)
}
