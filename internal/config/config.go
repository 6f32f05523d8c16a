// Package config loads the lunar command's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding an explicit config path.
const EnvVar = "LUNAR_CONFIG"

// ColorMode selects when diagnostics are coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds the CLI settings.
type Config struct {
	Color              ColorMode `yaml:"color"`
	History            string    `yaml:"history"`
	Prompt             string    `yaml:"prompt"`
	ContinuationPrompt string    `yaml:"continuation_prompt"`
	Trace              bool      `yaml:"trace"`
	TestExtension      string    `yaml:"test_extension"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Color:              ColorAuto,
		History:            "~/.lunar_history",
		Prompt:             "lunar> ",
		ContinuationPrompt: "...... ",
		TestExtension:      ".lun",
	}
}

// Load reads the configuration. An explicit path must exist; otherwise
// $LUNAR_CONFIG and then $HOME/.config/lunar/config.yaml are tried, and a
// missing file yields the defaults.
func Load(explicit string) (Config, error) {
	if explicit != "" {
		return loadFile(explicit)
	}
	if env := os.Getenv(EnvVar); env != "" {
		return loadFile(env)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return finish(Default())
	}
	cfg, err := loadFile(filepath.Join(home, ".config", "lunar", "config.yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return finish(Default())
	}
	return cfg, err
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	switch cfg.Color {
	case "":
		cfg.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return Config{}, fmt.Errorf("invalid color mode %q (want auto, always or never)", cfg.Color)
	}

	if cfg.TestExtension == "" {
		cfg.TestExtension = ".lun"
	} else if !strings.HasPrefix(cfg.TestExtension, ".") {
		cfg.TestExtension = "." + cfg.TestExtension
	}

	cfg.History = ExpandHome(cfg.History)
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
