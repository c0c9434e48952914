package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/fsort/pkg/organize"
)

// FileName is the YAML configuration file fsort looks for.
const FileName = ".fsort.yaml"

// DefaultTheme is the theme used when nothing selects one.
const DefaultTheme = "default"

// AppConfig is the on-disk configuration shape of .fsort.yaml.
type AppConfig struct {
	Separator     string `yaml:"separator,omitempty"`
	StripPrefix   bool   `yaml:"strip_prefix"`
	ShowHidden    bool   `yaml:"show_hidden"`
	MaxDepth      int    `yaml:"max_depth"`
	Theme         string `yaml:"theme,omitempty"`
	Language      string `yaml:"language,omitempty"`
	NoColor       bool   `yaml:"no_color"`
	Debug         bool   `yaml:"debug"`
	WriteManifest *bool  `yaml:"write_manifest,omitempty"`
}

// LoadConfig reads .fsort.yaml from path if given, else from the working
// directory, else from the user config dir. Missing files yield defaults; a
// malformed file is a warning, not a failure, so a broken config never locks
// the tool out.
func LoadConfig(path string) *AppConfig {
	cfg := defaults()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not read config file %s: %v\n", path, err)
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not parse config file %s: %v\n", path, err)
		return defaults()
	}
	if cfg.Separator == "" {
		cfg.Separator = organize.DefaultSeparator
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	return cfg
}

func defaults() *AppConfig {
	return &AppConfig{
		Separator: organize.DefaultSeparator,
		Theme:     DefaultTheme,
	}
}

// findConfigFile returns the first config file found: working directory
// first, then the user config dir ($XDG_CONFIG_HOME/fsort on Linux).
func findConfigFile() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	userDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(userDir, "fsort", FileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
