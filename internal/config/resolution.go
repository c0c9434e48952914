package config

import (
	"os"
	"strconv"
)

// CliFlags holds command-line flag values together with whether each was
// explicitly set, so an untouched flag never shadows env or file settings.
type CliFlags struct {
	ConfigPath  string
	Separator   string
	StripPrefix bool
	ShowHidden  bool
	MaxDepth    int
	Theme       string
	Language    string
	NoColor     bool
	Debug       bool
	NoManifest  bool

	SeparatorSet   bool
	StripPrefixSet bool
	ShowHiddenSet  bool
	MaxDepthSet    bool
	ThemeSet       bool
	LanguageSet    bool
	NoColorSet     bool
	DebugSet       bool
	NoManifestSet  bool
}

// Resolved is the final configuration after applying the priority order
// flags > environment > file > defaults.
type Resolved struct {
	Separator     string
	StripPrefix   bool
	ShowHidden    bool
	MaxDepth      int
	Theme         string
	Language      string
	NoColor       bool
	Debug         bool
	WriteManifest bool
}

// Resolve merges all configuration sources into one Resolved value.
func Resolve(flags CliFlags) *Resolved {
	file := LoadConfig(flags.ConfigPath)

	res := &Resolved{
		Separator:     file.Separator,
		StripPrefix:   file.StripPrefix,
		ShowHidden:    file.ShowHidden,
		MaxDepth:      file.MaxDepth,
		Theme:         file.Theme,
		Language:      file.Language,
		NoColor:       file.NoColor,
		Debug:         file.Debug,
		WriteManifest: true,
	}
	if file.WriteManifest != nil {
		res.WriteManifest = *file.WriteManifest
	}

	if env := os.Getenv("FSORT_SEPARATOR"); env != "" {
		res.Separator = env
	}
	if env := os.Getenv("FSORT_THEME"); env != "" {
		res.Theme = env
	}
	if env := os.Getenv("FSORT_LANG"); env != "" {
		res.Language = env
	}
	if b := envBool("FSORT_NO_COLOR", "NO_COLOR"); b != nil {
		res.NoColor = *b
	}
	if os.Getenv("FSORT_DEBUG") != "" {
		res.Debug = true
	}

	if flags.SeparatorSet {
		res.Separator = flags.Separator
	}
	if flags.StripPrefixSet {
		res.StripPrefix = flags.StripPrefix
	}
	if flags.ShowHiddenSet {
		res.ShowHidden = flags.ShowHidden
	}
	if flags.MaxDepthSet {
		res.MaxDepth = flags.MaxDepth
	}
	if flags.ThemeSet {
		res.Theme = flags.Theme
	}
	if flags.LanguageSet {
		res.Language = flags.Language
	}
	if flags.NoColorSet {
		res.NoColor = flags.NoColor
	}
	if flags.DebugSet {
		res.Debug = flags.Debug
	}
	if flags.NoManifestSet {
		res.WriteManifest = !flags.NoManifest
	}

	return res
}

// envBool reads a boolean from environment variables, trying keys in order.
// NO_COLOR follows the no-color.org convention: any non-empty value counts.
func envBool(keys ...string) *bool {
	for _, key := range keys {
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
		truthy := true
		return &truthy
	}
	return nil
}
