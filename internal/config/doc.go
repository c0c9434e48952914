// Package config handles configuration loading and merging for fsort.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--separator, --strip-prefix, --theme, --lang, --no-color, ...)
//  2. Environment variables (FSORT_SEPARATOR, FSORT_THEME, FSORT_LANG,
//     FSORT_NO_COLOR, NO_COLOR, FSORT_DEBUG)
//  3. YAML config file (.fsort.yaml in the working directory or the user
//     config dir, e.g. ~/.config/fsort/.fsort.yaml)
//  4. Hardcoded defaults
//
// A flag only participates when the user actually set it; Cobra's Changed
// tracking feeds the *Set fields of CliFlags so defaults never mask the
// environment or the config file.
package config
