// Package locale provides the translated user-facing strings for fsort.
//
// Catalogs are JSON files embedded at build time, one per language, keyed by
// message ID. Each catalog carries a "_lang_name_" entry with its native
// display name. Lookup falls back to English, then to the key itself, so a
// missing translation never blocks output.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is the fallback when detection or lookup fails.
const DefaultLanguage = "en"

// langNameKey is the catalog entry holding the language's display name.
const langNameKey = "_lang_name_"

// Manager resolves message keys to strings in the selected language.
type Manager struct {
	current  string
	catalogs map[string]map[string]string
	names    map[string]string
	matcher  language.Matcher
	tags     []language.Tag
}

// New loads all embedded catalogs and selects the system language, falling
// back to English when the system language has no catalog.
func New() (*Manager, error) {
	m := &Manager{
		current:  DefaultLanguage,
		catalogs: make(map[string]map[string]string),
		names:    make(map[string]string),
	}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("reading embedded locales: %w", err)
	}
	for _, entry := range entries {
		code := strings.TrimSuffix(entry.Name(), ".json")
		data, err := localeFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading locale %s: %w", code, err)
		}
		catalog := make(map[string]string)
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("decoding locale %s: %w", code, err)
		}
		m.catalogs[code] = catalog
		if name, ok := catalog[langNameKey]; ok {
			m.names[code] = name
		} else {
			m.names[code] = code
		}
		if tag, err := language.Parse(code); err == nil {
			m.tags = append(m.tags, tag)
		}
	}
	if _, ok := m.catalogs[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("embedded catalogs missing default language %q", DefaultLanguage)
	}

	// Matcher tags must lead with the default so unknown inputs match English.
	sort.Slice(m.tags, func(i, j int) bool {
		si, sj := m.tags[i].String(), m.tags[j].String()
		if si == DefaultLanguage {
			return true
		}
		if sj == DefaultLanguage {
			return false
		}
		return si < sj
	})
	m.matcher = language.NewMatcher(m.tags)

	m.SetLanguage(m.DetectSystem())
	return m, nil
}

// Languages returns the available language codes mapped to display names.
func (m *Manager) Languages() map[string]string {
	out := make(map[string]string, len(m.names))
	for code, name := range m.names {
		out[code] = name
	}
	return out
}

// Codes returns the available language codes in sorted order.
func (m *Manager) Codes() []string {
	codes := make([]string, 0, len(m.catalogs))
	for code := range m.catalogs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Current returns the active language code.
func (m *Manager) Current() string {
	return m.current
}

// SetLanguage switches the active language, falling back to the default when
// the requested code has no catalog. Returns the code actually selected.
func (m *Manager) SetLanguage(code string) string {
	if _, ok := m.catalogs[code]; ok {
		m.current = code
	} else {
		m.current = DefaultLanguage
	}
	return m.current
}

// T returns the translation for key in the current language, formatted with
// args when given. Missing keys fall back to English, then to the key itself.
func (m *Manager) T(key string, args ...any) string {
	msg, ok := m.catalogs[m.current][key]
	if !ok {
		msg, ok = m.catalogs[DefaultLanguage][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// DetectSystem resolves the host language from LC_ALL/LC_MESSAGES/LANG
// against the available catalogs. Unset or unparseable values yield the
// default language.
func (m *Manager) DetectSystem() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(key)
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		// "tr_TR.UTF-8" -> "tr_TR" -> BCP 47 "tr-TR"
		val = strings.SplitN(val, ".", 2)[0]
		val = strings.ReplaceAll(val, "_", "-")
		tag, err := language.Parse(val)
		if err != nil {
			continue
		}
		_, idx, conf := m.matcher.Match(tag)
		if conf == language.No {
			continue
		}
		base, _ := m.tags[idx].Base()
		return base.String()
	}
	return DefaultLanguage
}
