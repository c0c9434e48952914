package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Category names synthesized when no usable prefix exists.
const (
	// NoSeparator collects files whose names do not contain the separator.
	NoSeparator = "NO_SEPARATOR"
	// UnnamedCategory collects files whose prefix sanitizes to nothing.
	UnnamedCategory = "UNNAMED_CATEGORY"
)

// DefaultSeparator is the prefix separator used when none is configured.
const DefaultSeparator = "-"

// Category is one group of files sharing a filename prefix.
type Category struct {
	// Name is the sanitized prefix, used as the target directory name.
	Name string
	// Files are the filenames (relative to the plan directory) in this category.
	Files []string
	// Synthetic marks the NO_SEPARATOR and UNNAMED_CATEGORY fallback groups.
	Synthetic bool
}

// Plan describes how the files of a directory would be grouped.
type Plan struct {
	Dir        string
	Separator  string
	Categories []Category
}

// FileCount returns the total number of files across all categories.
func (p *Plan) FileCount() int {
	n := 0
	for _, c := range p.Categories {
		n += len(c.Files)
	}
	return n
}

// Empty reports whether the plan contains no files at all.
func (p *Plan) Empty() bool {
	return p.FileCount() == 0
}

// BuildPlan scans the regular files directly under dir and groups them by the
// prefix before the first occurrence of separator. Files without the separator
// (or when separator is empty) fall into the NO_SEPARATOR category. Categories
// are returned in sorted order so repeated scans are deterministic.
func BuildPlan(dir, separator string) (*Plan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	groups := make(map[string]*Category)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Skip irregular entries (sockets, devices); symlinks to files are fine.
		if !entry.Type().IsRegular() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		name := entry.Name()
		if name == ManifestName {
			continue
		}

		prefix, synthetic := categoryFor(name, separator)
		cat, ok := groups[prefix]
		if !ok {
			cat = &Category{Name: prefix, Synthetic: synthetic}
			groups[prefix] = cat
		}
		cat.Files = append(cat.Files, name)
	}

	plan := &Plan{Dir: dir, Separator: separator}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cat := groups[name]
		sort.Strings(cat.Files)
		plan.Categories = append(plan.Categories, *cat)
	}
	return plan, nil
}

// categoryFor returns the category name for a filename, and whether the
// category is a synthetic fallback rather than a real prefix.
func categoryFor(name, separator string) (string, bool) {
	if separator == "" || !strings.Contains(name, separator) {
		return NoSeparator, true
	}
	prefix := strings.TrimSpace(strings.SplitN(name, separator, 2)[0])
	prefix = SanitizeName(prefix)
	if prefix == "" {
		return UnnamedCategory, true
	}
	return prefix, false
}

// SanitizeName converts a raw prefix into a directory-safe name. Alphanumerics,
// spaces, underscores and hyphens pass through; everything else becomes an
// underscore. Leading and trailing whitespace is trimmed afterwards.
func SanitizeName(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.TrimSpace(b.String())
}

// strippedName returns the name a file gets when prefixes are stripped on
// organize. The second return is false when stripping would leave an empty
// name, in which case the original name must be kept.
func strippedName(name, separator string) (string, bool) {
	if separator == "" || !strings.Contains(name, separator) {
		return name, true
	}
	rest := strings.TrimSpace(strings.SplitN(name, separator, 2)[1])
	if rest == "" {
		return name, false
	}
	return rest, true
}

// isSubdir reports whether path is a directory directly under dir.
func isSubdir(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.IsDir()
}
