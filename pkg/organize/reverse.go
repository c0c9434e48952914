package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ReverseOptions control how an organization is undone.
type ReverseOptions struct {
	// StripPrefix indicates the original run stripped prefixes, so the
	// category name and separator are re-attached on the way back.
	StripPrefix bool
	// Separator is the separator used by the original run.
	Separator string
}

// ScanOrganized rebuilds the category-to-files map by listing the immediate
// subdirectories of dir. This is the reverse input when no manifest survives.
// Subdirectories without regular files are omitted.
func ScanOrganized(dir string) (map[string][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	categories := make(map[string][]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		subEntries, err := os.ReadDir(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var files []string
		for _, sub := range subEntries {
			if sub.IsDir() {
				continue
			}
			files = append(files, sub.Name())
		}
		if len(files) > 0 {
			sort.Strings(files)
			categories[entry.Name()] = files
		}
	}
	return categories, nil
}

// Reverse moves files from category subdirectories back into dir. When the
// original run stripped prefixes, the category name and separator are
// re-attached (never for the synthetic categories, whose names were not
// prefixes). Conflicts with existing files are skipped and recorded. Category
// directories left empty are removed.
func Reverse(dir string, categories map[string][]string, opts ReverseOptions) *Result {
	res := &Result{}
	if _, err := os.Stat(dir); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("directory not found: %s", dir))
		return res
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, category := range names {
		subdir := filepath.Join(dir, category)
		if !isSubdir(dir, category) {
			continue
		}

		for _, name := range categories[category] {
			restored := name
			if opts.StripPrefix && opts.Separator != "" && category != NoSeparator && category != UnnamedCategory {
				restored = category + opts.Separator + name
			}

			src := filepath.Join(subdir, name)
			dst := filepath.Join(dir, restored)
			if _, err := os.Lstat(dst); err == nil {
				res.Errors = append(res.Errors, fmt.Sprintf("%q already exists, skipping %q from %q", restored, name, category))
				continue
			}
			if err := os.Rename(src, dst); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("moving %q back: %v", name, err))
				continue
			}
			res.Moved++
			res.Moves = append(res.Moves, Move{Category: category, From: restored, To: name})
		}

		remaining, err := os.ReadDir(subdir)
		if err == nil && len(remaining) == 0 {
			if err := os.Remove(subdir); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("removing directory %q: %v", category, err))
			} else {
				res.RemovedDirs++
			}
		}
	}
	return res
}

// ReverseMoves undoes the exact moves recorded in a manifest: each file goes
// from its category directory back to its original name, regardless of
// separator or sanitization. Directories emptied by the restore are removed.
func ReverseMoves(dir string, moves []Move) *Result {
	res := &Result{}
	if _, err := os.Stat(dir); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("directory not found: %s", dir))
		return res
	}

	touched := make(map[string]struct{})
	for _, mv := range moves {
		touched[mv.Category] = struct{}{}

		src := filepath.Join(dir, mv.Category, mv.To)
		dst := filepath.Join(dir, mv.From)
		if _, err := os.Lstat(dst); err == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%q already exists, skipping %q from %q", mv.From, mv.To, mv.Category))
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("restoring %q: %v", mv.From, err))
			continue
		}
		res.Moved++
		res.Moves = append(res.Moves, mv)
	}

	dirs := make([]string, 0, len(touched))
	for category := range touched {
		dirs = append(dirs, category)
	}
	sort.Strings(dirs)
	for _, category := range dirs {
		subdir := filepath.Join(dir, category)
		remaining, err := os.ReadDir(subdir)
		if err == nil && len(remaining) == 0 {
			if err := os.Remove(subdir); err == nil {
				res.RemovedDirs++
			}
		}
	}
	return res
}
