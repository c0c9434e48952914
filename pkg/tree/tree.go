// Package tree renders a directory hierarchy as a Unicode box-drawing tree,
// the kind written by `fsort tree`.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Connector glyphs. The last entry of a listing closes its branch.
const (
	connMid   = "├── "
	connLast  = "└── "
	contMid   = "│   "
	contBlank = "    "
)

// Options control what the tree includes.
type Options struct {
	// ShowHidden includes dot-prefixed files and directories.
	ShowHidden bool
	// MaxDepth limits traversal depth; 0 means unlimited. The root is depth 0.
	MaxDepth int
}

// Render returns the tree for dir as a string. The root line is the directory
// base name with a trailing slash; directories sort before files, each group
// alphabetically. Unreadable directories become a [Permission Denied] node.
func Render(dir string, opts Options) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", dir)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", dir)
	}

	var b strings.Builder
	b.WriteString(filepath.Base(filepath.Clean(dir)) + "/\n")
	walk(&b, dir, "", 1, opts)
	return b.String(), nil
}

// WriteFile renders dir and writes the result to path.
func WriteFile(dir, path string, opts Options) error {
	content, err := Render(dir, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("could not write tree to %s: %w", path, err)
	}
	return nil
}

// DefaultOutputName returns the conventional export filename for dir.
func DefaultOutputName(dir string) string {
	return filepath.Base(filepath.Clean(dir)) + "_tree.txt"
}

// walk appends the listing of one directory level.
func walk(b *strings.Builder, dir, prefix string, depth int, opts Options) {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		b.WriteString(prefix + connLast + "[Permission Denied]\n")
		return
	}

	var dirs, files []string
	for _, entry := range entries {
		name := entry.Name()
		if !opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			dirs = append(dirs, name)
		} else {
			files = append(files, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	names := append(dirs, files...)

	for i, name := range names {
		last := i == len(names)-1
		conn, cont := connMid, contMid
		if last {
			conn, cont = connLast, contBlank
		}

		isDir := i < len(dirs)
		if isDir {
			b.WriteString(prefix + conn + name + "/\n")
			walk(b, filepath.Join(dir, name), prefix+cont, depth+1, opts)
		} else {
			b.WriteString(prefix + conn + name + "\n")
		}
	}
}
