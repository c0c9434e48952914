package organize

import (
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the filename the organizer reserves for its run manifest.
// Planning skips it and tree listings treat it like any other dotfile.
const ManifestName = ".fsort.manifest.yaml"

// Options control how a plan is applied.
type Options struct {
	// StripPrefix removes the category prefix and separator from filenames
	// as they are moved into their category directory.
	StripPrefix bool
}

// Move is a single file relocation, with paths relative to the plan directory.
type Move struct {
	Category string
	// From is the original filename in the plan directory.
	From string
	// To is the filename inside the category directory, which differs from
	// From only when the prefix was stripped.
	To string
}

// Result is the outcome of applying or reversing an organization.
type Result struct {
	Moved       int
	DirCount    int
	RemovedDirs int
	Moves       []Move
	Errors      []string
}

// Failed reports whether every attempted move failed.
func (r *Result) Failed() bool {
	return r.Moved == 0 && len(r.Errors) > 0
}

// Preview returns the moves Apply would perform, without touching the
// filesystem. Conflict detection is left to Apply since the answer can change
// between preview and execution.
func Preview(plan *Plan, opts Options) []Move {
	var moves []Move
	for _, cat := range plan.Categories {
		for _, name := range cat.Files {
			target := name
			if opts.StripPrefix && !cat.Synthetic {
				target, _ = strippedName(name, plan.Separator)
			}
			moves = append(moves, Move{Category: cat.Name, From: name, To: target})
		}
	}
	return moves
}

// Apply executes a plan: one directory per category, each file moved in.
// Individual failures are recorded and do not abort the run. The returned
// Result lists the moves that actually happened, in execution order.
func Apply(plan *Plan, opts Options) *Result {
	res := &Result{}
	for _, cat := range plan.Categories {
		catDir := filepath.Join(plan.Dir, cat.Name)
		if err := os.MkdirAll(catDir, 0o755); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("could not create directory %q: %v", cat.Name, err))
			continue
		}
		res.DirCount++

		for _, name := range cat.Files {
			target := name
			if opts.StripPrefix && !cat.Synthetic {
				stripped, ok := strippedName(name, plan.Separator)
				if !ok {
					res.Errors = append(res.Errors, fmt.Sprintf("%q: name empty after prefix removal, keeping original name", name))
				}
				target = stripped
			}

			src := filepath.Join(plan.Dir, name)
			dst := filepath.Join(catDir, target)
			if _, err := os.Lstat(dst); err == nil {
				res.Errors = append(res.Errors, fmt.Sprintf("%q -> %q: target already exists", name, filepath.Join(cat.Name, target)))
				continue
			}
			if err := os.Rename(src, dst); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("moving %q: %v", name, err))
				continue
			}
			res.Moved++
			res.Moves = append(res.Moves, Move{Category: cat.Name, From: name, To: target})
		}
	}
	return res
}
