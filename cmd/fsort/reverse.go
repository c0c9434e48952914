package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkoosis/fsort/internal/config"
	"github.com/dkoosis/fsort/pkg/manifest"
	"github.com/dkoosis/fsort/pkg/organize"
)

func newReverseCmd(a *app, flags *config.CliFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reverse <directory>",
		Short: "Move files back out of their category subdirectories",
		Long: `Undoes a previous organization. When the directory holds a manifest from
"fsort organize", files are restored to their exact original names. Without
one, the immediate subdirectories are scanned and their files moved back,
re-attaching "<category><separator>" when --strip-prefix says the original
run removed prefixes. Emptied subdirectories are deleted.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReverse(args[0], yes)
		},
	}

	cmd.Flags().BoolVarP(&flags.StripPrefix, "strip-prefix", "r", false, "the original organization stripped prefixes; restore them")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) runReverse(dir string, yes bool) error {
	fmt.Fprintln(a.stdout, a.loc.T("scanning_subdirs", dir))

	man, err := manifest.Load(dir)
	switch {
	case err == nil:
		return a.reverseFromManifest(dir, man, yes)
	case errors.Is(err, manifest.ErrNotFound):
		return a.reverseFromScan(dir, yes)
	default:
		// A corrupt manifest should not block the scan-based fallback.
		a.logger.Warn("ignoring unreadable manifest", zap.Error(err))
		return a.reverseFromScan(dir, yes)
	}
}

func (a *app) reverseFromManifest(dir string, man *manifest.Manifest, yes bool) error {
	fmt.Fprintln(a.stdout, a.loc.T("manifest_used", man.RunID))
	fmt.Fprintln(a.stdout, a.loc.T("found_files_subdirs", len(man.Moves), countCategories(man.Moves)))

	if !yes && !a.confirm(a.loc.T("confirm_reverse")) {
		fmt.Fprintln(a.stdout, a.loc.T("cancelled"))
		return nil
	}

	res := organize.ReverseMoves(dir, man.Moves)
	if res.Moved > 0 {
		if err := manifest.Remove(dir); err != nil {
			res.Errors = append(res.Errors, err.Error())
		}
	}
	return a.printReverseResult(res)
}

func (a *app) reverseFromScan(dir string, yes bool) error {
	categories, err := organize.ScanOrganized(dir)
	if err != nil {
		fmt.Fprintln(a.stdout, a.loc.T("error_invalid_directory", dir))
		a.logger.Debug("scan failed", zap.Error(err))
		return errSilent
	}
	if len(categories) == 0 {
		fmt.Fprintln(a.stdout, a.loc.T("no_subdirs_to_reverse"))
		return errSilent
	}

	total := 0
	for _, files := range categories {
		total += len(files)
	}
	if total == 0 {
		fmt.Fprintln(a.stdout, a.loc.T("no_files_in_subdirs"))
		return errSilent
	}
	fmt.Fprintln(a.stdout, a.loc.T("found_files_subdirs", total, len(categories)))

	if !yes && !a.confirm(a.loc.T("confirm_reverse")) {
		fmt.Fprintln(a.stdout, a.loc.T("cancelled"))
		return nil
	}

	res := organize.Reverse(dir, categories, organize.ReverseOptions{
		StripPrefix: a.cfg.StripPrefix,
		Separator:   a.cfg.Separator,
	})
	return a.printReverseResult(res)
}

func (a *app) printReverseResult(res *organize.Result) error {
	fmt.Fprint(a.stdout, a.rend.Summary(a.loc.T("reverse_summary", res.Moved), res))
	if res.RemovedDirs > 0 {
		fmt.Fprintln(a.stdout, a.loc.T("removed_empty_dirs", res.RemovedDirs))
	}
	if res.Failed() {
		return errSilent
	}
	return nil
}

// countCategories counts the distinct categories in a move list.
func countCategories(moves []organize.Move) int {
	seen := make(map[string]struct{}, len(moves))
	for _, mv := range moves {
		seen[mv.Category] = struct{}{}
	}
	return len(seen)
}
