package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkoosis/fsort/internal/config"
	"github.com/dkoosis/fsort/pkg/manifest"
	"github.com/dkoosis/fsort/pkg/organize"
)

func newOrganizeCmd(a *app, flags *config.CliFlags) *cobra.Command {
	var verbose bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "organize <directory>",
		Short: "Move files into subdirectories named after their prefixes",
		Long: `Groups the files of a directory by the prefix before the first separator
occurrence and moves each group into a subdirectory of that name. Files
without the separator land in NO_SEPARATOR.

A manifest recording the run is written into the directory so that
"fsort reverse" can restore the exact original names; disable it with
--no-manifest.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOrganize(args[0], verbose, yes)
		},
	}

	cmd.Flags().BoolVarP(&flags.StripPrefix, "strip-prefix", "r", false, "remove the prefix from filenames when organizing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show per-file moves in the plan")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&flags.NoManifest, "no-manifest", false, "do not write a reverse manifest into the directory")
	return cmd
}

func (a *app) runOrganize(dir string, verbose, yes bool) error {
	fmt.Fprintln(a.stdout, a.loc.T("analyzing_files", dir))

	plan, err := organize.BuildPlan(dir, a.cfg.Separator)
	if err != nil {
		fmt.Fprintln(a.stdout, a.loc.T("error_invalid_directory", dir))
		a.logger.Debug("plan failed", zap.Error(err))
		return errSilent
	}
	if plan.Empty() {
		fmt.Fprintln(a.stdout, a.loc.T("no_files_to_organize"))
		return errSilent
	}

	fmt.Fprintln(a.stdout, a.loc.T("found_files_categories", plan.FileCount(), len(plan.Categories)))
	opts := organize.Options{StripPrefix: a.cfg.StripPrefix}
	fmt.Fprint(a.stdout, a.rend.Plan(plan, opts, verbose))

	if !yes && !a.confirm(a.loc.T("confirm_organize")) {
		fmt.Fprintln(a.stdout, a.loc.T("cancelled"))
		return nil
	}

	res := organize.Apply(plan, opts)
	if a.cfg.WriteManifest && res.Moved > 0 {
		if err := manifest.Write(dir, manifest.New(a.cfg.Separator, opts.StripPrefix, res.Moves)); err != nil {
			res.Errors = append(res.Errors, err.Error())
			a.logger.Warn("manifest write failed", zap.Error(err))
		}
	}

	fmt.Fprint(a.stdout, a.rend.Summary(a.loc.T("organize_summary", res.Moved, res.DirCount), res))
	if res.Failed() {
		return errSilent
	}
	return nil
}
