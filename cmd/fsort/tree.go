package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkoosis/fsort/internal/config"
	"github.com/dkoosis/fsort/pkg/tree"
)

func newTreeCmd(a *app, flags *config.CliFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tree <directory>",
		Short: "Export a directory tree to a text file",
		Long: `Writes a Unicode tree rendering of the directory to a file, defaulting to
"<directory>_tree.txt" inside the current directory. Use --output - to print
the tree to stdout instead.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTree(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <directory>_tree.txt, - for stdout)")
	cmd.Flags().BoolVar(&flags.ShowHidden, "show-hidden", false, "include hidden files and directories")
	cmd.Flags().IntVar(&flags.MaxDepth, "max-depth", 0, "maximum depth to traverse (0 = unlimited)")
	return cmd
}

func (a *app) runTree(dir, output string) error {
	opts := tree.Options{ShowHidden: a.cfg.ShowHidden, MaxDepth: a.cfg.MaxDepth}

	if output == "-" {
		content, err := tree.Render(dir, opts)
		if err != nil {
			fmt.Fprintln(a.stdout, err.Error())
			return errSilent
		}
		fmt.Fprint(a.stdout, content)
		return nil
	}

	fmt.Fprintln(a.stdout, a.loc.T("exporting_tree", dir))
	if output == "" {
		output = tree.DefaultOutputName(dir)
	}
	if err := tree.WriteFile(dir, output, opts); err != nil {
		fmt.Fprintln(a.stdout, err.Error())
		a.logger.Debug("tree export failed", zap.Error(err))
		return errSilent
	}
	fmt.Fprintln(a.stdout, a.loc.T("tree_saved", output))
	return nil
}
