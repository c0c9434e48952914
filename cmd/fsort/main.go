// fsort organizes the files of a directory into subdirectories keyed by
// filename prefix, undoes such organizations, and exports directory trees.
//
// Usage:
//
//	fsort organize ~/Downloads -s - --verbose
//	fsort reverse ~/Downloads
//	fsort tree ~/Downloads -o downloads.txt
//	fsort                          # interactive TUI
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dkoosis/fsort/internal/config"
	"github.com/dkoosis/fsort/internal/locale"
	"github.com/dkoosis/fsort/internal/logging"
	"github.com/dkoosis/fsort/internal/tui"
	"github.com/dkoosis/fsort/internal/version"
	"github.com/dkoosis/fsort/pkg/render"
)

// errSilent signals a failure whose message was already printed to the user.
var errSilent = errors.New("failure already reported")

func main() {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "fsort:", err)
		}
		os.Exit(exitCode(err))
	}
}

// usageError marks flag and argument mistakes so main can exit with the
// conventional usage status instead of the general failure one.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode maps a command error to the process exit status: 2 for usage
// errors, 1 for everything else.
func exitCode(err error) int {
	var uerr usageError
	if errors.As(err, &uerr) {
		return 2
	}
	return 1
}

// exactArgs is cobra.ExactArgs with its failure marked as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	inner := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := inner(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

// app carries the resolved runtime wiring shared by all subcommands.
type app struct {
	cfg    *config.Resolved
	loc    *locale.Manager
	rend   *render.Renderer
	logger *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	var flags config.CliFlags

	root := &cobra.Command{
		Use:   "fsort",
		Short: "Organize files into subdirectories based on filename prefixes",
		Long: `fsort groups the files of a directory into subdirectories named after
the prefix before the first separator in each filename, reverses a previous
organization, and exports directory trees.

Run without a subcommand to start the interactive terminal interface.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.CommitHash, version.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			// A bare "fsort" opens the TUI; anything else is a mistyped
			// subcommand.
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError{err: err}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			markSetFlags(cmd, &flags)
			return a.setup(cmd, flags)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(tui.Options{
				Separator:     a.cfg.Separator,
				StripPrefix:   a.cfg.StripPrefix,
				ShowHidden:    a.cfg.ShowHidden,
				MaxDepth:      a.cfg.MaxDepth,
				WriteManifest: a.cfg.WriteManifest,
				Theme:         a.rend.Theme(),
				Locale:        a.loc,
				Logger:        a.logger,
			})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default .fsort.yaml, then the user config dir)")
	pf.StringVarP(&flags.Separator, "separator", "s", "-", "character separating prefix from the rest of the filename")
	pf.StringVar(&flags.Theme, "theme", "", "theme: default, orca, mono")
	pf.StringVar(&flags.Language, "lang", "", "interface language (en, tr)")
	pf.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
	pf.BoolVar(&flags.Debug, "debug", false, "enable debug logging")

	root.AddCommand(newOrganizeCmd(a, &flags))
	root.AddCommand(newReverseCmd(a, &flags))
	root.AddCommand(newTreeCmd(a, &flags))

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}

// markSetFlags records which flags the user actually changed, so unset flags
// never shadow env or file configuration during resolution.
func markSetFlags(cmd *cobra.Command, flags *config.CliFlags) {
	lookup := func(name string) bool {
		if f := cmd.Flags().Lookup(name); f != nil {
			return f.Changed
		}
		return false
	}
	flags.SeparatorSet = lookup("separator")
	flags.ThemeSet = lookup("theme")
	flags.LanguageSet = lookup("lang")
	flags.NoColorSet = lookup("no-color")
	flags.DebugSet = lookup("debug")
	flags.StripPrefixSet = lookup("strip-prefix")
	flags.ShowHiddenSet = lookup("show-hidden")
	flags.MaxDepthSet = lookup("max-depth")
	flags.NoManifestSet = lookup("no-manifest")
}

// setup resolves configuration and builds the shared wiring.
func (a *app) setup(cmd *cobra.Command, flags config.CliFlags) error {
	a.cfg = config.Resolve(flags)

	logger, err := logging.New(a.cfg.Debug)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.logger = logger

	loc, err := locale.New()
	if err != nil {
		return fmt.Errorf("loading locales: %w", err)
	}
	if a.cfg.Language != "" {
		loc.SetLanguage(a.cfg.Language)
	}
	a.loc = loc

	theme := render.ThemeByName(a.cfg.Theme)
	width := 80
	isTTY := false
	if f, ok := a.stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		isTTY = true
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}
	// Piped output gets the mono theme even when colors were not explicitly
	// disabled.
	if a.cfg.NoColor || !isTTY {
		theme = render.MonoTheme()
	}
	a.rend = render.New(theme, width, loc.T)

	a.logger.Debug("configuration resolved",
		zap.String("separator", a.cfg.Separator),
		zap.String("theme", theme.Name),
		zap.String("language", loc.Current()),
	)
	return nil
}

// confirm prompts on stdout and reads a y/n answer from stdin.
func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.stdout, "%s (y/n): ", prompt)
	reader := bufio.NewReader(a.stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

