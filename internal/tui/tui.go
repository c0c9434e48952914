// Package tui is the interactive terminal front end of fsort, the
// counterpart of the one-shot CLI subcommands. It previews the organization
// plan for a directory, applies or reverses it on request, exports trees, and
// live-refreshes the plan when the directory changes on disk.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dkoosis/fsort/internal/locale"
	"github.com/dkoosis/fsort/pkg/manifest"
	"github.com/dkoosis/fsort/pkg/organize"
	"github.com/dkoosis/fsort/pkg/render"
	"github.com/dkoosis/fsort/pkg/tree"
)

// Options configure the TUI session.
type Options struct {
	// Dir preloads the directory input; empty starts blank.
	Dir           string
	Separator     string
	StripPrefix   bool
	ShowHidden    bool
	MaxDepth      int
	WriteManifest bool
	Theme         render.Theme
	Locale        *locale.Manager
	Logger        *zap.Logger
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	m := newModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// mode is the coarse UI state.
type mode int

const (
	modeInput   mode = iota // editing the directory path
	modePlan                // plan on screen, awaiting an action
	modeConfirm             // y/n prompt before a destructive action
	modeBusy                // an operation is running
)

// pendingAction is what a confirm prompt will trigger.
type pendingAction int

const (
	actionNone pendingAction = iota
	actionOrganize
	actionReverse
)

type model struct {
	opts   Options
	loc    *locale.Manager
	logger *zap.Logger

	mode    mode
	pending pendingAction

	input   textinput.Model
	spin    spinner.Model
	watcher *watcher

	dir         string
	stripPrefix bool
	plan        *organize.Plan
	status      string
	lastErr     string

	width  int
	height int
}

func newModel(opts Options) model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/directory"
	ti.CharLimit = 512
	ti.SetValue(opts.Dir)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Theme.Primary

	return model{
		opts:        opts,
		loc:         opts.Locale,
		logger:      opts.Logger,
		mode:        modeInput,
		input:       ti,
		spin:        sp,
		stripPrefix: opts.StripPrefix,
		status:      opts.Locale.T("status_ready"),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Messages produced by background commands.
type (
	planMsg struct {
		plan *organize.Plan
		err  error
	}
	organizeDoneMsg struct {
		res *organize.Result
		err error
	}
	reverseDoneMsg struct {
		res *organize.Result
		err error
	}
	treeDoneMsg struct {
		path string
		err  error
	}
	fsEventMsg  struct{ src *watcher }
	watchErrMsg struct {
		src *watcher
		err error
	}
)

// buildPlan scans the directory off the update loop.
func (m model) buildPlan() tea.Cmd {
	dir, sep := m.dir, m.opts.Separator
	return func() tea.Msg {
		plan, err := organize.BuildPlan(dir, sep)
		return planMsg{plan: plan, err: err}
	}
}

func (m model) runOrganize() tea.Cmd {
	plan, opts := m.plan, organize.Options{StripPrefix: m.stripPrefix}
	writeManifest := m.opts.WriteManifest
	sep := m.opts.Separator
	return func() tea.Msg {
		res := organize.Apply(plan, opts)
		if writeManifest && res.Moved > 0 {
			if err := manifest.Write(plan.Dir, manifest.New(sep, opts.StripPrefix, res.Moves)); err != nil {
				res.Errors = append(res.Errors, err.Error())
			}
		}
		return organizeDoneMsg{res: res}
	}
}

func (m model) runReverse() tea.Cmd {
	dir, sep, strip := m.dir, m.opts.Separator, m.stripPrefix
	return func() tea.Msg {
		if man, err := manifest.Load(dir); err == nil {
			res := organize.ReverseMoves(dir, man.Moves)
			if res.Moved > 0 {
				if err := manifest.Remove(dir); err != nil {
					res.Errors = append(res.Errors, err.Error())
				}
			}
			return reverseDoneMsg{res: res}
		}
		categories, err := organize.ScanOrganized(dir)
		if err != nil {
			return reverseDoneMsg{err: err}
		}
		res := organize.Reverse(dir, categories, organize.ReverseOptions{StripPrefix: strip, Separator: sep})
		return reverseDoneMsg{res: res}
	}
}

func (m model) runTreeExport() tea.Cmd {
	dir := m.dir
	opts := tree.Options{ShowHidden: m.opts.ShowHidden, MaxDepth: m.opts.MaxDepth}
	return func() tea.Msg {
		out := filepath.Join(dir, tree.DefaultOutputName(dir))
		if err := tree.WriteFile(dir, out, opts); err != nil {
			return treeDoneMsg{err: err}
		}
		return treeDoneMsg{path: out}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case planMsg:
		if msg.err != nil {
			m.mode = modeInput
			m.lastErr = m.loc.T("error_invalid_directory", m.dir)
			m.logger.Debug("plan failed", zap.Error(msg.err))
			return m, nil
		}
		m.plan = msg.plan
		m.lastErr = ""
		m.mode = modePlan
		m.status = m.loc.T("found_files_categories", msg.plan.FileCount(), len(msg.plan.Categories))
		if m.watcher != nil && m.watcher.dir != m.dir {
			m.watcher.close()
			m.watcher = nil
		}
		if m.watcher == nil {
			w, err := newWatcher(m.dir)
			if err != nil {
				m.logger.Debug("watch unavailable", zap.Error(err))
			} else {
				m.watcher = w
				m.status += " · " + m.loc.T("status_watching")
				return m, m.watcher.wait()
			}
		}
		return m, nil

	case organizeDoneMsg:
		m.mode = modePlan
		m.status = m.loc.T("status_organization_complete") + ": " +
			m.loc.T("organize_summary", msg.res.Moved, msg.res.DirCount)
		m.lastErr = firstError(msg.res)
		return m, m.buildPlan()

	case reverseDoneMsg:
		m.mode = modePlan
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, m.buildPlan()
		}
		m.status = m.loc.T("status_reverse_complete") + ": " +
			m.loc.T("reverse_summary", msg.res.Moved)
		m.lastErr = firstError(msg.res)
		return m, m.buildPlan()

	case treeDoneMsg:
		m.mode = modePlan
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		} else {
			m.status = m.loc.T("tree_saved", msg.path)
			m.lastErr = ""
		}
		return m, nil

	case fsEventMsg:
		if msg.src != m.watcher {
			// A wait from a watcher that was since replaced; ignore it.
			return m, nil
		}
		// Directory changed under us; rebuild the plan and keep listening.
		if m.mode == modePlan {
			return m, tea.Batch(m.buildPlan(), m.watcher.wait())
		}
		return m, m.watcher.wait()

	case watchErrMsg:
		if msg.src != m.watcher {
			// End-of-watch from an already replaced watcher; the live one
			// must stay installed.
			return m, nil
		}
		m.logger.Debug("watcher stopped", zap.Error(msg.err))
		m.watcher = nil
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.mode == modeBusy {
			return m, cmd
		}
		return m, nil
	}

	if m.mode == modeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case modeInput:
		switch msg.String() {
		case "enter":
			dir := strings.TrimSpace(m.input.Value())
			if dir == "" {
				return m, nil
			}
			m.dir = expandPath(dir)
			return m, m.buildPlan()
		case "esc":
			return m.quit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modePlan:
		switch msg.String() {
		case "q", "esc":
			return m.quit()
		case "enter":
			return m, m.buildPlan()
		case "o":
			if m.plan != nil && !m.plan.Empty() {
				m.pending = actionOrganize
				m.mode = modeConfirm
			}
			return m, nil
		case "r":
			m.pending = actionReverse
			m.mode = modeConfirm
			return m, nil
		case "t":
			m.mode = modeBusy
			m.status = m.loc.T("exporting_tree", m.dir)
			return m, tea.Batch(m.spin.Tick, m.runTreeExport())
		case "p":
			m.stripPrefix = !m.stripPrefix
			return m, nil
		case "l":
			m.cycleLanguage()
			return m, nil
		case "d":
			m.mode = modeInput
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case modeConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			action := m.pending
			m.pending = actionNone
			m.mode = modeBusy
			switch action {
			case actionOrganize:
				m.status = m.loc.T("analyzing_files", m.dir)
				return m, tea.Batch(m.spin.Tick, m.runOrganize())
			case actionReverse:
				m.status = m.loc.T("scanning_subdirs", m.dir)
				return m, tea.Batch(m.spin.Tick, m.runReverse())
			}
			m.mode = modePlan
			return m, nil
		case "n", "N", "esc", "q":
			m.pending = actionNone
			m.mode = modePlan
			m.status = m.loc.T("cancelled")
			return m, nil
		}
		return m, nil

	case modeBusy:
		// Ignore keys while an operation runs; ctrl+c was handled above.
		return m, nil
	}
	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	if m.watcher != nil {
		m.watcher.close()
	}
	return m, tea.Quit
}

// cycleLanguage advances to the next available catalog.
func (m *model) cycleLanguage() {
	codes := m.loc.Codes()
	for i, code := range codes {
		if code == m.loc.Current() {
			m.loc.SetLanguage(codes[(i+1)%len(codes)])
			break
		}
	}
	m.status = m.loc.T("status_ready")
}

// firstError surfaces the first of a result's errors for the status line;
// the full list stays in the rendered summary.
func firstError(res *organize.Result) string {
	if res == nil || len(res.Errors) == 0 {
		return ""
	}
	if len(res.Errors) == 1 {
		return res.Errors[0]
	}
	return fmt.Sprintf("%s (+%d)", res.Errors[0], len(res.Errors)-1)
}

// expandPath resolves a leading ~ against the home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
