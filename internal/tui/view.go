package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/fsort/pkg/organize"
	"github.com/dkoosis/fsort/pkg/render"
)

func (m model) View() string {
	theme := m.opts.Theme
	r := render.New(theme, m.width, m.loc.T)

	var sb strings.Builder
	title := theme.Bold.Render(m.loc.T("tui_title"))
	lang := theme.Muted.Render("[" + m.loc.Current() + "]")
	sb.WriteString(title + " " + lang + "\n\n")

	switch m.mode {
	case modeInput:
		sb.WriteString(theme.Primary.Render(m.loc.T("tui_directory_label")) + "\n")
		sb.WriteString(m.input.View() + "\n")
		if m.lastErr != "" {
			sb.WriteString("\n" + theme.Error.Render(theme.Icons.Fail+" "+m.lastErr) + "\n")
		}

	case modePlan, modeConfirm:
		sb.WriteString(m.headerLine(theme) + "\n\n")
		if m.plan == nil {
			sb.WriteString(theme.Muted.Render(m.loc.T("tui_no_plan")) + "\n")
		} else if m.plan.Empty() {
			sb.WriteString(theme.Muted.Render(m.loc.T("no_files_to_organize")) + "\n")
		} else {
			sb.WriteString(m.planBody(r))
		}
		if m.mode == modeConfirm {
			sb.WriteString("\n" + m.confirmPrompt(theme) + "\n")
		}

	case modeBusy:
		sb.WriteString(m.headerLine(theme) + "\n\n")
		sb.WriteString(m.spin.View() + " " + m.status + "\n")
	}

	sb.WriteString("\n" + m.statusBar(theme))
	return sb.String()
}

// headerLine shows the active directory and the strip-prefix toggle state.
func (m model) headerLine(theme render.Theme) string {
	strip := m.loc.T("tui_strip_prefix_off")
	if m.stripPrefix {
		strip = m.loc.T("tui_strip_prefix_on")
	}
	return theme.Primary.Render(m.dir) + "  " + theme.Muted.Render(strip)
}

// planBody renders the plan, clipped to the available height.
func (m model) planBody(r *render.Renderer) string {
	body := r.Plan(m.plan, organize.Options{StripPrefix: m.stripPrefix}, true)
	if m.height <= 0 {
		return body
	}
	// Reserve lines for title, header, status bar, and surrounding blanks.
	budget := m.height - 8
	if budget < 3 {
		budget = 3
	}
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) > budget {
		lines = append(lines[:budget], m.opts.Theme.Muted.Render("…"))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m model) confirmPrompt(theme render.Theme) string {
	key := "confirm_organize"
	if m.pending == actionReverse {
		key = "confirm_reverse"
	}
	prompt := m.loc.T(key) + " (y/n)"
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Warning.GetForeground()).
		Padding(0, 1)
	return box.Render(theme.Bold.Render(prompt))
}

func (m model) statusBar(theme render.Theme) string {
	var sb strings.Builder
	if m.status != "" {
		sb.WriteString(theme.Muted.Render(m.status) + "\n")
	}
	if m.lastErr != "" && m.mode != modeInput {
		sb.WriteString(theme.Warning.Render(theme.Icons.Warn+" "+m.lastErr) + "\n")
	}
	sb.WriteString(theme.Muted.Render(m.loc.T("tui_help")) + "\n")
	return sb.String()
}
