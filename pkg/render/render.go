// Package render formats plans, results, and trees for the terminal.
// Styling goes through lipgloss themes; the mono theme keeps output free of
// color for pipes and NO_COLOR environments.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/fsort/pkg/organize"
)

// TranslateFunc resolves a message key to a localized string.
type TranslateFunc func(key string, args ...any) string

// Renderer formats organizer output with a theme and terminal width.
type Renderer struct {
	theme Theme
	width int
	t     TranslateFunc
}

// New creates a renderer. A nil translate falls back to raw message keys,
// which only test code should rely on.
func New(theme Theme, width int, translate TranslateFunc) *Renderer {
	if width <= 0 {
		width = 80
	}
	if translate == nil {
		translate = func(key string, args ...any) string {
			if len(args) == 0 {
				return key
			}
			return key + " " + fmt.Sprint(args...)
		}
	}
	return &Renderer{theme: theme, width: width, t: translate}
}

// Theme returns the renderer's theme, for callers that style adjacent output.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// previewLimit caps how many files a category block lists before eliding.
const previewLimit = 5

// Plan renders the category blocks of a plan. With verbose, each category
// lists up to previewLimit files; renames are shown with the theme arrow.
func (r *Renderer) Plan(plan *organize.Plan, opts organize.Options, verbose bool) string {
	var sb strings.Builder

	maxName := 0
	for _, cat := range plan.Categories {
		if w := runewidth.StringWidth(cat.Name); w > maxName {
			maxName = w
		}
	}

	moves := movesByFile(organize.Preview(plan, opts))
	for _, cat := range plan.Categories {
		icon := r.theme.Icons.Dir
		name := runewidth.FillRight(cat.Name, maxName)
		header := r.t("category_header", cat.Name, len(cat.Files))
		if !verbose {
			// Compact single line per category: name padded, count aligned.
			sb.WriteString(fmt.Sprintf("%s %s %s\n",
				r.theme.Primary.Render(icon),
				r.theme.Bold.Render(name),
				r.theme.Muted.Render(fmt.Sprintf("(%d)", len(cat.Files)))))
			continue
		}

		sb.WriteString(r.theme.Primary.Render(icon) + " " + r.theme.Bold.Render(header) + "\n")
		for i, file := range cat.Files {
			if i == previewLimit {
				sb.WriteString("  " + r.theme.Muted.Render(r.t("and_x_more_files", len(cat.Files)-previewLimit)) + "\n")
				break
			}
			line := "  " + r.theme.Icons.File + " " + file
			if to, ok := moves[cat.Name+"\x00"+file]; ok && to != file {
				line += " " + r.theme.Muted.Render(r.theme.Icons.Arrow+" "+to)
			}
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}

// Summary renders a result headline plus its error list.
func (r *Renderer) Summary(headline string, res *organize.Result) string {
	var sb strings.Builder
	icon, style := r.theme.Icons.OK, r.theme.Success
	if res.Failed() {
		icon, style = r.theme.Icons.Fail, r.theme.Error
	} else if len(res.Errors) > 0 {
		icon, style = r.theme.Icons.Warn, r.theme.Warning
	}
	sb.WriteString(style.Render(icon+" "+headline) + "\n")
	sb.WriteString(r.Errors(res.Errors))
	return sb.String()
}

// errorLimit caps how many errors are listed before eliding.
const errorLimit = 5

// Errors renders an error list, eliding after errorLimit entries.
func (r *Renderer) Errors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(r.theme.Warning.Render(r.t("errors_encountered", len(errs))) + "\n")
	for i, e := range errs {
		if i == errorLimit {
			sb.WriteString("  " + r.theme.Muted.Render(r.t("and_x_more_errors", len(errs)-errorLimit)) + "\n")
			break
		}
		sb.WriteString("  " + r.theme.Icons.Bullet + " " + e + "\n")
	}
	return sb.String()
}

// movesByFile indexes preview moves by category and source name.
func movesByFile(moves []organize.Move) map[string]string {
	idx := make(map[string]string, len(moves))
	for _, mv := range moves {
		idx[mv.Category+"\x00"+mv.From] = mv.To
	}
	return idx
}
