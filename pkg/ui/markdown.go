package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/stapler/pkg/style"
	"github.com/charmbracelet/glamour"
)

// markdownRenderer writes a markdown table, rendered with glamour when
// styled is set
type markdownRenderer struct {
	w      io.Writer
	styled bool
}

func (r *markdownRenderer) RenderResult(v *View) error {
	return r.emit(toMarkdown(v))
}

func (r *markdownRenderer) RenderError(err error) error {
	return r.emit(fmt.Sprintf("**Error:** %s\n", escapeCell(err.Error())))
}

func (r *markdownRenderer) RenderMessage(msg string) error {
	return r.emit(style.Strip(msg) + "\n")
}

func (r *markdownRenderer) emit(md string) error {
	out := md
	if r.styled {
		if rendered, err := renderGlamour(md); err == nil {
			out = rendered
		}
	}
	_, err := io.WriteString(r.w, out)
	return err
}

func renderGlamour(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}

func toMarkdown(v *View) string {
	var b strings.Builder

	if v.Document != "" {
		fmt.Fprintf(&b, "# %s\n\n", filepath.Base(v.Document))
	}
	if v.Message != "" {
		fmt.Fprintf(&b, "%s\n\n", style.Strip(v.Message))
	}

	if len(v.Items) > 0 {
		b.WriteString("| # | Name | Path | Status |\n")
		b.WriteString("|---:|---|---|---|\n")
		for _, it := range v.Items {
			path := it.Path
			if path == "" {
				path = it.Error
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", it.Position, escapeCell(it.Name), escapeCell(path), it.Status)
		}
		b.WriteString("\n")
	}

	var failed []ActionView
	for _, a := range v.Actions {
		if a.Status == style.StatusFailed {
			failed = append(failed, a)
		}
	}
	if len(failed) > 0 {
		b.WriteString("## Failures\n\n")
		for _, a := range failed {
			fmt.Fprintf(&b, "- %d: %s\n", a.Position, escapeCell(a.Error))
		}
		b.WriteString("\n")
	}

	if len(v.Previews) > 0 {
		b.WriteString("## Preview\n\n")
		for _, p := range v.Previews {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
		b.WriteString("\n")
	}

	for _, s := range v.Skipped {
		fmt.Fprintf(&b, "- skipped `%s`: %s\n", s.Path, escapeCell(s.Error))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
