package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/stapler/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// terminalRenderer writes styled output for interactive terminals
type terminalRenderer struct {
	w io.Writer
}

func (r *terminalRenderer) RenderResult(v *View) error {
	var b strings.Builder

	if v.Message != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", pterm.Info.Prefix.Text, style.Render(v.Message)))
	}

	if len(v.Items) > 0 || v.Command == "list" {
		if v.Document != "" {
			statuses := make([]style.Status, len(v.Items))
			for i, it := range v.Items {
				statuses[i] = it.Status
			}
			b.WriteString(style.TitleStyle.Render(filepath.Base(v.Document)) + " " +
				style.Badge(style.Aggregate(statuses)) + "\n")
		}
		if len(v.Items) == 0 {
			b.WriteString(style.MutedStyle.Render("  no aliases") + "\n")
		}
		for _, it := range v.Items {
			b.WriteString(r.item(it) + "\n")
		}
	}

	for _, a := range v.Actions {
		if a.Status != style.StatusFailed {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			style.ErrorIndicator,
			style.IndexStyle.Render(fmt.Sprint(a.Position)),
			style.ErrorStyle.Render(a.Error)))
	}

	for _, p := range v.Previews {
		b.WriteString(style.PathStyle.Render(p) + "\n")
	}

	for _, s := range v.Skipped {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			style.WarningIndicator,
			style.PathStyle.Render(s.Path),
			style.MutedStyle.Render(s.Error)))
	}

	if v.Cancelled {
		b.WriteString(style.WarningStyle.Render("cancelled before every item was opened") + "\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *terminalRenderer) item(it ItemView) string {
	index := style.IndexStyle.Render(fmt.Sprint(it.Position))
	if it.Status == style.StatusUnresolved {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			index, "  ", style.UnknownStyle.Render(it.Name), "  ", style.MutedStyle.Render(it.Error))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		index, "  ", style.FileStyle.Render(it.Name), "  ", style.PathStyle.Render(it.Path))
}

func (r *terminalRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "%s %s\n", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
	return werr
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, style.Render(msg))
	return err
}
