package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/stapler/pkg/style"
)

// textRenderer writes plain text, one alias per line
type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) RenderResult(v *View) error {
	_, err := io.WriteString(r.w, plainText(v))
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "Error: %s\n", err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, style.Strip(msg))
	return err
}

func plainText(v *View) string {
	var b strings.Builder
	if v.Message != "" {
		b.WriteString(style.Strip(v.Message) + "\n")
	}
	for _, it := range v.Items {
		line := fmt.Sprintf("%4d  %s", it.Position, it.Name)
		if it.Path != "" {
			line += "  " + it.Path
		}
		b.WriteString(line + "\n")
	}
	for _, a := range v.Actions {
		if a.Error != "" {
			fmt.Fprintf(&b, "%4d  %s: %s\n", a.Position, a.Status, a.Error)
		}
	}
	for _, p := range v.Previews {
		b.WriteString(p + "\n")
	}
	for _, s := range v.Skipped {
		fmt.Fprintf(&b, "skipped %s: %s\n", s.Path, s.Error)
	}
	if v.Cancelled {
		b.WriteString("cancelled\n")
	}
	return b.String()
}
