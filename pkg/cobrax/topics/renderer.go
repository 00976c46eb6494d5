package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns raw topic text into terminal output. ext is the topic
// file extension including the dot.
type Renderer interface {
	Render(content, ext string) string
}

// PlainRenderer prints topics verbatim.
type PlainRenderer struct{}

func (PlainRenderer) Render(content, _ string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour and leaves
// everything else untouched.
type GlamourRenderer struct {
	// Style is a glamour style name or path; empty or "auto" detects
	// from the terminal.
	Style string
	// Width wraps output when positive.
	Width int
}

func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}

	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Style != "" && r.Style != "auto" {
		opts = []glamour.TermRendererOption{glamour.WithStylePath(r.Style)}
	}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
