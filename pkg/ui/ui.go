// Package ui renders command results in the output format the user asked
// for: styled terminal output, plain text, JSON, YAML, XML or markdown.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/stapler/pkg/errors"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(v *View) error

	// RenderError renders an error
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output
// when it is a file and falls back to terminal output otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return &terminalRenderer{w: output}, nil
	case FormatText:
		return &textRenderer{w: output}, nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	case FormatYAML:
		return &yamlRenderer{w: output}, nil
	case FormatXML:
		return &xmlRenderer{w: output}, nil
	case FormatMarkdown:
		return &markdownRenderer{w: output, styled: isTerminal(output)}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && DetectFormat(file) == FormatTerminal
}
