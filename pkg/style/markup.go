package style

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser expands [tag]text[/tag] markup into styled text
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a parser knowing the default tags
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	for tag, s := range map[string]lipgloss.Style{
		"title":   TitleStyle,
		"success": SuccessStyle,
		"error":   ErrorStyle,
		"warning": WarningStyle,
		"path":    PathStyle,
		"muted":   MutedStyle,
		"bold":    lipgloss.NewStyle().Bold(true),

		"folder":  FolderStyle,
		"file":    FileStyle,
		"unknown": UnknownStyle,
	} {
		p.AddStyle(tag, s)
	}
	return p
}

// AddStyle registers a tag
func (p *MarkupParser) AddStyle(tag string, s lipgloss.Style) {
	p.styles[tag] = s
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render expands markup. Nested tags are expanded inside out.
func (p *MarkupParser) Render(text string) string {
	return p.expand(text, func(tag, content string) string {
		return p.styles[tag].Render(content)
	})
}

// Strip removes markup, keeping the text
func (p *MarkupParser) Strip(text string) string {
	return p.expand(text, func(_, content string) string { return content })
}

func (p *MarkupParser) expand(text string, apply func(tag, content string) string) string {
	for {
		before := text
		for tag, pattern := range p.patterns {
			text = pattern.ReplaceAllStringFunc(text, func(match string) string {
				return apply(tag, pattern.FindStringSubmatch(match)[1])
			})
		}
		if text == before {
			return text
		}
	}
}

var defaultParser = NewMarkupParser()

// Render expands markup with the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip removes markup with the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
