package style

import (
	"github.com/charmbracelet/lipgloss"
)

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	TitleStyle   = fg(HeadingColor).Bold(true).Underline(true)
	MutedStyle   = fg(MutedColor)
	PathStyle    = fg(AccentColor).Italic(true)
	SuccessStyle = fg(SuccessColor).Bold(true)
	ErrorStyle   = fg(ErrorColor).Bold(true)
	WarningStyle = fg(WarningColor).Bold(true)

	// IndexStyle right-aligns list positions
	IndexStyle = fg(MutedColor).Width(4).Align(lipgloss.Right)

	FolderStyle  = fg(FolderColor).Bold(true)
	FileStyle    = fg(FileColor)
	UnknownStyle = fg(UnknownColor).Italic(true)
)

var (
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
)
