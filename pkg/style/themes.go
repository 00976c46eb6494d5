package style

import (
	"github.com/charmbracelet/lipgloss"
)

// tone picks its variant from the terminal background
func tone(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	HeadingColor = tone("#1F2933", "#F5F7FA")
	MutedColor   = tone("#7B8794", "#9AA5B1")
	AccentColor  = tone("#2563EB", "#60A5FA")
	SuccessColor = tone("#15803D", "#4ADE80")
	ErrorColor   = tone("#B91C1C", "#F87171")
	WarningColor = tone("#B45309", "#FBBF24")

	FolderColor  = tone("#0369A1", "#38BDF8")
	FileColor    = tone("#6D28D9", "#C4B5FD")
	UnknownColor = WarningColor
)
