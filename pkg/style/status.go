package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status of an alias as shown to the user
type Status string

const (
	StatusResolved   Status = "resolved"   // target found
	StatusUnresolved Status = "unresolved" // target missing or not accessible
	StatusDone       Status = "done"       // action ran
	StatusFailed     Status = "failed"     // action failed
)

// StatusStyle returns the pterm style for a status badge
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusResolved:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusDone:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	case StatusUnresolved:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Prefix returns the pterm prefix text matching a status
func Prefix(status Status) string {
	switch status {
	case StatusDone, StatusResolved:
		return pterm.Success.Prefix.Text
	case StatusFailed:
		return pterm.Error.Prefix.Text
	case StatusUnresolved:
		return pterm.Warning.Prefix.Text
	default:
		return pterm.Info.Prefix.Text
	}
}

// Badge renders status as a fixed width colored label
func Badge(status Status) string {
	return StatusStyle(status).Sprint(fmt.Sprintf(" %-10s ", status))
}

// Aggregate sums up item statuses: failed wins, then unresolved
func Aggregate(statuses []Status) Status {
	result := StatusResolved
	for _, s := range statuses {
		switch s {
		case StatusFailed:
			return StatusFailed
		case StatusUnresolved:
			result = StatusUnresolved
		}
	}
	return result
}
