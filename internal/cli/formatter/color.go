package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/omnigratum/timeclock/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders text in the dim style.
func Dim(s string) string {
	return StyleDim.Render(s)
}

// StatusPill returns a colored indicator for a timesheet status.
func StatusPill(status domain.TimesheetStatus) string {
	switch status {
	case domain.TimesheetApproved:
		return StyleGreen.Render("approved")
	case domain.TimesheetSubmitted:
		return StyleYellow.Render("submitted")
	case domain.TimesheetDenied:
		return StyleRed.Render("denied")
	case domain.TimesheetDraft:
		return StyleBlue.Render("draft")
	default:
		return StyleDim.Render(string(status))
	}
}
