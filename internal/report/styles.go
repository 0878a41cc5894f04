package report

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	headingStyle = lipgloss.NewStyle().
			Bold(true)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	numericCellStyle = cellStyle.
				Align(lipgloss.Right)

	borderStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	noteStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// bannerWidth matches the width of the section separators.
const bannerWidth = 80
