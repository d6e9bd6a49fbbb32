package ui

import "github.com/charmbracelet/lipgloss"

// Base text styles
var (
	StyleBold = lipgloss.NewStyle().Bold(true)
	StyleDim  = lipgloss.NewStyle().Foreground(ColorDim)
)

// Colored text styles
var (
	StyleRose  = lipgloss.NewStyle().Foreground(ColorRose)
	StyleBlue  = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleGreen = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleAmber = lipgloss.NewStyle().Foreground(ColorAmber)
	StyleRed   = lipgloss.NewStyle().Foreground(ColorRed)
)

// Semantic styles (combining base and color)
var (
	StyleHeader  = StyleBold.Foreground(ColorRose)
	StyleSuccess = StyleBold.Foreground(ColorGreen)
	StyleWarning = StyleBold.Foreground(ColorAmber)
	StyleError   = StyleBold.Foreground(ColorRed)
)

// Component styles
var (
	StyleCommand = StyleBlue
	StyleComment = StyleDim
)

// Box styles
var (
	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorRed).
			Padding(0, 1).
			Bold(true).
			MaxWidth(80)

	InfoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBlue).
			Padding(0, 1).
			MaxWidth(80)

	SuccessBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorGreen).
			Padding(1, 2).
			Bold(true).
			MaxWidth(80)
)

// TableHeaderStyle renders table headings.
var TableHeaderStyle = StyleBold.Foreground(ColorBlue).PaddingRight(2)

// SwatchStyle pads a color sample.
var SwatchStyle = lipgloss.NewStyle().Padding(0, 1)
