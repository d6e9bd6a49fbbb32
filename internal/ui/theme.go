package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for the cabinet CLI
var (
	// Primary colors
	ColorRose  = lipgloss.AdaptiveColor{Light: "#C2185B", Dark: "#F8BBD0"} // Matches the default branding primary
	ColorBlue  = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	ColorGreen = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorAmber = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorRed   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}

	// Secondary text
	ColorDim = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#555555"}
)
