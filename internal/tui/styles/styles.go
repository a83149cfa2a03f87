package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - Lavender theme
var (
	// Primary colors
	ColorPrimary    = lipgloss.Color("#B794F4") // Lavender
	ColorSecondary  = lipgloss.Color("#9F7AEA") // Darker lavender
	ColorAccent     = lipgloss.Color("#E9D8FD") // Light lavender
	ColorSurface    = lipgloss.Color("#2D2D44") // Surface color
	ColorSurfaceAlt = lipgloss.Color("#3D3D5C") // Alternate surface

	// Text colors
	ColorText        = lipgloss.Color("#FAFAFA") // Primary text
	ColorTextMuted   = lipgloss.Color("#A0A0B0") // Muted text
	ColorTextDim     = lipgloss.Color("#6B6B80") // Dim text
	ColorTextInverse = lipgloss.Color("#1A1A2E") // Inverse text

	// State colors
	ColorSuccess = lipgloss.Color("#68D391") // Green
	ColorError   = lipgloss.Color("#FC8181") // Red

	// Light states
	ColorLightOn  = lipgloss.Color("#FBBF24") // Warm yellow for on
	ColorLightOff = lipgloss.Color("#4A4A5A") // Gray for off
)

// Styles for various UI components
var (
	// Section title ("Current Status", "Brightness")
	StyleSectionTitle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	// Status rows
	StyleStatusLabel = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Width(14)

	StyleStatusValue = lipgloss.NewStyle().
				Foreground(ColorText)

	StyleStatusUnknown = lipgloss.NewStyle().
				Foreground(ColorTextDim).
				Italic(true)

	// Status indicators
	StyleStatusOn = lipgloss.NewStyle().
			Foreground(ColorLightOn).
			Bold(true)

	StyleStatusOff = lipgloss.NewStyle().
			Foreground(ColorLightOff)

	// Slider styles
	StyleSliderTrack = lipgloss.NewStyle().
				Foreground(ColorSurfaceAlt)

	StyleSliderValue = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	// Button styles
	StyleButton = lipgloss.NewStyle().
			Foreground(ColorTextInverse).
			Background(ColorPrimary).
			Padding(0, 2)

	StyleButtonDisabled = lipgloss.NewStyle().
				Foreground(ColorTextDim).
				Background(ColorSurface).
				Padding(0, 2)

	// Modal styles
	StyleModal = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	StyleModalTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// Help styles
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	StyleHelpKey = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// Link style for navigation
	StyleLink = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Underline(true)

	// Loading/spinner styles
	StyleSpinner = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// Error styles
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Text muted style
	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)
