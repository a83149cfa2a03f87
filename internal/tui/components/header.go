package components

import (
	"strings"

	"github.com/angristan/light-tui/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// RenderHeader renders the application header with the controller address on the right.
// An empty status renders as "Disconnected".
func RenderHeader(width int, status string, connected bool) string {
	title := " Light Controller "

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.ColorText).
		Background(styles.ColorPrimary).
		Padding(0, 1)

	statusStyle := lipgloss.NewStyle().
		Foreground(styles.ColorSuccess).
		Padding(0, 1)

	if status == "" {
		status = "Disconnected"
	}
	if !connected {
		statusStyle = statusStyle.Foreground(styles.ColorError)
	}

	left := titleStyle.Render(title)
	right := statusStyle.Render(status)

	// Calculate spacing
	spacing := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}
