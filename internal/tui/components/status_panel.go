package components

import (
	"strings"

	"github.com/angristan/light-tui/internal/models"
	"github.com/angristan/light-tui/internal/tui/styles"
)

// StatusPanelLines is the number of lines RenderStatusPanel produces
const StatusPanelLines = 4

// RenderStatusPanel renders the "Current Status" section
func RenderStatusPanel(status models.LightStatus) string {
	var b strings.Builder

	b.WriteString(styles.StyleSectionTitle.Render("Current Status"))
	b.WriteString("\n")

	// Turned on
	onStyle := styles.StyleStatusOff
	icon := "○ "
	if status.TurnedOn {
		onStyle = styles.StyleStatusOn
		icon = "● "
	}
	b.WriteString(statusRow("Turned On", onStyle.Render(icon+status.TurnedOnLabel())))
	b.WriteString("\n")

	b.WriteString(statusRow("Brightness", renderPercent(status.Brightness)))
	b.WriteString("\n")
	b.WriteString(statusRow("Light Level", renderPercent(status.LightLevel)))

	return b.String()
}

func statusRow(label, value string) string {
	return "  " + styles.StyleStatusLabel.Render(label) + value
}

// renderPercent renders a percentage or the literal Unknown label
func renderPercent(p models.Percent) string {
	if !p.Known() {
		return styles.StyleStatusUnknown.Render(p.String())
	}
	return styles.StyleStatusValue.Render(p.String())
}
