package components

import (
	"github.com/angristan/light-tui/internal/tui/styles"
)

// RenderButton renders an action button; disabled buttons are dimmed
func RenderButton(label string, disabled bool) string {
	if disabled {
		return styles.StyleButtonDisabled.Render(label)
	}
	return styles.StyleButton.Render(label)
}
