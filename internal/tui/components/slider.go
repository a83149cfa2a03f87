package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/angristan/light-tui/internal/tui/styles"
)

const (
	MinSliderWidth     = 10
	MaxSliderWidth     = 60
	DefaultSliderWidth = 40
)

// SliderStyle defines the style options for the brightness slider
type SliderStyle struct {
	Width    int
	Disabled bool
	Dragging bool
}

// NewSliderBar returns the progress bar used to draw the slider fill
func NewSliderBar() progress.Model {
	return progress.New(
		progress.WithSolidFill(string(styles.ColorPrimary)),
		progress.WithoutPercentage(),
		progress.WithWidth(DefaultSliderWidth),
	)
}

// SliderWidth picks a slider width that fits the terminal
func SliderWidth(termWidth int) int {
	if termWidth <= 0 {
		return DefaultSliderWidth
	}
	w := termWidth - 20
	if w < MinSliderWidth {
		w = MinSliderWidth
	}
	if w > MaxSliderWidth {
		w = MaxSliderWidth
	}
	return w
}

// RenderSlider renders the slider track at value (0-100) followed by its percentage
func RenderSlider(bar progress.Model, value int, style SliderStyle) string {
	if style.Disabled {
		track := styles.StyleSliderTrack.Render(strings.Repeat("─", style.Width))
		return track + styles.StyleTextMuted.Render(fmt.Sprintf(" %3d %%", value))
	}

	bar.Width = style.Width
	label := fmt.Sprintf(" %3d %%", value)
	if style.Dragging {
		label += " ◂"
	}
	return bar.ViewAs(float64(value)/100.0) + styles.StyleSliderValue.Render(label)
}

// SliderValueAt maps a column offset within the track to a brightness (0-100).
// Offsets outside the track clamp to the ends.
func SliderValueAt(offset, width int) int {
	if width <= 1 || offset <= 0 {
		return 0
	}
	if offset >= width-1 {
		return 100
	}
	return (offset*100 + (width-1)/2) / (width - 1)
}
