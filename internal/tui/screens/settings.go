package screens

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/angristan/light-tui/internal/tui/messages"
	"github.com/angristan/light-tui/internal/tui/styles"
)

// SettingsInfo is the read-only configuration shown on the settings screen
type SettingsInfo struct {
	Endpoint     string
	PollInterval time.Duration
	CommitGrace  time.Duration
	ConfigPath   string
}

// SettingsModel is the settings screen model. It has no editable settings yet.
type SettingsModel struct {
	info SettingsInfo

	// Window size
	width  int
	height int
}

// NewSettingsModel creates a new settings screen model
func NewSettingsModel(info SettingsInfo) SettingsModel {
	return SettingsModel{info: info}
}

// SetSize sets the terminal size
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "s", "backspace", "enter":
			return m, func() tea.Msg { return messages.HideSettingsMsg{} }
		}
	}
	return m, nil
}

// View renders the settings screen
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.StyleModalTitle.Render("Settings"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(styles.StyleStatusLabel.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Controller", m.info.Endpoint)
	row("Poll every", m.info.PollInterval.String())
	row("Slider hold", m.info.CommitGrace.String())
	if m.info.ConfigPath != "" {
		row("Config file", m.info.ConfigPath)
	}

	b.WriteString("\n")
	b.WriteString(styles.StyleTextMuted.Render("Settings are read from the config file at startup."))
	b.WriteString("\n\n")
	b.WriteString(styles.StyleLink.Render("Light Controls"))
	b.WriteString(styles.StyleHelp.Render(" (esc)"))

	modal := styles.StyleModal.Render(b.String())

	if m.width <= 0 || m.height <= 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
