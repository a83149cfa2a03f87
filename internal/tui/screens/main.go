package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/angristan/light-tui/internal/models"
	"github.com/angristan/light-tui/internal/tui/components"
	"github.com/angristan/light-tui/internal/tui/messages"
	"github.com/angristan/light-tui/internal/tui/styles"
)

// Row layout of the main view. Mouse hit-testing relies on it, so View must
// keep rendering exactly one line per row.
const (
	rowHeader = iota
	_
	rowStatus // StatusPanelLines lines
	_
	_
	_
	_
	rowSliderLabel
	rowSlider
	_
	rowButton
	_
	rowLinks
)

// contentIndent is the left margin of the slider and the button
const contentIndent = 2

// brightnessStep is how far one arrow key press moves the slider
const brightnessStep = 5

// Controls is the interaction state the main view renders and drives
type Controls interface {
	Toggle(status models.LightStatus) tea.Cmd
	DragChange(value int)
	Nudge(delta int) tea.Cmd
	DragCommit(value int) tea.Cmd
	CancelDrag(status models.LightStatus)

	Pending() bool
	Dragging() bool
	SliderValue() int
	Err() error
}

// mainKeyMap defines key bindings for the main screen
type mainKeyMap struct {
	Toggle   key.Binding
	Dimmer   key.Binding
	Brighter key.Binding
	Commit   key.Binding
	Preset   key.Binding
	Cancel   key.Binding
	Settings key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k mainKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Dimmer, k.Brighter, k.Settings, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k mainKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Dimmer, k.Brighter, k.Commit},
		{k.Preset, k.Cancel, k.Settings},
		{k.Help, k.Quit},
	}
}

func newMainKeyMap() mainKeyMap {
	return mainKeyMap{
		Toggle:   key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space", "on/off")),
		Dimmer:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "dim")),
		Brighter: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "brighten")),
		Commit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply now")),
		Preset:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("1-0", "10-100%")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// MainModel is the light controls screen model
type MainModel struct {
	endpoint  string
	connected bool

	keys    mainKeyMap
	help    help.Model
	spinner spinner.Model
	bar     progress.Model

	// mouseDrag is true while the left button is held on the slider
	mouseDrag bool

	width  int
	height int
}

// NewMainModel creates a new main screen model
func NewMainModel(endpoint string) MainModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StyleSpinner

	h := help.New()
	h.Styles.ShortKey = styles.StyleHelpKey
	h.Styles.FullKey = styles.StyleHelpKey
	h.Styles.ShortDesc = styles.StyleHelp
	h.Styles.FullDesc = styles.StyleHelp

	return MainModel{
		endpoint: endpoint,
		keys:     newMainKeyMap(),
		help:     h,
		spinner:  sp,
		bar:      components.NewSliderBar(),
	}
}

// Init initializes the main screen
func (m MainModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *MainModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// SetConnected records whether the last poll reached the controller
func (m *MainModel) SetConnected(connected bool) {
	m.connected = connected
}

func (m MainModel) sliderWidth() int {
	return components.SliderWidth(m.width)
}

// Update handles messages for the main screen
func (m MainModel) Update(msg tea.Msg, status models.LightStatus, c Controls) (MainModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			cmds = append(cmds, c.Toggle(status))

		case key.Matches(msg, m.keys.Dimmer):
			if status.TurnedOn {
				cmds = append(cmds, c.Nudge(-brightnessStep))
			}

		case key.Matches(msg, m.keys.Brighter):
			if status.TurnedOn {
				cmds = append(cmds, c.Nudge(brightnessStep))
			}

		case key.Matches(msg, m.keys.Commit):
			if status.TurnedOn && c.Dragging() {
				cmds = append(cmds, c.DragCommit(c.SliderValue()))
			}

		case key.Matches(msg, m.keys.Preset):
			if status.TurnedOn {
				if v := brightnessFromKey(msg.String()); v >= 0 {
					c.DragChange(v)
					cmds = append(cmds, c.DragCommit(v))
				}
			}

		case key.Matches(msg, m.keys.Cancel):
			c.CancelDrag(status)

		case key.Matches(msg, m.keys.Settings):
			cmds = append(cmds, func() tea.Msg { return messages.ShowSettingsMsg{} })

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg, status, c))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleMouse maps presses, motion and releases on the slider row to a drag,
// and a click on the button to a toggle.
func (m *MainModel) handleMouse(msg tea.MouseMsg, status models.LightStatus, c Controls) tea.Cmd {
	width := m.sliderWidth()
	offset := msg.X - contentIndent

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if msg.Y == rowSlider && offset >= 0 && offset < width && status.TurnedOn {
			m.mouseDrag = true
			c.DragChange(components.SliderValueAt(offset, width))
			return nil
		}
		if msg.Y == rowButton && offset >= 0 && offset < m.buttonWidth(status) {
			return c.Toggle(status)
		}

	case tea.MouseActionMotion:
		if m.mouseDrag {
			c.DragChange(components.SliderValueAt(offset, width))
		}

	case tea.MouseActionRelease:
		if m.mouseDrag {
			m.mouseDrag = false
			return c.DragCommit(components.SliderValueAt(offset, width))
		}
	}

	return nil
}

func (m MainModel) buttonWidth(status models.LightStatus) int {
	return lipgloss.Width(components.RenderButton(status.ActionLabel(), false))
}

// View renders the main screen
func (m MainModel) View(status models.LightStatus, c Controls) string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	indent := strings.Repeat(" ", contentIndent)

	lines := make([]string, 0, rowLinks+2)

	// Header
	lines = append(lines, components.RenderHeader(width, m.endpoint, m.connected))
	lines = append(lines, "")

	// Current status
	lines = append(lines, strings.Split(components.RenderStatusPanel(status), "\n")...)
	lines = append(lines, "")

	// Brightness slider
	label := styles.StyleSectionTitle.Render("Brightness")
	if !status.TurnedOn {
		label += styles.StyleTextMuted.Render("  (light is off)")
	}
	lines = append(lines, label)
	lines = append(lines, indent+components.RenderSlider(m.bar, c.SliderValue(), components.SliderStyle{
		Width:    m.sliderWidth(),
		Disabled: !status.TurnedOn,
		Dragging: c.Dragging(),
	}))
	lines = append(lines, "")

	// On/off button, disabled while a toggle is outstanding
	button := indent + components.RenderButton(status.ActionLabel(), c.Pending())
	if c.Pending() {
		button += "  " + m.spinner.View() + styles.StyleTextMuted.Render(" Sending…")
	}
	if c.Err() != nil {
		button += "  " + styles.StyleError.Render("An error occurred.")
	}
	lines = append(lines, button)
	lines = append(lines, "")

	// Navigation
	lines = append(lines, indent+styles.StyleLink.Render("Settings")+styles.StyleHelp.Render(" (s)"))

	lines = append(lines, "", m.help.View(m.keys))

	return strings.Join(lines, "\n")
}

func brightnessFromKey(key string) int {
	switch key {
	case "0":
		return 100
	case "1":
		return 10
	case "2":
		return 20
	case "3":
		return 30
	case "4":
		return 40
	case "5":
		return 50
	case "6":
		return 60
	case "7":
		return 70
	case "8":
		return 80
	case "9":
		return 90
	default:
		return -1
	}
}
