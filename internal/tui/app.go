package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/angristan/light-tui/internal/api"
	"github.com/angristan/light-tui/internal/config"
	"github.com/angristan/light-tui/internal/models"
	"github.com/angristan/light-tui/internal/status"
	"github.com/angristan/light-tui/internal/tui/messages"
	"github.com/angristan/light-tui/internal/tui/screens"
)

// staleAfter is how long the header keeps showing the controller as
// reachable after the last successful poll
const staleAfter = 3 * time.Second

// Screen represents the current screen state
type Screen int

const (
	ScreenMain Screen = iota
	ScreenSettings
)

// Model is the main application model
type Model struct {
	// Controller connection
	controller api.Controller

	// Status source and this view's subscription to it
	source *status.Source
	sub    *status.Subscription

	// Latest status received from the source
	status models.LightStatus

	// Interaction state of the control view
	dispatcher *Dispatcher

	// Current screen
	screen Screen

	// Screen models
	mainScreen     screens.MainModel
	settingsScreen screens.SettingsModel

	// Window size
	width  int
	height int

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates a new application model. Polling starts in Init and
// stops on quit.
func NewModel(cfg *config.Config, controller api.Controller) Model {
	ctx, cancel := context.WithCancel(context.Background())

	source := status.New(controller, cfg.PollInterval.Duration(),
		status.WithFetchTimeout(cfg.RequestTimeout.Duration()))

	configPath, _ := config.Path()

	m := Model{
		controller: controller,
		source:     source,
		sub:        source.Subscribe(),
		status:     source.Current(),
		dispatcher: NewDispatcher(controller, cfg.RequestTimeout.Duration(), cfg.CommitGrace.Duration()),
		screen:     ScreenMain,
		ctx:        ctx,
		cancel:     cancel,
	}

	m.mainScreen = screens.NewMainModel(controller.BaseURL())
	m.settingsScreen = screens.NewSettingsModel(screens.SettingsInfo{
		Endpoint:     controller.BaseURL(),
		PollInterval: cfg.PollInterval.Duration(),
		CommitGrace:  cfg.CommitGrace.Duration(),
		ConfigPath:   configPath,
	})

	return m
}

// Source returns the status source owned by the model
func (m Model) Source() *status.Source {
	return m.source
}

// Init initializes the application and starts polling
func (m Model) Init() tea.Cmd {
	m.source.Start(m.ctx)

	return tea.Batch(
		tea.SetWindowTitle("Light Controller"),
		m.mainScreen.Init(),
		waitForStatus(m.sub),
	)
}

// Shutdown stops polling and releases the subscription. It is idempotent.
func (m Model) Shutdown() {
	m.sub.Unsubscribe()
	m.source.Stop()
	m.cancel()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mainScreen.SetSize(msg.Width, msg.Height)
		m.settingsScreen.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		// Global key handlers
		switch msg.String() {
		case "ctrl+c", "q":
			m.Shutdown()
			return m, tea.Quit
		}

	case messages.StatusMsg:
		m.status = msg.Status
		m.mainScreen.SetConnected(true)
		cmds = append(cmds, waitForStatus(m.sub))

	case spinner.TickMsg:
		// The spinner ticks steadily, so it doubles as the reachability check.
		// It keeps ticking while the settings screen is shown.
		m.mainScreen.SetConnected(m.connected())
		var cmd tea.Cmd
		m.mainScreen, cmd = m.mainScreen.Update(msg, m.status, m.dispatcher)
		m.dispatcher.Reconcile(m.status)
		return m, cmd

	case messages.StatusClosedMsg:
		log.Debug().Msg("Status subscription closed")

	case messages.ToggleDoneMsg:
		m.dispatcher.HandleToggleDone(msg)

	case messages.BrightnessSetMsg:
		cmds = append(cmds, m.dispatcher.HandleBrightnessSet(msg))

	case messages.DragReleaseMsg:
		m.dispatcher.HandleDragRelease(msg)

	case messages.DragIdleMsg:
		cmds = append(cmds, m.dispatcher.HandleDragIdle(msg))

	case messages.ShowSettingsMsg:
		m.screen = ScreenSettings
		return m, nil

	case messages.HideSettingsMsg:
		m.screen = ScreenMain
		return m, nil
	}

	// Route to current screen
	switch m.screen {
	case ScreenMain:
		var cmd tea.Cmd
		m.mainScreen, cmd = m.mainScreen.Update(msg, m.status, m.dispatcher)
		cmds = append(cmds, cmd)

	case ScreenSettings:
		var cmd tea.Cmd
		m.settingsScreen, cmd = m.settingsScreen.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Every update precedes a render, so this is the per-render reconciliation point
	m.dispatcher.Reconcile(m.status)

	return m, tea.Batch(cmds...)
}

// View renders the current screen
func (m Model) View() string {
	switch m.screen {
	case ScreenMain:
		return m.mainScreen.View(m.status, m.dispatcher)
	case ScreenSettings:
		return m.settingsScreen.View()
	default:
		return "Unknown screen"
	}
}

// connected reports whether a poll succeeded recently
func (m Model) connected() bool {
	last := m.source.Stats().LastOK
	return !last.IsZero() && time.Since(last) < staleAfter
}

// waitForStatus blocks until the source publishes a status
func waitForStatus(sub *status.Subscription) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-sub.Updates()
		if !ok {
			return messages.StatusClosedMsg{}
		}
		return messages.StatusMsg{Status: st}
	}
}
