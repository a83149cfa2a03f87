package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/angristan/light-tui/internal/api"
	"github.com/angristan/light-tui/internal/models"
	"github.com/angristan/light-tui/internal/tui/messages"
)

const (
	defaultRequestTimeout = 5 * time.Second
	defaultCommitGrace    = 650 * time.Millisecond

	// keyboardIdleCommit is how long arrow-key adjustments settle before being sent
	keyboardIdleCommit = 400 * time.Millisecond
)

// Dispatcher turns user intent into controller requests and owns the
// interaction state of the control view. All methods run on the bubbletea
// loop; network work happens in the returned commands.
type Dispatcher struct {
	controller api.Controller
	timeout    time.Duration
	grace      time.Duration

	// pending is true while an on/off request is outstanding
	pending bool
	// sliderValue tracks the slider locally while dragging
	sliderValue int
	// dragging blocks reconciliation until the commit grace window ends
	dragging  bool
	committed bool
	dragGen   uint64
	// lastErr is cleared only by a later successful request
	lastErr error
}

// NewDispatcher creates a dispatcher for the given controller
func NewDispatcher(controller api.Controller, timeout, grace time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if grace <= 0 {
		grace = defaultCommitGrace
	}
	return &Dispatcher{
		controller: controller,
		timeout:    timeout,
		grace:      grace,
	}
}

func (d *Dispatcher) Pending() bool    { return d.pending }
func (d *Dispatcher) Dragging() bool   { return d.dragging }
func (d *Dispatcher) SliderValue() int { return d.sliderValue }
func (d *Dispatcher) Err() error       { return d.lastErr }

// Toggle turns the light off when status reports it on, and on otherwise.
// It returns nil while a previous toggle is still outstanding.
func (d *Dispatcher) Toggle(status models.LightStatus) tea.Cmd {
	if d.pending {
		return nil
	}
	d.pending = true

	on := !status.TurnedOn
	controller, timeout := d.controller, d.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var err error
		if on {
			err = controller.LightsOn(ctx)
		} else {
			err = controller.LightsOff(ctx)
		}
		return messages.ToggleDoneMsg{On: on, Err: err}
	}
}

// HandleToggleDone re-enables the toggle whatever the outcome
func (d *Dispatcher) HandleToggleDone(msg messages.ToggleDoneMsg) {
	d.pending = false
	d.recordResult(msg.Err, "toggle")
}

// DragChange follows the slider during a drag without sending anything
func (d *Dispatcher) DragChange(value int) {
	d.sliderValue = clampBrightness(value)
	d.dragging = true
	d.committed = false
	d.dragGen++
}

// Nudge moves the slider by delta as a keyboard drag. The value is committed
// once the keys have been idle for a moment.
func (d *Dispatcher) Nudge(delta int) tea.Cmd {
	d.DragChange(d.sliderValue + delta)
	gen := d.dragGen
	return tea.Tick(keyboardIdleCommit, func(time.Time) tea.Msg {
		return messages.DragIdleMsg{Gen: gen}
	})
}

// HandleDragIdle commits a keyboard drag that is still the latest one
func (d *Dispatcher) HandleDragIdle(msg messages.DragIdleMsg) tea.Cmd {
	if !d.dragging || d.committed || msg.Gen != d.dragGen {
		return nil
	}
	return d.DragCommit(d.sliderValue)
}

// DragCommit sends exactly one brightness request for value. The slider keeps
// holding value until the grace window after the request has passed.
func (d *Dispatcher) DragCommit(value int) tea.Cmd {
	value = clampBrightness(value)
	d.sliderValue = value
	d.dragging = true
	d.committed = true
	d.dragGen++

	gen := d.dragGen
	controller, timeout := d.controller, d.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := controller.SetBrightness(ctx, value)
		return messages.BrightnessSetMsg{Value: value, Gen: gen, Err: err}
	}
}

// HandleBrightnessSet records the outcome and schedules the end of the grace window
func (d *Dispatcher) HandleBrightnessSet(msg messages.BrightnessSetMsg) tea.Cmd {
	d.recordResult(msg.Err, "brightness")

	gen := msg.Gen
	return tea.Tick(d.grace, func(time.Time) tea.Msg {
		return messages.DragReleaseMsg{Gen: gen}
	})
}

// HandleDragRelease stops holding the slider unless a newer drag started
func (d *Dispatcher) HandleDragRelease(msg messages.DragReleaseMsg) {
	if msg.Gen != d.dragGen {
		return
	}
	d.dragging = false
	d.committed = false
}

// CancelDrag abandons an uncommitted drag and snaps back to status
func (d *Dispatcher) CancelDrag(status models.LightStatus) {
	if !d.dragging || d.committed {
		return
	}
	d.dragging = false
	d.dragGen++
	d.Reconcile(status)
}

// Reconcile adopts the controller's brightness unless the user is dragging.
// It reports whether the slider moved.
func (d *Dispatcher) Reconcile(status models.LightStatus) bool {
	if d.dragging {
		return false
	}
	backend := status.SliderBrightness()
	if backend == d.sliderValue {
		return false
	}
	d.sliderValue = backend
	return true
}

func (d *Dispatcher) recordResult(err error, op string) {
	if err != nil {
		log.Warn().Err(err).Str("op", op).Msg("Light controller request failed")
		d.lastErr = err
		return
	}
	d.lastErr = nil
}

func clampBrightness(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
