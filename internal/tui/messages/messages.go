package messages

import (
	"github.com/angristan/light-tui/internal/models"
)

// StatusMsg carries a freshly polled light status
type StatusMsg struct {
	Status models.LightStatus
}

// StatusClosedMsg indicates the status subscription was closed
type StatusClosedMsg struct{}

// ToggleDoneMsg reports the outcome of an on/off request
type ToggleDoneMsg struct {
	On  bool
	Err error
}

// BrightnessSetMsg reports the outcome of a brightness request
type BrightnessSetMsg struct {
	Value int
	Gen   uint64
	Err   error
}

// DragReleaseMsg ends the commit grace window of drag generation Gen
type DragReleaseMsg struct {
	Gen uint64
}

// DragIdleMsg fires when a keyboard drag has been idle long enough to commit
type DragIdleMsg struct {
	Gen uint64
}

// ShowSettingsMsg requests showing the settings view
type ShowSettingsMsg struct{}

// HideSettingsMsg requests returning to the light controls
type HideSettingsMsg struct{}
