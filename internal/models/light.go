package models

import "fmt"

// LightStatus is the most recent status reported by the light controller.
// It is replaced wholesale on every successful poll, never merged.
type LightStatus struct {
	// Whether the light is currently turned on
	TurnedOn bool `json:"turnedOn"`
	// Brightness percentage (0-100) or Unknown
	Brightness Percent `json:"brightness"`
	// Ambient light sensor reading (0-100) or Unknown
	LightLevel Percent `json:"lightLevel"`
}

// InitialStatus returns the status shown before the first successful poll
func InitialStatus() LightStatus {
	return LightStatus{
		TurnedOn:   false,
		Brightness: UnknownPercent,
		LightLevel: UnknownPercent,
	}
}

// TurnedOnLabel returns "Yes" or "No"
func (s LightStatus) TurnedOnLabel() string {
	if s.TurnedOn {
		return "Yes"
	}
	return "No"
}

// ActionLabel returns the label of the action that flips the current state
func (s LightStatus) ActionLabel() string {
	if s.TurnedOn {
		return "Turn Off"
	}
	return "Turn On"
}

// SliderBrightness returns the brightness used to position the slider.
// Unknown brightness maps to 0.
func (s LightStatus) SliderBrightness() int {
	return s.Brightness.Or(0)
}

func (s LightStatus) String() string {
	return fmt.Sprintf("on=%t brightness=%s level=%s", s.TurnedOn, s.Brightness, s.LightLevel)
}
