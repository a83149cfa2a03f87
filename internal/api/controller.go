package api

import (
	"context"
	"errors"

	"github.com/angristan/light-tui/internal/models"
)

// ErrRequestFailed covers every failed request to the light controller:
// transport errors, non-2xx responses and undecodable bodies alike.
var ErrRequestFailed = errors.New("request failed")

// Controller defines the interface for talking to the light controller.
// This abstraction allows for both real controller connections and demo mode.
type Controller interface {
	// FetchStatus retrieves the current light status
	FetchStatus(ctx context.Context) (models.LightStatus, error)

	// Light control methods
	LightsOn(ctx context.Context) error
	LightsOff(ctx context.Context) error
	SetBrightness(ctx context.Context, brightness int) error

	// Metadata
	BaseURL() string
}

// Compile-time checks
var (
	_ Controller = (*HTTPController)(nil)
	_ Controller = (*DemoController)(nil)
)
