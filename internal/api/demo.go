package api

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/angristan/light-tui/internal/models"
)

// DemoController implements Controller for demo mode without a real light controller.
// All state changes are maintained in memory.
type DemoController struct {
	mu sync.Mutex

	on         bool
	brightness int
	lightLevel int

	// Latency is applied to every call to simulate the network
	latency time.Duration
	// failNext makes the next N calls fail with ErrRequestFailed
	failNext int

	// Call counters
	fetches     int
	onCalls     int
	offCalls    int
	brightCalls []int
}

// DemoOption configures a DemoController
type DemoOption func(*DemoController)

// WithLatency sets the simulated per-call latency
func WithLatency(d time.Duration) DemoOption {
	return func(c *DemoController) {
		c.latency = d
	}
}

// WithState sets the initial light state
func WithState(on bool, brightness, lightLevel int) DemoOption {
	return func(c *DemoController) {
		c.on = on
		c.brightness = brightness
		c.lightLevel = lightLevel
	}
}

// NewDemoController creates a demo controller with sample state
func NewDemoController(opts ...DemoOption) *DemoController {
	c := &DemoController{
		on:         true,
		brightness: 60,
		lightLevel: 35,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the demo controller address
func (c *DemoController) BaseURL() string {
	return "demo://light-controller.local"
}

// FailNext makes the next n calls fail
func (c *DemoController) FailNext(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext = n
}

// FetchStatus returns the demo light status with a drifting ambient level
func (c *DemoController) FetchStatus(ctx context.Context) (models.LightStatus, error) {
	if err := c.wait(ctx); err != nil {
		return models.LightStatus{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetches++
	if err := c.takeFailure("GET /current-status"); err != nil {
		return models.LightStatus{}, err
	}

	// Ambient level wanders a little between polls
	c.lightLevel += rand.Intn(3) - 1
	c.lightLevel = min(100, max(0, c.lightLevel))

	return models.LightStatus{
		TurnedOn:   c.on,
		Brightness: models.NewPercent(c.brightness),
		LightLevel: models.NewPercent(c.lightLevel),
	}, nil
}

// LightsOn turns the demo light on
func (c *DemoController) LightsOn(ctx context.Context) error {
	return c.setOn(ctx, true)
}

// LightsOff turns the demo light off
func (c *DemoController) LightsOff(ctx context.Context) error {
	return c.setOn(ctx, false)
}

func (c *DemoController) setOn(ctx context.Context, on bool) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if on {
		c.onCalls++
		if err := c.takeFailure("GET /lights-on"); err != nil {
			return err
		}
	} else {
		c.offCalls++
		if err := c.takeFailure("GET /lights-off"); err != nil {
			return err
		}
	}
	c.on = on
	return nil
}

// SetBrightness sets the demo light's brightness (0-100)
func (c *DemoController) SetBrightness(ctx context.Context, brightness int) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	brightness = min(100, max(0, brightness))
	c.brightCalls = append(c.brightCalls, brightness)
	if err := c.takeFailure("POST /brightness"); err != nil {
		return err
	}
	c.brightness = brightness
	return nil
}

// BrightnessRequests returns the brightness values received so far
func (c *DemoController) BrightnessRequests() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.brightCalls...)
}

// Calls returns how many fetch, on and off requests were received
func (c *DemoController) Calls() (fetches, on, off int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches, c.onCalls, c.offCalls
}

// takeFailure consumes one injected failure. Must be called with mu held.
func (c *DemoController) takeFailure(op string) error {
	if c.failNext <= 0 {
		return nil
	}
	c.failNext--
	return fmt.Errorf("%w: %s: simulated failure", ErrRequestFailed, op)
}

// wait simulates network latency
func (c *DemoController) wait(ctx context.Context) error {
	c.mu.Lock()
	latency := c.latency
	c.mu.Unlock()

	if latency <= 0 {
		return nil
	}
	select {
	case <-time.After(latency):
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrRequestFailed, ctx.Err())
	}
}
