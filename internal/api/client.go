package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/angristan/light-tui/internal/models"
)

// HTTPController talks to the light controller's REST endpoints
type HTTPController struct {
	baseURL string
	client  *http.Client
}

// NewHTTPController creates a controller client for the given base URL.
// An empty base URL yields relative request paths, which only work behind a proxy.
func NewHTTPController(baseURL string, timeout time.Duration) *HTTPController {
	return &HTTPController{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the controller base URL
func (c *HTTPController) BaseURL() string {
	return c.baseURL
}

// doRequest performs a request against the controller and checks the status code.
// The caller must close the response body.
func (c *HTTPController) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("path", path).Msg("Controller request failed")
		return nil, fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("Controller request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close() // Error ignored: response already rejected
		return nil, fmt.Errorf("%w: %s %s: status %d: %s", ErrRequestFailed, method, path, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	return resp, nil
}

// FetchStatus retrieves the current light status
func (c *HTTPController) FetchStatus(ctx context.Context) (status models.LightStatus, err error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/current-status", nil, "")
	if err != nil {
		return models.LightStatus{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close response body: %v", ErrRequestFailed, cerr)
		}
	}()

	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return models.LightStatus{}, fmt.Errorf("%w: failed to decode status response: %v", ErrRequestFailed, err)
	}

	return status, nil
}

// LightsOn turns the light on
func (c *HTTPController) LightsOn(ctx context.Context) error {
	return c.command(ctx, http.MethodGet, "/lights-on", nil, "")
}

// LightsOff turns the light off
func (c *HTTPController) LightsOff(ctx context.Context) error {
	return c.command(ctx, http.MethodGet, "/lights-off", nil, "")
}

// SetBrightness sets the light's brightness (0-100)
func (c *HTTPController) SetBrightness(ctx context.Context, brightness int) error {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 100 {
		brightness = 100
	}
	form := url.Values{"brightness": {strconv.Itoa(brightness)}}
	return c.command(ctx, http.MethodPost, "/brightness", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// command sends a state-change request whose response body is ignored
func (c *HTTPController) command(ctx context.Context, method, path string, body io.Reader, contentType string) (err error) {
	resp, err := c.doRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close response body: %v", ErrRequestFailed, cerr)
		}
	}()

	_, _ = io.Copy(io.Discard, resp.Body) // Drain so the connection can be reused
	return nil
}
