package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DevHost is the controller address used when running on a development machine
const DevHost = "http://192.168.1.50"

// DiscoveryConfig controls mDNS discovery of the light controller
type DiscoveryConfig struct {
	// Try mDNS when no host is configured
	Enabled bool `json:"enabled"`
	// mDNS service type to browse
	Service string `json:"service"`
	// Case-insensitive instance name filter
	Name string `json:"name"`
	// How long to browse before giving up
	Timeout Duration `json:"timeout"`
}

// LogConfig stores logging settings
type LogConfig struct {
	// debug, info, warn or error
	Level string `json:"level"`
	// Log file path; logs are discarded when empty since the TUI owns the terminal
	File string `json:"file,omitempty"`
}

// Config stores all application configuration
type Config struct {
	// Controller host or base URL (e.g. 192.168.1.50 or http://lights.local:8080)
	Host string `json:"host,omitempty"`
	// Status polling interval
	PollInterval Duration `json:"poll_interval"`
	// Per-request timeout for controller calls
	RequestTimeout Duration `json:"request_timeout"`
	// How long the slider holds its value after a brightness commit
	CommitGrace Duration `json:"commit_grace"`

	Discovery DiscoveryConfig `json:"discovery"`
	Log       LogConfig       `json:"log"`
}

var (
	ErrNoEndpoint      = errors.New("no light controller endpoint configured or discovered")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		PollInterval:   Duration(1 * time.Second),
		RequestTimeout: Duration(5 * time.Second),
		CommitGrace:    Duration(650 * time.Millisecond),
		Discovery: DiscoveryConfig{
			Enabled: true,
			Service: "_http._tcp",
			Name:    "RoomProjectAreaLights",
			Timeout: Duration(2 * time.Second),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// configDir returns the configuration directory path
func configDir() (string, error) {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "light-tui"), nil
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "light-tui"), nil
}

// Path returns the full path to the config file
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from the default location and applies
// environment overrides. The file is never written back.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path and applies environment overrides
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg, nil
}

// applyEnv overrides file values with LIGHT_* environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv("LIGHT_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("LIGHT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LIGHT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// applyDefaults restores defaults for zeroed or nonsensical values
func (c *Config) applyDefaults() {
	def := Default()
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.CommitGrace <= 0 {
		c.CommitGrace = def.CommitGrace
	}
	if c.Discovery.Service == "" {
		c.Discovery.Service = def.Discovery.Service
	}
	if c.Discovery.Timeout <= 0 {
		c.Discovery.Timeout = def.Discovery.Timeout
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// DiscoverFunc looks up a controller base URL on the network
type DiscoverFunc func(ctx context.Context, d DiscoveryConfig) (string, error)

// Endpoint resolves the controller base URL once at startup.
// An explicit host wins; a development machine (hostname "localhost") uses DevHost;
// otherwise discovery is tried when enabled.
func Endpoint(ctx context.Context, c *Config, hostname string, discover DiscoverFunc) (string, error) {
	if c.Host != "" {
		return NormalizeHost(c.Host), nil
	}

	if hostname == "localhost" {
		return DevHost, nil
	}

	if c.Discovery.Enabled && discover != nil {
		base, err := discover(ctx, c.Discovery)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoEndpoint, err)
		}
		if base != "" {
			return NormalizeHost(base), nil
		}
	}

	return "", ErrNoEndpoint
}

// NormalizeHost turns a bare host into an http base URL without a trailing slash
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/")
}

// Duration is a wrapper around time.Duration for JSON duration strings
type Duration time.Duration

// UnmarshalJSON accepts "650ms"-style strings or a number of nanoseconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidDuration, string(data))
		}
		*d = Duration(n)
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalJSON writes the duration as a string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
