package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/angristan/light-tui/internal/api"
	"github.com/angristan/light-tui/internal/config"
	"github.com/angristan/light-tui/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (default: ~/.config/light-tui/config.json)")
	host := flag.String("host", "", "Light controller host or base URL (overrides config and discovery)")
	demoMode := flag.Bool("demo", os.Getenv("LIGHT_DEMO") != "", "Run against an in-memory demo controller")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")
	logFile := flag.String("log-file", "", "Write logs to this file")
	noDiscover := flag.Bool("no-discover", false, "Disable mDNS discovery of the controller")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *noDiscover {
		cfg.Discovery.Enabled = false
	}

	// Setup logging
	closeLog, err := setupLogging(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	controller, err := newController(cfg, *demoMode)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve light controller")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	log.Info().Str("endpoint", controller.BaseURL()).Bool("demo", *demoMode).Msg("Starting light-tui")

	// Create and run the application
	model := tui.NewModel(cfg, controller)
	defer model.Shutdown()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("Program exited with error")
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		model.Shutdown()
		closeLog()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// newController resolves the endpoint once; it never changes while running
func newController(cfg *config.Config, demoMode bool) (api.Controller, error) {
	if demoMode {
		return api.NewDemoController(api.WithLatency(150 * time.Millisecond)), nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		log.Warn().Err(err).Msg("Could not determine hostname")
	}

	endpoint, err := config.Endpoint(context.Background(), cfg, hostname, discover)
	if err != nil {
		return nil, err
	}

	return api.NewHTTPController(endpoint, cfg.RequestTimeout.Duration()), nil
}

// discover returns the first controller answering on mDNS
func discover(ctx context.Context, d config.DiscoveryConfig) (string, error) {
	fmt.Fprintf(os.Stderr, "Looking for %s on the local network...\n", d.Name)

	found, err := api.DiscoverMDNS(ctx, d.Service, d.Name, d.Timeout.Duration())
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", nil
	}

	log.Info().Str("name", found[0].Name).Str("host", found[0].Host).Int("port", found[0].Port).Msg("Discovered light controller")
	return found[0].BaseURL(), nil
}

// setupLogging routes the global logger to file. The terminal belongs to
// the TUI, so logs are discarded when no file is configured.
func setupLogging(level, file string) (func(), error) {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = io.Discard
	closeFn := func() {}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    true,
	})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return closeFn, nil
}
