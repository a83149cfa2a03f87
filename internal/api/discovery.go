package api

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/rs/zerolog/log"
)

// DiscoveredController represents a light controller found during discovery
type DiscoveredController struct {
	// IP address of the controller
	Host string
	// HTTP port
	Port int
	// Instance name from mDNS
	Name string
}

// BaseURL returns the HTTP base URL of the discovered controller
func (d DiscoveredController) BaseURL() string {
	if d.Port == 0 || d.Port == 80 {
		return "http://" + d.Host
	}
	return "http://" + net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// DiscoverMDNS discovers light controllers on the local network using mDNS.
// Only entries whose instance name contains nameFilter (case-insensitive) are kept;
// an empty filter keeps everything.
func DiscoverMDNS(ctx context.Context, service, nameFilter string, timeout time.Duration) ([]DiscoveredController, error) {
	var controllers []DiscoveredController
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Create a channel for mDNS entries
	entriesCh := make(chan *mdns.ServiceEntry, 10)

	// Collect entries until the channel is closed
	wg.Add(1)
	go func() {
		defer wg.Done()
		seen := make(map[string]bool)
		for entry := range entriesCh {
			controller, ok := controllerFromEntry(entry, nameFilter)
			if !ok || seen[controller.BaseURL()] {
				continue
			}
			seen[controller.BaseURL()] = true

			log.Debug().Str("name", controller.Name).Str("url", controller.BaseURL()).Msg("Discovered light controller")

			mu.Lock()
			controllers = append(controllers, controller)
			mu.Unlock()
		}
	}()

	params := mdns.DefaultParams(service)
	params.Entries = entriesCh
	params.Timeout = timeout
	params.DisableIPv6 = true

	err := mdns.QueryContext(ctx, params)
	close(entriesCh)
	wg.Wait()

	if err != nil {
		return controllers, fmt.Errorf("mDNS query failed: %w", err)
	}

	return controllers, nil
}

// controllerFromEntry converts an mDNS entry, applying the name filter
func controllerFromEntry(entry *mdns.ServiceEntry, nameFilter string) (DiscoveredController, bool) {
	if entry == nil || entry.AddrV4 == nil {
		return DiscoveredController{}, false
	}

	name := entry.Name
	if name == "" && entry.Host != "" {
		name = strings.TrimSuffix(entry.Host, ".")
	}

	if nameFilter != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(nameFilter)) {
		return DiscoveredController{}, false
	}

	return DiscoveredController{
		Host: entry.AddrV4.String(),
		Port: entry.Port,
		Name: name,
	}, true
}
