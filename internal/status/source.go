// Package status keeps the latest light status fresh by polling the controller.
package status

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/angristan/light-tui/internal/models"
)

// Fetcher retrieves the current light status. api.Controller satisfies it.
type Fetcher interface {
	FetchStatus(ctx context.Context) (models.LightStatus, error)
}

// Stats counts polling outcomes
type Stats struct {
	Fetches  uint64
	Failures uint64
	Stale    uint64
	LastOK   time.Time
}

// Option configures a Source
type Option func(*Source)

// WithoutSequencing lets any completed fetch overwrite the status,
// even when a newer fetch has already been applied.
func WithoutSequencing() Option {
	return func(s *Source) {
		s.sequenced = false
	}
}

// WithFetchTimeout bounds each individual fetch
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.fetchTimeout = d
	}
}

// Source owns the single authoritative LightStatus and keeps it fresh
type Source struct {
	fetcher      Fetcher
	interval     time.Duration
	fetchTimeout time.Duration
	sequenced    bool

	mu          sync.Mutex
	current     models.LightStatus
	nextSeq     uint64
	appliedSeq  uint64
	stats       Stats
	subscribers map[*Subscription]struct{}

	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
}

// New creates a status source polling fetcher at the given interval
func New(fetcher Fetcher, interval time.Duration, opts ...Option) *Source {
	s := &Source{
		fetcher:      fetcher,
		interval:     interval,
		fetchTimeout: 5 * time.Second,
		sequenced:    true,
		current:      models.InitialStatus(),
		subscribers:  make(map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start performs one fetch immediately and then one per interval until Stop
// or ctx is cancelled. Starting an already running source is a no-op.
func (s *Source) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.mu.Unlock()

	log.Debug().Dur("interval", s.interval).Msg("Status polling started")

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop cancels the timer. It is idempotent and safe to call before Start.
// Fetches already in flight are left to finish; their results are discarded.
func (s *Source) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()

	log.Debug().Msg("Status polling stopped")
}

// Running reports whether polling is active
func (s *Source) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Current returns the latest known status
func (s *Source) Current() models.LightStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Stats returns a snapshot of the polling counters
func (s *Source) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// run is the polling loop
func (s *Source) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

// poll starts one fetch on its own goroutine so a slow controller never delays the next tick
func (s *Source) poll(ctx context.Context) {
	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.stats.Fetches++
	s.mu.Unlock()

	go func() {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()

		status, err := s.fetcher.FetchStatus(fetchCtx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.mu.Lock()
			s.stats.Failures++
			s.mu.Unlock()
			log.Debug().Err(err).Uint64("seq", seq).Msg("Status fetch failed, keeping last known status")
			return
		}
		s.apply(seq, status)
	}()
}

// apply replaces the current status unless a newer fetch already landed
func (s *Source) apply(seq uint64, status models.LightStatus) {
	s.mu.Lock()
	if s.sequenced && seq < s.appliedSeq {
		s.stats.Stale++
		applied := s.appliedSeq
		s.mu.Unlock()
		log.Debug().Uint64("seq", seq).Uint64("applied", applied).Msg("Dropping stale status")
		return
	}
	s.appliedSeq = seq
	s.current = status
	s.stats.LastOK = time.Now()
	subs := make([]*Subscription, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.offer(status)
	}
}

// Subscribe registers a subscriber that receives every applied status.
// Only the latest undelivered value is kept.
func (s *Source) Subscribe() *Subscription {
	sub := &Subscription{
		source: s,
		ch:     make(chan models.LightStatus, 1),
	}
	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()
	return sub
}

// Subscription delivers status updates from a Source
type Subscription struct {
	source *Source
	mu     sync.Mutex
	ch     chan models.LightStatus
	closed bool
}

// Updates returns the channel carrying the latest status.
// It is closed by Unsubscribe.
func (sub *Subscription) Updates() <-chan models.LightStatus {
	return sub.ch
}

// Unsubscribe stops delivery and closes the channel. It is idempotent.
func (sub *Subscription) Unsubscribe() {
	sub.source.mu.Lock()
	delete(sub.source.subscribers, sub)
	sub.source.mu.Unlock()

	sub.mu.Lock()
	defer sub.mu.Unlock()
	if !sub.closed {
		sub.closed = true
		close(sub.ch)
	}
}

// offer delivers status, replacing any value the subscriber has not read yet
func (sub *Subscription) offer(status models.LightStatus) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	select {
	case <-sub.ch:
	default:
	}
	sub.ch <- status
}
