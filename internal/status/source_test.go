package status

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angristan/light-tui/internal/models"
)

var errUnreachable = errors.New("controller unreachable")

// scriptedFetcher answers each call with the function registered for its call number
type scriptedFetcher struct {
	mu    sync.Mutex
	calls int
	fn    func(call int) (models.LightStatus, error)
}

func (f *scriptedFetcher) FetchStatus(ctx context.Context) (models.LightStatus, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.fn(call)
}

func (f *scriptedFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func statusWith(on bool, brightness int) models.LightStatus {
	return models.LightStatus{
		TurnedOn:   on,
		Brightness: models.NewPercent(brightness),
		LightLevel: models.NewPercent(10),
	}
}

func TestSource_InitialStatus(t *testing.T) {
	s := New(&scriptedFetcher{}, time.Second)
	assert.Equal(t, models.InitialStatus(), s.Current())
	assert.False(t, s.Running())
}

func TestSource_FetchesImmediately(t *testing.T) {
	f := &scriptedFetcher{fn: func(int) (models.LightStatus, error) {
		return statusWith(true, 42), nil
	}}
	s := New(f, time.Hour)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return s.Current() == statusWith(true, 42)
	}, time.Second, 5*time.Millisecond, "first fetch should not wait for the interval")
	assert.Equal(t, 1, f.Calls())
}

func TestSource_PollsEveryInterval(t *testing.T) {
	f := &scriptedFetcher{fn: func(call int) (models.LightStatus, error) {
		return statusWith(true, call), nil
	}}
	s := New(f, 10*time.Millisecond)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return f.Calls() >= 4 }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, s.Stats().Fetches, uint64(4))
}

func TestSource_FailureKeepsLastKnownGood(t *testing.T) {
	f := &scriptedFetcher{fn: func(call int) (models.LightStatus, error) {
		if call == 1 {
			return statusWith(true, 42), nil
		}
		return models.LightStatus{}, errUnreachable
	}}
	s := New(f, 10*time.Millisecond)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return s.Stats().Failures >= 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, statusWith(true, 42), s.Current())
}

func TestSource_UnreachableFromStart(t *testing.T) {
	f := &scriptedFetcher{fn: func(int) (models.LightStatus, error) {
		return models.LightStatus{}, errUnreachable
	}}
	s := New(f, 10*time.Millisecond)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return s.Stats().Failures >= 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.InitialStatus(), s.Current())
}

func TestSource_StopIsIdempotent(t *testing.T) {
	f := &scriptedFetcher{fn: func(int) (models.LightStatus, error) {
		return statusWith(false, 0), nil
	}}
	s := New(f, 5*time.Millisecond)

	s.Stop() // before Start
	s.Start(context.Background())
	s.Start(context.Background()) // second Start is a no-op
	require.Eventually(t, func() bool { return f.Calls() >= 2 }, time.Second, time.Millisecond)

	s.Stop()
	s.Stop()
	assert.False(t, s.Running())

	// Let fetches started just before Stop reach the fetcher
	time.Sleep(10 * time.Millisecond)
	calls := f.Calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, f.Calls(), "no fetches after Stop")
}

func TestSource_StopsWithContext(t *testing.T) {
	f := &scriptedFetcher{fn: func(int) (models.LightStatus, error) {
		return statusWith(false, 0), nil
	}}
	s := New(f, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return f.Calls() >= 1 }, time.Second, time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	calls := f.Calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, f.Calls())
	s.Stop()
}

// outOfOrderFetcher makes the first fetch resolve after the second one
func outOfOrderFetcher(release <-chan struct{}) *scriptedFetcher {
	return &scriptedFetcher{fn: func(call int) (models.LightStatus, error) {
		switch call {
		case 1:
			<-release
			return statusWith(true, 10), nil
		case 2:
			return statusWith(true, 90), nil
		default:
			return models.LightStatus{}, errUnreachable
		}
	}}
}

func TestSource_DropsStaleResults(t *testing.T) {
	release := make(chan struct{})
	f := outOfOrderFetcher(release)
	s := New(f, 10*time.Millisecond)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return s.Current() == statusWith(true, 90) }, time.Second, time.Millisecond)

	close(release)
	require.Eventually(t, func() bool { return s.Stats().Stale == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, statusWith(true, 90), s.Current())
}

func TestSource_WithoutSequencingLastWriterWins(t *testing.T) {
	release := make(chan struct{})
	f := outOfOrderFetcher(release)
	s := New(f, 10*time.Millisecond, WithoutSequencing())
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return s.Current() == statusWith(true, 90) }, time.Second, time.Millisecond)

	close(release)
	require.Eventually(t, func() bool { return s.Current() == statusWith(true, 10) }, time.Second, time.Millisecond)
	assert.Zero(t, s.Stats().Stale)
}

func TestSubscription_LatestOnly(t *testing.T) {
	s := New(&scriptedFetcher{}, time.Hour)
	sub := s.Subscribe()

	s.apply(1, statusWith(true, 10))
	s.apply(2, statusWith(true, 20))
	s.apply(3, statusWith(true, 30))

	select {
	case got := <-sub.Updates():
		assert.Equal(t, statusWith(true, 30), got)
	default:
		t.Fatal("expected a pending update")
	}

	select {
	case got := <-sub.Updates():
		t.Fatalf("expected no queued history, got %v", got)
	default:
	}
}

func TestSubscription_Unsubscribe(t *testing.T) {
	s := New(&scriptedFetcher{}, time.Hour)
	sub := s.Subscribe()

	sub.Unsubscribe()
	sub.Unsubscribe()

	s.apply(1, statusWith(true, 50))

	_, ok := <-sub.Updates()
	assert.False(t, ok, "channel should be closed")
	assert.Equal(t, statusWith(true, 50), s.Current())
}
