package api

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chaos-economy/internal/economy"
	"github.com/vovakirdan/chaos-economy/internal/session"
)

// fakeClock is a settable time source for the registry.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(limits Limits) (*Registry, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(economy.DefaultTable(), nil, nil, limits)
	r.now = clock.Now
	return r, clock
}

func touch(t *testing.T, r *Registry, id string) {
	t.Helper()
	require.NoError(t, r.With(id, func(*session.Controller) error { return nil }))
}

func TestRegistrySweepEvictsIdleSessions(t *testing.T) {
	r, clock := newTestRegistry(Limits{})

	stale, err := r.Create(1)
	require.NoError(t, err)
	fresh, err := r.Create(2)
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	touch(t, r, fresh)
	clock.Advance(15 * time.Minute)

	assert.Equal(t, 1, r.Sweep(30*time.Minute))
	assert.Equal(t, 1, r.Len())
	assert.ErrorIs(t, r.With(stale, func(*session.Controller) error { return nil }), ErrSessionNotFound)
	touch(t, r, fresh)

	clock.Advance(31 * time.Minute)
	assert.Equal(t, 1, r.Sweep(30*time.Minute))
	assert.Zero(t, r.Len())
}

func TestRegistrySweepSkipsBusySession(t *testing.T) {
	r, clock := newTestRegistry(Limits{})

	id, err := r.Create(1)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- r.With(id, func(*session.Controller) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	clock.Advance(time.Hour)
	assert.Zero(t, r.Sweep(time.Minute))
	assert.Equal(t, 1, r.Len())

	close(release)
	require.NoError(t, <-done)
}

func TestRegistryMaxSessions(t *testing.T) {
	r, clock := newTestRegistry(Limits{MaxSessions: 2})

	first, err := r.Create(1)
	require.NoError(t, err)
	_, err = r.Create(2)
	require.NoError(t, err)

	_, err = r.Create(3)
	require.ErrorIs(t, err, ErrTooManySessions)
	assert.Equal(t, 2, r.Len())

	require.NoError(t, r.Delete(first))
	_, err = r.Create(3)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	r.Sweep(time.Minute)
	_, err = r.Create(4)
	assert.NoError(t, err, "evicted sessions must free capacity")
}

func TestRegistryRunSweeper(t *testing.T) {
	r := NewRegistry(economy.DefaultTable(), nil, nil, Limits{IdleTimeout: time.Millisecond})

	_, err := r.Create(1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		r.RunSweeper(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return r.Len() == 0 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestRegistryRunSweeperDisabled(t *testing.T) {
	r := NewRegistry(economy.DefaultTable(), nil, nil, Limits{})

	stopped := make(chan struct{})
	go func() {
		r.RunSweeper(context.Background())
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("sweeper without an idle timeout should return at once")
	}
}
