package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chaos-economy/internal/core"
	"github.com/vovakirdan/chaos-economy/internal/economy"
	"github.com/vovakirdan/chaos-economy/internal/session"
)

var (
	// ErrSessionNotFound is returned for an unknown session id.
	ErrSessionNotFound = errors.New("api: session not found")
	// ErrTooManySessions is returned by Create once the registry is full.
	ErrTooManySessions = errors.New("api: too many sessions")
)

// minSweepInterval bounds how often the sweeper wakes up.
const minSweepInterval = time.Second

// Limits bounds the sessions a registry keeps in memory.
type Limits struct {
	MaxSessions int           // 0 = unlimited
	IdleTimeout time.Duration // 0 = sessions live until deleted
}

// hosted pairs a controller with the lock that serializes its requests.
type hosted struct {
	mu      sync.Mutex
	ctrl    *session.Controller
	touched time.Time // Guarded by mu
}

// Registry owns the sessions served over HTTP.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*hosted
	table    *economy.Table
	recorder session.Recorder
	logger   *log.Logger
	limits   Limits
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry(table *economy.Table, rec session.Recorder, logger *log.Logger, limits Limits) *Registry {
	return &Registry{
		sessions: make(map[string]*hosted),
		table:    table,
		recorder: rec,
		logger:   logger,
		limits:   limits,
		now:      time.Now,
	}
}

// Create starts a new session and returns its id.
func (r *Registry) Create(seed int64) (string, error) {
	cfg := core.DefaultConfig()
	cfg.Seed = seed

	var logger *log.Logger
	if r.logger != nil {
		logger = r.logger.With("transport", "http")
	}
	ctrl := session.New(r.table, cfg, r.recorder, logger)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limits.MaxSessions > 0 && len(r.sessions) >= r.limits.MaxSessions {
		return "", ErrTooManySessions
	}
	r.sessions[ctrl.ID()] = &hosted{ctrl: ctrl, touched: r.now()}
	return ctrl.ID(), nil
}

// With runs fn while holding the session's lock and marks the session used.
func (r *Registry) With(id string, fn func(*session.Controller) error) error {
	r.mu.RLock()
	h, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.touched = r.now()
	return fn(h.ctrl)
}

// Delete forgets a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops every session untouched for longer than idle and returns how
// many were dropped. A session busy in With is never dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, h := range r.sessions {
		if !h.mu.TryLock() {
			continue
		}
		stale := h.touched.Before(cutoff)
		h.mu.Unlock()
		if stale {
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 && r.logger != nil {
		r.logger.Debug("evicted idle sessions", "count", evicted, "remaining", len(r.sessions))
	}
	return evicted
}

// RunSweeper evicts idle sessions until ctx is done. It returns at once when
// the registry has no idle timeout.
func (r *Registry) RunSweeper(ctx context.Context) {
	idle := r.limits.IdleTimeout
	if idle <= 0 {
		return
	}

	ticker := time.NewTicker(max(idle/4, minSweepInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(idle)
		}
	}
}
