// Package sink delivers finished-session results to append-only collaborators:
// the SQLite store, a CSV log, or a remote webhook. Writes are fire-and-forget
// from the game's point of view; see Dispatcher.
package sink

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/chaos-economy/internal/economy"
)

// Result is the row handed to a sink when a session ends.
type Result struct {
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	economy.Report
}

// Sink accepts finished-session results.
type Sink interface {
	Append(ctx context.Context, r Result) error
}

// Noop discards every result. Used when no sink is configured.
type Noop struct{}

func (Noop) Append(context.Context, Result) error { return nil }

// Multi fans a result out to every sink and joins their errors.
// A failing sink does not stop the others.
type Multi []Sink

// Append writes r to each sink in order.
func (m Multi) Append(ctx context.Context, r Result) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
