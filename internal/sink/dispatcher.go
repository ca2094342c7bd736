package sink

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultWriteTimeout bounds a single dispatched write.
const DefaultWriteTimeout = 15 * time.Second

// Dispatcher writes results in the background so the game never waits on a
// sink. Failures are logged and otherwise ignored.
type Dispatcher struct {
	sink    Sink
	logger  *log.Logger
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher wraps s. A nil logger discards log output.
func NewDispatcher(s Sink, logger *log.Logger, timeout time.Duration) *Dispatcher {
	if s == nil {
		s = Noop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &Dispatcher{sink: s, logger: logger, timeout: timeout}
}

// Dispatch schedules r for writing and returns immediately.
// Results dispatched after Close are dropped.
func (d *Dispatcher) Dispatch(r Result) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("result dropped, dispatcher closed", "session", r.SessionID)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sink.Append(ctx, r); err != nil {
			d.logger.Warn("could not record result",
				"session", r.SessionID,
				"final_period", r.FinalPeriod,
				"error", err,
			)
			return
		}
		d.logger.Debug("result recorded", "session", r.SessionID, "final_period", r.FinalPeriod)
	}()
}

// Close stops accepting results and waits for in-flight writes.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
