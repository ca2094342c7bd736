// Package session drives one game of Economía caótica: it owns the game
// state and the RNG, applies player actions in order, and hands the final
// report to a recorder exactly once per game.
//
// A Controller is not safe for concurrent use. Transports that host many
// players give each one its own controller.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/chaos-economy/internal/core"
	"github.com/vovakirdan/chaos-economy/internal/economy"
	"github.com/vovakirdan/chaos-economy/internal/sink"
)

var (
	// ErrInvalidAction is returned for malformed or negative consumption.
	ErrInvalidAction = errors.New("session: invalid action")
	// ErrSessionOver is returned for submissions after the game has ended.
	ErrSessionOver = errors.New("session: game is over")
	// ErrSessionActive is returned when a report is requested mid-game.
	ErrSessionActive = errors.New("session: game still in progress")
)

// Phase is the lifecycle state of a game.
type Phase string

const (
	PhasePlaying Phase = "playing"
	PhaseLost    Phase = "lost"
	PhaseWon     Phase = "won" // Survived every period in the table
)

// Terminal reports whether the phase ends the game.
func (p Phase) Terminal() bool {
	return p == PhaseLost || p == PhaseWon
}

// Recorder receives finished games. *sink.Dispatcher satisfies it.
type Recorder interface {
	Dispatch(r sink.Result)
}

// Controller is the state machine for a single player.
type Controller struct {
	id     string
	table  *economy.Table
	seed   int64
	rng    *rand.Rand
	state  *economy.GameState
	phase  Phase
	last   *economy.ResolverResult
	report *economy.Report

	recorder  Recorder
	logger    *log.Logger
	listeners []func(Snapshot)
	now       func() time.Time
}

// New creates a controller with a fresh game. A nil table uses the built-in
// one; a nil recorder drops results; a nil logger discards log output.
func New(table *economy.Table, cfg core.RuntimeConfig, rec Recorder, logger *log.Logger) *Controller {
	if table == nil {
		table = economy.DefaultTable()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Controller{
		id:       uuid.NewString(),
		table:    table,
		seed:     cfg.Seed,
		state:    economy.NewGameState(),
		recorder: rec,
		logger:   logger,
		now:      time.Now,
	}
	c.reset()
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Table returns the period table the session plays on.
func (c *Controller) Table() *economy.Table {
	return c.table
}

// OnChange registers a listener called after every state transition.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.listeners = append(c.listeners, fn)
}

// Handle applies a discrete input event.
// Actions that do not concern the game itself are ignored.
func (c *Controller) Handle(ev core.Event) error {
	switch ev.Action {
	case core.ActionSubmit:
		_, err := c.Submit(ev.Consumption)
		return err
	case core.ActionRestart:
		c.Restart()
	}
	return nil
}

// Submit plays one round with the given consumption.
// Elimination is reported through the phase, not as an error.
func (c *Controller) Submit(consumption int) (economy.ResolverResult, error) {
	if consumption < 0 {
		return economy.ResolverResult{}, fmt.Errorf("%w: consumption %d is negative", ErrInvalidAction, consumption)
	}
	if c.phase.Terminal() {
		return economy.ResolverResult{}, ErrSessionOver
	}

	period := c.state.CurrentPeriod
	rec, ok := c.table.Period(period)
	if !ok {
		c.finish(PhaseWon)
		c.notify()
		return economy.ResolverResult{}, ErrSessionOver
	}

	res := economy.Resolve(c.state, rec, float64(consumption))
	c.last = &res

	c.logger.Debug("round resolved",
		"session", c.id,
		"period", period,
		"consumption", consumption,
		"outcome", res.Outcome,
		"savings", res.Savings,
	)

	switch {
	case res.Eliminated():
		c.finish(PhaseLost)
	default:
		c.state.BankStatus = economy.BankStatusAfter(c.table, period, c.rng)
		c.state.CurrentPeriod++
		if c.state.CurrentPeriod > c.table.Len() {
			c.finish(PhaseWon)
		}
	}

	c.notify()
	return res, nil
}

// Restart discards the current game and starts a new one.
// A configured seed replays the same bank draws.
func (c *Controller) Restart() {
	c.reset()
	c.logger.Debug("session restarted", "session", c.id)
	c.notify()
}

// Report returns the summary of a finished game.
func (c *Controller) Report() (economy.Report, error) {
	if c.report == nil {
		return economy.Report{}, ErrSessionActive
	}
	return *c.report, nil
}

// Indicators returns the public figures for the current period.
// ok is false once the game has ended.
func (c *Controller) Indicators() (economy.Indicators, bool) {
	if c.phase.Terminal() {
		return economy.Indicators{}, false
	}
	return economy.IndicatorsFor(c.table, c.state)
}

// LastRound returns the breakdown of the most recent round, if any.
func (c *Controller) LastRound() (economy.ResolverResult, bool) {
	if c.last == nil {
		return economy.ResolverResult{}, false
	}
	return *c.last, true
}

func (c *Controller) reset() {
	c.rng = rand.New(rand.NewSource(core.RuntimeConfig{Seed: c.seed}.EffectiveSeed()))
	c.state.Reset()
	c.phase = PhasePlaying
	c.last = nil
	c.report = nil
}

// finish moves to a terminal phase and records the game once.
func (c *Controller) finish(phase Phase) {
	c.phase = phase
	if c.report != nil {
		return
	}

	report := economy.BuildReport(c.state)
	c.report = &report

	c.logger.Info("game over",
		"session", c.id,
		"phase", phase,
		"final_period", report.FinalPeriod,
		"category", report.Category,
	)

	if c.recorder != nil {
		c.recorder.Dispatch(sink.Result{
			SessionID: c.id,
			Timestamp: c.now(),
			Report:    report,
		})
	}
}

func (c *Controller) notify() {
	if len(c.listeners) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, fn := range c.listeners {
		fn(snap)
	}
}
