package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/chaos-economy/internal/economy"
)

// Snapshot is a read-only view of a session, safe to render or serialize.
// It never carries the minimum spend of the current period.
type Snapshot struct {
	ID         string                  `json:"id"`
	Phase      Phase                   `json:"phase"`
	Period     int                     `json:"period"`
	Savings    float64                 `json:"savings"`
	BankStatus economy.BankStatus      `json:"bank_status"`
	Indicators *economy.Indicators     `json:"indicators,omitempty"`
	LastRound  *economy.ResolverResult `json:"last_round,omitempty"`
	History    []economy.HistoryEntry  `json:"history"`
	Report     *economy.Report         `json:"report,omitempty"`
}

// Snapshot captures the current session state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		ID:         c.id,
		Phase:      c.phase,
		Period:     c.state.CurrentPeriod,
		Savings:    c.state.Savings,
		BankStatus: c.state.BankStatus,
		History:    append([]economy.HistoryEntry{}, c.state.History...),
	}

	if ind, ok := c.Indicators(); ok {
		snap.Indicators = &ind
	}
	if c.last != nil {
		last := *c.last
		snap.LastRound = &last
	}
	if c.report != nil {
		report := *c.report
		report.Consumptions = append([]float64(nil), c.report.Consumptions...)
		snap.Report = &report
	}

	return snap
}

// ParseConsumption validates typed input: a non-negative whole number.
func ParseConsumption(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: consumption is required", ErrInvalidAction)
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidAction, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: consumption %d is negative", ErrInvalidAction, v)
	}
	return v, nil
}
