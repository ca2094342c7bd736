package economy

import "math"

const (
	// PenaltyRate is the surcharge applied to the gap below minimum spend.
	PenaltyRate = 0.10
	// ClosedBankFactor is applied to savings when the bank is closed.
	ClosedBankFactor = 0.95
)

// Outcome is the result class of one resolution.
type Outcome int

const (
	OutcomeSurvived Outcome = iota
	OutcomeEliminated
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSurvived:
		return "Survived"
	case OutcomeEliminated:
		return "Eliminated"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the outcome as its name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Reason explains an elimination.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonInsolvent means wage plus savings cannot cover the minimum spend.
	ReasonInsolvent
	// ReasonWithdrawalExceedsSavings means the under-spend bill is larger than savings.
	ReasonWithdrawalExceedsSavings
)

// String returns a short description of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonInsolvent:
		return "wage and savings cannot cover the minimum spend"
	case ReasonWithdrawalExceedsSavings:
		return "shortfall and penalty exceed savings"
	default:
		return "unknown"
	}
}

// MarshalText encodes the reason as its description.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ResolverResult is the breakdown of one round.
// Monetary fields are zero when the path that computes them was not taken.
type ResolverResult struct {
	Outcome    Outcome `json:"outcome"`
	Reason     Reason  `json:"reason"`
	Shortfall  float64 `json:"shortfall"`
	Penalty    float64 `json:"penalty"`
	Withdrawal float64 `json:"withdrawal"`
	Surplus    float64 `json:"surplus"`
	Haircut    float64 `json:"haircut"`
	Savings    float64 `json:"savings"`
}

// Eliminated reports whether the round ended the game.
func (r ResolverResult) Eliminated() bool {
	return r.Outcome == OutcomeEliminated
}

// Resolve applies a consumption decision to the state for the given period.
//
// On elimination state.Lost is set and nothing else changes. On success the
// new savings are stored and a history entry is appended. The bank status in
// state is the one in force for this round; it is read, never changed here.
// consumption is expected to be non-negative; callers validate input shape.
func Resolve(state *GameState, rec PeriodRecord, consumption float64) ResolverResult {
	savings := state.Savings

	if rec.Wage+savings < rec.MinSpend {
		state.Lost = true
		return ResolverResult{Outcome: OutcomeEliminated, Reason: ReasonInsolvent, Savings: savings}
	}

	var res ResolverResult
	next := savings

	if consumption < rec.MinSpend {
		res.Shortfall = rec.MinSpend - consumption
		res.Penalty = res.Shortfall * PenaltyRate
		res.Withdrawal = res.Shortfall + res.Penalty

		if res.Withdrawal > savings {
			state.Lost = true
			res.Outcome = OutcomeEliminated
			res.Reason = ReasonWithdrawalExceedsSavings
			res.Savings = savings
			return res
		}
		next -= res.Withdrawal
	} else {
		res.Surplus = rec.Wage - consumption
		next += res.Surplus
	}

	if state.BankStatus == BankClosed {
		haircut := next * ClosedBankFactor
		res.Haircut = next - haircut
		next = haircut
	}

	next = RoundMoney(next)

	state.Savings = next
	state.History = append(state.History, HistoryEntry{
		Period:           rec.Period,
		Consumption:      consumption,
		ResultingSavings: next,
		BankStatus:       state.BankStatus,
	})

	res.Outcome = OutcomeSurvived
	res.Savings = next
	return res
}

// RoundMoney rounds to cents, halves away from zero.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
