package economy

// InitialSavings is the balance every session starts with.
const InitialSavings = 800.00

// BankStatus is the state of the banking system during a round.
type BankStatus int

const (
	BankOpen BankStatus = iota
	BankClosed
)

// String returns a human-readable name for the status.
func (b BankStatus) String() string {
	switch b {
	case BankOpen:
		return "Open"
	case BankClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the status as its name.
func (b BankStatus) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// HistoryEntry records one successfully resolved round.
type HistoryEntry struct {
	Period           int        `json:"period"`
	Consumption      float64    `json:"consumption"`
	ResultingSavings float64    `json:"resulting_savings"`
	BankStatus       BankStatus `json:"bank_status"`
}

// GameState is the mutable record of one session.
// CurrentPeriod is 1-based and may reach Len()+1 once every period is played.
type GameState struct {
	CurrentPeriod int
	Savings       float64
	BankStatus    BankStatus
	History       []HistoryEntry
	Lost          bool
}

// NewGameState returns a freshly initialized state.
func NewGameState() *GameState {
	s := &GameState{}
	s.Reset()
	return s
}

// Reset reinitializes the state; nothing carries over.
func (s *GameState) Reset() {
	s.CurrentPeriod = 1
	s.Savings = InitialSavings
	s.BankStatus = BankOpen
	s.History = nil
	s.Lost = false
}

// Consumptions returns the consumption of every recorded round in order.
func (s *GameState) Consumptions() []float64 {
	out := make([]float64, len(s.History))
	for i, h := range s.History {
		out[i] = h.Consumption
	}
	return out
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	c := *s
	if s.History != nil {
		c.History = make([]HistoryEntry, len(s.History))
		copy(c.History, s.History)
	}
	return &c
}
