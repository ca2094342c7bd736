package economy

// Spread of the inflation estimate shown to the player around the real
// previous-period figure.
const (
	inflationLowFactor  = 0.80
	inflationHighFactor = 1.20
)

// Indicators is what the player sees before choosing a consumption.
// The minimum spend is never included.
type Indicators struct {
	Period        int        `json:"period"`
	Wage          float64    `json:"wage"`
	Savings       float64    `json:"savings"`
	InflationLow  float64    `json:"inflation_low_pct"`
	InflationHigh float64    `json:"inflation_high_pct"`
	PriorGrowth   float64    `json:"prior_growth_pct"`
	BankStatus    BankStatus `json:"bank_status"`
}

// IndicatorsFor builds the public view for the state's current period.
// ok is false when the current period is outside the table.
func IndicatorsFor(t *Table, state *GameState) (Indicators, bool) {
	rec, ok := t.Period(state.CurrentPeriod)
	if !ok {
		return Indicators{}, false
	}

	ind := Indicators{
		Period:     rec.Period,
		Wage:       rec.Wage,
		Savings:    RoundMoney(state.Savings),
		BankStatus: state.BankStatus,
	}

	if prev, ok := t.Period(state.CurrentPeriod - 1); ok {
		ind.InflationLow = RoundMoney(prev.InflationPct * inflationLowFactor)
		ind.InflationHigh = RoundMoney(prev.InflationPct * inflationHighFactor)
		ind.PriorGrowth = prev.GrowthPct
	}

	return ind, true
}
