package economy

// Growth thresholds for bank closures.
const (
	severeContraction   = -4.00
	moderateContraction = -2.00

	severeClosureProb   = 0.5
	moderateClosureProb = 0.3
)

// RandomSource yields uniform samples in [0, 1).
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// ClosureProbability returns the chance of a bank closure following a period
// with the given growth.
func ClosureProbability(growthPct float64) float64 {
	switch {
	case growthPct < severeContraction:
		return severeClosureProb
	case growthPct <= moderateContraction:
		return moderateClosureProb
	default:
		return 0
	}
}

// NextBankStatus derives the bank status from prior-period growth.
// Period 1 has no prior data and is always open without consuming a sample.
// Every later period consumes exactly one sample, so a seeded source
// reproduces the same sequence regardless of the probabilities involved.
func NextBankStatus(periodIndex int, priorGrowthPct float64, rng RandomSource) BankStatus {
	if periodIndex <= 1 {
		return BankOpen
	}
	if rng.Float64() < ClosureProbability(priorGrowthPct) {
		return BankClosed
	}
	return BankOpen
}

// BankStatusAfter draws the status that follows the completed period,
// reading the growth of the record immediately before it.
func BankStatusAfter(t *Table, completed int, rng RandomSource) BankStatus {
	prior, ok := t.Period(completed - 1)
	if !ok {
		return NextBankStatus(1, 0, rng)
	}
	return NextBankStatus(completed, prior.GrowthPct, rng)
}
