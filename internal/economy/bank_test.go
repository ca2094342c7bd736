package economy

import (
	"math"
	"math/rand"
	"testing"
)

// fixedSource returns the same sample every time and counts draws.
type fixedSource struct {
	v     float64
	draws int
}

func (f *fixedSource) Float64() float64 {
	f.draws++
	return f.v
}

func TestClosureProbability(t *testing.T) {
	tests := []struct {
		growth   float64
		expected float64
	}{
		{-5.36, 0.5},
		{-4.01, 0.5},
		{-4.00, 0.3},
		{-2.46, 0.3},
		{-2.00, 0.3},
		{-1.99, 0},
		{0, 0},
		{3.95, 0},
	}

	for _, tc := range tests {
		if got := ClosureProbability(tc.growth); got != tc.expected {
			t.Errorf("ClosureProbability(%v) = %v, expected %v", tc.growth, got, tc.expected)
		}
	}
}

func TestNextBankStatusPeriodOneAlwaysOpen(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		if got := NextBankStatus(1, -10, rng); got != BankOpen {
			t.Fatalf("seed %d: period 1 status = %v, expected Open", seed, got)
		}
	}

	src := &fixedSource{v: 0}
	NextBankStatus(1, -10, src)
	if src.draws != 0 {
		t.Errorf("period 1 consumed %d samples, expected 0", src.draws)
	}
}

func TestNextBankStatusThreshold(t *testing.T) {
	tests := []struct {
		name     string
		growth   float64
		sample   float64
		expected BankStatus
	}{
		{"severe below half", -5.0, 0.49, BankClosed},
		{"severe at half", -5.0, 0.5, BankOpen},
		{"moderate below", -3.0, 0.29, BankClosed},
		{"moderate at", -3.0, 0.3, BankOpen},
		{"growth never closes", 1.0, 0.0, BankOpen},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := &fixedSource{v: tc.sample}
			if got := NextBankStatus(4, tc.growth, src); got != tc.expected {
				t.Errorf("NextBankStatus() = %v, expected %v", got, tc.expected)
			}
			if src.draws != 1 {
				t.Errorf("consumed %d samples, expected 1", src.draws)
			}
		})
	}
}

func TestNextBankStatusClosureFrequency(t *testing.T) {
	const trials = 100000
	rng := rand.New(rand.NewSource(20240101))

	closed := 0
	for i := 0; i < trials; i++ {
		if NextBankStatus(5, -5.0, rng) == BankClosed {
			closed++
		}
	}

	freq := float64(closed) / trials
	if math.Abs(freq-0.5) > 0.01 {
		t.Errorf("closure frequency = %.4f, expected 0.5 +/- 0.01", freq)
	}
}

func TestBankStatusAfterReadsPriorRecord(t *testing.T) {
	table := DefaultTable()

	// Completing period 1 has no prior record.
	src := &fixedSource{v: 0}
	if got := BankStatusAfter(table, 1, src); got != BankOpen {
		t.Errorf("after period 1 = %v, expected Open", got)
	}

	// Completing period 3 reads period 2 growth (-3.00 -> 0.3).
	src = &fixedSource{v: 0.29}
	if got := BankStatusAfter(table, 3, src); got != BankClosed {
		t.Errorf("after period 3 = %v, expected Closed", got)
	}

	// Completing period 2 reads period 1 growth (2.00 -> never).
	src = &fixedSource{v: 0}
	if got := BankStatusAfter(table, 2, src); got != BankOpen {
		t.Errorf("after period 2 = %v, expected Open", got)
	}
}
