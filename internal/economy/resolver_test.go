package economy

import (
	"math"
	"testing"
)

func record(minSpend, wage float64) PeriodRecord {
	return PeriodRecord{Period: 1, MinSpend: minSpend, Wage: wage}
}

func TestResolveSolvencyPreCheck(t *testing.T) {
	rec := record(2000, 1000)

	for _, consumption := range []float64{0, 650, 2000, 5000} {
		s := NewGameState()
		s.Savings = 500

		res := Resolve(s, rec, consumption)

		if !res.Eliminated() {
			t.Errorf("consumption %.0f: expected elimination", consumption)
		}
		if res.Reason != ReasonInsolvent {
			t.Errorf("consumption %.0f: reason = %v, expected %v", consumption, res.Reason, ReasonInsolvent)
		}
		if !s.Lost {
			t.Errorf("consumption %.0f: state should be lost", consumption)
		}
		if s.Savings != 500 {
			t.Errorf("consumption %.0f: savings changed to %.2f", consumption, s.Savings)
		}
		if len(s.History) != 0 {
			t.Errorf("consumption %.0f: history should be empty, got %d entries", consumption, len(s.History))
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		minSpend    float64
		wage        float64
		savings     float64
		bank        BankStatus
		consumption float64
		eliminated  bool
		reason      Reason
		savingsOut  float64
		penalty     float64
	}{
		{
			name:        "under-spend penalty",
			minSpend:    650,
			wage:        1000,
			savings:     800,
			consumption: 0,
			savingsOut:  85,
			penalty:     65,
		},
		{
			name:        "under-spend elimination",
			minSpend:    650,
			wage:        1000,
			savings:     100,
			consumption: 0,
			eliminated:  true,
			reason:      ReasonWithdrawalExceedsSavings,
			savingsOut:  100,
			penalty:     65,
		},
		{
			name:        "over-spend reduces savings",
			minSpend:    650,
			wage:        1000,
			savings:     500,
			consumption: 1200,
			savingsOut:  300,
		},
		{
			name:        "exact minimum spend keeps the surplus",
			minSpend:    650,
			wage:        1000,
			savings:     800,
			consumption: 650,
			savingsOut:  1150,
		},
		{
			name:        "closed bank haircut after surplus",
			minSpend:    650,
			wage:        1000,
			savings:     500,
			bank:        BankClosed,
			consumption: 1200,
			savingsOut:  285,
		},
		{
			name:        "closed bank haircut after penalty",
			minSpend:    650,
			wage:        1000,
			savings:     800,
			bank:        BankClosed,
			consumption: 0,
			savingsOut:  80.75,
			penalty:     65,
		},
		{
			name:        "withdrawal equal to savings survives",
			minSpend:    650,
			wage:        1000,
			savings:     715,
			consumption: 0,
			savingsOut:  0,
			penalty:     65,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewGameState()
			s.Savings = tc.savings
			s.BankStatus = tc.bank

			res := Resolve(s, record(tc.minSpend, tc.wage), tc.consumption)

			if res.Eliminated() != tc.eliminated {
				t.Fatalf("Eliminated() = %v, expected %v", res.Eliminated(), tc.eliminated)
			}
			if res.Reason != tc.reason {
				t.Errorf("Reason = %v, expected %v", res.Reason, tc.reason)
			}
			if s.Savings != tc.savingsOut {
				t.Errorf("savings = %.2f, expected %.2f", s.Savings, tc.savingsOut)
			}
			if math.Abs(res.Penalty-tc.penalty) > 1e-9 {
				t.Errorf("Penalty = %.4f, expected %.4f", res.Penalty, tc.penalty)
			}
			if s.Lost != tc.eliminated {
				t.Errorf("state.Lost = %v, expected %v", s.Lost, tc.eliminated)
			}

			wantHistory := 1
			if tc.eliminated {
				wantHistory = 0
			}
			if len(s.History) != wantHistory {
				t.Fatalf("history length = %d, expected %d", len(s.History), wantHistory)
			}
			if wantHistory == 1 {
				h := s.History[0]
				if h.Consumption != tc.consumption || h.ResultingSavings != tc.savingsOut || h.BankStatus != tc.bank {
					t.Errorf("history entry = %+v", h)
				}
			}
		})
	}
}

func TestResolveToleratesFractionalConsumption(t *testing.T) {
	s := NewGameState()
	res := Resolve(s, record(650, 1000), 649.5)

	if res.Eliminated() {
		t.Fatal("fractional consumption should not eliminate")
	}
	// shortfall 0.5, penalty 0.05 -> 800 - 0.55
	if s.Savings != 799.45 {
		t.Errorf("savings = %.2f, expected 799.45", s.Savings)
	}
}

func TestHistoryAppendOnly(t *testing.T) {
	table := DefaultTable()
	s := NewGameState()

	for k := 1; k <= 5; k++ {
		rec, _ := table.Period(s.CurrentPeriod)
		res := Resolve(s, rec, rec.MinSpend)
		if res.Eliminated() {
			t.Fatalf("round %d eliminated unexpectedly", k)
		}
		s.CurrentPeriod++

		if len(s.History) != k {
			t.Fatalf("after %d rounds history length = %d", k, len(s.History))
		}
		if s.History[k-1].Period != k {
			t.Errorf("entry %d has period %d", k-1, s.History[k-1].Period)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{85, 85},
		{284.99999999999994, 285},
		{80.754, 80.75},
		{-0.125, -0.13},
		{0.125, 0.13},
	}

	for _, tc := range tests {
		if got := RoundMoney(tc.in); got != tc.expected {
			t.Errorf("RoundMoney(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}
