package economy

import (
	"encoding/json"
	"testing"
)

func TestEnumsDecodeTheirNames(t *testing.T) {
	in := struct {
		Bank     BankStatus `json:"bank"`
		Outcome  Outcome    `json:"outcome"`
		Reason   Reason     `json:"reason"`
		Category Category   `json:"category"`
	}{BankClosed, OutcomeEliminated, ReasonWithdrawalExceedsSavings, CategoryFearful}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	out := in
	out.Bank, out.Outcome, out.Reason, out.Category = BankOpen, OutcomeSurvived, ReasonNone, CategoryLazy
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal(%s): %v", data, err)
	}
	if out != in {
		t.Errorf("decoded %+v, want %+v", out, in)
	}
}

func TestUnknownNameIsRejected(t *testing.T) {
	var b BankStatus
	if err := b.UnmarshalText([]byte("Ajar")); err == nil {
		t.Error("expected an error for an unknown bank status")
	}
}
