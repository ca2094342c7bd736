package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "None"},
		{ActionSubmit, "Submit"},
		{ActionRestart, "Restart"},
		{ActionBack, "Back"},
		{ActionQuit, "Quit"},
		{Action(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestEvents(t *testing.T) {
	if e := Submit(650); e.Action != ActionSubmit || e.Consumption != 650 {
		t.Errorf("Submit(650) = %+v", e)
	}
	if e := Restart(); e.Action != ActionRestart || e.Consumption != 0 {
		t.Errorf("Restart() = %+v", e)
	}
}

func TestEffectiveSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	if got := cfg.EffectiveSeed(); got != 7 {
		t.Errorf("EffectiveSeed() = %d, want 7", got)
	}

	cfg.Seed = 0
	if got := cfg.EffectiveSeed(); got == 0 {
		t.Error("EffectiveSeed() should pick a time-based seed when unset")
	}
}
