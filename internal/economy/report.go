package economy

// Category is the cosmetic outcome band a final period falls into.
type Category int

const (
	CategoryLazy Category = iota
	CategoryAggressive
	CategoryNormal
	CategoryFearful
	CategorySmart
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case CategoryLazy:
		return "Lazy"
	case CategoryAggressive:
		return "Aggressive"
	case CategoryNormal:
		return "Normal"
	case CategoryFearful:
		return "Fearful"
	case CategorySmart:
		return "Smart"
	default:
		return "Unknown"
	}
}

// Asset returns the opaque image identifier for the category.
func (c Category) Asset() string {
	switch c {
	case CategoryLazy:
		return "flojo"
	case CategoryAggressive:
		return "agresivo"
	case CategoryNormal:
		return "normal"
	case CategoryFearful:
		return "miedoso"
	default:
		return "inteligente"
	}
}

// MarshalText encodes the category as its name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// OutcomeFor maps the final period reached to its band:
// ≤5, 6–9, 10–14, 15–17, ≥18.
func OutcomeFor(finalPeriod int) Category {
	switch {
	case finalPeriod <= 5:
		return CategoryLazy
	case finalPeriod <= 9:
		return CategoryAggressive
	case finalPeriod <= 14:
		return CategoryNormal
	case finalPeriod <= 17:
		return CategoryFearful
	default:
		return CategorySmart
	}
}

// Report summarizes a finished session.
type Report struct {
	FinalPeriod  int       `json:"final_period"`
	Consumptions []float64 `json:"consumptions"`
	Category     Category  `json:"category"`
	Survived     bool      `json:"survived"`
}

// BuildReport derives the report from the state's history.
// A lost session reports the period it was lost in; a survivor reports the
// last period it played.
func BuildReport(state *GameState) Report {
	final := state.CurrentPeriod
	survived := !state.Lost
	if survived && len(state.History) > 0 {
		final = state.History[len(state.History)-1].Period
	}
	return Report{
		FinalPeriod:  final,
		Consumptions: state.Consumptions(),
		Category:     OutcomeFor(final),
		Survived:     survived,
	}
}
