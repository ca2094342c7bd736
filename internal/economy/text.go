package economy

import "fmt"

// parseName returns the value whose String form equals text.
func parseName[T fmt.Stringer](kind string, text []byte, values ...T) (T, error) {
	for _, v := range values {
		if v.String() == string(text) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("economy: unknown %s %q", kind, text)
}

// UnmarshalText decodes a status name.
func (b *BankStatus) UnmarshalText(text []byte) error {
	v, err := parseName("bank status", text, BankOpen, BankClosed)
	if err == nil {
		*b = v
	}
	return err
}

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, err := parseName("outcome", text, OutcomeSurvived, OutcomeEliminated)
	if err == nil {
		*o = v
	}
	return err
}

// UnmarshalText decodes a reason description.
func (r *Reason) UnmarshalText(text []byte) error {
	v, err := parseName("reason", text, ReasonNone, ReasonInsolvent, ReasonWithdrawalExceedsSavings)
	if err == nil {
		*r = v
	}
	return err
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	v, err := parseName("category", text,
		CategoryLazy, CategoryAggressive, CategoryNormal, CategoryFearful, CategorySmart)
	if err == nil {
		*c = v
	}
	return err
}
