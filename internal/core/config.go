// Package core provides fundamental types shared by the game platform layers.
// It contains no external dependencies (especially no Bubble Tea) so the
// session and transport code can use it without pulling in a UI.
package core

import "time"

// RuntimeConfig contains configuration passed to a session at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for reproducible bank draws
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time
	}
}

// EffectiveSeed returns the configured seed, or a time-based one when unset.
func (c RuntimeConfig) EffectiveSeed() int64 {
	if c.Seed == 0 {
		return time.Now().UnixNano()
	}
	return c.Seed
}
