package core

import "time"

// RuntimeConfig contains the viewer's start-up settings.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Engine updates per second (default 60)
	Seed     int64 // Engine seed; ignored unless HasSeed
	HasSeed  bool  // false draws a seed from system entropy
	Debug    bool  // start with debug logging and panel
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickInterval returns the wall-clock time between engine updates.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}
