package round

import (
	"math"
	"time"
)

// Payout defines the line-clear payout curve:
//
//	payout = bet * Coefficient * r(k)^k * lines
//
// where k is the zero-based clear-event index within the round. r(k) is Ratio
// for the first SoftCapAfter events, then falls linearly to RatioFloor over
// the next SoftCapSpan events.
type Payout struct {
	Coefficient  float64 `yaml:"coefficient"`
	Ratio        float64 `yaml:"ratio"`
	RatioFloor   float64 `yaml:"ratio_floor"`
	SoftCapAfter int     `yaml:"soft_cap_after"`
	SoftCapSpan  int     `yaml:"soft_cap_span"`
}

// DefaultPayout returns the standard payout curve.
func DefaultPayout() Payout {
	return Payout{
		Coefficient:  0.1,
		Ratio:        1.05,
		RatioFloor:   1.0,
		SoftCapAfter: 10,
		SoftCapSpan:  10,
	}
}

// RatioAt returns the growth ratio used for clear event k.
func (p Payout) RatioAt(k int) float64 {
	if k < p.SoftCapAfter {
		return p.Ratio
	}
	span := max(p.SoftCapSpan, 1)
	t := math.Min(1, float64(k-p.SoftCapAfter)/float64(span))
	return p.Ratio + (p.RatioFloor-p.Ratio)*t
}

// Amount returns the payout for clearing lines rows on clear event k.
func (p Payout) Amount(bet float64, k, lines int) float64 {
	if lines <= 0 {
		return 0
	}
	return bet * p.Coefficient * math.Pow(p.RatioAt(k), float64(k)) * float64(lines)
}

// Timing holds the animation quanta. None of them affect outcomes.
type Timing struct {
	DropStep      time.Duration `yaml:"drop_step"`      // time per row of fall
	ClearDuration time.Duration `yaml:"clear_duration"` // line-clear animation length
	FlashPeriod   time.Duration `yaml:"flash_period"`   // flash toggle while clearing
}

// DefaultTiming returns the standard animation timing.
func DefaultTiming() Timing {
	return Timing{
		DropStep:      50 * time.Millisecond,
		ClearDuration: 300 * time.Millisecond,
		FlashPeriod:   75 * time.Millisecond,
	}
}
