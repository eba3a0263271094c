// Package bias decides, round by round, whether the automated player should
// lean toward a win or a loss, and steers the long-run return-to-player ratio
// toward a target by nudging the win probability with payout feedback.
package bias

import (
	"math"

	"github.com/vovakirdan/autostack/internal/rng"
	"github.com/vovakirdan/autostack/internal/search"
	"github.com/vovakirdan/autostack/internal/tetromino"
)

// Preset bundles the heuristic and piece weights for one kind of round.
type Preset struct {
	Heuristic search.Weights
	Pieces    tetromino.Weights
}

// Settings tunes the controller.
type Settings struct {
	TargetRTP      float64 // long-run payout/bet the correction steers toward
	CorrectionGain float64 // scale applied to the RTP error
	MinEffective   float64
	MaxEffective   float64
	TopN           int // winning rounds pick among the best TopN placements
	BottomN        int // losing rounds pick among the worst BottomN placements
	Win            Preset
	Lose           Preset
}

// WinPreset favors clean stacking and flat, easy pieces.
var WinPreset = Preset{
	Heuristic: search.DefaultWeights,
	Pieces:    tetromino.Weights{1.6, 1.4, 1.2, 0.6, 0.6, 1.0, 1.0},
}

// LosePreset heavily penalizes completing rows and stacking cleanly, and
// favors awkward pieces.
var LosePreset = Preset{
	Heuristic: search.Weights{
		Lines:     -3.0,
		Holes:     -1.5,
		AggHeight: -0.8,
		Bumpiness: -0.5,
		MaxHeight: -1.0,
	},
	Pieces: tetromino.Weights{0.4, 0.6, 0.8, 1.8, 1.8, 1.0, 1.0},
}

// DefaultSettings returns the standard controller tuning.
func DefaultSettings() Settings {
	return Settings{
		TargetRTP:      0.95,
		CorrectionGain: 0.15,
		MinEffective:   0.01,
		MaxEffective:   0.99,
		TopN:           3,
		BottomN:        4,
		Win:            WinPreset,
		Lose:           LosePreset,
	}
}

// Config is the per-round bias decision. It does not change during a round.
type Config struct {
	Heuristic search.Weights
	Pieces    tetromino.Weights
	Winning   bool
	Effective float64 // probability the winning draw was made against
}

// Controller owns the generator and the lifetime bet/payout totals.
type Controller struct {
	gen      *rng.Generator
	settings Settings
	target   float64

	totalBet    float64
	totalPayout float64

	current Config
}

// NewController creates a controller that draws from gen.
func NewController(gen *rng.Generator, target float64, settings Settings) *Controller {
	if settings.TopN < 1 {
		settings.TopN = 1
	}
	if settings.BottomN < 1 {
		settings.BottomN = 1
	}
	c := &Controller{gen: gen, settings: settings}
	c.SetTargetProbability(target)
	return c
}

// SetTargetProbability sets the operator's target win probability, clamped
// to [0, 1].
func (c *Controller) SetTargetProbability(p float64) {
	if math.IsNaN(p) {
		p = 0
	}
	c.target = clamp(p, 0, 1)
}

// TargetProbability returns the operator's target win probability.
func (c *Controller) TargetProbability() float64 {
	return c.target
}

// EffectiveProbability returns the win probability the next round would be
// drawn against, after long-run correction.
func (c *Controller) EffectiveProbability() float64 {
	if c.totalBet <= 0 {
		return c.target
	}
	rtp := c.totalPayout / c.totalBet
	p := c.target + c.settings.CorrectionGain*(c.settings.TargetRTP-rtp)
	return clamp(p, c.settings.MinEffective, c.settings.MaxEffective)
}

// StartRound draws the round's designation and returns its bias config.
func (c *Controller) StartRound() Config {
	effective := c.EffectiveProbability()
	winning := c.gen.Next() < effective

	preset := c.settings.Lose
	if winning {
		preset = c.settings.Win
	}
	c.current = Config{
		Heuristic: preset.Heuristic,
		Pieces:    preset.Pieces,
		Winning:   winning,
		Effective: effective,
	}
	return c.current
}

// LastConfig returns the config produced by the most recent StartRound.
func (c *Controller) LastConfig() Config {
	return c.current
}

// PickPiece draws a piece type with probability proportional to its weight.
func (c *Controller) PickPiece(w tetromino.Weights) tetromino.Type {
	u := c.gen.Next() * w.Sum()
	for _, t := range tetromino.All {
		u -= w[t]
		if u <= 0 {
			return t
		}
	}
	return tetromino.All[tetromino.Count-1]
}

// PickPlacement chooses one of the score-sorted candidates. Winning rounds
// pick uniformly among the best few, losing rounds among the worst few.
// It panics when candidates is empty; callers must handle lock-out first.
func (c *Controller) PickPlacement(candidates []search.Placement) search.Placement {
	n := len(candidates)
	switch {
	case n == 0:
		panic("bias: PickPlacement called with no candidates")
	case n == 1:
		return candidates[0]
	}

	if c.current.Winning {
		k := min(c.settings.TopN, n)
		return candidates[c.gen.NextInt(k)]
	}
	k := min(c.settings.BottomN, n)
	return candidates[n-k+c.gen.NextInt(k)]
}

// RecordRoundResult adds a finished round to the lifetime totals.
func (c *Controller) RecordRoundResult(bet, payout float64) {
	c.totalBet += bet
	c.totalPayout += payout
}

// RTP returns lifetime payout divided by lifetime bet, or 0 before any bet.
func (c *Controller) RTP() float64 {
	if c.totalBet <= 0 {
		return 0
	}
	return c.totalPayout / c.totalBet
}

// Totals returns the lifetime bet and payout.
func (c *Controller) Totals() (bet, payout float64) {
	return c.totalBet, c.totalPayout
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
