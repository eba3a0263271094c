// Package config provides YAML-based configuration loading and operator
// profiles for the autostack engine.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/autostack/internal/bias"
	"github.com/vovakirdan/autostack/internal/round"
	"github.com/vovakirdan/autostack/internal/search"
	"github.com/vovakirdan/autostack/internal/tetromino"
)

// GameConfig contains all configuration for the engine.
type GameConfig struct {
	Economy EconomyConfig `yaml:"economy"`
	Payout  round.Payout  `yaml:"payout"`
	Timing  round.Timing  `yaml:"timing"`
	Bias    BiasConfig    `yaml:"bias"`
}

// EconomyConfig defines the stake side of a round.
type EconomyConfig struct {
	StartingBalance float64 `yaml:"starting_balance"`
	BlockPrice      float64 `yaml:"block_price"`
	BlockOptions    []int   `yaml:"block_options"`
	DefaultBlocks   int     `yaml:"default_blocks"`
	WinLines        int     `yaml:"win_lines"` // lines in one round that count as a win
}

// BiasConfig tunes the outcome controller.
type BiasConfig struct {
	TargetProbability float64      `yaml:"target_probability"`
	TargetRTP         float64      `yaml:"target_rtp"`
	CorrectionGain    float64      `yaml:"correction_gain"`
	MinEffective      float64      `yaml:"min_effective"`
	MaxEffective      float64      `yaml:"max_effective"`
	WinTopN           int          `yaml:"win_top_n"`
	LoseBottomN       int          `yaml:"lose_bottom_n"`
	Winning           PresetConfig `yaml:"winning"`
	Losing            PresetConfig `yaml:"losing"`
}

// PresetConfig is one round preset: heuristic weights plus piece weights
// keyed by piece letter.
type PresetConfig struct {
	Heuristic search.Weights     `yaml:"heuristic"`
	Pieces    map[string]float64 `yaml:"pieces"`
}

// Preset converts the YAML form into a bias preset.
func (p PresetConfig) Preset() (bias.Preset, error) {
	w, err := tetromino.WeightsFromMap(p.Pieces)
	if err != nil {
		return bias.Preset{}, err
	}
	return bias.Preset{Heuristic: p.Heuristic, Pieces: w}, nil
}

func presetConfig(p bias.Preset) PresetConfig {
	return PresetConfig{Heuristic: p.Heuristic, Pieces: p.Pieces.Map()}
}

// Validate reports the first problem that would make the config unusable.
func (c GameConfig) Validate() error {
	e := c.Economy
	switch {
	case len(e.BlockOptions) == 0:
		return errors.New("config: economy.block_options is empty")
	case slices.ContainsFunc(e.BlockOptions, func(n int) bool { return n <= 0 }):
		return fmt.Errorf("config: economy.block_options must be positive, got %v", e.BlockOptions)
	case !slices.Contains(e.BlockOptions, e.DefaultBlocks):
		return fmt.Errorf("config: economy.default_blocks %d not in %v", e.DefaultBlocks, e.BlockOptions)
	case e.BlockPrice <= 0:
		return fmt.Errorf("config: economy.block_price must be positive, got %v", e.BlockPrice)
	case e.StartingBalance < 0:
		return fmt.Errorf("config: economy.starting_balance must not be negative, got %v", e.StartingBalance)
	case e.WinLines <= 0:
		return fmt.Errorf("config: economy.win_lines must be positive, got %d", e.WinLines)
	}

	p := c.Payout
	switch {
	case p.Coefficient < 0:
		return fmt.Errorf("config: payout.coefficient must not be negative, got %v", p.Coefficient)
	case p.Ratio <= 0 || p.RatioFloor <= 0:
		return fmt.Errorf("config: payout ratios must be positive, got %v/%v", p.Ratio, p.RatioFloor)
	case p.SoftCapAfter < 0 || p.SoftCapSpan <= 0:
		return fmt.Errorf("config: payout soft cap %d+%d is invalid", p.SoftCapAfter, p.SoftCapSpan)
	}

	t := c.Timing
	if t.DropStep <= 0 || t.ClearDuration <= 0 || t.FlashPeriod <= 0 {
		return fmt.Errorf("config: timing values must be positive, got %+v", t)
	}

	b := c.Bias
	switch {
	case b.TargetProbability < 0 || b.TargetProbability > 1:
		return fmt.Errorf("config: bias.target_probability %v outside [0,1]", b.TargetProbability)
	case b.MinEffective < 0 || b.MaxEffective > 1 || b.MinEffective > b.MaxEffective:
		return fmt.Errorf("config: bias effective range [%v,%v] is invalid", b.MinEffective, b.MaxEffective)
	case b.WinTopN < 1 || b.LoseBottomN < 1:
		return fmt.Errorf("config: bias pick windows must be at least 1, got %d/%d", b.WinTopN, b.LoseBottomN)
	}
	if _, err := b.Winning.Preset(); err != nil {
		return fmt.Errorf("config: bias.winning: %w", err)
	}
	if _, err := b.Losing.Preset(); err != nil {
		return fmt.Errorf("config: bias.losing: %w", err)
	}
	return nil
}

// EngineOptions validates the config and converts it to engine options.
func (c GameConfig) EngineOptions() (round.Options, error) {
	if err := c.Validate(); err != nil {
		return round.Options{}, err
	}
	win, _ := c.Bias.Winning.Preset()
	lose, _ := c.Bias.Losing.Preset()
	return round.Options{
		StartingBalance:   c.Economy.StartingBalance,
		BlockPrice:        c.Economy.BlockPrice,
		BlockOptions:      slices.Clone(c.Economy.BlockOptions),
		DefaultBlocks:     c.Economy.DefaultBlocks,
		WinLines:          c.Economy.WinLines,
		TargetProbability: c.Bias.TargetProbability,
		Payout:            c.Payout,
		Timing:            c.Timing,
		Bias: bias.Settings{
			TargetRTP:      c.Bias.TargetRTP,
			CorrectionGain: c.Bias.CorrectionGain,
			MinEffective:   c.Bias.MinEffective,
			MaxEffective:   c.Bias.MaxEffective,
			TopN:           c.Bias.WinTopN,
			BottomN:        c.Bias.LoseBottomN,
			Win:            win,
			Lose:           lose,
		},
	}, nil
}
