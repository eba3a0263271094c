package config

import (
	_ "embed"

	"github.com/vovakirdan/autostack/internal/bias"
	"github.com/vovakirdan/autostack/internal/round"
)

//go:embed defaults/autostack.yaml
var defaultYAML []byte

// DefaultGameConfig returns the hard-coded default configuration. It matches
// the embedded defaults/autostack.yaml.
func DefaultGameConfig() GameConfig {
	s := bias.DefaultSettings()
	return GameConfig{
		Economy: EconomyConfig{
			StartingBalance: 1000,
			BlockPrice:      1,
			BlockOptions:    []int{30, 50, 75},
			DefaultBlocks:   30,
			WinLines:        5,
		},
		Payout: round.DefaultPayout(),
		Timing: round.DefaultTiming(),
		Bias: BiasConfig{
			TargetProbability: 0.45,
			TargetRTP:         s.TargetRTP,
			CorrectionGain:    s.CorrectionGain,
			MinEffective:      s.MinEffective,
			MaxEffective:      s.MaxEffective,
			WinTopN:           s.TopN,
			LoseBottomN:       s.BottomN,
			Winning:           presetConfig(s.Win),
			Losing:            presetConfig(s.Lose),
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
