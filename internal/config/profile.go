package config

import (
	"fmt"
	"math"
)

// Profile is a named operator setting for the target win probability.
type Profile string

const (
	ProfileGenerous Profile = "generous"
	ProfileStandard Profile = "standard"
	ProfileTight    Profile = "tight"
	ProfileFixed    Profile = "fixed" // keep the configured probability
)

// Profiles lists the profiles in display order.
var Profiles = []Profile{ProfileGenerous, ProfileStandard, ProfileTight, ProfileFixed}

// ParseProfile validates a profile name. The empty string means fixed.
func ParseProfile(s string) (Profile, error) {
	if s == "" {
		return ProfileFixed, nil
	}
	for _, p := range Profiles {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown profile %q", s)
}

// ProbabilityForProfile returns the target probability for a profile, and
// false for the fixed profile.
func ProbabilityForProfile(p Profile) (float64, bool) {
	switch p {
	case ProfileGenerous:
		return 0.6, true
	case ProfileStandard:
		return 0.45, true
	case ProfileTight:
		return 0.3, true
	default:
		return 0, false
	}
}

// ApplyProfile sets the target probability from a profile.
func ApplyProfile(cfg *GameConfig, p Profile) {
	if v, ok := ProbabilityForProfile(p); ok {
		cfg.Bias.TargetProbability = v
	}
}

// StepProbability moves p by delta in whole percent and clamps to [0, 1].
func StepProbability(p, delta float64) float64 {
	v := math.Round((p+delta)*100) / 100
	return clampF(v, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
