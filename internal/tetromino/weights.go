package tetromino

import "fmt"

// Weights holds one sampling weight per piece type, indexed by Type.
type Weights [Count]float64

// Uniform returns a table with every weight set to 1.
func Uniform() Weights {
	var w Weights
	for i := range w {
		w[i] = 1
	}
	return w
}

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Of returns the weight of t.
func (w Weights) Of(t Type) float64 {
	return w[t]
}

// WeightsFromMap builds a table from letter-keyed weights ("I", "O", ...).
// Every piece must be present with a positive weight.
func WeightsFromMap(m map[string]float64) (Weights, error) {
	var w Weights
	var seen [Count]bool
	for name, v := range m {
		t, err := ParseType(name)
		if err != nil {
			return w, err
		}
		if v <= 0 {
			return w, fmt.Errorf("tetromino: weight for %s must be positive, got %v", t, v)
		}
		w[t] = v
		seen[t] = true
	}
	for _, t := range All {
		if !seen[t] {
			return w, fmt.Errorf("tetromino: missing weight for %s", t)
		}
	}
	return w, nil
}

// Map returns the table keyed by piece letter.
func (w Weights) Map() map[string]float64 {
	m := make(map[string]float64, Count)
	for _, t := range All {
		m[t.String()] = w[t]
	}
	return m
}
