// Package search enumerates every resting placement of a piece on a board and
// ranks them with a linear heuristic over the resulting board.
package search

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/autostack/internal/board"
	"github.com/vovakirdan/autostack/internal/tetromino"
)

// Weights are the coefficients of the placement heuristic.
type Weights struct {
	Lines     float64 `yaml:"lines"`
	Holes     float64 `yaml:"holes"`
	AggHeight float64 `yaml:"agg_height"`
	Bumpiness float64 `yaml:"bumpiness"`
	MaxHeight float64 `yaml:"max_height"`
}

// DefaultWeights is the quality-seeking preset.
var DefaultWeights = Weights{
	Lines:     0.760666,
	Holes:     -0.35663,
	AggHeight: -0.510066,
	Bumpiness: -0.184483,
	MaxHeight: -0.05,
}

// Placement is a fully resolved resting position and its score.
type Placement struct {
	Rotation int
	Col      int
	Row      int // resting bounding-box row
	Lines    int // rows completed by locking here
	Score    float64
}

// Piece returns the resting piece described by the placement.
func (p Placement) Piece(t tetromino.Type) board.Piece {
	return board.Piece{Type: t, Rotation: p.Rotation, Row: p.Row, Col: p.Col}
}

// Features are the measurements the heuristic is applied to.
type Features struct {
	Lines     int
	Holes     int
	AggHeight int
	Bumpiness int
	MaxHeight int
}

// Measure computes heuristic features of a locked, not yet cleared grid.
func Measure(g board.Grid) Features {
	h := board.ColumnHeights(g)
	f := Features{
		Lines: board.CountCompleteLines(g),
		Holes: board.CountHoles(g),
	}
	for i, v := range h {
		f.AggHeight += v
		f.MaxHeight = max(f.MaxHeight, v)
		if i+1 < len(h) {
			d := v - h[i+1]
			if d < 0 {
				d = -d
			}
			f.Bumpiness += d
		}
	}
	return f
}

// Score applies the weights to the features.
func (w Weights) Score(f Features) float64 {
	return w.Lines*float64(f.Lines) +
		w.Holes*float64(f.Holes) +
		w.AggHeight*float64(f.AggHeight) +
		w.Bumpiness*float64(f.Bumpiness) +
		w.MaxHeight*float64(f.MaxHeight)
}

// FindAllPlacements returns every legal resting placement of t on g, sorted
// by score descending. Ties keep enumeration order: rotation ascending, then
// column ascending. An empty result means t cannot be placed anywhere.
func FindAllPlacements(g board.Grid, t tetromino.Type, w Weights) []Placement {
	var out []Placement
	for rot := 0; rot < tetromino.Rotations(t); rot++ {
		width := tetromino.BoxWidth(t, rot)
		for col := -(width - 1); col < board.Width; col++ {
			p := board.Spawn(t, rot, col)
			if !board.IsValidPlacement(g, p) {
				continue
			}
			p.Row = board.DropRow(g, p)

			locked := board.LockPiece(g, p)
			f := Measure(locked)
			out = append(out, Placement{
				Rotation: rot,
				Col:      col,
				Row:      p.Row,
				Lines:    f.Lines,
				Score:    w.Score(f),
			})
		}
	}

	slices.SortStableFunc(out, func(a, b Placement) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}
