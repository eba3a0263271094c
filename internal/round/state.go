package round

import (
	"time"

	"github.com/vovakirdan/autostack/internal/bias"
	"github.com/vovakirdan/autostack/internal/board"
)

// Phase is the round life-cycle stage.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDropping
	PhaseClearing
	PhaseGameOver
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDropping:
		return "dropping"
	case PhaseClearing:
		return "clearing"
	case PhaseGameOver:
		return "game_over"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round has ended.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseFinished
}

// CanStart reports whether a new round may begin from this phase.
func (p Phase) CanStart() bool {
	return p == PhaseIdle || p.Terminal()
}

// State is the engine's round state. The engine never edits a State in
// place: every transition builds a new value and swaps it in. Slices held
// here are never written after the State is stored.
type State struct {
	Phase        Phase
	Board        board.Grid
	Piece        board.Piece
	HasPiece     bool
	TargetRow    int
	ClearingRows []int

	Balance      float64
	BoughtBlocks int
	Bet          float64
	PlayedBlocks int
	ClearEvents  int
	RoundLines   int
	RoundPayout  float64
	Bias         bias.Config // active weights and designation for this round

	finishAfterClear bool
	reported         bool
	dropTimer        time.Duration
	clearTimer       time.Duration
}

// limitReached reports whether every purchased piece has been locked.
func (s State) limitReached() bool {
	return s.PlayedBlocks >= s.BoughtBlocks
}
