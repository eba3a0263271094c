package round

import (
	"slices"

	"github.com/vovakirdan/autostack/internal/board"
)

// Snapshot is the read-only view renderers and reporters consume.
type Snapshot struct {
	Phase        Phase
	Board        board.Grid
	Piece        board.Piece
	HasPiece     bool
	TargetRow    int
	ClearingRows []int
	Flash        bool // clearing rows are drawn highlighted

	Balance      float64
	Bet          float64
	NextBet      float64
	BoughtBlocks int
	NextBlocks   int
	PlayedBlocks int
	ClearEvents  int
	RoundLines   int
	RoundPayout  float64
	Winning      bool

	Round     int
	Speed     float64
	Seed      uint32
	Target    float64
	Effective float64 // probability the next round will be drawn against
	RTP       float64
}

// Snapshot returns the current view of the engine.
func (e *Engine) Snapshot() Snapshot {
	s := e.state
	flash := false
	if s.Phase == PhaseClearing {
		flash = (s.clearTimer/e.opts.Timing.FlashPeriod)%2 == 0
	}
	return Snapshot{
		Phase:        s.Phase,
		Board:        s.Board,
		Piece:        s.Piece,
		HasPiece:     s.HasPiece,
		TargetRow:    s.TargetRow,
		ClearingRows: slices.Clone(s.ClearingRows),
		Flash:        flash,
		Balance:      s.Balance,
		Bet:          s.Bet,
		NextBet:      e.Bet(),
		BoughtBlocks: s.BoughtBlocks,
		NextBlocks:   e.blocks,
		PlayedBlocks: s.PlayedBlocks,
		ClearEvents:  s.ClearEvents,
		RoundLines:   s.RoundLines,
		RoundPayout:  s.RoundPayout,
		Winning:      s.Bias.Winning,
		Round:        e.rounds,
		Speed:        e.speed,
		Seed:         e.seed,
		Target:       e.ctrl.TargetProbability(),
		Effective:    e.ctrl.EffectiveProbability(),
		RTP:          e.ctrl.RTP(),
	}
}
