package core

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/autostack/internal/board"
	"github.com/vovakirdan/autostack/internal/round"
)

// Each board cell is drawn two characters wide so it looks square.
const (
	cellW = 2

	// BoardScreenW and BoardScreenH are the size of a drawn board with its frame.
	BoardScreenW = board.Width*cellW + 2
	BoardScreenH = board.Height + 2

	// PanelW is the width DrawPanel needs.
	PanelW = 26
)

// DrawBoard draws the playfield with its frame at (x, y): locked cells, the
// falling piece, a ghost at its target row and the flashing clear rows.
func DrawBoard(s *Screen, snap round.Snapshot, x, y int) {
	frame := ColorGray
	if snap.Phase == round.PhaseGameOver {
		frame = ColorRed
	}
	outer := NewRect(x, y, BoardScreenW, BoardScreenH)
	s.DrawBox(outer, frame)
	inner := outer.Inset(1)
	s.DrawRect(inner, '·', ColorGray)

	put := func(row, col int, r rune, c Color) {
		if row < 0 || row >= board.Height || col < 0 || col >= board.Width {
			return
		}
		s.DrawRect(NewRect(inner.X+col*cellW, inner.Y+row, cellW, 1), r, c)
	}

	for row := 0; row < board.Height; row++ {
		clearing := slices.Contains(snap.ClearingRows, row)
		for col := 0; col < board.Width; col++ {
			t, ok := snap.Board[row][col].Type()
			switch {
			case clearing && snap.Flash:
				put(row, col, '▓', ColorBrightWhite)
			case ok:
				put(row, col, '█', PieceColor(t))
			}
		}
	}

	if !snap.HasPiece {
		return
	}
	ghost := snap.Piece
	ghost.Row = snap.TargetRow
	for _, p := range ghost.Cells() {
		put(p.Row, p.Col, '░', ColorGray)
	}
	for _, p := range snap.Piece.Cells() {
		put(p.Row, p.Col, '█', PieceColor(snap.Piece.Type))
	}
}

// PanelLines returns the status panel text for a snapshot. The round's
// win/lose designation is shown only when debug is set.
func PanelLines(snap round.Snapshot, debug bool) []string {
	lines := []string{
		fmt.Sprintf("Balance  %10.2f", snap.Balance),
		fmt.Sprintf("Bet      %10.2f", snap.Bet),
		fmt.Sprintf("Payout   %10.2f", snap.RoundPayout),
		fmt.Sprintf("Lines    %10d", snap.RoundLines),
		fmt.Sprintf("Blocks   %4d / %-4d", snap.PlayedBlocks, snap.BoughtBlocks),
		fmt.Sprintf("Next buy %10d", snap.NextBlocks),
		"",
		fmt.Sprintf("Phase    %10s", snap.Phase),
		fmt.Sprintf("Round    %10d", snap.Round),
		fmt.Sprintf("Speed    %9.0fx", snap.Speed),
		fmt.Sprintf("Target   %9.0f%%", snap.Target*100),
	}
	if debug {
		lines = append(lines,
			"",
			fmt.Sprintf("Seed     %10d", snap.Seed),
			fmt.Sprintf("Effect.  %9.1f%%", snap.Effective*100),
			fmt.Sprintf("RTP      %10.3f", snap.RTP),
			fmt.Sprintf("Leaning  %10s", leaning(snap)),
		)
	}
	return lines
}

func leaning(snap round.Snapshot) string {
	if snap.Phase == round.PhaseIdle {
		return "-"
	}
	if snap.Winning {
		return "win"
	}
	return "lose"
}

// DrawPanel draws the status panel at (x, y).
func DrawPanel(s *Screen, snap round.Snapshot, x, y int, debug bool) {
	for i, line := range PanelLines(snap, debug) {
		c := ColorWhite
		if i == 0 {
			c = ColorBrightYellow
		}
		s.DrawTextColor(x, y+i, line, c)
	}
}
