// Package board models the 10x20 playfield. A Grid is an array value, so
// every operation here returns a fresh grid and never mutates its input.
package board

import (
	"strings"

	"github.com/vovakirdan/autostack/internal/tetromino"
)

// Board dimensions.
const (
	Width  = 10
	Height = 20
)

// Cell is one board square: 0 is empty, otherwise the piece type plus one.
type Cell uint8

// EmptyCell is the blank cell.
const EmptyCell Cell = 0

// Filled returns the cell tag for a piece type.
func Filled(t tetromino.Type) Cell {
	return Cell(t) + 1
}

// IsEmpty reports whether the cell is blank.
func (c Cell) IsEmpty() bool {
	return c == EmptyCell
}

// Type returns the piece that filled the cell, or false if it is empty.
func (c Cell) Type() (tetromino.Type, bool) {
	if c == EmptyCell {
		return 0, false
	}
	return tetromino.Type(c - 1), true
}

// Grid is the playfield, indexed [row][col] with row 0 at the top.
type Grid [Height][Width]Cell

// Pos is an absolute board coordinate.
type Pos struct {
	Row, Col int
}

// Piece is a falling piece. Row and Col locate the bounding-box top-left
// and Row may be negative while the piece enters the board.
type Piece struct {
	Type     tetromino.Type
	Rotation int
	Row      int
	Col      int
}

// Spawn places a piece of type t in rotation rot at column col, with its
// topmost filled cell on row 0.
func Spawn(t tetromino.Type, rot, col int) Piece {
	return Piece{Type: t, Rotation: rot, Row: tetromino.SpawnRow(t, rot), Col: col}
}

// Cells returns the absolute positions of the piece's filled cells.
func (p Piece) Cells() []Pos {
	offsets := tetromino.Cells(p.Type, p.Rotation)
	cells := make([]Pos, len(offsets))
	for i, o := range offsets {
		cells[i] = Pos{Row: p.Row + o.Row, Col: p.Col + o.Col}
	}
	return cells
}

// Moved returns the piece shifted down by dr rows.
func (p Piece) Moved(dr int) Piece {
	p.Row += dr
	return p
}

// Empty returns an all-empty grid.
func Empty() Grid {
	return Grid{}
}

// IsValidPlacement reports whether p fits on g. Cells above the board are
// allowed; cells outside the side walls, below the floor, or on top of a
// filled cell are not.
func IsValidPlacement(g Grid, p Piece) bool {
	for _, o := range tetromino.Cells(p.Type, p.Rotation) {
		r, c := p.Row+o.Row, p.Col+o.Col
		if c < 0 || c >= Width || r >= Height {
			return false
		}
		if r >= 0 && !g[r][c].IsEmpty() {
			return false
		}
	}
	return true
}

// LockPiece burns p into a copy of g. Cells above row 0 are dropped.
func LockPiece(g Grid, p Piece) Grid {
	tag := Filled(p.Type)
	for _, o := range tetromino.Cells(p.Type, p.Rotation) {
		r, c := p.Row+o.Row, p.Col+o.Col
		if r < 0 || r >= Height || c < 0 || c >= Width {
			continue
		}
		g[r][c] = tag
	}
	return g
}

// DropRow returns the resting row of p after a hard drop: p moves down one
// row at a time while the next position stays valid.
func DropRow(g Grid, p Piece) int {
	for IsValidPlacement(g, p.Moved(1)) {
		p = p.Moved(1)
	}
	return p.Row
}

func rowComplete(row [Width]Cell) bool {
	for _, c := range row {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

// FindCompleteRows returns the indices of fully filled rows, top to bottom.
func FindCompleteRows(g Grid) []int {
	var rows []int
	for r := range Height {
		if rowComplete(g[r]) {
			rows = append(rows, r)
		}
	}
	return rows
}

// CountCompleteLines returns the number of fully filled rows.
func CountCompleteLines(g Grid) int {
	n := 0
	for r := range Height {
		if rowComplete(g[r]) {
			n++
		}
	}
	return n
}

// ClearRows removes the given rows and prepends the same number of blank
// rows at the top. Out-of-range and duplicate indices are ignored.
func ClearRows(g Grid, rows []int) Grid {
	var remove [Height]bool
	for _, r := range rows {
		if r >= 0 && r < Height {
			remove[r] = true
		}
	}

	var out Grid
	dst := Height - 1
	for src := Height - 1; src >= 0; src-- {
		if remove[src] {
			continue
		}
		out[dst] = g[src]
		dst--
	}
	return out
}

// IsTopOut reports whether row 0 or row 1 holds any filled cell.
func IsTopOut(g Grid) bool {
	for r := 0; r < 2; r++ {
		for _, c := range g[r] {
			if !c.IsEmpty() {
				return true
			}
		}
	}
	return false
}

// ColumnHeights returns, per column, the stack height measured from the floor
// to the first filled cell from the top; 0 for an empty column.
func ColumnHeights(g Grid) [Width]int {
	var h [Width]int
	for c := range Width {
		for r := range Height {
			if !g[r][c].IsEmpty() {
				h[c] = Height - r
				break
			}
		}
	}
	return h
}

// CountHoles counts empty cells that have a filled cell somewhere above them
// in the same column.
func CountHoles(g Grid) int {
	holes := 0
	for c := range Width {
		covered := false
		for r := range Height {
			if !g[r][c].IsEmpty() {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

// FilledCount returns the number of filled cells.
func FilledCount(g Grid) int {
	n := 0
	for r := range Height {
		for _, c := range g[r] {
			if !c.IsEmpty() {
				n++
			}
		}
	}
	return n
}

// Parse builds a grid from text rows aligned to the bottom of the board.
// '.' is empty; a piece letter fills the cell with that piece; any other
// non-space rune fills it with I. Rows longer than Width are truncated.
func Parse(rows ...string) Grid {
	var g Grid
	start := Height - len(rows)
	for i, line := range rows {
		r := start + i
		if r < 0 {
			continue
		}
		for c, ch := range []rune(line) {
			if c >= Width {
				break
			}
			if ch == '.' || ch == ' ' {
				continue
			}
			t, err := tetromino.ParseType(string(ch))
			if err != nil {
				t = tetromino.I
			}
			g[r][c] = Filled(t)
		}
	}
	return g
}

// String renders the grid with '.' for empty cells and piece letters for
// filled ones, one row per line.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for r := range Height {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range g[r] {
			if t, ok := c.Type(); ok {
				sb.WriteString(t.String())
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
