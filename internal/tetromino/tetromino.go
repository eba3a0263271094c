// Package tetromino holds the static geometry of the seven classic pieces.
// Every rotation state is a 4x4 bitmask grid; lookups return the (row, col)
// offsets of the filled cells relative to the bounding-box top-left.
package tetromino

import (
	"fmt"
	"strings"
)

// Type identifies one of the seven pieces. The declaration order is the
// enumeration order used by weighted sampling and tie-breaking.
type Type uint8

const (
	I Type = iota
	O
	T
	S
	Z
	J
	L
)

// Count is the number of piece types.
const Count = 7

// All lists every piece type in enumeration order.
var All = [Count]Type{I, O, T, S, Z, J, L}

var names = [Count]string{"I", "O", "T", "S", "Z", "J", "L"}

// String returns the single-letter name of the piece.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return names[t]
}

// Valid reports whether t is one of the seven pieces.
func (t Type) Valid() bool {
	return t < Count
}

// ParseType parses a single-letter piece name (case-insensitive).
func ParseType(s string) (Type, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("tetromino: unknown piece %q", s)
}

// Offset is a filled cell position relative to the bounding-box top-left.
type Offset struct {
	Row, Col int
}

// Mask is a 4x4 rotation state: bit row*4+col is set for filled cells.
type Mask uint16

// Has reports whether the cell at (row, col) is filled.
func (m Mask) Has(row, col int) bool {
	if row < 0 || row >= 4 || col < 0 || col >= 4 {
		return false
	}
	return m&(1<<(row*4+col)) != 0
}

// Rotation states for each piece, clockwise from spawn orientation.
var masks = [Count][]Mask{
	I: {
		grid("....", "####", "....", "...."),
		grid("..#.", "..#.", "..#.", "..#."),
	},
	O: {
		grid("##", "##"),
	},
	T: {
		grid(".#.", "###", "..."),
		grid(".#.", ".##", ".#."),
		grid("...", "###", ".#."),
		grid(".#.", "##.", ".#."),
	},
	S: {
		grid(".##", "##.", "..."),
		grid(".#.", ".##", "..#"),
	},
	Z: {
		grid("##.", ".##", "..."),
		grid("..#", ".##", ".#."),
	},
	J: {
		grid("#..", "###", "..."),
		grid(".##", ".#.", ".#."),
		grid("...", "###", "..#"),
		grid(".#.", ".#.", "##."),
	},
	L: {
		grid("..#", "###", "..."),
		grid(".#.", ".#.", ".##"),
		grid("...", "###", "#.."),
		grid("##.", ".#.", ".#."),
	},
}

// offsets caches the filled cells of every rotation state.
var offsets [Count][][]Offset

func init() {
	for t := range masks {
		offsets[t] = make([][]Offset, len(masks[t]))
		for r, m := range masks[t] {
			for row := 0; row < 4; row++ {
				for col := 0; col < 4; col++ {
					if m.Has(row, col) {
						offsets[t][r] = append(offsets[t][r], Offset{Row: row, Col: col})
					}
				}
			}
		}
	}
}

// grid builds a Mask from up to four rows of '#' (filled) and '.' (empty).
func grid(rows ...string) Mask {
	var m Mask
	for r, line := range rows {
		for c, ch := range line {
			if ch == '#' {
				m |= 1 << (r*4 + c)
			}
		}
	}
	return m
}

// Rotations returns the number of distinct rotation states of t.
func Rotations(t Type) int {
	return len(masks[t])
}

// normalize wraps a rotation index into [0, Rotations(t)).
func normalize(t Type, rot int) int {
	n := len(masks[t])
	rot %= n
	if rot < 0 {
		rot += n
	}
	return rot
}

// MaskOf returns the bitmask grid of t in rotation rot (wrapped).
func MaskOf(t Type, rot int) Mask {
	return masks[t][normalize(t, rot)]
}

// Cells returns the filled-cell offsets of t in rotation rot (wrapped).
// The returned slice is shared and must not be modified.
func Cells(t Type, rot int) []Offset {
	return offsets[t][normalize(t, rot)]
}

// Extent returns the bounding rows and columns actually occupied by the
// rotation state, inclusive.
func Extent(t Type, rot int) (minRow, maxRow, minCol, maxCol int) {
	cells := Cells(t, rot)
	minRow, minCol = 4, 4
	maxRow, maxCol = -1, -1
	for _, c := range cells {
		minRow = min(minRow, c.Row)
		maxRow = max(maxRow, c.Row)
		minCol = min(minCol, c.Col)
		maxCol = max(maxCol, c.Col)
	}
	return minRow, maxRow, minCol, maxCol
}

// BoxWidth returns the width of the bounding box, counting from column 0 of
// the grid to the rightmost filled column.
func BoxWidth(t Type, rot int) int {
	_, _, _, maxCol := Extent(t, rot)
	return maxCol + 1
}

// SpawnRow is the bounding-box row at which a piece enters the board: its
// topmost filled cell sits on board row 0.
func SpawnRow(t Type, rot int) int {
	minRow, _, _, _ := Extent(t, rot)
	return -minRow
}
