package board

import (
	"slices"
	"testing"

	"github.com/vovakirdan/autostack/internal/tetromino"
)

func TestEmptyBoard(t *testing.T) {
	g := Empty()
	if FilledCount(g) != 0 {
		t.Errorf("FilledCount(Empty()) = %d, want 0", FilledCount(g))
	}
	if IsTopOut(g) {
		t.Error("empty board should not be topped out")
	}
	if CountHoles(g) != 0 {
		t.Error("empty board should have no holes")
	}
	if h := ColumnHeights(g); h != [Width]int{} {
		t.Errorf("ColumnHeights(Empty()) = %v, want zeros", h)
	}
}

func TestIsValidPlacement(t *testing.T) {
	g := Parse("##########")

	tests := []struct {
		name  string
		piece Piece
		want  bool
	}{
		{"spawn on empty rows", Spawn(tetromino.T, 0, 3), true},
		{"left wall", Piece{Type: tetromino.O, Row: 0, Col: -1}, false},
		{"right wall", Piece{Type: tetromino.O, Row: 0, Col: 9}, false},
		{"below floor", Piece{Type: tetromino.O, Row: 19, Col: 0}, false},
		{"overlaps floor row", Piece{Type: tetromino.O, Row: 18, Col: 0}, false},
		{"rests on floor row", Piece{Type: tetromino.O, Row: 17, Col: 0}, true},
		{"above board", Piece{Type: tetromino.O, Row: -2, Col: 4}, true},
		{"partly above board", Piece{Type: tetromino.I, Rotation: 1, Row: -3, Col: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPlacement(g, tt.piece); got != tt.want {
				t.Errorf("IsValidPlacement(%+v) = %v, want %v", tt.piece, got, tt.want)
			}
		})
	}
}

func TestLockPieceReadsBack(t *testing.T) {
	p := Piece{Type: tetromino.L, Rotation: 1, Row: 10, Col: 4}
	before := Empty()
	after := LockPiece(before, p)

	if FilledCount(before) != 0 {
		t.Fatal("LockPiece mutated its input")
	}

	want := p.Cells()
	var got []Pos
	for r := range Height {
		for c := range Width {
			if !after[r][c].IsEmpty() {
				got = append(got, Pos{r, c})
				if typ, _ := after[r][c].Type(); typ != tetromino.L {
					t.Errorf("cell (%d,%d) tagged %v, want L", r, c, typ)
				}
			}
		}
	}

	sortPos := func(a, b Pos) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	}
	slices.SortFunc(want, sortPos)
	slices.SortFunc(got, sortPos)
	if !slices.Equal(got, want) {
		t.Errorf("locked cells = %v, want %v", got, want)
	}
}

func TestLockPieceDropsCellsAboveBoard(t *testing.T) {
	p := Piece{Type: tetromino.I, Rotation: 1, Row: -2, Col: 0}
	g := LockPiece(Empty(), p)

	if n := FilledCount(g); n != 2 {
		t.Errorf("FilledCount = %d, want 2 (rows 0 and 1 only)", n)
	}
	if !IsTopOut(g) {
		t.Error("cells on rows 0 and 1 should top out")
	}
}

func TestFindCompleteRows(t *testing.T) {
	g := Parse(
		"##########",
		"#########.",
		"##########",
	)
	rows := FindCompleteRows(g)
	if !slices.Equal(rows, []int{17, 19}) {
		t.Errorf("FindCompleteRows = %v, want [17 19]", rows)
	}
	if n := CountCompleteLines(g); n != 2 {
		t.Errorf("CountCompleteLines = %d, want 2", n)
	}
}

func TestClearRows(t *testing.T) {
	g := Parse(
		"....T.....",
		"##########",
		"#########.",
		"##########",
	)
	before := FilledCount(g)
	rows := FindCompleteRows(g)
	out := ClearRows(g, rows)

	if got, want := FilledCount(out), before-len(rows)*Width; got != want {
		t.Errorf("FilledCount after clear = %d, want %d", got, want)
	}
	if FilledCount(g) != before {
		t.Error("ClearRows mutated its input")
	}

	// The partial row falls to the bottom, the T cell sits above it.
	if out[19][9] != EmptyCell || out[19][0].IsEmpty() {
		t.Errorf("bottom row wrong:\n%s", out)
	}
	if typ, ok := out[18][4].Type(); !ok || typ != tetromino.T {
		t.Errorf("T cell should shift to (18,4):\n%s", out)
	}
	for r := 0; r < 18; r++ {
		for c := range Width {
			if !out[r][c].IsEmpty() {
				t.Fatalf("row %d should be blank after clear:\n%s", r, out)
			}
		}
	}
}

func TestIsTopOut(t *testing.T) {
	var g Grid
	g[2][5] = Filled(tetromino.O)
	if IsTopOut(g) {
		t.Error("row 2 occupancy should not top out")
	}
	g[1][5] = Filled(tetromino.O)
	if !IsTopOut(g) {
		t.Error("row 1 occupancy should top out")
	}

	var g0 Grid
	g0[0][0] = Filled(tetromino.I)
	if !IsTopOut(g0) {
		t.Error("row 0 occupancy should top out")
	}
}

func TestColumnHeightsAndHoles(t *testing.T) {
	g := Parse(
		"#.........",
		"..........",
		"#.#.......",
	)
	h := ColumnHeights(g)
	if h[0] != 3 || h[1] != 0 || h[2] != 1 {
		t.Errorf("ColumnHeights = %v, want [3 0 1 ...]", h)
	}
	if holes := CountHoles(g); holes != 1 {
		t.Errorf("CountHoles = %d, want 1", holes)
	}
}

func TestDropRow(t *testing.T) {
	g := Parse(
		"##########",
	)
	p := Spawn(tetromino.O, 0, 4)
	if row := DropRow(g, p); row != 17 {
		t.Errorf("DropRow(O) = %d, want 17", row)
	}

	p = Spawn(tetromino.I, 0, 0)
	if row := DropRow(Empty(), p); row != 18 {
		t.Errorf("DropRow(I horizontal) = %d, want 18", row)
	}
}

func TestParseString(t *testing.T) {
	g := Parse("SZ........")
	if typ, _ := g[19][0].Type(); typ != tetromino.S {
		t.Errorf("(19,0) = %v, want S", typ)
	}
	want := "SZ........"
	rows := g.String()
	if got := rows[len(rows)-Width:]; got != want {
		t.Errorf("String() bottom row = %q, want %q", got, want)
	}
}
