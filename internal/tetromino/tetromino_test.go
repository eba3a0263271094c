package tetromino

import "testing"

func TestEveryStateHasFourCells(t *testing.T) {
	for _, typ := range All {
		for r := 0; r < Rotations(typ); r++ {
			cells := Cells(typ, r)
			if len(cells) != 4 {
				t.Errorf("%s rotation %d has %d cells, want 4", typ, r, len(cells))
			}
			for _, c := range cells {
				if c.Row < 0 || c.Row > 3 || c.Col < 0 || c.Col > 3 {
					t.Errorf("%s rotation %d cell %v outside 4x4 box", typ, r, c)
				}
			}
		}
	}
}

func TestRotationCounts(t *testing.T) {
	want := map[Type]int{I: 2, O: 1, T: 4, S: 2, Z: 2, J: 4, L: 4}
	for typ, n := range want {
		if got := Rotations(typ); got != n {
			t.Errorf("Rotations(%s) = %d, want %d", typ, got, n)
		}
	}
}

func TestRotationWraps(t *testing.T) {
	if MaskOf(T, 4) != MaskOf(T, 0) {
		t.Error("rotation 4 should wrap to 0")
	}
	if MaskOf(T, -1) != MaskOf(T, 3) {
		t.Error("rotation -1 should wrap to 3")
	}
	if MaskOf(O, 3) != MaskOf(O, 0) {
		t.Error("O has a single state")
	}
}

func TestDistinctStates(t *testing.T) {
	for _, typ := range All {
		seen := make(map[Mask]bool)
		for r := 0; r < Rotations(typ); r++ {
			m := MaskOf(typ, r)
			if seen[m] {
				t.Errorf("%s rotation %d duplicates an earlier state", typ, r)
			}
			seen[m] = true
		}
	}
}

func TestSpawnRowPutsTopCellOnRowZero(t *testing.T) {
	tests := []struct {
		typ  Type
		rot  int
		want int
	}{
		{I, 0, -1},
		{I, 1, 0},
		{O, 0, 0},
		{T, 2, -1},
		{J, 2, -1},
	}
	for _, tt := range tests {
		if got := SpawnRow(tt.typ, tt.rot); got != tt.want {
			t.Errorf("SpawnRow(%s, %d) = %d, want %d", tt.typ, tt.rot, got, tt.want)
		}
	}
}

func TestBoxWidth(t *testing.T) {
	if got := BoxWidth(I, 0); got != 4 {
		t.Errorf("BoxWidth(I, 0) = %d, want 4", got)
	}
	if got := BoxWidth(O, 0); got != 2 {
		t.Errorf("BoxWidth(O, 0) = %d, want 2", got)
	}
	if got := BoxWidth(I, 1); got != 3 {
		t.Errorf("BoxWidth(I, 1) = %d, want 3", got)
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range All {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if got, err := ParseType(" s "); err != nil || got != S {
		t.Errorf("ParseType(\" s \") = %v, %v, want S", got, err)
	}
	if _, err := ParseType("X"); err == nil {
		t.Error("ParseType(\"X\") should fail")
	}
}

func TestWeightsFromMap(t *testing.T) {
	w, err := WeightsFromMap(map[string]float64{
		"I": 1, "O": 2, "T": 3, "S": 4, "Z": 5, "J": 6, "L": 7,
	})
	if err != nil {
		t.Fatalf("WeightsFromMap() failed: %v", err)
	}
	if w.Of(Z) != 5 {
		t.Errorf("weight of Z = %v, want 5", w.Of(Z))
	}
	if w.Sum() != 28 {
		t.Errorf("Sum() = %v, want 28", w.Sum())
	}

	if _, err := WeightsFromMap(map[string]float64{"I": 1}); err == nil {
		t.Error("missing pieces should be rejected")
	}
	if _, err := WeightsFromMap(map[string]float64{
		"I": 1, "O": 1, "T": 1, "S": 1, "Z": 0, "J": 1, "L": 1,
	}); err == nil {
		t.Error("zero weight should be rejected")
	}

	back, err := WeightsFromMap(w.Map())
	if err != nil || back != w {
		t.Errorf("Map() did not round-trip: %v, %v", back, err)
	}
}
