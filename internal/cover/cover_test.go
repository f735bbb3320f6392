package cover

import (
	"testing"

	"github.com/katalvlaran/polycover/internal/board"
	"github.com/katalvlaran/polycover/internal/shape"
)

func mustShape(t *testing.T, matrix [][]bool) *shape.Shape {
	t.Helper()
	s, err := shape.New(matrix)
	if err != nil {
		t.Fatalf("shape.New failed: %v", err)
	}
	return s
}

// TestRowShape verifies every produced row has exactly shape.cellCount ones
// in the target-cell region and exactly one in the shape-slot region.
func TestRowShape(t *testing.T) {
	b, _ := board.New(2, 2, nil)
	square := mustShape(t, [][]bool{{true, true}, {true, true}})

	m := Build(b, []*shape.Shape{square})
	if len(m.Columns) != 1 {
		t.Fatalf("len(Columns) = %d, want 1 (one placement for a 2x2 square on a 2x2 board)", len(m.Columns))
	}
	row := m.Columns[0]
	targetOnes, slotOnes := 0, 0
	for _, col := range row {
		if col < m.NumTargetCols {
			targetOnes++
		} else {
			slotOnes++
		}
	}
	if targetOnes != square.CellCount() {
		t.Errorf("targetOnes = %d, want %d", targetOnes, square.CellCount())
	}
	if slotOnes != 1 {
		t.Errorf("slotOnes = %d, want 1", slotOnes)
	}
}

// TestPlacementsAreValidOnBlankBoard verifies every placement recorded by the
// builder is a Valid placement on a board with G=0 and the same target. The
// builder records top-left positions while the board places by anchor, so
// each placement is checked at its anchor cell.
func TestPlacementsAreValidOnBlankBoard(t *testing.T) {
	b, _ := board.New(3, 3, nil)
	l, err := shape.New([][]bool{{true, false}, {true, true}}, 0, 0)
	if err != nil {
		t.Fatalf("shape.New failed: %v", err)
	}

	m := Build(b, []*shape.Shape{l})
	if len(m.Placements) == 0 {
		t.Fatal("expected at least one placement")
	}
	for _, p := range m.Placements {
		status, err := b.CheckPlacement(p.Oriented, p.Row+p.Oriented.AnchorRow(), p.Col+p.Oriented.AnchorCol())
		if err != nil {
			t.Fatalf("CheckPlacement failed: %v", err)
		}
		if status != board.Valid {
			t.Errorf("placement %+v has status %v, want Valid", p, status)
		}
	}
}

func TestBuildNoValidPlacementsYieldsZeroRows(t *testing.T) {
	b, _ := board.New(1, 1, nil)
	bar, err := shape.New([][]bool{{true, true}})
	if err != nil {
		t.Fatalf("shape.New failed: %v", err)
	}
	m := Build(b, []*shape.Shape{bar})
	if len(m.Columns) != 0 {
		t.Errorf("len(Columns) = %d, want 0", len(m.Columns))
	}
}

func TestDuplicateFactor(t *testing.T) {
	dot := mustShape(t, [][]bool{{true}})
	bar := mustShape(t, [][]bool{{true, true}})

	tests := []struct {
		name   string
		shapes []*shape.Shape
		want   int
	}{
		{"single shape", []*shape.Shape{dot}, 1},
		{"two identical dots", []*shape.Shape{dot, dot}, 2},
		{"dot and bar (not equivalent)", []*shape.Shape{dot, bar}, 1},
		{"three identical dots", []*shape.Shape{dot, dot, dot}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := board.New(2, 2, nil)
			m := Build(b, tt.shapes)
			if m.DuplicateFactor != tt.want {
				t.Errorf("DuplicateFactor = %d, want %d", m.DuplicateFactor, tt.want)
			}
		})
	}
}

func TestTargetRestrictsPlacements(t *testing.T) {
	target := [][]bool{
		{true, false},
		{false, true},
	}
	b, _ := board.New(2, 2, target)
	dot := mustShape(t, [][]bool{{true}})

	m := Build(b, []*shape.Shape{dot, dot})
	if len(m.Columns) != 4 {
		t.Fatalf("len(Columns) = %d, want 4 (one dot per target cell, x2 shape instances)", len(m.Columns))
	}
	if m.NumTargetCols != 2 {
		t.Errorf("NumTargetCols = %d, want 2", m.NumTargetCols)
	}
}
