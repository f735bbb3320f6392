// Package cover builds the exact-cover matrix for a (board, ordered shape
// multiset) pair: it enumerates every valid (shape-index, orientation,
// top-left position) placement and emits the 0/1 matrix whose columns are
// the target cells followed by one shape-slot column per entry of the input
// list. It is the bridge between the board/shape data model and the DLX
// solver: enumerate candidates, then hand rows to Dancing Links.
package cover

import (
	"sort"

	"github.com/katalvlaran/polycover/internal/board"
	"github.com/katalvlaran/polycover/internal/set"
	"github.com/katalvlaran/polycover/internal/shape"
)

// Placement records one candidate row: which input shape, at which top-left
// anchor position, in which orientation. Both the oriented shape (needed by
// the DLX row-emit step to know the exact footprint) and the originating
// shape index (sufficient for all downstream consumers) are kept as plain
// values.
type Placement struct {
	ShapeIndex int
	Row, Col   int
	Oriented   *shape.Shape
}

// Matrix is the exact-cover matrix produced from a board and shape list.
// Columns is the row-major list of column indices each row fills; it is
// already sorted per row to keep DLX construction and MRV tie-breaking
// deterministic. NumTargetCols is the count of target-cell columns; total
// column count is NumTargetCols + len(shapes).
type Matrix struct {
	Columns         [][]int
	Placements      []Placement
	NumTargetCols   int
	NumCols         int
	DuplicateFactor int
}

// Build enumerates every valid placement of b's target cells against the
// ordered shape list shapes and returns the resulting cover matrix. If no
// valid placement exists the returned Matrix has zero rows; callers must not
// hand a zero-row matrix to the DLX solver.
func Build(b *board.Board, shapes []*shape.Shape) *Matrix {
	targetCol := make(map[[2]int]int)
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if b.IsTarget(r, c) {
				targetCol[[2]int{r, c}] = len(targetCol)
			}
		}
	}

	m := &Matrix{
		NumTargetCols:   len(targetCol),
		NumCols:         len(targetCol) + len(shapes),
		DuplicateFactor: duplicateFactor(shapes),
	}

	for i, sh := range shapes {
		for _, orientation := range sh.Rotations() {
			enumeratePlacements(b, orientation, i, len(targetCol), targetCol, m)
		}
	}
	return m
}

func enumeratePlacements(b *board.Board, orientation *shape.Shape, shapeIndex, numTargetCols int, targetCol map[[2]int]int, m *Matrix) {
	maxRow := b.Rows() - orientation.Rows()
	maxCol := b.Cols() - orientation.Cols()
	offsets := orientation.Cells()

	for row := 0; row <= maxRow; row++ {
		for col := 0; col <= maxCol; col++ {
			cols, ok := placementColumns(offsets, row, col, targetCol)
			if !ok {
				continue
			}
			cols = append(cols, numTargetCols+shapeIndex)
			sort.Ints(cols)

			m.Columns = append(m.Columns, cols)
			m.Placements = append(m.Placements, Placement{
				ShapeIndex: shapeIndex,
				Row:        row,
				Col:        col,
				Oriented:   orientation,
			})
		}
	}
}

// placementColumns reports the target-cell columns covered by orientation
// anchored at (row,col), or ok=false if any filled cell lands outside the
// target set (out of bounds counts as "not a target cell").
func placementColumns(offsets []shape.Offset, row, col int, targetCol map[[2]int]int) ([]int, bool) {
	cols := make([]int, 0, len(offsets))
	for _, off := range offsets {
		r, c := row+off.DRow, col+off.DCol
		idx, ok := targetCol[[2]int{r, c}]
		if !ok {
			return nil, false
		}
		cols = append(cols, idx)
	}
	return cols, true
}

// duplicateFactor partitions shapes into rotation-equivalence classes and
// returns the product of |class|! over those classes: the number of
// permutations of a DLX solution that produce structurally indistinguishable
// placements.
func duplicateFactor(shapes []*shape.Shape) int {
	assigned := set.New[int]()
	factor := 1
	for i := range shapes {
		if assigned.Contains(i) {
			continue
		}
		classSize := 1
		assigned.Add(i)
		for j := i + 1; j < len(shapes); j++ {
			if assigned.Contains(j) {
				continue
			}
			if shapes[i].RotationEquivalent(shapes[j]) {
				assigned.Add(j)
				classSize++
			}
		}
		factor *= factorial(classSize)
	}
	return factor
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

// DistinctRotationCount returns the number of distinct rotations of sh
// (cardinality 1, 2, or 4); used by the selector's heuristic ordering, which
// sorts surviving shapes by descending distinct-rotation count.
func DistinctRotationCount(sh *shape.Shape) int {
	return len(sh.Rotations())
}
