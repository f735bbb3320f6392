// Package board implements the rectangular placement grid: a row-major
// integer grid (0 = empty, positive id = occupied by a shape instance) with
// an optional immutable boolean target mask. The win check scans every cell
// against the target mask; change-notification and hint-vector machinery
// serve rendering.
package board

import (
	"errors"

	"github.com/katalvlaran/polycover/internal/shape"
)

// Sentinel errors for argument faults.
var (
	ErrZeroDimension  = errors.New("board: rows and cols must both be at least 1")
	ErrNonRectangular = errors.New("board: target rows must all have length cols")
	ErrOutOfRange     = errors.New("board: coordinate out of range")
	ErrNonPositiveID  = errors.New("board: id must be positive")
	ErrNilShape       = errors.New("board: shape must not be nil")
)

// PlacementStatus is the outcome of checking whether a shape can be placed at
// a given position.
type PlacementStatus int

const (
	// Valid means every filled cell of the shape is in-bounds and empty.
	Valid PlacementStatus = iota
	// OutOfBounds means at least one filled cell falls outside the grid.
	// OutOfBounds dominates Overlapping when both would otherwise apply.
	OutOfBounds
	// Overlapping means every filled cell is in-bounds but at least one
	// underlies a non-zero id.
	Overlapping
)

func (s PlacementStatus) String() string {
	switch s {
	case Valid:
		return "Valid"
	case OutOfBounds:
		return "OutOfBounds"
	case Overlapping:
		return "Overlapping"
	default:
		return "Unknown"
	}
}

// ChangeEvent carries a single cell mutation: the cell and its new value,
// delivered after the board state has already been updated.
type ChangeEvent struct {
	Row, Col, Value int
}

// ChangeFunc is a single-subscriber, synchronous change-event callback.
// Implementations must not re-enter the Board from within the callback.
type ChangeFunc func(ChangeEvent)

// Board is a mutable row-major grid with an optional immutable target mask.
type Board struct {
	rows, cols int
	grid       []int
	target     []bool // nil means "all true" (no target restriction)
	onChange   ChangeFunc
}

// New constructs an empty rows×cols board. target, if non-nil, must have
// exactly rows entries each of length cols; it is copied by value and is
// immutable thereafter. A nil target is treated as all-true.
func New(rows, cols int, target [][]bool) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrZeroDimension
	}
	b := &Board{
		rows: rows, cols: cols,
		grid: make([]int, rows*cols),
	}
	if target != nil {
		if len(target) != rows {
			return nil, ErrNonRectangular
		}
		b.target = make([]bool, rows*cols)
		for r, row := range target {
			if len(row) != cols {
				return nil, ErrNonRectangular
			}
			copy(b.target[r*cols:(r+1)*cols], row)
		}
	}
	return b, nil
}

// Rows returns the grid's row count.
func (b *Board) Rows() int { return b.rows }

// Cols returns the grid's column count.
func (b *Board) Cols() int { return b.cols }

// OnChange registers the single change-event subscriber, replacing any prior
// subscriber.
func (b *Board) OnChange(fn ChangeFunc) { b.onChange = fn }

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.rows && c >= 0 && c < b.cols
}

// Cell returns the value stored at (r,c).
func (b *Board) Cell(r, c int) (int, error) {
	if !b.inBounds(r, c) {
		return 0, ErrOutOfRange
	}
	return b.grid[r*b.cols+c], nil
}

// IsTarget reports whether (r,c) is a target cell. An absent target mask
// means every in-bounds cell is a target cell.
func (b *Board) IsTarget(r, c int) bool {
	if !b.inBounds(r, c) {
		return false
	}
	if b.target == nil {
		return true
	}
	return b.target[r*b.cols+c]
}

// SetCell writes val into (r,c). If the stored value is already val this is
// a no-op and emits no event; otherwise it writes the value and emits a
// ChangeEvent after the write is committed.
func (b *Board) SetCell(r, c, val int) error {
	if !b.inBounds(r, c) {
		return ErrOutOfRange
	}
	idx := r*b.cols + c
	if b.grid[idx] == val {
		return nil
	}
	b.grid[idx] = val
	if b.onChange != nil {
		b.onChange(ChangeEvent{Row: r, Col: c, Value: val})
	}
	return nil
}

// CheckPlacement reports whether s can be placed with its anchor at (row,
// col): Valid if every filled cell is in-bounds and empty, OutOfBounds if any
// filled cell falls outside the grid (this dominates Overlapping), and
// Overlapping if every filled cell is in-bounds but at least one is
// non-empty.
func (b *Board) CheckPlacement(s *shape.Shape, row, col int) (PlacementStatus, error) {
	if s == nil {
		return OutOfBounds, ErrNilShape
	}
	overlapping := false
	for _, off := range s.Offsets() {
		r, c := row+off.DRow, col+off.DCol
		if !b.inBounds(r, c) {
			return OutOfBounds, nil
		}
		if b.grid[r*b.cols+c] != 0 {
			overlapping = true
		}
	}
	if overlapping {
		return Overlapping, nil
	}
	return Valid, nil
}

// TryPlace places s with its anchor at (row,col) under id if and only if
// CheckPlacement reports Valid; otherwise the board is left untouched and
// TryPlace returns false. Fails with ErrNonPositiveID if id <= 0 and
// ErrNilShape if s is nil, in both cases without touching the board.
func (b *Board) TryPlace(s *shape.Shape, row, col, id int) (bool, error) {
	if s == nil {
		return false, ErrNilShape
	}
	if id <= 0 {
		return false, ErrNonPositiveID
	}
	status, err := b.CheckPlacement(s, row, col)
	if err != nil {
		return false, err
	}
	if status != Valid {
		return false, nil
	}
	for _, off := range s.Offsets() {
		r, c := row+off.DRow, col+off.DCol
		// CheckPlacement already proved every filled cell in-bounds and
		// empty; SetCell cannot fail or be a no-op here.
		_ = b.SetCell(r, c, id)
	}
	return true, nil
}

// ForcePlace places s with its anchor at (row,col) under id, evicting
// whatever currently occupies the footprint. If OutOfBounds, ForcePlace is a
// no-op and returns ok=false. Otherwise it collects the distinct non-zero
// ids underlying the shape's filled cells, removes each of them in its
// entirety (every cell they occupy anywhere on the board, not only the
// overlapped portion), writes the new placement, and returns the set of
// evicted ids.
func (b *Board) ForcePlace(s *shape.Shape, row, col, id int) (evicted []int, ok bool, err error) {
	if s == nil {
		return nil, false, ErrNilShape
	}
	if id <= 0 {
		return nil, false, ErrNonPositiveID
	}
	offsets := s.Offsets()
	for _, off := range offsets {
		r, c := row+off.DRow, col+off.DCol
		if !b.inBounds(r, c) {
			return nil, false, nil
		}
	}

	seen := make(map[int]bool)
	var ids []int
	for _, off := range offsets {
		r, c := row+off.DRow, col+off.DCol
		v, _ := b.Cell(r, c)
		if v != 0 && !seen[v] {
			seen[v] = true
			ids = append(ids, v)
		}
	}

	for _, evictID := range ids {
		if _, err := b.Remove(evictID); err != nil {
			return nil, false, err
		}
	}

	for _, off := range offsets {
		r, c := row+off.DRow, col+off.DCol
		_ = b.SetCell(r, c, id)
	}
	return ids, true, nil
}

// Remove clears every cell currently holding id, emitting one change event
// per cleared cell in row-major order, and returns the count cleared. Fails
// with ErrNonPositiveID if id <= 0.
func (b *Board) Remove(id int) (int, error) {
	if id <= 0 {
		return 0, ErrNonPositiveID
	}
	count := 0
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			idx := r*b.cols + c
			if b.grid[idx] == id {
				_ = b.SetCell(r, c, 0)
				count++
			}
		}
	}
	return count, nil
}

// CheckWinCondition reports whether, for every cell, (grid != 0) equals the
// target mask (an absent target mask behaves as all-true).
func (b *Board) CheckWinCondition() bool {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			filled := b.grid[r*b.cols+c] != 0
			if filled != b.IsTarget(r, c) {
				return false
			}
		}
	}
	return true
}
