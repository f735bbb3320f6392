// Package selector implements the backtracking shape-multiset search: given
// a board with a target and a catalog of available shapes, it searches for
// a multiset (with repetition) whose induced cover problem has exactly one
// solution modulo the duplicate factor. It wraps internal/cover and
// internal/dlx in an iterative-deepening DFS: backtrack, check the
// uniqueness bound, backtrack further.
package selector

import (
	"sort"
	"time"

	"github.com/katalvlaran/polycover/internal/board"
	"github.com/katalvlaran/polycover/internal/cover"
	"github.com/katalvlaran/polycover/internal/dlx"
	"github.com/katalvlaran/polycover/internal/shape"
	"github.com/katalvlaran/polycover/internal/telemetry"
)

// Outcome is the result tag of a Select invocation.
type Outcome int

const (
	// Found means Result.Shapes holds a uniquely-solvable multiset.
	Found Outcome = iota
	// Timeout means the deadline expired before a result could be determined.
	Timeout
	// TargetTooLarge means even a best-case packing of D copies of the
	// largest catalog shape cannot cover every target cell.
	TargetTooLarge
	// NoShapes means the catalog is empty. A catalog whose every shape is
	// dropped in the pre-pass yields NoValidPlacements instead.
	NoShapes
	// NoValidPlacements means every catalog shape, after the pre-pass
	// cellCount filter, has zero valid single-shape placements on the
	// target.
	NoValidPlacements
	// NoUniqueSolution means the search exhausted every multiset up to depth
	// D without finding one with a unique solution.
	NoUniqueSolution
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "Found"
	case Timeout:
		return "Timeout"
	case TargetTooLarge:
		return "TargetTooLarge"
	case NoShapes:
		return "NoShapes"
	case NoValidPlacements:
		return "NoValidPlacements"
	case NoUniqueSolution:
		return "NoUniqueSolution"
	default:
		return "Unknown"
	}
}

// Stats reports search effort, for diagnostics and logging.
type Stats struct {
	CombinationsChecked int
	Prunes              int
	ElapsedMs           int64
}

// Result is the outcome of a Select invocation.
type Result struct {
	Outcome Outcome
	// Shapes holds catalog indices (with repetition), length <= D, valid
	// only when Outcome == Found.
	Shapes []int
	Stats  Stats
}

type candidate struct {
	catalogIndex   int
	sh             *shape.Shape
	placementCount int
	rotationCount  int
	cellCount      int
}

// Select searches for a shape multiset whose cover problem on b is uniquely
// solvable modulo the duplicate factor, trying multiset sizes up to
// maxDepth, and aborting with Timeout once deadlineMs milliseconds have
// elapsed.
func Select(b *board.Board, catalog []*shape.Shape, maxDepth int, deadlineMs int) Result {
	start := time.Now()
	deadline := start.Add(time.Duration(deadlineMs) * time.Millisecond)
	log := telemetry.Log.With().Str("component", "selector").Logger()

	if len(catalog) == 0 {
		return Result{Outcome: NoShapes}
	}

	targetCells := countTargetCells(b)

	survivors, timedOut := prePass(b, catalog, targetCells, deadline)
	if timedOut {
		return Result{Outcome: Timeout, Stats: elapsedStats(start)}
	}
	if len(survivors) == 0 {
		return Result{Outcome: NoValidPlacements, Stats: elapsedStats(start)}
	}

	maxCellCount := 0
	for _, c := range survivors {
		if c.cellCount > maxCellCount {
			maxCellCount = c.cellCount
		}
	}
	if maxCellCount*maxDepth < targetCells {
		return Result{Outcome: TargetTooLarge, Stats: elapsedStats(start)}
	}

	sortSurvivors(survivors)

	s := &search{
		board:      b,
		survivors:  survivors,
		target:     targetCells,
		maxCell:    maxCellCount,
		deadline:   deadline,
		startDepth: ceilDiv(targetCells, maxCellCount),
		maxDepth:   maxDepth,
	}

	minDepth := s.startDepth
	if minDepth < 1 {
		minDepth = 1
	}
	for depth := minDepth; depth <= maxDepth; depth++ {
		result, ok := s.dfs(make([]int, 0, depth), 0, 0, depth)
		if s.timedOut {
			return Result{Outcome: Timeout, Stats: s.stats(start)}
		}
		if ok {
			log.Debug().Ints("shapes", result).Int("depth", depth).Msg("unique multiset found")
			return Result{Outcome: Found, Shapes: result, Stats: s.stats(start)}
		}
	}

	return Result{Outcome: NoUniqueSolution, Stats: s.stats(start)}
}

func elapsedStats(start time.Time) Stats {
	return Stats{ElapsedMs: time.Since(start).Milliseconds()}
}

func countTargetCells(b *board.Board) int {
	count := 0
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if b.IsTarget(r, c) {
				count++
			}
		}
	}
	return count
}

// prePass drops catalog shapes whose cellCount exceeds targetCells (the
// caller's target-cell count) or which have zero valid single-shape placements on the
// target, and returns the survivors. deadline is checked around each
// per-shape rotation/placement enumeration.
func prePass(b *board.Board, catalog []*shape.Shape, targetCells int, deadline time.Time) ([]candidate, bool) {
	survivors := make([]candidate, 0, len(catalog))
	for i, sh := range catalog {
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil, true
		}
		if sh.CellCount() > targetCells {
			continue
		}
		placements := countSinglePlacements(b, sh)
		if placements == 0 {
			continue
		}
		survivors = append(survivors, candidate{
			catalogIndex:   i,
			sh:             sh,
			placementCount: placements,
			rotationCount:  cover.DistinctRotationCount(sh),
			cellCount:      sh.CellCount(),
		})
	}
	return survivors, false
}

// countSinglePlacements counts the valid placements of sh (across all its
// orientations) where every filled cell lands on a target cell.
func countSinglePlacements(b *board.Board, sh *shape.Shape) int {
	count := 0
	for _, orientation := range sh.Rotations() {
		maxRow := b.Rows() - orientation.Rows()
		maxCol := b.Cols() - orientation.Cols()
		offsets := orientation.Cells()
		for row := 0; row <= maxRow; row++ {
			for col := 0; col <= maxCol; col++ {
				if allOnTarget(b, offsets, row, col) {
					count++
				}
			}
		}
	}
	return count
}

func allOnTarget(b *board.Board, offsets []shape.Offset, row, col int) bool {
	for _, off := range offsets {
		r, c := row+off.DRow, col+off.DCol
		if r < 0 || r >= b.Rows() || c < 0 || c >= b.Cols() || !b.IsTarget(r, c) {
			return false
		}
	}
	return true
}

// sortSurvivors orders by ascending valid-placement count, then descending
// distinct-rotation count, then descending cellCount. This ordering is fixed
// for the whole search.
func sortSurvivors(survivors []candidate) {
	sort.SliceStable(survivors, func(i, j int) bool {
		a, b := survivors[i], survivors[j]
		if a.placementCount != b.placementCount {
			return a.placementCount < b.placementCount
		}
		if a.rotationCount != b.rotationCount {
			return a.rotationCount > b.rotationCount
		}
		return a.cellCount > b.cellCount
	})
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

type search struct {
	board      *board.Board
	survivors  []candidate
	target     int
	maxCell    int
	deadline   time.Time
	startDepth int
	maxDepth   int

	steps    int
	prunes   int
	timedOut bool
}

func (s *search) stats(start time.Time) Stats {
	return Stats{CombinationsChecked: s.steps, Prunes: s.prunes, ElapsedMs: time.Since(start).Milliseconds()}
}

func (s *search) deadlineExpired() bool {
	if s.deadline.IsZero() {
		return false
	}
	s.steps++
	if s.steps%100 != 0 {
		return false
	}
	if !time.Now().Before(s.deadline) {
		s.timedOut = true
		return true
	}
	return false
}

// dfs explores non-decreasing index sequences over s.survivors (repeats
// allowed), enumerating each multiset exactly once. current holds the
// catalog indices chosen so far; startIdx is the minimum survivor index
// eligible for the next pick (enforcing non-decreasing order);
// coveredCells is the running sum of cellCounts chosen so far; depth is the
// total multiset size allowed in this iterative-deepening pass (the slots
// still free are depth - len(current)).
func (s *search) dfs(current []int, startIdx, coveredCells, depth int) ([]int, bool) {
	if s.deadlineExpired() {
		return nil, false
	}

	if coveredCells == s.target {
		if len(current) == 0 {
			return nil, false
		}
		if s.verifyUnique(current) {
			result := append([]int(nil), current...)
			return result, true
		}
		return nil, false
	}

	if len(current) >= depth {
		return nil, false
	}
	remainingSlots := depth - len(current)
	if coveredCells+remainingSlots*s.maxCell < s.target {
		s.prunes++
		return nil, false
	}

	for i := startIdx; i < len(s.survivors); i++ {
		cand := s.survivors[i]
		if cand.cellCount > s.target-coveredCells {
			s.prunes++
			continue
		}
		current = append(current, cand.catalogIndex)
		result, ok := s.dfs(current, i, coveredCells+cand.cellCount, depth)
		current = current[:len(current)-1]
		if s.timedOut {
			return nil, false
		}
		if ok {
			return result, true
		}
	}
	return nil, false
}

// verifyUnique builds the cover matrix for the multiset named by
// catalogIndices, computes the duplicate factor f, and runs DLX with
// maxCount = f+1. The multiset is unique iff exactly f solutions were found.
func (s *search) verifyUnique(catalogIndices []int) bool {
	shapes := make([]*shape.Shape, 0, len(catalogIndices))
	byIndex := make(map[int]*shape.Shape)
	for _, c := range s.survivors {
		byIndex[c.catalogIndex] = c.sh
	}
	for _, idx := range catalogIndices {
		shapes = append(shapes, byIndex[idx])
	}

	m := cover.Build(s.board, shapes)
	if len(m.Columns) == 0 {
		return false
	}

	d, timedOut, err := dlx.BuildWithDeadline(m.NumCols, m.Columns, s.deadline)
	if err != nil || timedOut {
		if timedOut {
			s.timedOut = true
		}
		return false
	}

	res := d.Solve(dlx.Options{MaxSolutions: m.DuplicateFactor + 1, Deadline: s.deadline})
	if res.TimedOut {
		s.timedOut = true
		return false
	}
	return len(res.Solutions) == m.DuplicateFactor
}
