// Command polycover loads a `.level` package and demonstrates the solver
// core end to end: it decodes the archive, builds the board and cover
// matrix for the level's fixed shape multiset, and runs the exact-cover
// solver, printing the target grid and the discovered placement with
// colored terminal output.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/polycover/internal/board"
	"github.com/katalvlaran/polycover/internal/catalog"
	"github.com/katalvlaran/polycover/internal/cover"
	"github.com/katalvlaran/polycover/internal/dlx"
	"github.com/katalvlaran/polycover/internal/levelpkg"
	"github.com/katalvlaran/polycover/internal/shape"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: polycover <path-to-.level>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		color.HiRed("error: %v", err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	builtins, err := catalog.Builtin()
	if err != nil {
		return fmt.Errorf("loading builtin catalog: %w", err)
	}

	lvl, err := levelpkg.Decode(data, builtins.Resolve)
	if err != nil {
		return fmt.Errorf("decoding level: %w", err)
	}

	if isStdoutTTY() {
		color.HiWhite("Level: %s (difficulty %d)", lvl.Data.Name, lvl.Data.Difficulty)
	}

	target, err := parseTarget(lvl.Data.Target, lvl.Data.Rows, lvl.Data.Cols)
	if err != nil {
		return err
	}
	b, err := board.New(lvl.Data.Rows, lvl.Data.Cols, target)
	if err != nil {
		return fmt.Errorf("building board: %w", err)
	}

	printTarget(b)

	shapes := make([]*shape.Shape, 0, len(lvl.Data.ShapeIDs))
	for _, id := range lvl.Data.ShapeIDs {
		sh, ok := lvl.Shapes[id]
		if !ok {
			return fmt.Errorf("level references unresolved shape id %q", id)
		}
		shapes = append(shapes, sh)
	}

	m := cover.Build(b, shapes)
	if len(m.Columns) == 0 {
		color.HiRed("No valid placements exist for this shape multiset.")
		return nil
	}

	d, err := dlx.Build(m.NumCols, m.Columns)
	if err != nil {
		return fmt.Errorf("building solver: %w", err)
	}

	start := time.Now()
	res := d.Solve(dlx.Options{FirstOnly: true})
	elapsed := time.Since(start)

	if len(res.Solutions) == 0 {
		color.HiRed("No solution found (%.3fms).", float64(elapsed.Microseconds())/1000)
		return nil
	}

	color.HiGreen("Solved in %.3fms.", float64(elapsed.Microseconds())/1000)
	printSolution(b, m, res.Solutions[0])
	return nil
}

func parseTarget(rows []string, r, c int) ([][]bool, error) {
	if rows == nil {
		return nil, nil
	}
	target := make([][]bool, len(rows))
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("target row %d has length %d, want %d", i, len(row), c)
		}
		cells := make([]bool, c)
		for j, ch := range row {
			cells[j] = ch == '#'
		}
		target[i] = cells
	}
	if len(target) != r {
		return nil, fmt.Errorf("target has %d rows, want %d", len(target), r)
	}
	return target, nil
}

func printTarget(b *board.Board) {
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if b.IsTarget(r, c) {
				fmt.Print(color.HiBlackString("# "))
			} else {
				fmt.Print(". ")
			}
		}
		fmt.Println()
	}
}

func printSolution(b *board.Board, m *cover.Matrix, solution []int) {
	grid := make([][]int, b.Rows())
	for r := range grid {
		grid[r] = make([]int, b.Cols())
	}
	for _, rowIdx := range solution {
		p := m.Placements[rowIdx]
		for _, off := range p.Oriented.Cells() {
			grid[p.Row+off.DRow][p.Col+off.DCol] = p.ShapeIndex + 1
		}
	}

	palette := []func(format string, a ...interface{}) string{
		color.HiGreenString, color.HiYellowString, color.HiCyanString,
		color.HiMagentaString, color.HiBlueString, color.HiRedString,
	}
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			v := grid[r][c]
			if v == 0 {
				fmt.Print(". ")
				continue
			}
			paint := palette[(v-1)%len(palette)]
			fmt.Print(paint("%d ", v))
		}
		fmt.Println()
	}
}

func isStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
