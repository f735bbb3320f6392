// Package palette tracks how many instances of each catalog shape remain
// unplaced in a loaded level, and which one (if any) is currently selected
// for placement. One counter per shape id, with the same "counter reaches
// zero means done" reasoning and fail-fast behavior on a negative count;
// callers get an error rather than a process exit, since this is a
// collaborator-facing package, not a CLI entry point.
package palette

import (
	"errors"
	"fmt"
)

// ErrNoneRemaining indicates an operation that requires at least one
// unplaced instance of a shape id when none remain.
var ErrNoneRemaining = errors.New("palette: no instances remaining for shape id")

// Palette holds the remaining-instance counters for a level's shape
// multiset and the currently selected shape id, if any.
type Palette struct {
	remaining map[string]int
	selected  string
}

// New constructs a Palette from a shape-id -> count map, cloning it so the
// caller's map may be freely mutated afterward.
func New(counts map[string]int) *Palette {
	remaining := make(map[string]int, len(counts))
	for id, n := range counts {
		remaining[id] = n
	}
	return &Palette{remaining: remaining}
}

// Remaining returns the unplaced instance count for id (0 for an id absent
// from the palette).
func (p *Palette) Remaining(id string) int {
	return p.remaining[id]
}

// Select marks id as the currently selected shape for placement. Fails with
// ErrNoneRemaining if no instances of id remain.
func (p *Palette) Select(id string) error {
	if p.remaining[id] == 0 {
		return fmt.Errorf("%w: %s", ErrNoneRemaining, id)
	}
	p.selected = id
	return nil
}

// Selected returns the currently selected shape id and whether one is
// selected at all.
func (p *Palette) Selected() (string, bool) {
	return p.selected, p.selected != ""
}

// Consume decrements the remaining count for id, typically called once a
// placement of id succeeds. Fails with ErrNoneRemaining if none remain; the
// counter is left untouched on failure.
func (p *Palette) Consume(id string) error {
	if p.remaining[id] <= 0 {
		return fmt.Errorf("%w: %s", ErrNoneRemaining, id)
	}
	p.remaining[id]--
	return nil
}

// Release increments the remaining count for id, typically called when a
// placement is undone or removed from the board.
func (p *Palette) Release(id string) {
	p.remaining[id]++
}

// AllConsumed reports whether every shape id in the palette has reached
// zero remaining instances.
func (p *Palette) AllConsumed() bool {
	for _, n := range p.remaining {
		if n > 0 {
			return false
		}
	}
	return true
}
