// Package progress tracks per-level completion state in memory: whether a
// level has been completed, its best completion time, and an unlock chain
// where completing level i unlocks level i+1. It owns no persistence; a
// game-loop collaborator is responsible for serializing a Tracker's state
// across runs if that's wanted.
package progress

import "time"

// Record is one level's completion state.
type Record struct {
	LevelID    string
	Completed  bool
	BestTimeMs int64
	UnlockedAt time.Time
}

// Tracker holds completion records for an ordered sequence of level ids and
// the unlock chain between them. The first level in Order is unlocked by
// construction; each subsequent level unlocks the moment the one before it
// is completed.
type Tracker struct {
	order    []string
	records  map[string]*Record
	unlocked map[string]bool
}

// New constructs a Tracker over an ordered list of level ids. order must
// list each level exactly once, earliest-unlocked first.
func New(order []string) *Tracker {
	t := &Tracker{
		order:    append([]string(nil), order...),
		records:  make(map[string]*Record, len(order)),
		unlocked: make(map[string]bool, len(order)),
	}
	for _, id := range order {
		t.records[id] = &Record{LevelID: id}
	}
	if len(order) > 0 {
		t.unlocked[order[0]] = true
	}
	return t
}

// IsUnlocked reports whether levelID is currently reachable.
func (t *Tracker) IsUnlocked(levelID string) bool {
	return t.unlocked[levelID]
}

// Record returns the completion record for levelID, or the zero Record if
// levelID is not tracked.
func (t *Tracker) Record(levelID string) Record {
	if r, ok := t.records[levelID]; ok {
		return *r
	}
	return Record{LevelID: levelID}
}

// Complete marks levelID completed with the given completion time, updating
// BestTimeMs only if timeMs improves on the previous best (or none is set
// yet), and unlocks the next level in Order if there is one. unlockedAt is
// the timestamp to record on the newly unlocked level; callers supply it
// rather than this package calling time.Now(), keeping Tracker pure and
// deterministic for tests.
func (t *Tracker) Complete(levelID string, timeMs int64, unlockedAt time.Time) {
	r, ok := t.records[levelID]
	if !ok {
		r = &Record{LevelID: levelID}
		t.records[levelID] = r
	}
	if !r.Completed || timeMs < r.BestTimeMs {
		r.BestTimeMs = timeMs
	}
	r.Completed = true

	next := t.nextOf(levelID)
	if next == "" || t.unlocked[next] {
		return
	}
	t.unlocked[next] = true
	nr, ok := t.records[next]
	if !ok {
		nr = &Record{LevelID: next}
		t.records[next] = nr
	}
	nr.UnlockedAt = unlockedAt
}

func (t *Tracker) nextOf(levelID string) string {
	for i, id := range t.order {
		if id == levelID && i+1 < len(t.order) {
			return t.order[i+1]
		}
	}
	return ""
}

// CompletedCount returns how many tracked levels are completed.
func (t *Tracker) CompletedCount() int {
	count := 0
	for _, r := range t.records {
		if r.Completed {
			count++
		}
	}
	return count
}
