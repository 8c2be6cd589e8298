package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/pthm-cable/snakevo/neural"
)

// HallEntry is a high-scoring controller captured at a generation boundary.
type HallEntry struct {
	Generation int                 `json:"generation"`
	Index      int                 `json:"index"`
	Score      int                 `json:"score"`
	Total      int                 `json:"total"`
	Weights    neural.BrainWeights `json:"weights"`
}

// HallOfFame keeps the best controllers seen across all generations,
// sorted by score descending.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall that holds at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Qualifies reports whether score would enter the hall. Callers use it to
// avoid copying weights for agents that would be rejected.
func (hof *HallOfFame) Qualifies(score int) bool {
	if hof.maxSize <= 0 {
		return false
	}
	return len(hof.entries) < hof.maxSize || score > hof.entries[len(hof.entries)-1].Score
}

// Consider inserts the entry if it qualifies. Returns true if it was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if !hof.Qualifies(entry.Score) {
		return false
	}

	// Find insertion point (sorted descending by score, earlier entries win ties)
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Score < entry.Score
	})

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Entries returns the hall contents, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	return append([]HallEntry(nil), hof.entries...)
}

// Best returns the top entry, or nil if the hall is empty.
func (hof *HallOfFame) Best() *HallEntry {
	if len(hof.entries) == 0 {
		return nil
	}
	e := hof.entries[0]
	return &e
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// MarshalJSON serializes the hall as a JSON array.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}
