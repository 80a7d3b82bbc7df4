package server

import (
	"cmp"
	"slices"
	"time"

	"github.com/tomz197/chaos-survival/internal/loop/sim"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Color    string
	Score    int
	Wave     int
	Elapsed  time.Duration
	seq      int // Arrival order, used for deterministic tie-break when scores are equal
}

// HostSnapshot is an immutable view of the host for rendering.
type HostSnapshot struct {
	Players     int             // Connected sessions
	GamesPlayed int             // Finished runs since the host started
	TopScores   []TopScoreEntry // Top N scores for leaderboard display
}

// Leaderboard keeps the best finished runs, highest score first.
// Equal scores rank by wave, then by who got there first.
// Not safe for concurrent use; the Server only touches it from Run.
type Leaderboard struct {
	limit   int
	entries []TopScoreEntry
	seq     int
}

// NewLeaderboard creates a leaderboard holding at most limit entries.
func NewLeaderboard(limit int) *Leaderboard {
	return &Leaderboard{limit: limit}
}

// Add records a finished run and returns its 1-based rank,
// or 0 if it did not make the board.
func (l *Leaderboard) Add(r sim.Result) int {
	if l.limit <= 0 {
		return 0
	}
	l.seq++
	entry := TopScoreEntry{
		Username: r.Name,
		Color:    r.Color,
		Score:    r.Score,
		Wave:     r.Wave,
		Elapsed:  r.Elapsed,
		seq:      l.seq,
	}

	l.entries = append(l.entries, entry)
	slices.SortStableFunc(l.entries, compareEntries)
	if len(l.entries) > l.limit {
		clear(l.entries[l.limit:])
		l.entries = l.entries[:l.limit]
	}

	for i, e := range l.entries {
		if e.seq == entry.seq {
			return i + 1
		}
	}
	return 0
}

// Entries returns a copy of the board, best first.
func (l *Leaderboard) Entries() []TopScoreEntry {
	return slices.Clone(l.entries)
}

func compareEntries(a, b TopScoreEntry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Wave, a.Wave); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}
