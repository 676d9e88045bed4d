// Package ledger tracks the clues discovered during one investigation
// session. A ledger belongs to exactly one session and is never shared.
package ledger

import (
	"github.com/jhalonen/pemberton/internal/casefile"
)

// Outcome tells whether recording a clue changed the ledger.
type Outcome int

const (
	NewlyDiscovered Outcome = iota
	AlreadyKnown
)

// Discovery is the metadata kept for a discovered clue.
type Discovery struct {
	ClueID     string
	QuestionID string
	Turn       int
}

// Ledger is the per-session evidence notebook. Insertion is idempotent:
// recording a known clue is a no-op, never an error.
type Ledger struct {
	c       *casefile.Case
	order   []Discovery
	entries map[string]int
}

// New creates an empty ledger bound to a case definition.
func New(c *casefile.Case) *Ledger {
	return &Ledger{
		c:       c,
		order:   nil,
		entries: make(map[string]int),
	}
}

// Record adds a clue discovery. Re-recording a known clue returns
// AlreadyKnown and leaves the ledger untouched. Unknown clue identifiers are
// caller errors and never mutate state.
func (l *Ledger) Record(clueID, questionID string, turn int) (Outcome, error) {
	if _, err := l.c.Clue(clueID); err != nil {
		return AlreadyKnown, err
	}
	if _, ok := l.entries[clueID]; ok {
		return AlreadyKnown, nil
	}
	l.entries[clueID] = len(l.order)
	l.order = append(l.order, Discovery{ClueID: clueID, QuestionID: questionID, Turn: turn})
	return NewlyDiscovered, nil
}

// Contains reports whether a clue has been discovered.
func (l *Ledger) Contains(clueID string) bool {
	_, ok := l.entries[clueID]
	return ok
}

// All returns the discoveries in discovery order.
func (l *Ledger) All() []Discovery {
	out := make([]Discovery, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of discovered clues.
func (l *Ledger) Len() int {
	return len(l.order)
}

// KeyClueCount counts the discovered key clues.
func (l *Ledger) KeyClueCount() int {
	count := 0
	for _, id := range l.c.KeyClues() {
		if l.Contains(id) {
			count++
		}
	}
	return count
}

// KeyCluesFor returns the discovered key clues that incriminate the given
// suspect, in discovery order.
func (l *Ledger) KeyCluesFor(suspectID string) []string {
	var out []string
	for _, d := range l.order {
		clue, err := l.c.Clue(d.ClueID)
		if err != nil {
			// Entries are validated on the way in.
			panic("ledger holds a clue unknown to the case: " + d.ClueID)
		}
		if clue.KeyClue && clue.PointsTo == suspectID {
			out = append(out, d.ClueID)
		}
	}
	return out
}
