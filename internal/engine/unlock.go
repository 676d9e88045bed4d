package engine

import (
	"github.com/jhalonen/pemberton/internal/casefile"
	"github.com/jhalonen/pemberton/internal/ledger"
)

// VisibleQuestions computes the questions currently visible for a suspect.
// Visibility is a pure function of the case catalog and the ledger contents:
// a question with no unlock condition is always visible, one locked behind a
// clue becomes visible once that clue is in the ledger. Catalog order is
// preserved, so unlocking never reorders already-visible questions, and a
// question that became visible stays visible because clues are never removed
// from the ledger.
func VisibleQuestions(c *casefile.Case, led *ledger.Ledger, suspectID string) ([]casefile.Question, error) {
	questions, err := c.QuestionsFor(suspectID)
	if err != nil {
		return nil, err
	}
	var visible []casefile.Question
	for _, q := range questions {
		if q.Unlock != "" && !led.Contains(q.Unlock) {
			continue
		}
		visible = append(visible, q)
	}
	return visible, nil
}
