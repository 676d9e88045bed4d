package engine

import (
	"github.com/jhalonen/pemberton/internal/casefile"
	"github.com/jhalonen/pemberton/internal/ledger"
)

// Verdict is the outcome of an accusation.
type Verdict int

const (
	Defeat Verdict = iota
	PartialWin
	Victory
)

func (v Verdict) String() string {
	switch v {
	case Victory:
		return "victory"
	case PartialWin:
		return "partial win"
	case Defeat:
		return "defeat"
	}
	return "unknown"
}

// Evidence thresholds for convicting the true culprit.
const (
	victoryKeyClues    = 4
	partialWinKeyClues = 2
)

// AccusationResult is the terminal, immutable outcome of an accusation.
type AccusationResult struct {
	Accused string
	// KeyClues are the discovered key clues incriminating the true culprit,
	// in discovery order.
	KeyClues []string
	Verdict  Verdict
}

// EvaluateAccusation scores an accusation against the ledger. It is pure: it
// never mutates the ledger and may be called speculatively.
//
// Accusing anyone but the true culprit is a Defeat no matter how much
// evidence was gathered. Accusing the culprit requires at least
// partialWinKeyClues of their key clues to convict at all and
// victoryKeyClues for a full Victory.
func EvaluateAccusation(c *casefile.Case, led *ledger.Ledger, accusedID string) (AccusationResult, error) {
	if _, err := c.Suspect(accusedID); err != nil {
		return AccusationResult{}, err
	}

	culprit := c.Culprit()
	keyHeld := led.KeyCluesFor(culprit)

	result := AccusationResult{
		Accused:  accusedID,
		KeyClues: keyHeld,
		Verdict:  Defeat,
	}
	if accusedID != culprit {
		return result, nil
	}
	switch {
	case len(keyHeld) >= victoryKeyClues:
		result.Verdict = Victory
	case len(keyHeld) >= partialWinKeyClues:
		result.Verdict = PartialWin
	}
	return result, nil
}
