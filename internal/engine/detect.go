package engine

import (
	"strings"

	"github.com/jhalonen/pemberton/internal/casefile"
)

// Detector maps suspect answers to the clues they reveal. Detection is a
// pure lookup against authored case data: the detector never fabricates a
// clue and never consults the ledger, so a given answer always yields the
// same clue set regardless of what has been discovered before. Duplicate
// suppression is the ledger's job.
type Detector struct {
	c *casefile.Case
}

// NewDetector creates a detector for a case.
func NewDetector(c *casefile.Case) Detector {
	return Detector{c: c}
}

// Reveals returns the authored clue identifiers the suspect's answer to the
// question reveals, in authored order. An empty result is a valid outcome.
func (d Detector) Reveals(suspectID, questionID string) ([]string, error) {
	resp, err := d.c.Response(questionID, suspectID)
	if err != nil {
		return nil, err
	}
	clues := make([]string, len(resp.Clues))
	copy(clues, resp.Clues)
	return clues, nil
}

// MatchRemark classifies a free-form remark against the per-clue
// trigger-phrase tables using case-insensitive substring matching. Matches
// are returned in clue catalog order so the result does not depend on the
// phrasing of the remark. No match returns nil, not an error.
func (d Detector) MatchRemark(remark string) []string {
	remark = strings.ToLower(remark)
	if strings.TrimSpace(remark) == "" {
		return nil
	}
	var matched []string
	for _, clue := range d.c.Clues() {
		for _, trigger := range clue.Triggers {
			if strings.Contains(remark, strings.ToLower(trigger)) {
				matched = append(matched, clue.ID)
				break
			}
		}
	}
	return matched
}
