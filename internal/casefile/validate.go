package casefile

import (
	"fmt"
	"strings"
)

// InvalidCaseDefinition reports every referential-integrity violation found
// in a case file, not just the first one. A case that produces this error
// must never be used to start a session.
type InvalidCaseDefinition struct {
	Violations []string
}

func (e InvalidCaseDefinition) Error() string {
	return fmt.Sprintf("invalid case definition (%d violations): %s",
		len(e.Violations), strings.Join(e.Violations, "; "))
}

// validate checks cross-entity referential integrity. It assumes index has
// already populated the lookup tables.
func (c *Case) validate() []string {
	var violations []string

	if c.culprit == "" {
		violations = append(violations, "case has no culprit")
	} else if _, ok := c.suspectByID[c.culprit]; !ok {
		violations = append(violations, "culprit "+c.culprit+" is not a suspect")
	}

	for _, clue := range c.clues {
		if clue.PointsTo != "" {
			if _, ok := c.suspectByID[clue.PointsTo]; !ok {
				violations = append(violations,
					"clue "+clue.ID+" points to unknown suspect "+clue.PointsTo)
			}
		}
	}

	// revealed tracks which clues some response can actually surface, so
	// unlock conditions can be checked for reachability.
	revealed := make(map[string]bool)

	for _, q := range c.questions {
		if q.Suspect != "" {
			if _, ok := c.suspectByID[q.Suspect]; !ok {
				violations = append(violations,
					"question "+q.ID+" targets unknown suspect "+q.Suspect)
				continue
			}
		}

		for _, resp := range q.Responses {
			if _, ok := c.suspectByID[resp.Suspect]; !ok {
				violations = append(violations,
					"question "+q.ID+" has a response for unknown suspect "+resp.Suspect)
				continue
			}
			if q.Suspect != "" && resp.Suspect != q.Suspect {
				violations = append(violations,
					"question "+q.ID+" targets "+q.Suspect+" but has a response for "+resp.Suspect)
			}
			for _, clueID := range resp.Clues {
				if _, ok := c.clueByID[clueID]; !ok {
					violations = append(violations,
						"question "+q.ID+" reveals unknown clue "+clueID)
					continue
				}
				revealed[clueID] = true
			}
		}

		// Every suspect the question can be addressed to needs a scripted
		// response, or asking would have nothing to say.
		for _, s := range c.suspects {
			if q.Suspect != "" && q.Suspect != s.ID {
				continue
			}
			if _, ok := c.responses[responseKey(q.ID, s.ID)]; !ok {
				violations = append(violations,
					"question "+q.ID+" has no response for suspect "+s.ID)
			}
		}
	}

	for _, q := range c.questions {
		if q.Unlock == "" {
			continue
		}
		if _, ok := c.clueByID[q.Unlock]; !ok {
			violations = append(violations,
				"question "+q.ID+" is locked behind unknown clue "+q.Unlock)
			continue
		}
		if !revealed[q.Unlock] {
			violations = append(violations,
				"question "+q.ID+" is locked behind clue "+q.Unlock+" that no question reveals")
		}
	}

	return violations
}
