package casefile

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/jhalonen/pemberton/internal/errors"
	"gopkg.in/yaml.v3"
)

// document is the YAML shape of a case file.
type document struct {
	Title        string     `yaml:"title"`
	Victim       string     `yaml:"victim"`
	Introduction string     `yaml:"introduction"`
	Culprit      string     `yaml:"culprit"`
	Suspects     []Suspect  `yaml:"suspects"`
	Clues        []Clue     `yaml:"clues"`
	Questions    []Question `yaml:"questions"`
}

// Parse builds a Case from a YAML document and validates its referential
// integrity. Validation failures are reported all at once through
// [InvalidCaseDefinition] so that a broken case file can be fixed in a single
// round instead of one error at a time.
func Parse(data []byte) (*Case, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode case file")
	}

	c := &Case{
		title:        doc.Title,
		victim:       doc.Victim,
		introduction: doc.Introduction,
		culprit:      doc.Culprit,
		suspects:     doc.Suspects,
		clues:        doc.Clues,
		questions:    doc.Questions,
		suspectByID:  make(map[string]int, len(doc.Suspects)),
		clueByID:     make(map[string]int, len(doc.Clues)),
		questionByID: make(map[string]int, len(doc.Questions)),
		aliasToID:    make(map[string]string),
		responses:    make(map[string]Response),
		keyClues:     nil,
	}

	violations := c.index()
	violations = append(violations, c.validate()...)
	if len(violations) > 0 {
		return nil, InvalidCaseDefinition{Violations: violations}
	}
	return c, nil
}

// FromFile loads and validates a case file from disk.
func FromFile(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read case file", slog.String("path", path))
	}
	return Parse(data)
}

// index fills the lookup tables and reports identifier-level violations:
// duplicate identifiers and aliases that resolve to more than one suspect.
func (c *Case) index() []string {
	var violations []string

	addAlias := func(alias, suspectID string) {
		key := strings.ToLower(strings.TrimSpace(alias))
		if key == "" {
			return
		}
		if other, ok := c.aliasToID[key]; ok && other != suspectID {
			violations = append(violations,
				"alias "+alias+" resolves to both "+other+" and "+suspectID)
			return
		}
		c.aliasToID[key] = suspectID
	}

	for i, s := range c.suspects {
		if _, ok := c.suspectByID[s.ID]; ok {
			violations = append(violations, "duplicate suspect id "+s.ID)
			continue
		}
		c.suspectByID[s.ID] = i
		addAlias(s.ID, s.ID)
		addAlias(s.Name, s.ID)
		for _, alias := range s.Aliases {
			addAlias(alias, s.ID)
		}
	}

	for i, clue := range c.clues {
		if _, ok := c.clueByID[clue.ID]; ok {
			violations = append(violations, "duplicate clue id "+clue.ID)
			continue
		}
		c.clueByID[clue.ID] = i
		if clue.KeyClue {
			c.keyClues = append(c.keyClues, clue.ID)
		}
	}

	for i, q := range c.questions {
		if _, ok := c.questionByID[q.ID]; ok {
			violations = append(violations, "duplicate question id "+q.ID)
			continue
		}
		c.questionByID[q.ID] = i
		for _, resp := range q.Responses {
			key := responseKey(q.ID, resp.Suspect)
			if _, ok := c.responses[key]; ok {
				violations = append(violations,
					"question "+q.ID+" has multiple responses for suspect "+resp.Suspect)
				continue
			}
			c.responses[key] = resp
		}
	}

	return violations
}
