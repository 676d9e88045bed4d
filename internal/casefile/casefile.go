// Package casefile holds the static definition of a murder case: suspects,
// clues, questions and the unlock graph between them. A loaded Case is
// immutable; all mutable investigation state lives elsewhere.
package casefile

import (
	"log/slog"
	"strings"

	"github.com/jhalonen/pemberton/internal/errors"
)

var (
	ErrUnknownSuspect  = errors.NewSentinel("unknown suspect")
	ErrUnknownClue     = errors.NewSentinel("unknown clue")
	ErrUnknownQuestion = errors.NewSentinel("unknown question")
)

// Category organizes clues in the evidence notebook.
type Category string

const (
	CategoryPhysical     Category = "physical"
	CategoryAlibi        Category = "alibi"
	CategoryMotive       Category = "motive"
	CategoryBehavioral   Category = "behavioral"
	CategoryWitness      Category = "witness"
	CategoryRelationship Category = "relationship"
	CategoryTimeline     Category = "timeline"
)

// Persona carries the character material used to build the dialogue-flavor
// system prompt. It never influences clue detection or unlocks.
type Persona struct {
	Traits        []string `yaml:"traits"`
	SpeakingStyle string   `yaml:"speaking_style"`
	Backstory     string   `yaml:"backstory"`
	Secret        string   `yaml:"secret"`
	Alibi         string   `yaml:"alibi"`
}

// Suspect is one of the characters the player can interrogate.
type Suspect struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Title      string   `yaml:"title"`
	Aliases    []string `yaml:"aliases"`
	Occupation string   `yaml:"occupation"`
	Persona    Persona  `yaml:"persona"`
}

// Clue is a discoverable piece of evidence.
type Clue struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Text     string   `yaml:"text"`
	Category Category `yaml:"category"`
	KeyClue  bool     `yaml:"key_clue"`
	// PointsTo names the suspect this evidence incriminates, empty when neutral.
	PointsTo string `yaml:"points_to"`
	// Triggers are the phrases matched case-insensitively against free-form
	// remarks. Declarative on purpose so matching stays auditable data.
	Triggers []string `yaml:"triggers"`
}

// Response is the scripted answer one suspect gives to one question.
type Response struct {
	Suspect string   `yaml:"suspect"`
	Text    string   `yaml:"text"`
	Clues   []string `yaml:"clues"`
}

// Question is something the detective can ask. An empty Suspect means the
// question is generic and addressable to every suspect.
type Question struct {
	ID      string `yaml:"id"`
	Suspect string `yaml:"suspect"`
	Prompt  string `yaml:"prompt"`
	// Unlock is the clue that must be in the ledger before the question
	// becomes visible. Empty means always visible.
	Unlock    string     `yaml:"unlock"`
	Responses []Response `yaml:"responses"`
}

// Case is a validated, immutable case definition.
type Case struct {
	title        string
	victim       string
	introduction string
	culprit      string

	suspects  []Suspect
	clues     []Clue
	questions []Question

	suspectByID  map[string]int
	clueByID     map[string]int
	questionByID map[string]int
	aliasToID    map[string]string
	responses    map[string]Response
	keyClues     []string
}

func responseKey(questionID, suspectID string) string {
	return questionID + "\x00" + suspectID
}

// Title returns the display title of the case.
func (c *Case) Title() string { return c.title }

// Victim returns the victim description.
func (c *Case) Victim() string { return c.victim }

// Introduction returns the scene-setting text shown before investigation.
func (c *Case) Introduction() string { return c.introduction }

// Culprit returns the identifier of the true murderer.
func (c *Case) Culprit() string { return c.culprit }

// Suspects returns all suspects in catalog order.
func (c *Case) Suspects() []Suspect {
	out := make([]Suspect, len(c.suspects))
	copy(out, c.suspects)
	return out
}

// Suspect looks up a suspect by canonical identifier.
func (c *Case) Suspect(id string) (Suspect, error) {
	idx, ok := c.suspectByID[id]
	if !ok {
		return Suspect{}, errors.Wrap(ErrUnknownSuspect, "suspect lookup", slog.String("suspect_id", id))
	}
	return c.suspects[idx], nil
}

// ResolveSuspect resolves a canonical identifier, name or alias to a suspect.
// All lookups go through a single alias table built at load time so that name
// variants across data sources cannot diverge.
func (c *Case) ResolveSuspect(nameOrAlias string) (Suspect, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrAlias))
	if id, ok := c.aliasToID[key]; ok {
		return c.Suspect(id)
	}
	return Suspect{}, errors.Wrap(ErrUnknownSuspect, "alias lookup", slog.String("alias", nameOrAlias))
}

// Clue looks up a clue by identifier.
func (c *Case) Clue(id string) (Clue, error) {
	idx, ok := c.clueByID[id]
	if !ok {
		return Clue{}, errors.Wrap(ErrUnknownClue, "clue lookup", slog.String("clue_id", id))
	}
	return c.clues[idx], nil
}

// Clues returns all clues in catalog order.
func (c *Case) Clues() []Clue {
	out := make([]Clue, len(c.clues))
	copy(out, c.clues)
	return out
}

// KeyClues returns the identifiers of all key clues in catalog order.
func (c *Case) KeyClues() []string {
	out := make([]string, len(c.keyClues))
	copy(out, c.keyClues)
	return out
}

// Question looks up a question by identifier.
func (c *Case) Question(id string) (Question, error) {
	idx, ok := c.questionByID[id]
	if !ok {
		return Question{}, errors.Wrap(ErrUnknownQuestion, "question lookup", slog.String("question_id", id))
	}
	return c.questions[idx], nil
}

// QuestionsFor returns the full catalog of questions addressable to the given
// suspect in catalog order, generic questions included. Visibility filtering
// is the unlock engine's job, not the catalog's.
func (c *Case) QuestionsFor(suspectID string) ([]Question, error) {
	if _, ok := c.suspectByID[suspectID]; !ok {
		return nil, errors.Wrap(ErrUnknownSuspect, "questions lookup", slog.String("suspect_id", suspectID))
	}
	var out []Question
	for _, q := range c.questions {
		if q.Suspect == "" || q.Suspect == suspectID {
			out = append(out, q)
		}
	}
	return out, nil
}

// Response returns the scripted response of a suspect to a question.
func (c *Case) Response(questionID, suspectID string) (Response, error) {
	if _, ok := c.suspectByID[suspectID]; !ok {
		return Response{}, errors.Wrap(ErrUnknownSuspect, "response lookup", slog.String("suspect_id", suspectID))
	}
	if _, ok := c.questionByID[questionID]; !ok {
		return Response{}, errors.Wrap(ErrUnknownQuestion, "response lookup", slog.String("question_id", questionID))
	}
	resp, ok := c.responses[responseKey(questionID, suspectID)]
	if !ok {
		// Validation guarantees a response for every addressable pair, so a
		// miss here means the question is not addressed to this suspect.
		return Response{}, errors.Wrap(ErrUnknownQuestion, "question not addressable",
			slog.String("question_id", questionID), slog.String("suspect_id", suspectID))
	}
	return resp, nil
}
