// Package flavor decorates scripted suspect answers with LLM-generated
// phrasing. It is a display-only side channel: its output is never parsed
// for clue content and a provider failure always degrades to the scripted
// answer, never to a lost turn.
package flavor

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhalonen/pemberton/internal/casefile"
	"github.com/jhalonen/pemberton/internal/errors"
)

// ErrProvider marks a dialogue-provider failure. Callers detect it with
// errors.Is; it is never fatal to a session.
var ErrProvider = errors.NewSentinel("dialogue provider error")

// SystemPrompt builds the in-character instruction for a suspect from the
// persona data in the case file.
func SystemPrompt(c *casefile.Case, suspect casefile.Suspect) string {
	p := suspect.Persona
	return fmt.Sprintf(`You are %s %s, a character in a Victorian murder mystery set in 1888 England.

IDENTITY:
- Occupation: %s
- Personality: %s

BACKSTORY:
%s

SECRET (never reveal directly, but let it influence your responses):
%s

YOUR ALIBI FOR THE NIGHT OF THE MURDER:
%s

SPEAKING STYLE:
%s

RULES:
1. Stay completely in character at all times.
2. Speak in Victorian English appropriate to your social class.
3. Never break character or acknowledge you are an AI.
4. You will be given the exact answer to deliver. Rephrase it in your own
   voice without adding, removing or contradicting any facts.
5. Keep responses concise, two to four sentences.

You are being questioned by a detective about this crime: %s`,
		suspect.Title, suspect.Name,
		suspect.Occupation,
		strings.Join(p.Traits, ", "),
		p.Backstory,
		p.Secret,
		p.Alibi,
		p.SpeakingStyle,
		c.Victim(),
	)
}

// Scripted is the offline generator: it returns the scripted answer
// untouched. Useful for tests and for running without a provider.
type Scripted struct{}

// Flavor implements the engine flavorer contract without a provider.
func (Scripted) Flavor(_ context.Context, _ casefile.Suspect, _ string, scripted string) (string, error) {
	return scripted, nil
}
