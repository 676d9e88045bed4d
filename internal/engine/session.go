// Package engine implements the investigation engine: question visibility,
// clue detection, accusation scoring and the turn-based session state
// machine that front-ends drive.
package engine

import (
	"context"
	"log/slog"

	"github.com/jhalonen/pemberton/internal/casefile"
	"github.com/jhalonen/pemberton/internal/errors"
	"github.com/jhalonen/pemberton/internal/ledger"
)

// State is the session state machine position.
type State int

const (
	// Introduction is entry-only; the only player action is Begin.
	Introduction State = iota
	// Investigating is the only state in which questions may be asked.
	Investigating
	// Accusing is passed through while an accusation is evaluated.
	Accusing
	// Resolved is terminal.
	Resolved
)

func (s State) String() string {
	switch s {
	case Introduction:
		return "introduction"
	case Investigating:
		return "investigating"
	case Accusing:
		return "accusing"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

var (
	ErrSessionClosed      = errors.NewSentinel("session closed")
	ErrNotInvestigating   = errors.NewSentinel("session is not investigating")
	ErrQuestionNotAskable = errors.NewSentinel("question cannot be asked")
	ErrNoQuestionsLeft    = errors.NewSentinel("question budget exhausted")
)

// Flavorer rephrases a scripted answer for display. Its output is display
// decoration only: it is never parsed for clues and its failure never blocks
// play.
type Flavorer interface {
	Flavor(ctx context.Context, suspect casefile.Suspect, question, scripted string) (string, error)
}

// Recorder receives every committed exchange, e.g. for a transcript view.
// Recording failures are logged, never surfaced as session errors.
type Recorder interface {
	Append(ctx context.Context, suspectID string, turn int, question, answer string) error
}

// Exchange is the committed result of asking one question.
type Exchange struct {
	SuspectID  string
	QuestionID string
	Question   string
	// Answer is the authoritative scripted answer.
	Answer string
	// FlavoredAnswer is the display text: the flavored rephrasing when a
	// Flavorer is configured and succeeds, the scripted answer otherwise.
	FlavoredAnswer string
	Turn           int
	// NewClues lists the clues this exchange added to the ledger, in
	// detection order. Re-revealed clues are not repeated here.
	NewClues           []string
	RemainingQuestions int
}

// NotebookEntry pairs a discovered clue with its discovery metadata.
type NotebookEntry struct {
	Clue      casefile.Clue
	Discovery ledger.Discovery
}

// Option configures a Session.
type Option func(*Session)

// WithFlavorer attaches a dialogue-flavor generator.
func WithFlavorer(f Flavorer) Option {
	return func(s *Session) { s.flavorer = f }
}

// WithRecorder attaches a transcript recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithLogger attaches a logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// Session is a single-player investigation. It processes exactly one action
// at a time to completion; it is not safe for concurrent use and a
// multi-session host must give each session its own ledger.
type Session struct {
	c        *casefile.Case
	led      *ledger.Ledger
	detector Detector

	state  State
	turn   int
	budget int
	asked  map[string]bool

	flavorer Flavorer
	recorder Recorder
	logger   *slog.Logger
}

// NewSession starts a session in the Introduction state with the given
// question budget.
func NewSession(c *casefile.Case, budget int, opts ...Option) *Session {
	s := &Session{
		c:        c,
		led:      ledger.New(c),
		detector: NewDetector(c),
		state:    Introduction,
		turn:     0,
		budget:   budget,
		asked:    make(map[string]bool),
		flavorer: nil,
		recorder: nil,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state machine position.
func (s *Session) State() State { return s.state }

// Turn returns the number of questions asked so far.
func (s *Session) Turn() int { return s.turn }

// RemainingQuestions returns the remaining question budget for display.
func (s *Session) RemainingQuestions() int { return s.budget }

// Introduction returns the scene-setting text for the front-end.
func (s *Session) Introduction() string { return s.c.Introduction() }

// Case exposes the read-only case definition for rendering purposes.
func (s *Session) Case() *casefile.Case { return s.c }

// Begin moves the session from Introduction to Investigating. Calling it
// again during the investigation is a no-op.
func (s *Session) Begin() error {
	if s.state == Resolved {
		return errors.Wrap(ErrSessionClosed, "begin")
	}
	if s.state == Introduction {
		s.state = Investigating
	}
	return nil
}

// VisibleQuestions lists the questions currently askable of a suspect:
// visible per the unlock rules and not yet asked. An empty list is not an
// error; the front-end decides how to present it.
func (s *Session) VisibleQuestions(suspectID string) ([]casefile.Question, error) {
	if err := s.requireInvestigating("list questions"); err != nil {
		return nil, err
	}
	visible, err := VisibleQuestions(s.c, s.led, suspectID)
	if err != nil {
		return nil, err
	}
	var askable []casefile.Question
	for _, q := range visible {
		if !s.asked[askedKey(q.ID, suspectID)] {
			askable = append(askable, q)
		}
	}
	return askable, nil
}

// Ask puts a question to a suspect, optionally shaped by a free-form remark
// from the player. It consumes one unit of budget, advances the turn and
// records any revealed clues, in that order, before any flavor call is
// issued, so a slow or failing provider can never leave the ledger
// half-updated.
func (s *Session) Ask(ctx context.Context, suspectID, questionID, remark string) (*Exchange, error) {
	if err := s.requireInvestigating("ask"); err != nil {
		return nil, err
	}
	if s.budget <= 0 {
		return nil, errors.Wrap(ErrNoQuestionsLeft, "ask",
			slog.String("question_id", questionID))
	}
	if _, err := s.c.Suspect(suspectID); err != nil {
		return nil, err
	}
	question, err := s.c.Question(questionID)
	if err != nil {
		return nil, err
	}
	if question.Suspect != "" && question.Suspect != suspectID {
		return nil, errors.Wrap(ErrQuestionNotAskable, "question targets another suspect",
			slog.String("question_id", questionID), slog.String("suspect_id", suspectID))
	}
	if question.Unlock != "" && !s.led.Contains(question.Unlock) {
		return nil, errors.Wrap(ErrQuestionNotAskable, "question still locked",
			slog.String("question_id", questionID), slog.String("unlock", question.Unlock))
	}
	if s.asked[askedKey(questionID, suspectID)] {
		return nil, errors.Wrap(ErrQuestionNotAskable, "question already asked",
			slog.String("question_id", questionID), slog.String("suspect_id", suspectID))
	}
	resp, err := s.c.Response(questionID, suspectID)
	if err != nil {
		return nil, err
	}

	// Commit the authoritative state transitions.
	s.turn++
	s.budget--
	s.asked[askedKey(questionID, suspectID)] = true

	detected, err := s.detector.Reveals(suspectID, questionID)
	if err != nil {
		// The response lookup above guarantees detection cannot miss.
		panic("clue detection failed after response lookup succeeded: " + err.Error())
	}
	detected = append(detected, s.detector.MatchRemark(remark)...)

	var newClues []string
	for _, clueID := range detected {
		outcome, err := s.led.Record(clueID, questionID, s.turn)
		if err != nil {
			panic("detector produced a clue unknown to the case: " + clueID)
		}
		if outcome == ledger.NewlyDiscovered {
			newClues = append(newClues, clueID)
		}
	}

	exchange := &Exchange{
		SuspectID:          suspectID,
		QuestionID:         questionID,
		Question:           question.Prompt,
		Answer:             resp.Text,
		FlavoredAnswer:     resp.Text,
		Turn:               s.turn,
		NewClues:           newClues,
		RemainingQuestions: s.budget,
	}

	// Side channels run only after the commit above.
	if s.recorder != nil {
		if err := s.recorder.Append(ctx, suspectID, s.turn, question.Prompt, resp.Text); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "transcript append failed", errors.SlogError(err))
		}
	}
	if s.flavorer != nil {
		suspect, err := s.c.Suspect(suspectID)
		if err != nil {
			panic("suspect vanished mid-turn: " + suspectID)
		}
		flavored, err := s.flavorer.Flavor(ctx, suspect, question.Prompt, resp.Text)
		if err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "flavor generation failed, falling back to script",
				slog.String("suspect_id", suspectID), errors.SlogError(err))
		} else if flavored != "" {
			exchange.FlavoredAnswer = flavored
		}
	}

	return exchange, nil
}

// Notebook returns the discovered clues with their metadata in discovery
// order. It is a read-only view and stays available after resolution.
func (s *Session) Notebook() []NotebookEntry {
	discoveries := s.led.All()
	entries := make([]NotebookEntry, 0, len(discoveries))
	for _, d := range discoveries {
		clue, err := s.c.Clue(d.ClueID)
		if err != nil {
			panic("ledger holds a clue unknown to the case: " + d.ClueID)
		}
		entries = append(entries, NotebookEntry{Clue: clue, Discovery: d})
	}
	return entries
}

// Evaluate scores a hypothetical accusation without committing it, e.g. for
// a review-evidence view. It never mutates the ledger or the session.
func (s *Session) Evaluate(suspectID string) (AccusationResult, error) {
	return EvaluateAccusation(s.c, s.led, suspectID)
}

// Accuse commits the single terminal accusation. On success the session
// transitions unconditionally to Resolved; the accusation cannot be
// retracted or repeated. A bad suspect identifier leaves the session state
// untouched.
func (s *Session) Accuse(suspectID string) (AccusationResult, error) {
	if s.state == Resolved {
		return AccusationResult{}, errors.Wrap(ErrSessionClosed, "accuse")
	}
	if s.state != Investigating {
		return AccusationResult{}, errors.Wrap(ErrNotInvestigating, "accuse",
			slog.String("state", s.state.String()))
	}
	if _, err := s.c.Suspect(suspectID); err != nil {
		return AccusationResult{}, err
	}
	s.state = Accusing
	result, err := EvaluateAccusation(s.c, s.led, suspectID)
	if err != nil {
		// The suspect was validated before entering Accusing.
		panic("accusation evaluation failed after validation: " + err.Error())
	}
	s.state = Resolved
	return result, nil
}

func (s *Session) requireInvestigating(action string) error {
	switch s.state {
	case Investigating:
		return nil
	case Resolved:
		return errors.Wrap(ErrSessionClosed, action)
	default:
		return errors.Wrap(ErrNotInvestigating, action, slog.String("state", s.state.String()))
	}
}

func askedKey(questionID, suspectID string) string {
	return questionID + "\x00" + suspectID
}
