// Command play is a thin terminal front-end for the investigation engine.
// It renders menus and text only; all game state lives in the engine.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jhalonen/pemberton/internal/casefile"
	"github.com/jhalonen/pemberton/internal/engine"
	"github.com/jhalonen/pemberton/internal/envstruct"
	"github.com/jhalonen/pemberton/internal/errors"
	"github.com/jhalonen/pemberton/internal/flavor"
	"github.com/jhalonen/pemberton/internal/logging"
	"github.com/jhalonen/pemberton/internal/sqlite"
	"github.com/jhalonen/pemberton/internal/transcript"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type config struct {
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
	CaseFile     string `env:"CASE_FILE" envDefault:""`
	SQLiteURL    string `env:"SQLITE_URL" envDefault:":memory:"`
	Budget       int    `env:"QUESTION_BUDGET" envDefault:"20"`
}

var rootCmd = &cobra.Command{
	Use:  "play",
	Long: `Interrogate the suspects of the Pemberton Manor murder from your terminal.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func main() {
	// A missing .env file is fine; the embedded case plays without one.
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelWarn,
		ReplaceAttr: nil,
	})))

	var cfg config
	if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	c := casefile.Pemberton()
	if cfg.CaseFile != "" {
		var err error
		if c, err = casefile.FromFile(cfg.CaseFile); err != nil {
			return errors.Wrap(err, "load case file", slog.String("path", cfg.CaseFile))
		}
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL)
	if err != nil {
		return errors.Wrap(err, "open transcript database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.LogAttrs(ctx, slog.LevelWarn, "close database", errors.SlogError(err))
		}
	}()
	transcripts := transcript.NewRepository(db, logger)

	var flavorer engine.Flavorer = flavor.Scripted{}
	if cfg.OpenAIAPIKey != "" {
		flavorer = flavor.NewClient(c, cfg.OpenAIAPIKey)
	}

	session := engine.NewSession(c, cfg.Budget,
		engine.WithFlavorer(flavorer),
		engine.WithRecorder(transcripts),
		engine.WithLogger(logger),
	)

	ui := &terminalUI{
		session:     session,
		transcripts: transcripts,
		in:          bufio.NewScanner(os.Stdin),
		out:         os.Stdout,
	}
	return ui.play(ctx)
}

type terminalUI struct {
	session     *engine.Session
	transcripts *transcript.Repository
	in          *bufio.Scanner
	out         *os.File
}

func (ui *terminalUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ui.out, format, args...)
}

func (ui *terminalUI) readLine(prompt string) (string, bool) {
	ui.printf("%s", prompt)
	if !ui.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(ui.in.Text()), true
}

func (ui *terminalUI) play(ctx context.Context) error {
	ui.printf("%s\n\nPress enter to begin.\n", ui.session.Introduction())
	if _, ok := ui.readLine(""); !ok {
		return nil
	}
	if err := ui.session.Begin(); err != nil {
		return err
	}

	for {
		ui.printSuspects()
		line, ok := ui.readLine("> ")
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			ui.printf("The mystery remains unsolved...\n")
			return nil
		case "notebook":
			ui.printNotebook()
		case "transcript":
			if len(fields) < 2 {
				ui.printf("usage: transcript <suspect>\n")
				continue
			}
			ui.printTranscript(ctx, fields[1])
		case "accuse":
			if len(fields) < 2 {
				ui.printf("usage: accuse <suspect>\n")
				continue
			}
			return ui.accuse(fields[1])
		default:
			ui.interrogate(ctx, line)
		}
	}
}

func (ui *terminalUI) printSuspects() {
	ui.printf("\nSUSPECTS (%d questions remaining):\n", ui.session.RemainingQuestions())
	for i, s := range ui.session.Case().Suspects() {
		ui.printf("  %d. %s %s - %s\n", i+1, s.Title, s.Name, s.Occupation)
	}
	ui.printf("Pick a suspect by number or name. Commands: notebook, transcript <suspect>, accuse <suspect>, quit\n")
}

func (ui *terminalUI) resolveSuspect(selection string) (casefile.Suspect, bool) {
	suspects := ui.session.Case().Suspects()
	if idx, err := strconv.Atoi(selection); err == nil && idx >= 1 && idx <= len(suspects) {
		return suspects[idx-1], true
	}
	suspect, err := ui.session.Case().ResolveSuspect(selection)
	if err != nil {
		ui.printf("No such suspect: %s\n", selection)
		return casefile.Suspect{}, false
	}
	return suspect, true
}

func (ui *terminalUI) interrogate(ctx context.Context, selection string) {
	suspect, ok := ui.resolveSuspect(selection)
	if !ok {
		return
	}
	for {
		questions, err := ui.session.VisibleQuestions(suspect.ID)
		if err != nil {
			ui.printf("%v\n", err)
			return
		}
		if len(questions) == 0 {
			ui.printf("%s %s has nothing more to tell you for now.\n", suspect.Title, suspect.Name)
			return
		}
		ui.printf("\nQuestions for %s %s:\n", suspect.Title, suspect.Name)
		for i, q := range questions {
			ui.printf("  %d. %s\n", i+1, q.Prompt)
		}
		line, ok := ui.readLine("Ask (number), or 'back': ")
		if !ok || line == "back" {
			return
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 1 || idx > len(questions) {
			ui.printf("Pick a question by number.\n")
			continue
		}
		exchange, err := ui.session.Ask(ctx, suspect.ID, questions[idx-1].ID, "")
		if err != nil {
			if errors.Is(err, engine.ErrNoQuestionsLeft) {
				ui.printf("You are out of questions. It is time to accuse someone.\n")
				return
			}
			ui.printf("%v\n", err)
			return
		}
		ui.printf("\n%s %s:\n\"%s\"\n", suspect.Title, suspect.Name, exchange.FlavoredAnswer)
		for _, clueID := range exchange.NewClues {
			clue, err := ui.session.Case().Clue(clueID)
			if err != nil {
				continue
			}
			ui.printf("  [New clue: %s]\n", clue.Name)
		}
	}
}

func (ui *terminalUI) printNotebook() {
	entries := ui.session.Notebook()
	if len(entries) == 0 {
		ui.printf("Your notebook is empty.\n")
		return
	}
	ui.printf("\nEVIDENCE NOTEBOOK:\n")
	for _, e := range entries {
		marker := " "
		if e.Clue.KeyClue {
			marker = "*"
		}
		ui.printf("  %s [%s] %s: %s\n", marker, e.Clue.Category, e.Clue.Name, e.Clue.Text)
	}
	ui.printf("Entries marked * are key evidence.\n")
}

func (ui *terminalUI) printTranscript(ctx context.Context, selection string) {
	suspect, ok := ui.resolveSuspect(selection)
	if !ok {
		return
	}
	exchanges, err := ui.transcripts.History(ctx, suspect.ID)
	if err != nil {
		ui.printf("%v\n", err)
		return
	}
	if len(exchanges) == 0 {
		ui.printf("You have not questioned %s %s yet.\n", suspect.Title, suspect.Name)
		return
	}
	ui.printf("\nTRANSCRIPT - %s %s:\n", suspect.Title, suspect.Name)
	for _, e := range exchanges {
		ui.printf("  Q%d: %s\n      %s\n", e.Turn, e.Question, e.Answer)
	}
}

func (ui *terminalUI) accuse(selection string) error {
	suspect, ok := ui.resolveSuspect(selection)
	if !ok {
		return nil
	}
	result, err := ui.session.Accuse(suspect.ID)
	if err != nil {
		return err
	}
	ui.printf("\nYou accuse %s %s of the murder.\n\n", suspect.Title, suspect.Name)
	switch result.Verdict {
	case engine.Victory:
		ui.printf("CASE SOLVED! Your deduction is correct and your evidence is overwhelming.\n")
	case engine.PartialWin:
		ui.printf("Correct, but your evidence is thin. The prosecution will struggle to convict.\n")
	case engine.Defeat:
		culprit, err := ui.session.Case().Suspect(ui.session.Case().Culprit())
		if err != nil {
			return err
		}
		ui.printf("The case collapses. The true killer was %s %s.\n", culprit.Title, culprit.Name)
	}
	ui.printf("Key evidence held: %d piece(s).\n", len(result.KeyClues))
	return nil
}
