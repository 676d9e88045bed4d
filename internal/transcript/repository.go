// Package transcript stores the question/answer history of an interrogation
// so front-ends can replay what was said to each suspect. The store is a
// per-run sidecar: the investigation engine never reads it back, and an
// in-memory database is the expected configuration.
package transcript

import (
	"context"
	"log/slog"

	"github.com/jhalonen/pemberton/internal/errors"
	"github.com/jhalonen/pemberton/internal/sqlite"
)

// Exchange is one recorded question and answer.
type Exchange struct {
	ID        int64  `db:"id"`
	SuspectID string `db:"suspect_id"`
	Turn      int    `db:"turn"`
	Question  string `db:"question"`
	Answer    string `db:"answer"`
}

// Repository persists exchanges to SQLite.
type Repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// NewRepository creates a transcript repository.
func NewRepository(db *sqlite.Database, logger *slog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger.With(slog.String("source", "TranscriptRepository")),
	}
}

// Append records an exchange. It satisfies the session recorder contract.
func (r *Repository) Append(ctx context.Context, suspectID string, turn int, question, answer string) error {
	stmt := `INSERT INTO exchanges (suspect_id, turn, question, answer)
	VALUES (:suspect_id, :turn, :question, :answer)`
	if _, err := r.db.ReadWrite.NamedExecContext(ctx, stmt, Exchange{
		ID:        0,
		SuspectID: suspectID,
		Turn:      turn,
		Question:  question,
		Answer:    answer,
	}); err != nil {
		return errors.Wrap(err, "insert exchange",
			slog.String("suspect_id", suspectID), slog.Int("turn", turn))
	}
	return nil
}

// History returns the recorded exchanges with a suspect in turn order.
func (r *Repository) History(ctx context.Context, suspectID string) ([]Exchange, error) {
	stmt := `SELECT id, suspect_id, turn, question, answer
	FROM exchanges
	WHERE suspect_id = ?
	ORDER BY turn`
	var exchanges []Exchange
	if err := r.db.ReadOnly.SelectContext(ctx, &exchanges, stmt, suspectID); err != nil {
		return nil, errors.Wrap(err, "select exchanges", slog.String("suspect_id", suspectID))
	}
	return exchanges, nil
}
