package engine_test

import (
	"testing"

	"github.com/jhalonen/pemberton/internal/casefile"
	"github.com/jhalonen/pemberton/internal/engine"
	"github.com/jhalonen/pemberton/internal/ledger"
	"github.com/stretchr/testify/require"
)

func questionIDs(questions []casefile.Question) []string {
	var ids []string
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestVisibleQuestions_initialVisibility(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)

	visible, err := engine.VisibleQuestions(c, led, "lady")
	require.NoError(t, err)

	ids := questionIDs(visible)
	// With an empty ledger only unconditioned questions show.
	require.Equal(t, []string{
		"Q_WHEREABOUTS",
		"Q_SEE_UNUSUAL",
		"Q_RELATIONSHIP_VICTIM",
		"Q_ENEMIES",
		"Q_LAST_SEEN",
		"Q_ALIBI_WITNESS",
		"Q_LADY_BUSINESS",
		"Q_LADY_FINANCIAL",
	}, ids)
	require.NotContains(t, ids, "Q_LADY_DEMANDS")
	require.NotContains(t, ids, "Q_LADY_CORRIDOR")
}

func TestVisibleQuestions_unlockPreservesCatalogOrder(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)

	_, err := led.Record("MOTIVE_LADY_DEBT", "Q_LADY_BUSINESS", 1)
	require.NoError(t, err)

	visible, err := engine.VisibleQuestions(c, led, "lady")
	require.NoError(t, err)
	ids := questionIDs(visible)

	// The unlocked question slots into catalog position, after the always
	// visible lady questions, not at the end of the list.
	require.Equal(t, []string{
		"Q_WHEREABOUTS",
		"Q_SEE_UNUSUAL",
		"Q_RELATIONSHIP_VICTIM",
		"Q_ENEMIES",
		"Q_LAST_SEEN",
		"Q_ALIBI_WITNESS",
		"Q_LADY_BUSINESS",
		"Q_LADY_FINANCIAL",
		"Q_LADY_DEMANDS",
	}, ids)
}

func TestVisibleQuestions_sharedUnlock(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)

	before, err := engine.VisibleQuestions(c, led, "maid")
	require.NoError(t, err)
	require.NotContains(t, questionIDs(before), "Q_CLARA_SAW_LADY")
	require.NotContains(t, questionIDs(before), "Q_CLARA_CARRYING")

	// Both follow-ups hang off the same clue and must appear together.
	_, err = led.Record("WITNESS_CLARA", "Q_CLARA_CORRIDORS", 1)
	require.NoError(t, err)

	after, err := engine.VisibleQuestions(c, led, "maid")
	require.NoError(t, err)
	require.Contains(t, questionIDs(after), "Q_CLARA_SAW_LADY")
	require.Contains(t, questionIDs(after), "Q_CLARA_CARRYING")
}

func TestVisibleQuestions_monotonic(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)

	visible, err := engine.VisibleQuestions(c, led, "maid")
	require.NoError(t, err)
	before := questionIDs(visible)

	// Discovering clues never hides a question that was already visible.
	for _, clue := range c.Clues() {
		_, err := led.Record(clue.ID, "Q_WHEREABOUTS", 1)
		require.NoError(t, err)
	}

	visible, err = engine.VisibleQuestions(c, led, "maid")
	require.NoError(t, err)
	after := questionIDs(visible)
	require.Subset(t, after, before)
}

func TestVisibleQuestions_unknownSuspect(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)

	_, err := engine.VisibleQuestions(c, led, "butler")
	require.ErrorIs(t, err, casefile.ErrUnknownSuspect)
}
