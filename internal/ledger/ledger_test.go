package ledger_test

import (
	"testing"

	"github.com/jhalonen/pemberton/internal/casefile"
	"github.com/jhalonen/pemberton/internal/ledger"
	"github.com/stretchr/testify/require"
)

func TestLedger_Record(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)

	outcome, err := led.Record("ALIBI_LADY_GAP", "Q_WHEREABOUTS", 1)
	require.NoError(t, err)
	require.Equal(t, ledger.NewlyDiscovered, outcome)
	require.True(t, led.Contains("ALIBI_LADY_GAP"))
	require.Equal(t, 1, led.Len())

	// Re-recording the same clue is a no-op, even from a different question.
	outcome, err = led.Record("ALIBI_LADY_GAP", "Q_ALIBI_WITNESS", 5)
	require.NoError(t, err)
	require.Equal(t, ledger.AlreadyKnown, outcome)
	require.Equal(t, 1, led.Len())

	// The original discovery metadata survives the duplicate.
	all := led.All()
	require.Len(t, all, 1)
	require.Equal(t, "Q_WHEREABOUTS", all[0].QuestionID)
	require.Equal(t, 1, all[0].Turn)
}

func TestLedger_Record_unknownClue(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)

	_, err := led.Record("NOT_A_CLUE", "Q_WHEREABOUTS", 1)
	require.ErrorIs(t, err, casefile.ErrUnknownClue)
	require.Equal(t, 0, led.Len())
	require.False(t, led.Contains("NOT_A_CLUE"))
}

func TestLedger_All_preservesDiscoveryOrder(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)

	ids := []string{"WITNESS_CLARA", "ALIBI_LADY_GAP", "SHINY_OBJECT"}
	for turn, id := range ids {
		_, err := led.Record(id, "Q_CLARA_CORRIDORS", turn+1)
		require.NoError(t, err)
	}

	var got []string
	for _, d := range led.All() {
		got = append(got, d.ClueID)
	}
	require.Equal(t, ids, got)
}

func TestLedger_KeyClueCount(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)
	require.Equal(t, 0, led.KeyClueCount())

	// Two key clues and one ordinary clue.
	for _, id := range []string{"ALIBI_LADY_GAP", "ARGUMENT_MAJOR", "SHINY_OBJECT"} {
		_, err := led.Record(id, "Q_WHEREABOUTS", 1)
		require.NoError(t, err)
	}
	require.Equal(t, 2, led.KeyClueCount())
}

func TestLedger_KeyCluesFor(t *testing.T) {
	t.Parallel()

	c := casefile.Pemberton()
	led := ledger.New(c)

	// Mix of key clues against the lady, a key clue discovered later, an
	// ordinary clue against her and a clue against someone else.
	for turn, id := range []string{"SHINY_OBJECT", "MOTIVE_LADY_BLACKMAIL", "ARGUMENT_MAJOR", "ALIBI_LADY_GAP"} {
		_, err := led.Record(id, "Q_WHEREABOUTS", turn+1)
		require.NoError(t, err)
	}

	require.Equal(t, []string{"SHINY_OBJECT", "ALIBI_LADY_GAP"}, led.KeyCluesFor("lady"))
	require.Empty(t, led.KeyCluesFor("major"))
	require.Empty(t, led.KeyCluesFor("student"))
}
